// Package risk computes bounded misinterpretation-risk scores for
// extracted claims. All scoring is deterministic: same claim text and
// type always produce the same score.
package risk

import (
	"regexp"
	"strings"

	"github.com/prebunk/prebunk/internal/healthkb"
	"github.com/prebunk/prebunk/internal/model"
)

// Tier thresholds. These are load-bearing constants shared with the
// aggregator; they must not be duplicated with different values.
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
)

// Base score increments
const (
	absolutistIncrement   = 0.5
	entityIncrement       = 0.1
	highRiskTypeIncrement = 0.2
)

// Combined score weights
const (
	baseWeight    = 0.6
	patternWeight = 0.4
)

// typeAdjustments is the fixed per-claim-type risk adjustment added to
// the weighted combination. Safety, efficacy and causation claims carry
// the most inherent risk; timing claims the least.
var typeAdjustments = map[model.ClaimType]float64{
	model.ClaimTypeSafety:     0.2,
	model.ClaimTypeEfficacy:   0.15,
	model.ClaimTypeCausation:  0.15,
	model.ClaimTypeDosage:     0.1,
	model.ClaimTypeComparison: 0.1,
	model.ClaimTypeTiming:     0.05,
}

var highRiskPhrases = []string{
	"always effective", "never fails", "100%", "guaranteed",
	"completely safe", "no side effects", "instant cure",
	"miracle cure", "perfect solution", "zero risk",
	"absolutely safe", "totally harmless", "works every time",
}

var moderateRiskPhrases = []string{
	"usually effective", "generally safe", "mostly harmless",
	"rarely causes problems", "almost always works",
	"typically successful", "most effective treatment",
}

var lowRiskPhrases = []string{
	"may help", "could be beneficial", "might work",
	"consult your doctor", "individual results vary",
	"according to studies", "evidence suggests",
}

var ambiguousTerms = []string{"it", "this", "that", "they", "these", "those"}

var authorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:doctors|experts|scientists|researchers) (?:say|recommend|prove)`),
	regexp.MustCompile(`(?:studies|research|trials) (?:show|prove|demonstrate)`),
	regexp.MustCompile(`(?:who|cdc|fda|nih) (?:says|recommends|approves)`),
}

var emotionalTerms = []string{
	"fear", "scared", "worried", "dangerous", "deadly",
	"amazing", "incredible", "breakthrough", "revolutionary",
}

var qualifierTerms = []string{
	"may", "might", "could", "usually", "often", "sometimes",
	"consult", "individual", "varies", "depends",
}

// BaseScore derives a claim's base risk from its intrinsic attributes.
// Monotonically non-decreasing in the absolutist flag, entity presence,
// and high-risk claim-type membership; clamped to [0,1].
func BaseScore(c model.Claim) float64 {
	score := 0.0
	if c.Absolutist {
		score += absolutistIncrement
	}
	if len(c.MedicalEntities) > 0 {
		score += entityIncrement
	}
	switch c.Type {
	case model.ClaimTypeSafety, model.ClaimTypeEfficacy, model.ClaimTypeCausation:
		score += highRiskTypeIncrement
	}
	return clamp(score)
}

// TierOf converts a combined score into its risk tier. Boundaries are
// inclusive on the lower side: exactly 0.7 is high, exactly 0.4 is medium.
func TierOf(score float64) model.RiskTier {
	switch {
	case score >= HighRiskThreshold:
		return model.TierHigh
	case score >= MediumRiskThreshold:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

// Scorer scores claims for misinterpretation risk
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score produces the full assessment for one claim. The combined score
// is baseWeight*base + patternWeight*pattern plus the per-type
// adjustment, with the base, pattern, and combined values each clamped
// independently. The independent clamping can produce discontinuities
// at the clamp boundaries; the formula is preserved as documented.
func (s *Scorer) Score(c model.Claim) model.RiskAssessment {
	base := c.BaseRisk
	pattern := s.PatternScore(c.Text)

	combined := clamp(baseWeight*base + patternWeight*pattern + typeAdjustments[c.Type])

	return model.RiskAssessment{
		ClaimID:        c.ID,
		ClaimText:      c.Text,
		BaseScore:      base,
		PatternScore:   pattern,
		TypeAdjustment: typeAdjustments[c.Type],
		CombinedScore:  combined,
		Tier:           TierOf(combined),
		Confidence:     s.assessmentConfidence(c),
		RiskFactors:    s.Explain(c),
	}
}

// PatternScore scans the claim text against the graded phrase tiers and
// returns a clamped [0,1] surface-language risk score
func (s *Scorer) PatternScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	for _, phrase := range highRiskPhrases {
		if strings.Contains(lower, phrase) {
			score += 0.3
		}
	}
	for _, phrase := range moderateRiskPhrases {
		if strings.Contains(lower, phrase) {
			score += 0.2
		}
	}
	for _, phrase := range lowRiskPhrases {
		if strings.Contains(lower, phrase) {
			score -= 0.1
		}
	}

	score += float64(countAmbiguous(lower)) * 0.05

	for _, re := range authorityPatterns {
		if re.MatchString(lower) {
			score += 0.15
		}
	}

	for _, term := range emotionalTerms {
		if strings.Contains(lower, term) {
			score += 0.1
		}
	}

	if healthkb.ContainsMedicalTerm(text) {
		score += 0.1
	}

	return clamp(score)
}

// Explain returns, per risk-factor category, the literal substrings that
// matched. Categories with no matches are omitted.
func (s *Scorer) Explain(c model.Claim) map[string][]string {
	lower := strings.ToLower(c.Text)
	factors := make(map[string][]string)

	for _, phrase := range highRiskPhrases {
		if strings.Contains(lower, phrase) {
			factors["high_risk_language"] = append(factors["high_risk_language"], phrase)
		}
	}

	for _, term := range ambiguousTerms {
		if strings.Contains(" "+lower+" ", " "+term+" ") {
			factors["ambiguous_terms"] = append(factors["ambiguous_terms"], term)
		}
	}

	for _, re := range authorityPatterns {
		if match := re.FindString(lower); match != "" {
			factors["authority_appeals"] = append(factors["authority_appeals"], match)
		}
	}

	for _, term := range emotionalTerms {
		if strings.Contains(lower, term) {
			factors["emotional_language"] = append(factors["emotional_language"], term)
		}
	}

	if missingQualifiers(lower) {
		factors["missing_qualifiers"] = []string{"no uncertainty qualifiers found"}
	}

	return factors
}

// assessmentConfidence estimates how reliable the risk assessment itself
// is, based on extraction method and claim specificity
func (s *Scorer) assessmentConfidence(c model.Claim) float64 {
	confidence := 0.6
	if strings.HasPrefix(c.Heuristic, "pattern:") {
		confidence = 0.8
	}

	if len(strings.Fields(c.Text)) > 8 {
		confidence += 0.1
	}

	confidence -= float64(countAmbiguous(strings.ToLower(c.Text))) * 0.05

	if len(c.MedicalEntities) > 0 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.2 {
		confidence = 0.2
	}
	return confidence
}

func countAmbiguous(lower string) int {
	padded := " " + lower + " "
	count := 0
	for _, term := range ambiguousTerms {
		if strings.Contains(padded, " "+term+" ") {
			count++
		}
	}
	return count
}

func missingQualifiers(lower string) bool {
	for _, q := range qualifierTerms {
		if strings.Contains(lower, q) {
			return false
		}
	}
	return containsAnyOf(lower, "effective", "safe", "works", "prevents")
}

func containsAnyOf(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
