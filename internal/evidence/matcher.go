package evidence

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/prebunk/prebunk/internal/healthkb"
	"github.com/prebunk/prebunk/internal/llm"
	"github.com/prebunk/prebunk/internal/model"
)

// Validation-status cut points on (confidence, source count)
const (
	wellSupportedConfidence = 0.8
	moderateConfidence      = 0.6
	limitedConfidence       = 0.3
)

var specificityIndicators = []string{
	"mg", "ml", "daily", "weekly", "doses", "study", "trial",
	"percent", "%", "effective", "clinical", "patients",
}

var vagueIndicators = []string{
	"it", "this", "that", "they", "some", "many", "often", "usually",
}

var concreteTerms = []string{
	"vaccine", "medication", "treatment", "therapy", "dosage", "mg", "ml",
}

// Matcher validates claims against the source registry
type Matcher struct {
	registry  *Registry
	completer llm.Completer // nil disables the optional narrative
}

// NewMatcher creates a matcher. completer may be nil.
func NewMatcher(registry *Registry, completer llm.Completer) *Matcher {
	return &Matcher{registry: registry, completer: completer}
}

// Validate computes the evidence verdict for one claim. The topic hint
// is taken from the claim's first medical entity when present. The
// numeric verdict is a pure function of the matched sources and the
// claim text; the optional narrative never changes it.
func (m *Matcher) Validate(ctx context.Context, c model.Claim) model.ValidationResult {
	topicHint := ""
	if len(c.MedicalEntities) > 0 {
		topicHint = c.MedicalEntities[0]
	}
	return m.ValidateText(ctx, c.ID, c.Text, topicHint)
}

// ValidateText is the topic-hint form of Validate
func (m *Matcher) ValidateText(ctx context.Context, claimID, claimText, topicHint string) model.ValidationResult {
	matched := m.relevantSources(claimText, topicHint)

	result := model.ValidationResult{
		ClaimID:     claimID,
		ClaimText:   claimText,
		SourceCount: len(matched),
	}

	var sum float64
	for _, src := range matched {
		result.Sources = append(result.Sources, model.SourceMatch{
			Name:      src.Name,
			Authority: src.Authority,
			Type:      src.Type,
		})
		sum += src.Authority
		if src.Authority > result.HighestAuthority {
			result.HighestAuthority = src.Authority
		}
	}
	if len(matched) > 0 {
		result.AverageAuthority = sum / float64(len(matched))
	}

	result.Confidence = confidenceScore(matched, claimText)
	result.Coverage = coverageLevel(matched)
	result.Status = validationStatus(result.Confidence, len(matched))

	if m.completer != nil {
		if narrative, err := m.completer.Complete(ctx, buildNarrativePrompt(claimText, matched)); err == nil {
			result.Narrative = narrative
		}
	}

	return result
}

// FailedValidation is the placeholder emitted when a lookup itself
// failed: zero sources, zero confidence, insufficient evidence.
func FailedValidation(claimID, claimText string, err error) model.ValidationResult {
	return model.ValidationResult{
		ClaimID:       claimID,
		ClaimText:     claimText,
		Sources:       []model.SourceMatch{},
		Status:        model.StatusInsufficientEvidence,
		Coverage:      model.CoverageNone,
		FailureReason: err.Error(),
	}
}

// relevantSources returns the sources relevant to the claim, sorted
// descending by authority. The sort is stable, so ties keep registry
// order.
func (m *Matcher) relevantSources(claimText, topicHint string) []model.Source {
	lower := strings.ToLower(claimText)
	hint := strings.ToLower(topicHint)

	var matched []model.Source
	for _, src := range m.registry.Sources() {
		if sourceMatches(src, lower, hint) {
			matched = append(matched, src)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Authority > matched[j].Authority
	})
	return matched
}

func sourceMatches(src model.Source, claimLower, hint string) bool {
	// Topic hint against specialties, substring either direction
	if hint != "" {
		for _, sp := range src.Specialties {
			spLower := strings.ToLower(sp)
			if strings.Contains(spLower, hint) || strings.Contains(hint, spLower) {
				return true
			}
		}
	}

	// Direct specialty mention in the claim
	for _, sp := range src.Specialties {
		if strings.Contains(claimLower, strings.ToLower(sp)) {
			return true
		}
	}

	// Acronym mention (e.g. "WHO", "CDC")
	if acr := acronymOf(src.Name); acr != "" && strings.Contains(strings.ToUpper(claimLower), acr) {
		return true
	}

	// Medical keyword in the claim intersected with the source's coverage
	for _, kw := range healthkb.MedicalKeywords {
		if !strings.Contains(claimLower, kw) {
			continue
		}
		for _, sp := range src.Specialties {
			if strings.Contains(strings.ToLower(sp), kw) {
				return true
			}
		}
	}

	return false
}

// acronymOf extracts a parenthesized acronym from a source name
func acronymOf(name string) string {
	open := strings.LastIndex(name, "(")
	close := strings.LastIndex(name, ")")
	if open == -1 || close <= open {
		return ""
	}
	return name[open+1 : close]
}

// confidenceScore combines source authority, source count, claim
// specificity and concrete-term presence into a clamped [0,1] score.
// Adding a source never decreases the result as long as its authority
// is at or above the current average.
func confidenceScore(sources []model.Source, claimText string) float64 {
	if len(sources) == 0 {
		return 0
	}

	var sum float64
	for _, s := range sources {
		sum += s.Authority
	}
	avgAuthority := sum / float64(len(sources))

	sourceBonus := 0.05 * float64(len(sources))
	if sourceBonus > 0.2 {
		sourceBonus = 0.2
	}

	confidence := avgAuthority + sourceBonus + 0.1*specificity(claimText)

	lower := strings.ToLower(claimText)
	for _, term := range concreteTerms {
		if strings.Contains(lower, term) {
			confidence += 0.1
			break
		}
	}

	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// specificity measures how concrete a claim is: counted specific
// indicators minus half the vague indicators, scaled and clamped to
// [0,1]
func specificity(claimText string) float64 {
	lower := strings.ToLower(claimText)

	specific := 0
	for _, ind := range specificityIndicators {
		if strings.Contains(lower, ind) {
			specific++
		}
	}

	vague := 0
	padded := " " + lower + " "
	for _, ind := range vagueIndicators {
		if strings.Contains(padded, " "+ind+" ") {
			vague++
		}
	}

	score := (float64(specific) - 0.5*float64(vague)) / 5
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// coverageLevel classifies the matched set by count and authority levels
func coverageLevel(sources []model.Source) model.CoverageLevel {
	if len(sources) == 0 {
		return model.CoverageNone
	}

	levels := make(map[model.AuthorityLevel]bool)
	for _, s := range sources {
		levels[model.AuthorityLevelOf(s.Authority)] = true
	}

	switch {
	case len(sources) >= 3 && levels[model.AuthorityVeryHigh]:
		return model.CoverageExcellent
	case len(sources) >= 2 && levels[model.AuthorityHigh]:
		return model.CoverageGood
	case levels[model.AuthorityHigh] || levels[model.AuthorityVeryHigh]:
		return model.CoverageAdequate
	default:
		return model.CoverageLimited
	}
}

// validationStatus applies the fixed cut points on confidence and
// source count. Higher is always better; no inversions.
func validationStatus(confidence float64, sourceCount int) model.ValidationStatus {
	switch {
	case confidence >= wellSupportedConfidence && sourceCount >= 2:
		return model.StatusWellSupported
	case confidence >= moderateConfidence && sourceCount >= 1:
		return model.StatusModeratelySupported
	case confidence >= limitedConfidence:
		return model.StatusLimitedSupport
	default:
		return model.StatusInsufficientEvidence
	}
}

func buildNarrativePrompt(claimText string, sources []model.Source) string {
	if len(sources) == 0 {
		return fmt.Sprintf(`Claim to validate: %q

No relevant trusted sources were found for this claim.
Assess briefly: is this claim verifiable, and what evidence would be needed?
Describe support quality only; never assert truth or falsehood.`, claimText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Claim to validate: %q\n\nRelevant trusted sources:\n", claimText)
	for i, src := range sources {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s (authority: %.2f) - specializes in: %s\n",
			src.Name, src.Authority, strings.Join(src.Specialties[:min(3, len(src.Specialties))], ", "))
	}
	b.WriteString("\nAssess in 2-3 sentences how well these sources would support the claim.\nDescribe support quality only; never assert truth or falsehood.")
	return b.String()
}
