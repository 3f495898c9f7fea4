// Package extract turns raw message text into classified health claims
// using pattern rules, optionally augmented by the text-completion
// capability for messages that mention medical terms.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/prebunk/prebunk/internal/healthkb"
	"github.com/prebunk/prebunk/internal/llm"
	"github.com/prebunk/prebunk/internal/model"
	"github.com/prebunk/prebunk/internal/risk"
)

const (
	patternConfidence = 0.8
	llmConfidence     = 0.6
	minClaimLength    = 10
	dedupeOverlap     = 3 // Shared significant tokens that make two claims duplicates
)

// claimPattern is one lexical extraction rule. The name feeds the claim's
// heuristic field for traceability.
type claimPattern struct {
	name string
	re   *regexp.Regexp
}

var claimPatterns = []claimPattern{
	// Efficacy
	{"efficacy", regexp.MustCompile(`\w+ (?:is|are) (?:effective|safe|dangerous|harmful|good|bad)`)},
	{"efficacy", regexp.MustCompile(`\w+ (?:prevents|treats|cures|heals|causes) \w+`)},
	{"efficacy", regexp.MustCompile(`\w+ (?:works|helps|stops|reduces)`)},
	{"efficacy", regexp.MustCompile(`\w+ (?:success rate|effectiveness|efficacy)`)},

	// Safety
	{"safety", regexp.MustCompile(`\w+ (?:side effects|adverse reactions|risks)`)},
	{"safety", regexp.MustCompile(`\w+ (?:causes|leads to|results in) \w+`)},
	{"safety", regexp.MustCompile(`(?:safe|dangerous|risky|harmful) (?:to use|for) \w+`)},

	// Dosage
	{"dosage", regexp.MustCompile(`take \d+ \w+ (?:daily|weekly|monthly|times)`)},
	{"dosage", regexp.MustCompile(`\d+ (?:mg|ml|units|doses) of \w+`)},
	{"dosage", regexp.MustCompile(`recommended (?:dose|dosage|amount) (?:of|for) \w+`)},

	// Timing
	{"timing", regexp.MustCompile(`take \w+ (?:before|after|with) \w+`)},
	{"timing", regexp.MustCompile(`best time to (?:take|use|administer) \w+`)},
	{"timing", regexp.MustCompile(`\w+ should be (?:taken|used) (?:when|if|during)`)},

	// Authority appeals
	{"authority", regexp.MustCompile(`(?:who|cdc|fda|doctors|experts|studies) (?:recommend|say|show|prove) (?:that )?\w+`)},
	{"authority", regexp.MustCompile(`according to (?:who|cdc|fda|research|studies), \w+`)},

	// Comparison
	{"comparison", regexp.MustCompile(`\w+ (?:is better than|works better than|safer than) \w+`)},
	{"comparison", regexp.MustCompile(`compared to \w+, \w+ (?:is|has)`)},

	// Absolutist claims
	{"absolutist", regexp.MustCompile(`\w+ (?:always|never|100%|guaranteed|completely|totally) \w+`)},
	{"absolutist", regexp.MustCompile(`(?:all|every|no) \w+ (?:will|can|should) \w+`)},
}

// typePattern groups the prioritized classification sub-patterns
type typePattern struct {
	claimType model.ClaimType
	res       []*regexp.Regexp
}

var typePatterns = []typePattern{
	{model.ClaimTypeEfficacy, []*regexp.Regexp{
		regexp.MustCompile(`\w+ (?:is|are) (?:effective|works|cures)`),
		regexp.MustCompile(`\w+ (?:prevents|treats|heals) \w+`),
		regexp.MustCompile(`\w+ (?:success rate|effectiveness)`),
	}},
	{model.ClaimTypeSafety, []*regexp.Regexp{
		regexp.MustCompile(`\w+ (?:is|are) (?:safe|dangerous|harmful)`),
		regexp.MustCompile(`(?:side effects|adverse reactions|risks) of \w+`),
	}},
	{model.ClaimTypeCausation, []*regexp.Regexp{
		regexp.MustCompile(`\w+ (?:causes|leads to|results in) \w+`),
	}},
	{model.ClaimTypeDosage, []*regexp.Regexp{
		regexp.MustCompile(`take \d+ \w+ (?:daily|weekly|monthly)`),
		regexp.MustCompile(`\d+ (?:mg|ml|units) of \w+`),
		regexp.MustCompile(`recommended (?:dose|dosage|amount)`),
	}},
	{model.ClaimTypeTiming, []*regexp.Regexp{
		regexp.MustCompile(`take \w+ (?:before|after|with) \w+`),
		regexp.MustCompile(`best time to (?:take|use|administer)`),
		regexp.MustCompile(`\w+ should be (?:taken|used) (?:when|if)`),
	}},
	{model.ClaimTypeComparison, []*regexp.Regexp{
		regexp.MustCompile(`\w+ (?:is better than|works better than|safer than) \w+`),
		regexp.MustCompile(`compared to \w+`),
	}},
}

// Extractor turns raw text into classified claims
type Extractor struct {
	completer llm.Completer // nil disables LLM augmentation
}

// NewExtractor creates an extractor. completer may be nil.
func NewExtractor(completer llm.Completer) *Extractor {
	return &Extractor{completer: completer}
}

// Extract returns the classified claims found in the text. An empty or
// non-medical message yields an empty list; that is a valid result, not
// an error. Failure of the optional LLM augmentation degrades silently
// to pattern-only extraction.
func (e *Extractor) Extract(ctx context.Context, text string) []model.Claim {
	spans := e.patternSpans(text)

	if e.completer != nil && healthkb.ContainsMedicalTerm(text) {
		spans = append(spans, e.llmSpans(ctx, text)...)
	}

	spans = dedupeSpans(spans)

	claims := make([]model.Claim, 0, len(spans))
	for _, s := range spans {
		claims = append(claims, newClaim(s))
	}
	return claims
}

// span is an extracted claim candidate before classification
type span struct {
	text       string
	heuristic  string
	confidence float64
	claimType  model.ClaimType // set only for pre-classified LLM records
}

// patternSpans applies the lexical rules and returns the containing
// sentence for each match
func (e *Extractor) patternSpans(text string) []span {
	lower := strings.ToLower(text)
	var spans []span
	seen := make(map[string]bool)

	for _, p := range claimPatterns {
		for _, loc := range p.re.FindAllStringIndex(lower, -1) {
			sentence := sentenceAround(text, loc[0], loc[1])
			if len(sentence) <= minClaimLength {
				continue
			}
			key := strings.ToLower(sentence)
			if seen[key] {
				continue
			}
			seen[key] = true
			spans = append(spans, span{
				text:       sentence,
				heuristic:  "pattern:" + p.name,
				confidence: patternConfidence,
			})
		}
	}
	return spans
}

// llmSpans asks the completer for additional claims. Any failure is
// swallowed; pattern results stand on their own.
func (e *Extractor) llmSpans(ctx context.Context, text string) []span {
	resp, err := e.completer.Complete(ctx, buildExtractionPrompt(text))
	if err != nil {
		return nil
	}

	var spans []span
	for _, parsed := range ParseCompletion(resp) {
		if len(parsed.Text) <= minClaimLength {
			continue
		}
		s := span{
			text:       parsed.Text,
			heuristic:  "llm",
			confidence: llmConfidence,
		}
		if parsed.Confidence > 0 {
			s.confidence = parsed.Confidence
		}
		if parsed.Implies != "" {
			s.claimType = model.ClaimTypeImplication
			s.heuristic = "llm:implicit"
		}
		spans = append(spans, s)
	}
	return spans
}

func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract factual health claims from the text below.

Look for statements that assert:
- Treatment effectiveness or safety
- Medical recommendations or warnings
- Cause-and-effect relationships in health
- Dosing or usage instructions
- Comparisons between treatments

Format each explicit claim as: CLAIM: [exact claim text]
Format each implicit claim as:
IMPLICIT CLAIM: [the implied assertion]
IMPLIES: [what it assumes]
CONFIDENCE: [0.0-1.0]

Only extract claims that are specific and factual. Ignore vague advice.

TEXT: %s`, text)
}

// sentenceAround returns the sentence containing [start, end)
func sentenceAround(text string, start, end int) string {
	from := strings.LastIndexAny(text[:start], ".!?") + 1
	to := strings.IndexAny(text[end:], ".!?")
	if to == -1 {
		to = len(text)
	} else {
		to += end
	}
	return strings.TrimSpace(text[from:to])
}

// newClaim classifies a span and derives its risk attributes
func newClaim(s span) model.Claim {
	claimType := s.claimType
	if claimType == "" {
		claimType = classify(s.text)
	}

	c := model.Claim{
		ID:              uuid.NewString(),
		Text:            s.text,
		Type:            claimType,
		Heuristic:       s.heuristic,
		Confidence:      s.confidence,
		Absolutist:      healthkb.IsAbsolutist(s.text),
		MedicalEntities: healthkb.ExtractEntities(s.text),
	}
	c.BaseRisk = risk.BaseScore(c)
	return c
}

// classify determines the claim type: prioritized sub-patterns first,
// then keyword fallback, defaulting to efficacy
func classify(text string) model.ClaimType {
	lower := strings.ToLower(text)

	for _, tp := range typePatterns {
		for _, re := range tp.res {
			if re.MatchString(lower) {
				return tp.claimType
			}
		}
	}

	switch {
	case containsAny(lower, "effective", "works", "cures", "prevents", "treats"):
		return model.ClaimTypeEfficacy
	case containsAny(lower, "safe", "dangerous", "side effects", "risks"):
		return model.ClaimTypeSafety
	case containsAny(lower, "causes", "leads to", "results in"):
		return model.ClaimTypeCausation
	default:
		return model.ClaimTypeEfficacy
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// dedupeSpans drops spans whose significant word sets overlap an earlier
// span by dedupeOverlap or more tokens. Intentionally lossy; it exists
// to stop near-duplicate flooding, not to be precise.
func dedupeSpans(spans []span) []span {
	var unique []span
	var tokenSets []map[string]bool

	for _, s := range spans {
		tokens := significantTokens(s.text)
		dup := false
		for _, existing := range tokenSets {
			common := 0
			for tok := range tokens {
				if existing[tok] {
					common++
				}
			}
			if common >= dedupeOverlap {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, s)
			tokenSets = append(tokenSets, tokens)
		}
	}
	return unique
}

// significantTokens returns the lowercased words of length >= 4
func significantTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) >= 4 {
			tokens[w] = true
		}
	}
	return tokens
}
