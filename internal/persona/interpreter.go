package persona

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/prebunk/prebunk/internal/fanout"
	"github.com/prebunk/prebunk/internal/healthkb"
	"github.com/prebunk/prebunk/internal/llm"
	"github.com/prebunk/prebunk/internal/model"
)

var concernKeywords = []string{
	"worried", "scared", "confused", "unclear", "dangerous",
	"concerning", "troubling", "suspicious", "doubt", "uncertain",
	"risky", "harmful", "misleading", "false", "wrong",
}

var concernPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i (?:am|'m) (?:worried|concerned|scared) about (.+?)(?:\.|$)`),
	regexp.MustCompile(`(?:what|how) about (.+?)\?`),
	regexp.MustCompile(`(?:i|we) (?:don't|dont) (?:trust|believe) (.+?)(?:\.|$)`),
}

var misreadingIdioms = []string{
	"i thought", "i assumed", "sounds like", "seems like",
	"probably means", "i bet", "must be", "obviously",
}

// Absolutist terms showing up in a reaction are a proxy for
// over-generalized uptake of the message
var absolutistUptake = []string{
	"always", "never", "all", "none", "everyone", "no one",
	"completely", "totally", "entirely", "absolutely",
}

var emotionKeywords = map[string][]string{
	"fear":       {"afraid", "scared", "frightened", "terrified", "fearful"},
	"anger":      {"angry", "mad", "furious", "outraged", "irritated"},
	"confusion":  {"confused", "puzzled", "unclear", "lost", "bewildered"},
	"skepticism": {"doubt", "suspicious", "skeptical", "questioning", "unsure"},
	"relief":     {"relieved", "reassured", "comforted", "calmed"},
	"excitement": {"excited", "eager", "enthusiastic", "hopeful"},
	"anxiety":    {"anxious", "nervous", "worried", "stressed", "uneasy"},
}

// emotionOrder keeps emotional-reaction tags deterministic
var emotionOrder = []string{"fear", "anger", "confusion", "skepticism", "relief", "excitement", "anxiety"}

var highConcernTerms = []string{
	"dangerous", "risky", "harmful", "scared", "terrified",
	"wrong", "false", "misleading", "lies", "conspiracy",
}

var mediumConcernTerms = []string{
	"worried", "concerned", "unsure", "confused", "questioning",
	"doubt", "suspicious", "unclear", "confusing",
}

var lowConcernTerms = []string{
	"reassured", "confident", "clear", "helpful", "informative",
	"good", "useful", "makes sense",
}

var keyIssueTopics = []string{
	"side effects", "safety", "effectiveness", "dosage", "timing",
	"children", "elderly", "pregnancy", "allergies", "interactions",
	"long term", "short term", "natural", "artificial", "chemicals",
	"government", "pharmaceutical", "profit", "control", "freedom",
	"research", "studies", "evidence", "proof", "data",
}

// Interpreter fans a message out across all configured personas
type Interpreter struct {
	personas  []model.Persona
	completer llm.Completer
}

// NewInterpreter creates an interpreter over the given registry.
// completer must be non-nil for interpretation to do anything useful;
// with a nil completer every persona settles as failed.
func NewInterpreter(personas []model.Persona, completer llm.Completer) *Interpreter {
	return &Interpreter{personas: personas, completer: completer}
}

// Personas returns the configured registry
func (in *Interpreter) Personas() []model.Persona {
	return in.personas
}

// Interpret returns exactly one result per persona, in registry order
// regardless of completion order. A message with no recognized medical
// term short-circuits to an empty list to avoid pointless external
// calls. One persona's failure never suppresses the others: the failed
// slot carries concern level "unknown" and a failure-marker misreading.
func (in *Interpreter) Interpret(ctx context.Context, message string) []model.Interpretation {
	if !healthkb.ContainsMedicalTerm(message) {
		return []model.Interpretation{}
	}

	outcomes := fanout.Settle(ctx, len(in.personas), 0, func(ctx context.Context, i int) (string, error) {
		if in.completer == nil {
			return "", fmt.Errorf("no completion provider configured")
		}
		return in.completer.Complete(ctx, buildPersonaPrompt(in.personas[i], message))
	})

	results := make([]model.Interpretation, len(in.personas))
	for i, p := range in.personas {
		if outcomes[i].Err != nil {
			results[i] = failedInterpretation(p, outcomes[i].Err)
			continue
		}
		results[i] = deriveSignals(p, outcomes[i].Value)
	}
	return results
}

func buildPersonaPrompt(p model.Persona, message string) string {
	return fmt.Sprintf(`You are %s with the following characteristics:
- Demographics: %s
- Health literacy level: %s
- Core beliefs: %s
- Main concerns: %s

Read this health message and respond as %s:

"%s"

How would you interpret this message? What would you think, feel, or be
concerned about? What questions would you have? What might you
misunderstand or find unclear? Respond naturally, in first person, as
someone with your background and concerns. Stay in character.`,
		p.Name, p.Demographics, p.HealthLiteracy, p.Beliefs, p.Concerns, p.Name, message)
}

func failedInterpretation(p model.Persona, err error) model.Interpretation {
	return model.Interpretation{
		Persona:        p.Name,
		Demographics:   p.Demographics,
		HealthLiteracy: p.HealthLiteracy,
		Text:           fmt.Sprintf("error in interpretation: %v", err),
		Misreadings:    []string{"interpretation_failed"},
		ConcernLevel:   model.ConcernUnknown,
	}
}

// deriveSignals turns a free-form reaction into structured signals
func deriveSignals(p model.Persona, reaction string) model.Interpretation {
	return model.Interpretation{
		Persona:            p.Name,
		Demographics:       p.Demographics,
		HealthLiteracy:     p.HealthLiteracy,
		Text:               reaction,
		Misreadings:        append(extractConcerns(reaction), extractMisreadings(reaction)...),
		EmotionalReactions: extractEmotions(reaction),
		ConcernLevel:       assessConcernLevel(reaction),
		KeyIssues:          extractKeyIssues(reaction),
	}
}

func extractConcerns(reaction string) []string {
	lower := strings.ToLower(reaction)
	var concerns []string
	seen := make(map[string]bool)

	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			concerns = append(concerns, tag)
		}
	}

	for _, kw := range concernKeywords {
		if strings.Contains(lower, kw) {
			add(kw)
		}
	}

	for _, re := range concernPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			subject := strings.TrimSpace(m[1])
			if len(subject) > 3 {
				if len(subject) > 30 {
					subject = subject[:30]
				}
				add("concern_about_" + subject)
			}
		}
	}

	return concerns
}

func extractMisreadings(reaction string) []string {
	lower := strings.ToLower(reaction)
	var misreadings []string

	for _, idiom := range misreadingIdioms {
		if strings.Contains(lower, idiom) {
			misreadings = append(misreadings, "potential_misreading_"+strings.ReplaceAll(idiom, " ", "_"))
		}
	}

	for _, term := range absolutistUptake {
		if strings.Contains(" "+lower+" ", " "+term+" ") {
			misreadings = append(misreadings, "absolutist_thinking_"+strings.ReplaceAll(term, " ", "_"))
		}
	}

	return misreadings
}

func extractEmotions(reaction string) []string {
	lower := strings.ToLower(reaction)
	var emotions []string

	for _, emotion := range emotionOrder {
		for _, kw := range emotionKeywords[emotion] {
			if strings.Contains(lower, kw) {
				emotions = append(emotions, emotion)
				break
			}
		}
	}
	return emotions
}

// assessConcernLevel tiers the reaction by keyword counts: any high
// keyword wins outright, medium beats low on count, low needs at least
// one hit, otherwise no concern detected.
func assessConcernLevel(reaction string) model.ConcernLevel {
	lower := strings.ToLower(reaction)

	high := countHits(lower, highConcernTerms)
	medium := countHits(lower, mediumConcernTerms)
	low := countHits(lower, lowConcernTerms)

	switch {
	case high > 0:
		return model.ConcernHigh
	case medium > low:
		return model.ConcernMedium
	case low > 0:
		return model.ConcernLow
	default:
		return model.ConcernNone
	}
}

func extractKeyIssues(reaction string) []string {
	lower := strings.ToLower(reaction)
	var issues []string
	for _, topic := range keyIssueTopics {
		if strings.Contains(lower, topic) {
			issues = append(issues, strings.ReplaceAll(topic, " ", "_"))
		}
	}
	return issues
}

func countHits(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}

// AnalyzePatterns computes cross-persona signals from a completed
// interpretation set. Pure post-processing; no external calls.
func AnalyzePatterns(interpretations []model.Interpretation) *model.PatternAnalysis {
	if len(interpretations) == 0 {
		return nil
	}

	analysis := &model.PatternAnalysis{
		TotalPersonas:       len(interpretations),
		ConcernDistribution: make(map[model.ConcernLevel]int),
		EmotionalPatterns:   make(map[string]int),
	}

	misreadingCounts := make(map[string]int)
	issueCounts := make(map[string]int)

	for _, interp := range interpretations {
		analysis.ConcernDistribution[interp.ConcernLevel]++
		if interp.ConcernLevel == model.ConcernHigh {
			analysis.HighConcernPersonas = append(analysis.HighConcernPersonas, interp.Persona)
		}
		for _, m := range interp.Misreadings {
			misreadingCounts[m]++
		}
		for _, e := range interp.EmotionalReactions {
			analysis.EmotionalPatterns[e]++
		}
		for _, issue := range interp.KeyIssues {
			issueCounts[issue]++
		}
	}

	common := make(map[string]int)
	for m, n := range misreadingCounts {
		if n > 1 {
			common[m] = n
		}
	}
	if len(common) > 0 {
		analysis.CommonMisreadings = common
	}

	// Consensus: issues raised by at least half the personas, reported
	// in topic-list order for determinism
	half := (len(interpretations) + 1) / 2
	for _, topic := range keyIssueTopics {
		tag := strings.ReplaceAll(topic, " ", "_")
		if issueCounts[tag] >= half {
			analysis.ConsensusIssues = append(analysis.ConsensusIssues, tag)
		}
	}

	return analysis
}
