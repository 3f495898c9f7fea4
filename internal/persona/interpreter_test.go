package persona

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prebunk/prebunk/internal/model"
)

type stubCompleter struct {
	respond func(prompt string) (string, error)
	calls   int
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.respond(prompt)
}

func TestInterpret_AllPersonas(t *testing.T) {
	stub := &stubCompleter{respond: func(prompt string) (string, error) {
		return "I am worried about the side effects of this for my family.", nil
	}}
	interpreter := NewInterpreter(DefaultPersonas(), stub)

	results := interpreter.Interpret(context.Background(), "This vaccine is completely safe.")
	personas := DefaultPersonas()
	if len(results) != len(personas) {
		t.Fatalf("Expected %d interpretations, got %d", len(personas), len(results))
	}

	// Registry order must survive concurrent completion
	for i, r := range results {
		if r.Persona != personas[i].Name {
			t.Errorf("Position %d: expected %s, got %s", i, personas[i].Name, r.Persona)
		}
	}

	for _, r := range results {
		if r.ConcernLevel != model.ConcernMedium {
			t.Errorf("%s: expected medium concern, got %s", r.Persona, r.ConcernLevel)
		}
		foundIssue := false
		for _, issue := range r.KeyIssues {
			if issue == "side_effects" {
				foundIssue = true
			}
		}
		if !foundIssue {
			t.Errorf("%s: expected side_effects key issue, got %v", r.Persona, r.KeyIssues)
		}
	}
}

func TestInterpret_OneFailureDoesNotSuppressOthers(t *testing.T) {
	stub := &stubCompleter{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "TrustingElder") {
			return "", errors.New("provider timeout")
		}
		return "This seems clear and helpful to me.", nil
	}}
	interpreter := NewInterpreter(DefaultPersonas(), stub)

	results := interpreter.Interpret(context.Background(), "The new vaccine schedule starts in June.")
	if len(results) != 4 {
		t.Fatalf("Expected 4 interpretations, got %d", len(results))
	}

	for _, r := range results {
		if r.Persona == "TrustingElder" {
			if r.ConcernLevel != model.ConcernUnknown {
				t.Errorf("Failed persona: expected unknown concern, got %s", r.ConcernLevel)
			}
			foundMarker := false
			for _, m := range r.Misreadings {
				if m == "interpretation_failed" {
					foundMarker = true
				}
			}
			if !foundMarker {
				t.Errorf("Failed persona: expected failure marker, got %v", r.Misreadings)
			}
			continue
		}
		if r.ConcernLevel == model.ConcernUnknown {
			t.Errorf("%s: should not be affected by another persona's failure", r.Persona)
		}
	}
}

func TestInterpret_NonMedicalShortCircuit(t *testing.T) {
	stub := &stubCompleter{respond: func(prompt string) (string, error) {
		return "should not be called", nil
	}}
	interpreter := NewInterpreter(DefaultPersonas(), stub)

	results := interpreter.Interpret(context.Background(), "The weather is nice today.")
	if len(results) != 0 {
		t.Errorf("Expected no interpretations for non-medical text, got %d", len(results))
	}
	if stub.calls != 0 {
		t.Errorf("Expected no completions, got %d", stub.calls)
	}
}

func TestInterpret_NilCompleter(t *testing.T) {
	interpreter := NewInterpreter(DefaultPersonas(), nil)

	results := interpreter.Interpret(context.Background(), "Vaccination opens next week.")
	if len(results) != 4 {
		t.Fatalf("Expected 4 interpretations, got %d", len(results))
	}
	for _, r := range results {
		if r.ConcernLevel != model.ConcernUnknown {
			t.Errorf("%s: expected unknown concern without a completer, got %s", r.Persona, r.ConcernLevel)
		}
	}
}

func TestDeriveSignals_ConcernLevels(t *testing.T) {
	cases := []struct {
		reaction string
		want     model.ConcernLevel
	}{
		{"This is dangerous and misleading.", model.ConcernHigh},
		{"I am worried and a bit confused by this.", model.ConcernMedium},
		{"That is clear and helpful, I feel reassured.", model.ConcernLow},
		{"Interesting announcement.", model.ConcernNone},
	}

	for _, tc := range cases {
		if got := assessConcernLevel(tc.reaction); got != tc.want {
			t.Errorf("assessConcernLevel(%q) = %s, want %s", tc.reaction, got, tc.want)
		}
	}
}

func TestDeriveSignals_Misreadings(t *testing.T) {
	interp := deriveSignals(DefaultPersonas()[0],
		"I thought this means it never causes problems, obviously.")

	foundIdiom := false
	foundAbsolutist := false
	for _, m := range interp.Misreadings {
		if m == "potential_misreading_i_thought" {
			foundIdiom = true
		}
		if m == "absolutist_thinking_never" {
			foundAbsolutist = true
		}
	}
	if !foundIdiom {
		t.Errorf("Expected misreading idiom tag, got %v", interp.Misreadings)
	}
	if !foundAbsolutist {
		t.Errorf("Expected absolutist uptake tag, got %v", interp.Misreadings)
	}
}

func TestAnalyzePatterns(t *testing.T) {
	interps := []model.Interpretation{
		{Persona: "A", ConcernLevel: model.ConcernHigh, Misreadings: []string{"absolutist_thinking_always"}, KeyIssues: []string{"safety"}},
		{Persona: "B", ConcernLevel: model.ConcernHigh, Misreadings: []string{"absolutist_thinking_always"}, KeyIssues: []string{"safety"}},
		{Persona: "C", ConcernLevel: model.ConcernMedium, KeyIssues: []string{"safety"}, EmotionalReactions: []string{"fear"}},
		{Persona: "D", ConcernLevel: model.ConcernNone},
	}

	analysis := AnalyzePatterns(interps)
	if analysis == nil {
		t.Fatal("Expected analysis, got nil")
	}
	if analysis.TotalPersonas != 4 {
		t.Errorf("Expected 4 personas, got %d", analysis.TotalPersonas)
	}
	if analysis.ConcernDistribution[model.ConcernHigh] != 2 {
		t.Errorf("Expected 2 high-concern personas, got %d", analysis.ConcernDistribution[model.ConcernHigh])
	}
	if len(analysis.HighConcernPersonas) != 2 {
		t.Errorf("Expected 2 named high-concern personas, got %v", analysis.HighConcernPersonas)
	}
	if analysis.CommonMisreadings["absolutist_thinking_always"] != 2 {
		t.Errorf("Expected shared misreading count 2, got %v", analysis.CommonMisreadings)
	}

	foundConsensus := false
	for _, issue := range analysis.ConsensusIssues {
		if issue == "safety" {
			foundConsensus = true
		}
	}
	if !foundConsensus {
		t.Errorf("Expected 'safety' consensus issue, got %v", analysis.ConsensusIssues)
	}
	if analysis.EmotionalPatterns["fear"] != 1 {
		t.Errorf("Expected fear count 1, got %v", analysis.EmotionalPatterns)
	}
}

func TestAnalyzePatterns_Empty(t *testing.T) {
	if got := AnalyzePatterns(nil); got != nil {
		t.Errorf("Expected nil analysis for empty input, got %+v", got)
	}
}
