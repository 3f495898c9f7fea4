package evidence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prebunk/prebunk/internal/model"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestValidate_VaccinationTopic(t *testing.T) {
	matcher := NewMatcher(NewRegistry(DefaultSources()), nil)

	result := matcher.ValidateText(context.Background(), "c1",
		"WHO says vaccination prevents measles", "vaccination")

	if result.SourceCount < 2 {
		t.Fatalf("Expected multiple sources for a vaccination claim, got %d", result.SourceCount)
	}

	// Highest-authority source first; WHO leads on the 0.95 tie by
	// registry order
	if !strings.Contains(result.Sources[0].Name, "World Health Organization") {
		t.Errorf("Expected WHO as top source, got %s", result.Sources[0].Name)
	}
	if result.HighestAuthority != 0.95 {
		t.Errorf("Expected highest authority 0.95, got %v", result.HighestAuthority)
	}
	if result.Status != model.StatusWellSupported {
		t.Errorf("Expected well_supported, got %s", result.Status)
	}
	if result.Coverage != model.CoverageExcellent {
		t.Errorf("Expected excellent coverage, got %s", result.Coverage)
	}
}

func TestValidate_NoRelevantSources(t *testing.T) {
	matcher := NewMatcher(NewRegistry(DefaultSources()), nil)

	result := matcher.ValidateText(context.Background(), "c1",
		"The weather is nice today", "")

	if result.SourceCount != 0 {
		t.Errorf("Expected no sources, got %d", result.SourceCount)
	}
	if result.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", result.Confidence)
	}
	if result.Status != model.StatusInsufficientEvidence {
		t.Errorf("Expected insufficient_evidence, got %s", result.Status)
	}
	if result.Coverage != model.CoverageNone {
		t.Errorf("Expected no coverage, got %s", result.Coverage)
	}
}

func TestValidate_ConfidenceMonotonicInSources(t *testing.T) {
	one := NewRegistry([]model.Source{
		{Name: "Sleep Society", Authority: 0.6, Specialties: []string{"sleep hygiene"}, Type: model.SourceProfessional},
	})
	two := NewRegistry([]model.Source{
		{Name: "Sleep Society", Authority: 0.6, Specialties: []string{"sleep hygiene"}, Type: model.SourceProfessional},
		{Name: "Sleep Institute", Authority: 0.95, Specialties: []string{"sleep hygiene"}, Type: model.SourceResearch},
	})

	claim := "Better sleep hygiene improves recovery"
	first := NewMatcher(one, nil).ValidateText(context.Background(), "c1", claim, "")
	second := NewMatcher(two, nil).ValidateText(context.Background(), "c1", claim, "")

	if second.Confidence < first.Confidence {
		t.Errorf("Adding a high-authority source lowered confidence: %v -> %v",
			first.Confidence, second.Confidence)
	}
}

func TestValidate_NarrativeNeverChangesVerdict(t *testing.T) {
	registry := NewRegistry(DefaultSources())
	claim := "WHO says vaccination prevents measles"

	plain := NewMatcher(registry, nil).ValidateText(context.Background(), "c1", claim, "vaccination")
	withNarrative := NewMatcher(registry, &stubCompleter{response: "Strong institutional support."}).
		ValidateText(context.Background(), "c1", claim, "vaccination")
	failedNarrative := NewMatcher(registry, &stubCompleter{err: errors.New("down")}).
		ValidateText(context.Background(), "c1", claim, "vaccination")

	if withNarrative.Narrative == "" {
		t.Error("Expected narrative from working completer")
	}
	if failedNarrative.Narrative != "" {
		t.Error("Expected empty narrative after completer failure")
	}

	for _, r := range []model.ValidationResult{withNarrative, failedNarrative} {
		if r.Status != plain.Status || r.Confidence != plain.Confidence || r.SourceCount != plain.SourceCount {
			t.Error("Narrative generation must not change the numeric verdict")
		}
	}
}

func TestValidationStatus_CutPoints(t *testing.T) {
	cases := []struct {
		confidence  float64
		sourceCount int
		want        model.ValidationStatus
	}{
		{0.85, 2, model.StatusWellSupported},
		{0.85, 1, model.StatusModeratelySupported}, // High confidence but single source
		{0.6, 1, model.StatusModeratelySupported},
		{0.59, 1, model.StatusLimitedSupport},
		{0.3, 0, model.StatusLimitedSupport},
		{0.29, 0, model.StatusInsufficientEvidence},
	}

	for _, tc := range cases {
		if got := validationStatus(tc.confidence, tc.sourceCount); got != tc.want {
			t.Errorf("validationStatus(%v, %d) = %s, want %s",
				tc.confidence, tc.sourceCount, got, tc.want)
		}
	}
}

func TestCoverageLevel(t *testing.T) {
	src := func(authority float64) model.Source {
		return model.Source{Authority: authority}
	}

	cases := []struct {
		name    string
		sources []model.Source
		want    model.CoverageLevel
	}{
		{"none", nil, model.CoverageNone},
		{"excellent", []model.Source{src(0.95), src(0.85), src(0.8)}, model.CoverageExcellent},
		{"good", []model.Source{src(0.85), src(0.8)}, model.CoverageGood},
		{"adequate", []model.Source{src(0.85)}, model.CoverageAdequate},
		{"limited", []model.Source{src(0.6)}, model.CoverageLimited},
	}

	for _, tc := range cases {
		if got := coverageLevel(tc.sources); got != tc.want {
			t.Errorf("%s: coverageLevel = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestFailedValidation(t *testing.T) {
	result := FailedValidation("c1", "some claim", errors.New("lookup exploded"))

	if result.SourceCount != 0 || len(result.Sources) != 0 {
		t.Error("Expected zero sources in failure placeholder")
	}
	if result.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", result.Confidence)
	}
	if result.Status != model.StatusInsufficientEvidence {
		t.Errorf("Expected insufficient_evidence, got %s", result.Status)
	}
	if result.FailureReason != "lookup exploded" {
		t.Errorf("Expected failure reason, got %q", result.FailureReason)
	}
}

func TestSpecificity(t *testing.T) {
	vague := specificity("It usually helps some people, they say.")
	specific := specificity("A clinical trial of 500 patients showed 40 percent effective daily doses.")

	if specific <= vague {
		t.Errorf("Expected concrete claim to score higher: specific=%v vague=%v", specific, vague)
	}
	if vague != 0 {
		t.Errorf("Expected vague-only claim to floor at 0, got %v", vague)
	}
}
