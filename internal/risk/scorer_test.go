package risk

import (
	"math"
	"reflect"
	"testing"

	"github.com/prebunk/prebunk/internal/model"
)

func TestTierOf_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  model.RiskTier
	}{
		{0.0, model.TierLow},
		{0.39, model.TierLow},
		{0.4, model.TierMedium}, // Boundary is inclusive
		{0.69, model.TierMedium},
		{0.7, model.TierHigh}, // Boundary is inclusive
		{1.0, model.TierHigh},
	}

	for _, tc := range cases {
		if got := TierOf(tc.score); got != tc.want {
			t.Errorf("TierOf(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestBaseScore(t *testing.T) {
	empty := model.Claim{Text: "something mild", Type: model.ClaimTypeTiming}
	if got := BaseScore(empty); got != 0 {
		t.Errorf("Expected 0 base score for plain timing claim, got %v", got)
	}

	loaded := model.Claim{
		Text:            "Vaccines are always safe",
		Type:            model.ClaimTypeSafety,
		Absolutist:      true,
		MedicalEntities: []string{"vaccine"},
	}
	want := 0.5 + 0.1 + 0.2
	if got := BaseScore(loaded); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected base score %v, got %v", want, got)
	}
}

func TestScore_Bounded(t *testing.T) {
	scorer := NewScorer()

	c := model.Claim{
		ID:              "c1",
		Text:            "Doctors say this miracle cure is 100% guaranteed, completely safe with no side effects.",
		Type:            model.ClaimTypeSafety,
		Absolutist:      true,
		MedicalEntities: []string{"vaccine"},
	}
	c.BaseRisk = BaseScore(c)

	a := scorer.Score(c)
	if a.CombinedScore < 0 || a.CombinedScore > 1 {
		t.Errorf("Combined score out of bounds: %v", a.CombinedScore)
	}
	if a.PatternScore != 1.0 {
		t.Errorf("Expected pattern score clamped to 1.0, got %v", a.PatternScore)
	}
	if a.Tier != model.TierHigh {
		t.Errorf("Expected high tier, got %s", a.Tier)
	}
	if a.Confidence < 0.2 || a.Confidence > 1.0 {
		t.Errorf("Assessment confidence out of bounds: %v", a.Confidence)
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer()

	c := model.Claim{
		ID:              "c1",
		Text:            "Vaccines are 100% safe and completely effective for everyone.",
		Type:            model.ClaimTypeEfficacy,
		Heuristic:       "pattern:absolutist",
		Absolutist:      true,
		MedicalEntities: []string{"vaccine"},
	}
	c.BaseRisk = BaseScore(c)

	first := scorer.Score(c)
	second := scorer.Score(c)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical assessments for identical input")
	}
}

func TestScore_AbsolutistVaccineClaim(t *testing.T) {
	scorer := NewScorer()

	c := model.Claim{
		ID:              "c1",
		Text:            "Vaccines are 100% safe and completely effective for everyone.",
		Type:            model.ClaimTypeEfficacy,
		Heuristic:       "pattern:absolutist",
		Absolutist:      true,
		MedicalEntities: []string{"vaccine"},
	}
	c.BaseRisk = BaseScore(c)

	a := scorer.Score(c)

	// base 0.8, pattern 0.4 (100% phrase + medical term), efficacy +0.15
	want := 0.6*0.8 + 0.4*0.4 + 0.15
	if math.Abs(a.CombinedScore-want) > 1e-9 {
		t.Errorf("Expected combined score %v, got %v", want, a.CombinedScore)
	}
	if a.CombinedScore < HighRiskThreshold {
		t.Errorf("Expected combined score at or above %v, got %v", HighRiskThreshold, a.CombinedScore)
	}
	if a.Tier != model.TierHigh {
		t.Errorf("Expected high tier, got %s", a.Tier)
	}
}

func TestPatternScore_NegativeClampsToZero(t *testing.T) {
	scorer := NewScorer()

	// Two hedging phrases outweigh the generic medical-term bump
	if got := scorer.PatternScore("Exercise may help; consult your doctor first."); got != 0 {
		t.Errorf("Expected pattern score clamped to 0, got %v", got)
	}
}

func TestExplain(t *testing.T) {
	scorer := NewScorer()

	c := model.Claim{
		Text: "Doctors say it is 100% guaranteed to work.",
		Type: model.ClaimTypeEfficacy,
	}

	factors := scorer.Explain(c)

	if len(factors["high_risk_language"]) == 0 {
		t.Error("Expected high_risk_language factors")
	}
	if len(factors["ambiguous_terms"]) == 0 {
		t.Error("Expected ambiguous_terms factors ('it')")
	}
	if len(factors["authority_appeals"]) == 0 {
		t.Error("Expected authority_appeals factors ('doctors say')")
	}
}

func TestExplain_MissingQualifiers(t *testing.T) {
	scorer := NewScorer()

	unqualified := scorer.Explain(model.Claim{Text: "This vaccine is safe and effective."})
	if len(unqualified["missing_qualifiers"]) == 0 {
		t.Error("Expected missing_qualifiers for unhedged efficacy statement")
	}

	qualified := scorer.Explain(model.Claim{Text: "This vaccine may be effective for most."})
	if len(qualified["missing_qualifiers"]) != 0 {
		t.Error("Expected no missing_qualifiers when hedged")
	}
}
