package extract

import "testing"

func TestParseCompletion_ExplicitClaims(t *testing.T) {
	text := `Here are the claims I found:
- CLAIM: Vitamin C prevents the common cold
- CLAIM: Zinc shortens illness duration
Some trailing commentary.`

	claims := ParseCompletion(text)
	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if claims[0].Text != "Vitamin C prevents the common cold" {
		t.Errorf("Unexpected claim text: %q", claims[0].Text)
	}
	if claims[0].Confidence != defaultParsedConfidence {
		t.Errorf("Expected default confidence %v, got %v", defaultParsedConfidence, claims[0].Confidence)
	}
	if claims[0].Implies != "" {
		t.Errorf("Explicit claim should have no implication, got %q", claims[0].Implies)
	}
}

func TestParseCompletion_ImplicitBlock(t *testing.T) {
	text := `IMPLICIT CLAIM: Everyone needs this supplement
IMPLIES: the supplement is universally beneficial
CONFIDENCE: 0.9`

	claims := ParseCompletion(text)
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	c := claims[0]
	if c.Text != "Everyone needs this supplement" {
		t.Errorf("Unexpected text: %q", c.Text)
	}
	if c.Implies != "the supplement is universally beneficial" {
		t.Errorf("Unexpected implication: %q", c.Implies)
	}
	if c.Confidence != 0.9 {
		t.Errorf("Expected confidence 0.9, got %v", c.Confidence)
	}
}

func TestParseCompletion_InvalidConfidenceKeepsDefault(t *testing.T) {
	text := `CLAIM: Something factual
CONFIDENCE: 5.0`

	claims := ParseCompletion(text)
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Confidence != defaultParsedConfidence {
		t.Errorf("Out-of-range confidence should keep default, got %v", claims[0].Confidence)
	}
}

func TestParseCompletion_Garbage(t *testing.T) {
	if claims := ParseCompletion("no structure here\njust prose\n"); len(claims) != 0 {
		t.Errorf("Expected no claims from garbage, got %d", len(claims))
	}
}

func TestParseCompletion_OrphanFieldsIgnored(t *testing.T) {
	// IMPLIES/CONFIDENCE before any claim line have nothing to attach to
	text := `IMPLIES: dangling implication
CONFIDENCE: 0.8
CLAIM: A real claim at last`

	claims := ParseCompletion(text)
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Implies != "" {
		t.Errorf("Orphan IMPLIES should be dropped, got %q", claims[0].Implies)
	}
	if claims[0].Confidence != defaultParsedConfidence {
		t.Errorf("Orphan CONFIDENCE should be dropped, got %v", claims[0].Confidence)
	}
}

func TestParseCompletion_CaseInsensitivePrefixes(t *testing.T) {
	claims := ParseCompletion("claim: lowercase prefix works")
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Text != "lowercase prefix works" {
		t.Errorf("Unexpected text: %q", claims[0].Text)
	}
}
