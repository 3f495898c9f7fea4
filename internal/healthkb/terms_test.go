package healthkb

import "testing"

func TestContainsMedicalTerm(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Vaccines are safe for children.", true},
		{"The CDC recommends annual flu shots.", true},
		{"This treatment is guaranteed to work.", true}, // Risk phrase counts
		{"The weather is nice today.", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ContainsMedicalTerm(tc.text); got != tc.want {
			t.Errorf("ContainsMedicalTerm(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("The WHO says vaccination prevents influenza.")

	if len(entities) == 0 {
		t.Fatal("Expected entities, got none")
	}

	// Conditions come before treatments, then organizations
	want := map[string]bool{"influenza": true, "vaccination": true, "WHO": true}
	for _, e := range entities {
		delete(want, e)
	}
	if len(want) > 0 {
		t.Errorf("Missing expected entities: %v (got %v)", want, entities)
	}
	if entities[0] != "influenza" {
		t.Errorf("Expected conditions first, got %q", entities[0])
	}
}

func TestExtractEntities_NoMatches(t *testing.T) {
	if got := ExtractEntities("Nothing relevant here."); len(got) != 0 {
		t.Errorf("Expected no entities, got %v", got)
	}
}

func TestIsAbsolutist(t *testing.T) {
	if !IsAbsolutist("This cure is 100% effective.") {
		t.Error("Expected absolutist language to be detected")
	}
	if !IsAbsolutist("It never fails.") {
		t.Error("Expected 'never' to be detected")
	}
	if IsAbsolutist("This may help some people.") {
		t.Error("Expected hedged language to pass")
	}
}
