// Package healthkb holds the fixed medical vocabulary used across the
// pipeline: entity tables, specialty keywords, and language markers.
// Everything here is static configuration; nothing is mutated at runtime.
package healthkb

import "strings"

// Entities maps entity categories to recognized medical terms
var Entities = map[string][]string{
	"conditions": {"RSV", "naloxone", "COVID-19", "influenza", "diabetes", "hypertension", "asthma", "arthritis"},
	"treatments": {"vaccine", "vaccination", "medication", "therapy", "surgery", "immunization", "antibiotic", "insulin"},
	"organizations": {"WHO", "CDC", "FDA", "Cochrane", "NIH", "Mayo Clinic", "WebMD"},
	"risk_phrases": {"always", "never", "guaranteed", "100% effective", "completely safe", "no side effects", "instant cure"},
	"uncertainty_markers": {"usually", "often", "typically", "most people", "generally", "may", "might", "could"},
}

// Specialties maps medical specialties to their topic keywords
var Specialties = map[string][]string{
	"cardiology":         {"heart", "cardiac", "cardiovascular", "blood pressure", "cholesterol"},
	"oncology":           {"cancer", "tumor", "chemotherapy", "radiation", "metastasis"},
	"immunology":         {"vaccine", "immunity", "allergic", "autoimmune", "antibody"},
	"infectious_disease": {"virus", "bacteria", "infection", "contagious", "outbreak"},
	"pediatrics":         {"children", "infant", "adolescent", "growth", "development"},
}

// AbsolutistMarkers are terms whose presence flags absolutist language
var AbsolutistMarkers = []string{"always", "never", "100%", "guaranteed", "completely", "totally", "absolutely"}

// MedicalKeywords are generic health terms used for evidence-source matching
var MedicalKeywords = []string{
	"vaccine", "vaccination", "immunization", "medication", "treatment",
	"therapy", "disease", "infection", "symptoms", "side effects",
	"dosage", "safety", "efficacy", "effectiveness", "prevention",
}

// ContainsMedicalTerm reports whether the text mentions any recognized
// medical term. Used as the gate for LLM-backed analysis stages.
func ContainsMedicalTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, terms := range Entities {
		for _, term := range terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				return true
			}
		}
	}
	return false
}

// ExtractEntities returns the medical-entity mentions found in the text,
// flattened across categories, in table order
func ExtractEntities(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, category := range []string{"conditions", "treatments", "organizations"} {
		for _, term := range Entities[category] {
			if strings.Contains(lower, strings.ToLower(term)) {
				found = append(found, term)
			}
		}
	}
	return found
}

// IsAbsolutist reports whether the text contains absolutist language
func IsAbsolutist(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range AbsolutistMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
