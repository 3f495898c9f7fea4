package model

// Claim represents a factual health assertion extracted from a message
type Claim struct {
	ID         string    `json:"id"`                  // Stable identifier assigned at extraction
	Text       string    `json:"text"`                // The claim sentence itself
	Type       ClaimType `json:"type"`                // Classified claim type
	Heuristic  string    `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "pattern:efficacy")
	Confidence float64   `json:"confidence"`          // Extraction confidence (0-1)

	Absolutist      bool     `json:"absolutist_language"`        // Contains absolutist markers (always, never, 100%, ...)
	MedicalEntities []string `json:"medical_entities,omitempty"` // Recognized medical-entity mentions

	BaseRisk float64 `json:"base_risk_score"` // Derived base risk (0-1)
}

// ClaimType categorizes the nature of a health claim
type ClaimType string

const (
	ClaimTypeEfficacy    ClaimType = "efficacy"    // How well a treatment works
	ClaimTypeSafety      ClaimType = "safety"      // Side effects and risks
	ClaimTypeDosage      ClaimType = "dosage"      // Amount and frequency
	ClaimTypeTiming      ClaimType = "timing"      // When to use a treatment
	ClaimTypeComparison  ClaimType = "comparison"  // Comparing treatments
	ClaimTypeCausation   ClaimType = "causation"   // What causes what
	ClaimTypeImplication ClaimType = "implication" // Implicit claims and assumptions
)

// RiskTier classifies a combined risk score
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// RiskAssessment holds the full scoring breakdown for one claim
type RiskAssessment struct {
	ClaimID        string              `json:"claim_id"`
	ClaimText      string              `json:"claim_text"`
	BaseScore      float64             `json:"base_score"`
	PatternScore   float64             `json:"pattern_score"`
	TypeAdjustment float64             `json:"type_adjustment"`
	CombinedScore  float64             `json:"combined_score"`
	Tier           RiskTier            `json:"risk_tier"`
	Confidence     float64             `json:"assessment_confidence"`  // Confidence in the assessment itself
	RiskFactors    map[string][]string `json:"risk_factors,omitempty"` // Factor category -> literal matched substrings
}
