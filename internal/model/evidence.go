package model

// Source represents a trusted health information source
type Source struct {
	Name         string     `json:"name"`
	URLPattern   string     `json:"url_pattern"`           // Domain the source publishes under
	Authority    float64    `json:"authority_score"`       // 0-1, fixed per source, never mutated
	Specialties  []string   `json:"specialties"`           // Topic areas the source covers
	Type         SourceType `json:"source_type"`
	Description  string     `json:"description"`
	ContentTypes []string   `json:"content_types"`         // What the source typically publishes
	Limitations  []string   `json:"limitations,omitempty"` // Known coverage limitations
}

// SourceType classifies the kind of organization behind a source
type SourceType string

const (
	SourceGovernment   SourceType = "government"
	SourceAcademic     SourceType = "academic"
	SourceMedical      SourceType = "medical_institution"
	SourceResearch     SourceType = "research_organization"
	SourceProfessional SourceType = "professional_society"
)

// AuthorityLevel buckets an authority score into a named level
type AuthorityLevel string

const (
	AuthorityVeryHigh AuthorityLevel = "very_high" // score >= 0.9
	AuthorityHigh     AuthorityLevel = "high"      // score >= 0.8
	AuthorityMedium   AuthorityLevel = "medium"    // score >= 0.7
	AuthorityLow      AuthorityLevel = "low"       // score >= 0.5
	AuthorityVeryLow  AuthorityLevel = "very_low"
)

// AuthorityLevelOf converts an authority score into its level
func AuthorityLevelOf(score float64) AuthorityLevel {
	switch {
	case score >= 0.9:
		return AuthorityVeryHigh
	case score >= 0.8:
		return AuthorityHigh
	case score >= 0.7:
		return AuthorityMedium
	case score >= 0.5:
		return AuthorityLow
	default:
		return AuthorityVeryLow
	}
}

// CoverageLevel classifies how well matched sources cover a claim
type CoverageLevel string

const (
	CoverageExcellent CoverageLevel = "excellent"
	CoverageGood      CoverageLevel = "good"
	CoverageAdequate  CoverageLevel = "adequate"
	CoverageLimited   CoverageLevel = "limited"
	CoverageNone      CoverageLevel = "none"
)

// ValidationStatus is the evidentiary verdict for a claim
type ValidationStatus string

const (
	StatusWellSupported        ValidationStatus = "well_supported"
	StatusModeratelySupported  ValidationStatus = "moderately_supported"
	StatusLimitedSupport       ValidationStatus = "limited_support"
	StatusInsufficientEvidence ValidationStatus = "insufficient_evidence"
)

// SourceMatch is one matched source inside a validation result
type SourceMatch struct {
	Name      string     `json:"name"`
	Authority float64    `json:"authority_score"`
	Type      SourceType `json:"source_type"`
}

// ValidationResult contains the evidence verdict for a single claim
type ValidationResult struct {
	ClaimID   string `json:"claim_id"`
	ClaimText string `json:"claim_text"`

	Sources          []SourceMatch `json:"sources"` // Descending by authority score
	SourceCount      int           `json:"source_count"`
	HighestAuthority float64       `json:"highest_authority"`
	AverageAuthority float64       `json:"average_authority"`

	Confidence float64          `json:"confidence_score"` // 0-1
	Coverage   CoverageLevel    `json:"coverage_level"`
	Status     ValidationStatus `json:"validation_status"`

	Narrative     string `json:"narrative,omitempty"`      // Optional LLM assessment, never affects the verdict
	FailureReason string `json:"failure_reason,omitempty"` // Set when the lookup itself failed
}
