package model

import "time"

// PipelineStatus is the terminal state of one pipeline run
type PipelineStatus string

const (
	PipelineCompleted PipelineStatus = "completed"
	PipelineNoClaims  PipelineStatus = "completed_no_claims"
	PipelineError     PipelineStatus = "error" // The only status callers should treat as "did not complete"
)

// OverallRisk classifies the whole message
type OverallRisk string

const (
	RiskLow    OverallRisk = "low_risk"
	RiskMedium OverallRisk = "medium_risk"
	RiskHigh   OverallRisk = "high_risk"
)

// Urgency tags a priority action
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyHigh      Urgency = "high"
	UrgencyModerate  Urgency = "moderate"
)

// SummaryStats are the counting/averaging statistics the report is built from
type SummaryStats struct {
	TotalClaims          int     `json:"total_claims"`
	HighRiskClaims       int     `json:"high_risk_claims"`
	MediumRiskClaims     int     `json:"medium_risk_claims"`
	LowRiskClaims        int     `json:"low_risk_claims"`
	AverageRisk          float64 `json:"average_risk_score"`
	MaxRisk              float64 `json:"max_risk_score"`
	EvidenceCoverageRate float64 `json:"evidence_coverage_rate"` // 1.0 when there are no claims
	ConcernedPersonas    int     `json:"personas_with_concerns"` // Personas at medium or high concern
}

// PriorityAction is one prioritized remediation step tied to a claim
type PriorityAction struct {
	Priority         int     `json:"priority"` // 1 = most urgent
	Urgency          Urgency `json:"urgency"`
	ClaimID          string  `json:"claim_id"`
	ClaimText        string  `json:"claim_text"`
	Action           string  `json:"action"`
	CountermeasureID string  `json:"countermeasure_id,omitempty"`
}

// RiskReport is the terminal artifact of a pipeline run
type RiskReport struct {
	OverallRisk     OverallRisk      `json:"overall_risk_assessment"`
	Stats           SummaryStats     `json:"summary_statistics"`
	KeyFindings     []string         `json:"key_findings"`
	Recommendations []string         `json:"recommendations"`
	PriorityActions []PriorityAction `json:"priority_actions"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// CountermeasureRef records that a countermeasure exists for a claim.
// Generation happens in an external collaborator; only the identifier
// is carried here.
type CountermeasureRef struct {
	ClaimID          string `json:"claim_id"`
	CountermeasureID string `json:"countermeasure_id"`
}

// Result is the complete output of one pipeline run. Callers always
// receive a fully shaped Result, never a partial one.
type Result struct {
	Message     string         `json:"original_message"`
	ProcessedAt time.Time      `json:"processed_at"`
	Status      PipelineStatus `json:"pipeline_status"`
	Error       string         `json:"error_message,omitempty"`

	Claims          []Claim             `json:"claims"`
	RiskAssessments []RiskAssessment    `json:"risk_assessments"`
	Interpretations []Interpretation    `json:"persona_interpretations"`
	PatternAnalysis *PatternAnalysis    `json:"interpretation_patterns,omitempty"`
	Validations     []ValidationResult  `json:"evidence_validations"`
	Countermeasures []CountermeasureRef `json:"countermeasures,omitempty"`
	Report          *RiskReport         `json:"risk_report,omitempty"`

	Elapsed time.Duration `json:"processing_time_ns"`
}
