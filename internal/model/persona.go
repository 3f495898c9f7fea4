package model

// Persona is a fixed audience archetype used to simulate reader reactions
type Persona struct {
	Name           string         `json:"name"`
	Demographics   string         `json:"demographics"`
	HealthLiteracy HealthLiteracy `json:"health_literacy"`
	Beliefs        string         `json:"beliefs"`
	Concerns       string         `json:"concerns"`
}

// HealthLiteracy is an ordinal literacy level
type HealthLiteracy string

const (
	LiteracyLow      HealthLiteracy = "low"
	LiteracyMedium   HealthLiteracy = "medium"
	LiteracyHigh     HealthLiteracy = "high"
	LiteracyVeryHigh HealthLiteracy = "very_high"
)

// ConcernLevel classifies how alarmed a persona's reaction reads
type ConcernLevel string

const (
	ConcernNone    ConcernLevel = "none"
	ConcernLow     ConcernLevel = "low"
	ConcernMedium  ConcernLevel = "medium"
	ConcernHigh    ConcernLevel = "high"
	ConcernUnknown ConcernLevel = "unknown" // Interpretation failed for this persona
)

// Interpretation is one persona's simulated reading of a message
type Interpretation struct {
	Persona        string         `json:"persona"`
	Demographics   string         `json:"demographics"`
	HealthLiteracy HealthLiteracy `json:"health_literacy"`

	Text               string       `json:"interpretation"` // Free-form first-person reaction
	Misreadings        []string     `json:"potential_misreadings,omitempty"`
	EmotionalReactions []string     `json:"emotional_reactions,omitempty"`
	ConcernLevel       ConcernLevel `json:"concern_level"`
	KeyIssues          []string     `json:"key_issues,omitempty"`
}

// PatternAnalysis summarizes signals across all persona interpretations
type PatternAnalysis struct {
	TotalPersonas       int                  `json:"total_personas"`
	ConcernDistribution map[ConcernLevel]int `json:"concern_distribution"`
	HighConcernPersonas []string             `json:"high_concern_personas,omitempty"`
	CommonMisreadings   map[string]int       `json:"common_misreadings,omitempty"` // Shared by more than one persona
	EmotionalPatterns   map[string]int       `json:"emotional_patterns,omitempty"`
	ConsensusIssues     []string             `json:"consensus_issues,omitempty"` // Raised by at least half the personas
}
