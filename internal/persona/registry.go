// Package persona simulates how different audience archetypes read a
// health message and extracts structured concern signals from each
// simulated reaction.
package persona

import "github.com/prebunk/prebunk/internal/model"

// DefaultPersonas returns the standard audience archetypes. The slice
// order is the registry order; fan-out results preserve it.
func DefaultPersonas() []model.Persona {
	return []model.Persona{
		{
			Name:           "SkepticalParent",
			Demographics:   "Parent, 35-45, some college education, suburban",
			HealthLiteracy: model.LiteracyMedium,
			Beliefs:        "Questions medical authority, prefers natural solutions, researches everything online",
			Concerns:       "Child safety, long-term effects of treatments, government/pharmaceutical overreach, wants 'natural' alternatives",
		},
		{
			Name:           "HealthAnxious",
			Demographics:   "Adult, 25-65, worried about health, frequent medical searches online",
			HealthLiteracy: model.LiteracyLow,
			Beliefs:        "Every symptom could be serious, seeks constant reassurance, trusts medical professionals but fears the worst",
			Concerns:       "Missing something important, worst-case scenarios, side effects, contradictory information online",
		},
		{
			Name:           "TrustingElder",
			Demographics:   "Senior citizen, 65+, limited internet use, trusts traditional sources",
			HealthLiteracy: model.LiteracyLow,
			Beliefs:        "Doctors know best, traditional medicine is reliable, wary of too much change",
			Concerns:       "New treatments vs. proven ones, cost of healthcare, understanding complex medical terms",
		},
		{
			Name:           "BusyProfessional",
			Demographics:   "Working professional, 30-50, college educated, time-constrained",
			HealthLiteracy: model.LiteracyHigh,
			Beliefs:        "Efficiency-focused, wants quick clear answers, trusts credible sources",
			Concerns:       "Time to research properly, conflicting information, making quick but informed decisions",
		},
	}
}
