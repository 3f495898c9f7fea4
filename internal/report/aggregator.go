// Package report aggregates per-claim, per-persona and per-source
// results into the final risk report. Everything here is pure
// post-processing over already-computed inputs; the generation
// timestamp is the only non-deterministic output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/prebunk/prebunk/internal/healthkb"
	"github.com/prebunk/prebunk/internal/model"
	"github.com/prebunk/prebunk/internal/risk"
)

// Condition thresholds shared by classification, findings and
// recommendations
const (
	highConcernPersonaFloor = 2   // Personas at elevated concern before the audience signal fires
	lowCoverageCeiling      = 0.5 // Coverage rate below this forces at least medium and flags an evidence gap
	thinCoverageCeiling     = 0.7 // Coverage rate below this earns a strengthen-citations recommendation
)

// Compile builds the risk report from the component results of one run.
// Same inputs always produce the same report apart from GeneratedAt.
func Compile(claims []model.Claim, assessments []model.RiskAssessment, interpretations []model.Interpretation, validations []model.ValidationResult, countermeasures []model.CountermeasureRef) *model.RiskReport {
	stats := summarize(claims, assessments, interpretations, validations)

	return &model.RiskReport{
		OverallRisk:     classify(stats, assessments),
		Stats:           stats,
		KeyFindings:     keyFindings(assessments, interpretations, stats),
		Recommendations: recommendations(stats, countermeasures),
		PriorityActions: priorityActions(assessments, validations, countermeasures),
		GeneratedAt:     time.Now().UTC(),
	}
}

func summarize(claims []model.Claim, assessments []model.RiskAssessment, interpretations []model.Interpretation, validations []model.ValidationResult) model.SummaryStats {
	stats := model.SummaryStats{TotalClaims: len(claims)}

	var sum float64
	for _, a := range assessments {
		switch a.Tier {
		case model.TierHigh:
			stats.HighRiskClaims++
		case model.TierMedium:
			stats.MediumRiskClaims++
		default:
			stats.LowRiskClaims++
		}
		sum += a.CombinedScore
		if a.CombinedScore > stats.MaxRisk {
			stats.MaxRisk = a.CombinedScore
		}
	}
	if len(assessments) > 0 {
		stats.AverageRisk = sum / float64(len(assessments))
	}

	supported := 0
	for _, v := range validations {
		if v.Status == model.StatusWellSupported || v.Status == model.StatusModeratelySupported {
			supported++
		}
	}
	if len(claims) == 0 {
		stats.EvidenceCoverageRate = 1.0
	} else {
		stats.EvidenceCoverageRate = float64(supported) / float64(len(claims))
	}

	for _, interp := range interpretations {
		if interp.ConcernLevel == model.ConcernMedium || interp.ConcernLevel == model.ConcernHigh {
			stats.ConcernedPersonas++
		}
	}

	return stats
}

// classify applies the overall-risk rules in strict order: any
// high-tier claim or a high average forces high before the medium
// conditions are consulted.
func classify(stats model.SummaryStats, assessments []model.RiskAssessment) model.OverallRisk {
	if stats.HighRiskClaims > 0 || stats.AverageRisk >= risk.HighRiskThreshold {
		return model.RiskHigh
	}
	if stats.AverageRisk >= risk.MediumRiskThreshold ||
		stats.ConcernedPersonas >= highConcernPersonaFloor ||
		stats.EvidenceCoverageRate < lowCoverageCeiling {
		return model.RiskMedium
	}
	return model.RiskLow
}

// keyFindings emits findings in fixed category order: risk, evidence,
// audience, language patterns, trust. Conditions that do not fire are
// omitted.
func keyFindings(assessments []model.RiskAssessment, interpretations []model.Interpretation, stats model.SummaryStats) []string {
	var findings []string

	if stats.HighRiskClaims > 0 {
		findings = append(findings, fmt.Sprintf(
			"%d of %d claims scored high risk for misinterpretation",
			stats.HighRiskClaims, stats.TotalClaims))
	}

	if stats.EvidenceCoverageRate < lowCoverageCeiling {
		findings = append(findings, fmt.Sprintf(
			"Only %.0f%% of claims have supporting evidence from trusted sources",
			stats.EvidenceCoverageRate*100))
	}

	if stats.ConcernedPersonas >= highConcernPersonaFloor {
		findings = append(findings, fmt.Sprintf(
			"%d of %d audience personas showed elevated concern",
			stats.ConcernedPersonas, len(interpretations)))
	}

	if anyRiskFactor(assessments, healthkb.IsAbsolutist) {
		findings = append(findings,
			"Absolutist language detected in claim risk factors (always, never, 100%, guaranteed)")
	}

	if anyRiskFactor(assessments, isConspiracyFlavored) {
		findings = append(findings,
			"Conspiracy-flavored language detected; audience trust in the message is at risk")
	}

	return findings
}

// recommendations maps the same condition set as keyFindings onto fixed
// remediation strings
func recommendations(stats model.SummaryStats, countermeasures []model.CountermeasureRef) []string {
	var recs []string

	if stats.HighRiskClaims > 0 {
		recs = append(recs,
			"Review and revise all high-risk claims before publication",
			"Add disclaimers and uncertainty qualifiers to absolutist statements",
			"Include citations to authoritative health sources (WHO, CDC, FDA)")
	}

	if stats.EvidenceCoverageRate < thinCoverageCeiling {
		recs = append(recs, "Add evidence citations for unsupported claims")
	}

	if stats.ConcernedPersonas >= highConcernPersonaFloor {
		recs = append(recs,
			"Address specific audience concerns through targeted prebunks",
			"Use clearer, less technical language for general audiences")
	}

	if len(countermeasures) > 0 {
		recs = append(recs, "Use the generated countermeasures to address identified risks")
	}

	return recs
}

// anyRiskFactor reports whether any matched risk-factor substring in
// any assessment satisfies the predicate
func anyRiskFactor(assessments []model.RiskAssessment, pred func(string) bool) bool {
	for _, a := range assessments {
		for _, tags := range a.RiskFactors {
			for _, tag := range tags {
				if pred(tag) {
					return true
				}
			}
		}
	}
	return false
}

func isConspiracyFlavored(tag string) bool {
	return strings.Contains(strings.ToLower(tag), "conspiracy")
}

// priorityActions emits actions grouped by urgency: high-risk claims
// first, unsupported claims second, prepared countermeasures last.
// Priority numbers restate the grouping so consumers need not rely on
// slice order.
func priorityActions(assessments []model.RiskAssessment, validations []model.ValidationResult, countermeasures []model.CountermeasureRef) []model.PriorityAction {
	var actions []model.PriorityAction

	for _, a := range assessments {
		if a.Tier == model.TierHigh {
			actions = append(actions, model.PriorityAction{
				Priority:  1,
				Urgency:   model.UrgencyImmediate,
				ClaimID:   a.ClaimID,
				ClaimText: a.ClaimText,
				Action:    "Revise or remove this high-risk claim",
			})
		}
	}

	for _, v := range validations {
		if v.Status == model.StatusInsufficientEvidence {
			actions = append(actions, model.PriorityAction{
				Priority:  2,
				Urgency:   model.UrgencyHigh,
				ClaimID:   v.ClaimID,
				ClaimText: v.ClaimText,
				Action:    "Verify this claim against trusted sources",
			})
		}
	}

	claimText := make(map[string]string, len(assessments))
	for _, a := range assessments {
		claimText[a.ClaimID] = a.ClaimText
	}
	for _, cm := range countermeasures {
		actions = append(actions, model.PriorityAction{
			Priority:         3,
			Urgency:          model.UrgencyModerate,
			ClaimID:          cm.ClaimID,
			ClaimText:        claimText[cm.ClaimID],
			Action:           "Deploy prepared countermeasure content",
			CountermeasureID: cm.CountermeasureID,
		})
	}

	return actions
}
