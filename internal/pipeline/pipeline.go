// Package pipeline orchestrates the full analysis flow: claim
// extraction, risk scoring, audience interpretation, evidence
// validation, optional countermeasure generation and final report
// aggregation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prebunk/prebunk/internal/evidence"
	"github.com/prebunk/prebunk/internal/extract"
	"github.com/prebunk/prebunk/internal/fanout"
	"github.com/prebunk/prebunk/internal/model"
	"github.com/prebunk/prebunk/internal/persona"
	"github.com/prebunk/prebunk/internal/report"
	"github.com/prebunk/prebunk/internal/risk"
)

// Claims below this combined score never get countermeasures
const countermeasureRiskFloor = 0.3

// CountermeasureProvider generates prebunking content for a risky
// claim. Generation happens outside the pipeline; only the reference
// is carried into the result.
type CountermeasureProvider interface {
	Generate(ctx context.Context, claim model.Claim, assessment model.RiskAssessment) (model.CountermeasureRef, error)
}

// Pipeline runs the end-to-end analysis for one message at a time.
// It is safe for concurrent use.
type Pipeline struct {
	extractor       *extract.Extractor
	scorer          *risk.Scorer
	interpreter     *persona.Interpreter
	matcher         *evidence.Matcher
	countermeasures CountermeasureProvider // nil disables the stage
	cfg             model.PipelineConfig
	logw            io.Writer // diagnostic sink, nil silences
}

// New assembles a pipeline from its stage components. countermeasures
// may be nil; logw may be nil.
func New(extractor *extract.Extractor, scorer *risk.Scorer, interpreter *persona.Interpreter, matcher *evidence.Matcher, countermeasures CountermeasureProvider, cfg model.PipelineConfig, logw io.Writer) *Pipeline {
	return &Pipeline{
		extractor:       extractor,
		scorer:          scorer,
		interpreter:     interpreter,
		matcher:         matcher,
		countermeasures: countermeasures,
		cfg:             cfg,
		logw:            logw,
	}
}

// Analyze runs the full flow on one message. The returned result is
// always fully shaped: every slice field is non-nil and the status
// says how far the run got. Only an empty message yields the error
// status.
func (p *Pipeline) Analyze(ctx context.Context, message string) model.Result {
	start := time.Now()
	result := model.Result{
		Message:         message,
		ProcessedAt:     start.UTC(),
		Claims:          []model.Claim{},
		RiskAssessments: []model.RiskAssessment{},
		Interpretations: []model.Interpretation{},
		Validations:     []model.ValidationResult{},
	}

	if strings.TrimSpace(message) == "" {
		result.Status = model.PipelineError
		result.Error = "message is empty"
		result.Elapsed = time.Since(start)
		return result
	}

	claims := p.extractor.Extract(ctx, message)
	if p.cfg.MaxClaims > 0 && len(claims) > p.cfg.MaxClaims {
		p.logf("capping %d extracted claims to %d", len(claims), p.cfg.MaxClaims)
		claims = claims[:p.cfg.MaxClaims]
	}
	result.Claims = claims
	p.logf("extracted %d claims", len(claims))

	if len(claims) == 0 {
		result.Status = model.PipelineNoClaims
		result.Report = report.Compile(nil, nil, nil, nil, nil)
		result.Elapsed = time.Since(start)
		return result
	}

	for _, c := range claims {
		result.RiskAssessments = append(result.RiskAssessments, p.scorer.Score(c))
	}

	if p.cfg.Parallel {
		var g errgroup.Group
		g.Go(func() error {
			result.Interpretations = p.interpreter.Interpret(ctx, message)
			return nil
		})
		g.Go(func() error {
			result.Validations = p.validateClaims(ctx, claims)
			return nil
		})
		_ = g.Wait()
	} else {
		result.Interpretations = p.interpreter.Interpret(ctx, message)
		result.Validations = p.validateClaims(ctx, claims)
	}
	result.PatternAnalysis = persona.AnalyzePatterns(result.Interpretations)
	p.logf("interpreted %d personas, validated %d claims", len(result.Interpretations), len(result.Validations))

	if p.cfg.IncludeCountermeasures && p.countermeasures != nil {
		result.Countermeasures = p.generateCountermeasures(ctx, claims, result.RiskAssessments)
		p.logf("generated %d countermeasures", len(result.Countermeasures))
	}

	result.Report = report.Compile(claims, result.RiskAssessments, result.Interpretations, result.Validations, result.Countermeasures)
	result.Status = model.PipelineCompleted
	result.Elapsed = time.Since(start)
	return result
}

// validateClaims runs evidence validation for every claim, bounded by
// the configured worker count in parallel mode. Results come back in
// claim order either way.
func (p *Pipeline) validateClaims(ctx context.Context, claims []model.Claim) []model.ValidationResult {
	fn := func(ctx context.Context, i int) (model.ValidationResult, error) {
		return p.matcher.Validate(ctx, claims[i]), nil
	}

	var outcomes []fanout.Outcome[model.ValidationResult]
	if p.cfg.Parallel {
		outcomes = fanout.Settle(ctx, len(claims), p.cfg.EvidenceWorkers, fn)
	} else {
		outcomes = fanout.Sequential(ctx, len(claims), fn)
	}

	validations := make([]model.ValidationResult, len(claims))
	for i, o := range outcomes {
		if o.Err != nil {
			validations[i] = evidence.FailedValidation(claims[i].ID, claims[i].Text, o.Err)
			continue
		}
		validations[i] = o.Value
	}
	return validations
}

// generateCountermeasures calls the provider for every claim at or
// above the risk floor. Provider failures skip that claim only.
func (p *Pipeline) generateCountermeasures(ctx context.Context, claims []model.Claim, assessments []model.RiskAssessment) []model.CountermeasureRef {
	var refs []model.CountermeasureRef
	for i, c := range claims {
		if assessments[i].CombinedScore < countermeasureRiskFloor {
			continue
		}
		ref, err := p.countermeasures.Generate(ctx, c, assessments[i])
		if err != nil {
			p.logf("countermeasure generation failed for claim %s: %v", c.ID, err)
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logw == nil || !p.cfg.DetailedLogging {
		return
	}
	fmt.Fprintf(p.logw, "pipeline: "+format+"\n", args...)
}
