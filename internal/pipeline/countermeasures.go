package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/prebunk/prebunk/internal/llm"
	"github.com/prebunk/prebunk/internal/model"
)

// LLMCountermeasures generates prebunking content through the
// text-completion capability. The generated text itself is delivered
// out of band; the pipeline only records the reference.
type LLMCountermeasures struct {
	completer llm.Completer
}

// NewLLMCountermeasures creates a provider. completer must be non-nil.
func NewLLMCountermeasures(completer llm.Completer) *LLMCountermeasures {
	return &LLMCountermeasures{completer: completer}
}

// Generate produces a countermeasure for one risky claim. The
// identifier is a digest of the generated text, so the same content is
// always addressable by the same reference.
func (g *LLMCountermeasures) Generate(ctx context.Context, claim model.Claim, assessment model.RiskAssessment) (model.CountermeasureRef, error) {
	content, err := g.completer.Complete(ctx, buildCountermeasurePrompt(claim, assessment))
	if err != nil {
		return model.CountermeasureRef{}, fmt.Errorf("generate countermeasure: %w", err)
	}

	return model.CountermeasureRef{
		ClaimID:          claim.ID,
		CountermeasureID: contentID(content),
	}, nil
}

// contentID derives a stable identifier from countermeasure text
func contentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "cm-" + hex.EncodeToString(sum[:8])
}

func buildCountermeasurePrompt(claim model.Claim, assessment model.RiskAssessment) string {
	return fmt.Sprintf(`A health message contains this claim, assessed as %s risk (%.2f):

"%s"

Write a short prebunking note that:
- Anticipates how the claim could be misread
- States what the evidence actually supports, with appropriate uncertainty
- Avoids repeating the risky phrasing verbatim

Keep it under 100 words and neutral in tone.`,
		assessment.Tier, assessment.CombinedScore, claim.Text)
}
