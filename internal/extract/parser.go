package extract

import (
	"strconv"
	"strings"
)

// ParsedClaim is one structured record recovered from free-form model
// output. Implies and Confidence are only set for implicit-claim blocks.
type ParsedClaim struct {
	Text       string
	Implies    string
	Confidence float64
}

const defaultParsedConfidence = 0.6

// ParseCompletion recovers claim records from model output. It is a
// tolerant line-oriented parser: lines it cannot interpret are skipped,
// a malformed block yields whatever fields were readable, and garbage
// input yields an empty slice. It never returns an error.
func ParseCompletion(text string) []ParsedClaim {
	var claims []ParsedClaim
	var current *ParsedClaim

	flush := func() {
		if current != nil && current.Text != "" {
			claims = append(claims, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		// Strip common list markers the model may prepend
		line = strings.TrimLeft(line, "-*0123456789. \t")

		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "IMPLICIT CLAIM:"):
			flush()
			current = &ParsedClaim{
				Text:       strings.TrimSpace(line[len("IMPLICIT CLAIM:"):]),
				Confidence: defaultParsedConfidence,
			}

		case strings.HasPrefix(upper, "CLAIM:"):
			flush()
			current = &ParsedClaim{
				Text:       strings.TrimSpace(line[len("CLAIM:"):]),
				Confidence: defaultParsedConfidence,
			}

		case strings.HasPrefix(upper, "IMPLIES:"):
			if current != nil {
				current.Implies = strings.TrimSpace(line[len("IMPLIES:"):])
			}

		case strings.HasPrefix(upper, "CONFIDENCE:"):
			if current != nil {
				raw := strings.TrimSpace(line[len("CONFIDENCE:"):])
				if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
					current.Confidence = v
				}
			}
		}
	}
	flush()

	return claims
}
