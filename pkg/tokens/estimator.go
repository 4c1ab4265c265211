// Package tokens estimates how much of the model's input budget a page
// consumes, so the panel can warn before summarizing an oversized page.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// MaxModelChars is the input size beyond which summaries degrade.
const MaxModelChars = 4000

// Rough fallback when no encoder is available.
const charsPerToken = 4

// Estimator counts tokens with a cl100k_base encoder when one can be
// loaded, falling back to a character heuristic otherwise.
type Estimator struct {
	enc *tiktoken.Tiktoken
}

// NewEstimator creates an estimator. Encoder setup failures are not fatal;
// the estimator degrades to the character heuristic.
func NewEstimator() *Estimator {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &Estimator{}
	}
	return &Estimator{enc: enc}
}

// Count returns the estimated token count of text.
func (e *Estimator) Count(text string) int {
	if e.enc != nil {
		return len(e.enc.Encode(text, nil, nil))
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// WarningFor reports whether text exceeds the model budget, with a
// user-facing message when it does.
func (e *Estimator) WarningFor(text string) (string, bool) {
	if len(text) <= MaxModelChars {
		return "", false
	}
	return fmt.Sprintf("Text is too long for the model (%d characters, about %d tokens). The summary may miss later sections.",
		len(text), e.Count(text)), true
}
