// Package suggest produces savings advice from an aggregated leak report. A
// rule-based generator is always available; an AI-backed generator asks a
// language model and falls back to the rules on any failure.
package suggest

import (
	"context"

	"fjacquet/leak-detector/internal/models"
)

// MaxSuggestions caps the advice list of every generator.
const MaxSuggestions = 5

// Generator returns between one and MaxSuggestions advisory strings. It never
// fails; implementations degrade instead.
type Generator interface {
	Suggest(ctx context.Context, summary models.ReportSummary) []string

	// Name identifies the strategy in logs.
	Name() string
}

// TextGenerator sends a prompt to a language model and returns its reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
