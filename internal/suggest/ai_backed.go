package suggest

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"
	"fjacquet/leak-detector/internal/parsererror"
)

// DefaultTimeout bounds one call to the language model.
const DefaultTimeout = 10 * time.Second

var bulletRe = regexp.MustCompile(`^(?:[-*•]|\d{1,2}[.)])\s+(.+)$`)

// AIBacked asks a language model for advice. Any failure, including an empty
// or unparseable reply, yields the fallback generator's output.
type AIBacked struct {
	client   TextGenerator
	fallback Generator
	timeout  time.Duration
	logger   logging.Logger
}

// NewAIBacked creates an AI-backed generator. A nil fallback means RuleBased;
// a non-positive timeout means DefaultTimeout.
func NewAIBacked(client TextGenerator, fallback Generator, timeout time.Duration, logger logging.Logger) *AIBacked {
	if fallback == nil {
		fallback = NewRuleBased()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &AIBacked{
		client:   client,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Name implements Generator.
func (a *AIBacked) Name() string {
	return "ai"
}

// Suggest implements Generator.
func (a *AIBacked) Suggest(ctx context.Context, summary models.ReportSummary) []string {
	suggestions, err := a.generate(ctx, summary)
	if err != nil {
		a.logger.WithError(err).Warn("AI suggestions unavailable, using rules",
			logging.F(logging.FieldStrategy, a.fallback.Name()))
		return a.fallback.Suggest(ctx, summary)
	}

	a.logger.Debug("AI suggestions generated",
		logging.F(logging.FieldStrategy, a.Name()),
		logging.F(logging.FieldCount, len(suggestions)))
	return suggestions
}

// Close releases the language model client when it holds resources.
func (a *AIBacked) Close() error {
	if closer, ok := a.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (a *AIBacked) generate(ctx context.Context, summary models.ReportSummary) ([]string, error) {
	if a.client == nil {
		return nil, &parsererror.SuggestionError{Strategy: a.Name(), Err: fmt.Errorf("no language model client configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.client.Generate(ctx, BuildPrompt(summary))
	if err != nil {
		return nil, &parsererror.SuggestionError{Strategy: a.Name(), Err: err}
	}

	suggestions := ParseSuggestions(reply)
	if len(suggestions) == 0 {
		return nil, &parsererror.SuggestionError{Strategy: a.Name(), Err: fmt.Errorf("reply contained no suggestions")}
	}
	return suggestions, nil
}

// BuildPrompt renders the report figures into a request for short advice.
func BuildPrompt(summary models.ReportSummary) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant. A bank statement was analysed for money leaks.\n\n")
	fmt.Fprintf(&b, "Transactions analysed: %d\n", summary.TransactionCount)
	fmt.Fprintf(&b, "Repeating charges (same merchant 3+ times): %d\n", summary.RepeatingCharges)
	fmt.Fprintf(&b, "Micro transactions (20 to 200): %d\n", summary.MicroTransactions)
	fmt.Fprintf(&b, "Bank fees: %d\n", summary.Fees)
	fmt.Fprintf(&b, "Penalties and interest: %d\n", summary.Penalties)
	fmt.Fprintf(&b, "Total avoidable spend: %.2f\n", summary.TotalWaste)

	if len(summary.TopMerchants) > 0 {
		b.WriteString("\nTop merchants:\n")
		for _, m := range summary.TopMerchants {
			fmt.Fprintf(&b, "- %s: %.2f over %d transactions\n", m.Name, m.Amount, m.Count)
		}
	}
	if len(summary.CategorySpending) > 0 {
		b.WriteString("\nFlagged spend by category:\n")
		for _, c := range summary.CategorySpending {
			fmt.Fprintf(&b, "- %s: %.2f\n", c.Category, c.Amount)
		}
	}

	fmt.Fprintf(&b, "\nGive at most %d short, specific suggestions to reduce this waste, one per line as bullet points.", MaxSuggestions)
	return b.String()
}

// ParseSuggestions extracts advice from a model reply. Bullet or numbered
// lines are preferred; a reply without any is read one line per suggestion.
// At most MaxSuggestions entries are returned.
func ParseSuggestions(reply string) []string {
	var bullets, plain []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			if text := cleanSuggestion(m[1]); text != "" {
				bullets = append(bullets, text)
			}
			continue
		}
		if text := cleanSuggestion(line); text != "" {
			plain = append(plain, text)
		}
	}

	out := bullets
	if len(out) == 0 {
		out = plain
	}
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func cleanSuggestion(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
