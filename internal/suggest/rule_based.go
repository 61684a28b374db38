package suggest

import (
	"context"

	"fjacquet/leak-detector/internal/models"
)

// Advice emitted by the rule-based generator.
const (
	AdviceSubscriptions = "Review your recurring subscriptions - you might be paying for services you no longer use."
	AdviceFees          = "Consider switching to a bank account with lower or no fees."
	AdvicePenalties     = "Set up automatic payments to avoid late fees and interest charges."
	AdviceMicro         = "Small purchases add up! Try tracking your daily spending more carefully."
	AdviceClean         = "Good job! Your spending looks relatively clean. Keep monitoring regularly."
)

const (
	feeThreshold   = 3
	microThreshold = 10
)

// RuleBased applies fixed thresholds to the report figures.
type RuleBased struct{}

// NewRuleBased returns the rule-based generator.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Name implements Generator.
func (RuleBased) Name() string {
	return "rules"
}

// Suggest returns every triggered advice in a fixed order, or AdviceClean
// when nothing triggers.
func (RuleBased) Suggest(_ context.Context, summary models.ReportSummary) []string {
	var out []string
	if summary.RepeatingCharges > 0 {
		out = append(out, AdviceSubscriptions)
	}
	if summary.Fees > feeThreshold {
		out = append(out, AdviceFees)
	}
	if summary.Penalties > 0 {
		out = append(out, AdvicePenalties)
	}
	if summary.MicroTransactions > microThreshold {
		out = append(out, AdviceMicro)
	}
	if len(out) == 0 {
		out = append(out, AdviceClean)
	}
	return out
}
