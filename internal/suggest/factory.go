package suggest

import (
	"fjacquet/leak-detector/internal/config"
	"fjacquet/leak-detector/internal/logging"
)

// NewGenerator selects the suggestion strategy once from configuration. The
// AI-backed generator is used only when AI is enabled and a key is present.
func NewGenerator(cfg *config.Config, logger logging.Logger) Generator {
	if logger == nil {
		logger = logging.NewDiscard()
	}

	rules := NewRuleBased()
	if cfg == nil || !cfg.AI.Enabled || cfg.AI.APIKey == "" {
		logger.Debug("Using rule-based suggestions", logging.F(logging.FieldStrategy, rules.Name()))
		return rules
	}

	client := NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, logger)
	logger.Info("Using AI-backed suggestions",
		logging.F(logging.FieldStrategy, "ai"),
		logging.F("model", client.modelName))
	return NewAIBacked(client, rules, cfg.AITimeout(), logger)
}
