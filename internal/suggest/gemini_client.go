package suggest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fjacquet/leak-detector/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// GeminiClient implements TextGenerator with the Google Gemini API. The
// underlying client is created on first use.
type GeminiClient struct {
	apiKey    string
	modelName string
	logger    logging.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a client for the given key and model.
func NewGeminiClient(apiKey, modelName string, logger logging.Logger) *GeminiClient {
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &GeminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

func (c *GeminiClient) ensureModel(ctx context.Context) (*genai.GenerativeModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.model = client.GenerativeModel(c.modelName)
	return c.model, nil
}

// Generate implements TextGenerator.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model, err := c.ensureModel(ctx)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Requesting suggestions from Gemini", logging.F("model", c.modelName))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini response has no text")
	}
	return b.String(), nil
}

// Close releases the underlying client, if one was created.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	c.model = nil
	return err
}
