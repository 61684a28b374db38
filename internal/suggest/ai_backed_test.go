package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTextGenerator struct {
	reply  string
	err    error
	delay  time.Duration
	prompt string
	closed bool
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.reply, m.err
}

func (m *mockTextGenerator) Close() error {
	m.closed = true
	return nil
}

var penaltySummary = models.ReportSummary{TransactionCount: 12, Penalties: 2, TotalWaste: 340.5}

func TestAIBacked_UsesModelReply(t *testing.T) {
	client := &mockTextGenerator{reply: "Here is my advice:\n- Cancel unused apps\n- Pay bills on time\n"}
	gen := NewAIBacked(client, nil, time.Second, logging.NewMockLogger())

	got := gen.Suggest(context.Background(), penaltySummary)

	assert.Equal(t, []string{"Cancel unused apps", "Pay bills on time"}, got)
	assert.Contains(t, client.prompt, "Penalties and interest: 2")
	assert.Contains(t, client.prompt, "Total avoidable spend: 340.50")
}

func TestAIBacked_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client TextGenerator
	}{
		{"no client", nil},
		{"client error", &mockTextGenerator{err: errors.New("quota exceeded")}},
		{"empty reply", &mockTextGenerator{reply: "  \n\n"}},
		{"timeout", &mockTextGenerator{reply: "- too late", delay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger()
			gen := NewAIBacked(tt.client, NewRuleBased(), 20*time.Millisecond, logger)

			got := gen.Suggest(context.Background(), penaltySummary)

			assert.Equal(t, []string{AdvicePenalties}, got)
			assert.True(t, logger.HasEntry("WARN", "AI suggestions unavailable, using rules"))
		})
	}
}

func TestAIBacked_Close(t *testing.T) {
	client := &mockTextGenerator{}
	require.NoError(t, NewAIBacked(client, nil, 0, nil).Close())
	assert.True(t, client.closed)

	assert.NoError(t, NewAIBacked(nil, nil, 0, nil).Close())
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "dash and star bullets",
			reply: "Tips:\n- First\n* Second\n• Third",
			want:  []string{"First", "Second", "Third"},
		},
		{
			name:  "numbered list",
			reply: "1. Cancel Netflix\n2) Use a no-fee account\n",
			want:  []string{"Cancel Netflix", "Use a no-fee account"},
		},
		{
			name:  "markdown emphasis removed",
			reply: "- **Automate** bill payments",
			want:  []string{"Automate bill payments"},
		},
		{
			name:  "no bullets reads lines",
			reply: "Track small purchases.\n\nReview subscriptions monthly.",
			want:  []string{"Track small purchases.", "Review subscriptions monthly."},
		},
		{
			name:  "capped",
			reply: "- a\n- b\n- c\n- d\n- e\n- f\n- g",
			want:  []string{"a", "b", "c", "d", "e"},
		},
		{
			name:  "empty",
			reply: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestions(tt.reply))
		})
	}
}
