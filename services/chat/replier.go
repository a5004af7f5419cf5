package chat

import (
	"context"
	"fmt"
	"strings"

	"servicehub/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// CannedReply is what a provider answers to every message.
const CannedReply = "Thanks for your message! I'll get back to you with details about the service."

// Replier produces the provider's answer to a user message.
type Replier interface {
	Reply(ctx context.Context, provider models.ServiceProvider, message string) (string, error)
}

// CannedReplier always answers with CannedReply.
type CannedReplier struct{}

func (CannedReplier) Reply(ctx context.Context, provider models.ServiceProvider, message string) (string, error) {
	return CannedReply, nil
}

// GeminiReplier asks Gemini to answer in the provider's voice.
type GeminiReplier struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiReplier(ctx context.Context, apiKey string) (*GeminiReplier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetMaxOutputTokens(120)
	return &GeminiReplier{client: client, model: model}, nil
}

func (g *GeminiReplier) Reply(ctx context.Context, provider models.ServiceProvider, message string) (string, error) {
	prompt := fmt.Sprintf(
		"You are %q, a %s provider in %s charging %.0f per hour. "+
			"Reply to this customer message in one or two friendly sentences without making commitments:\n%s",
		provider.Title, provider.Category.Name, provider.Location, provider.HourlyRate, message,
	)
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (g *GeminiReplier) Close() error {
	return g.client.Close()
}
