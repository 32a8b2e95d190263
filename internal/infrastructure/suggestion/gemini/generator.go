package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

const generateTimeout = 20 * time.Second

// Generator produces improvement suggestions through the Gemini API. Callers
// must treat errors as a degraded-suggestion signal, never as fatal.
type Generator struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Generator{
		client: client,
		model:  model,
	}, nil
}

func (g *Generator) Close() error {
	return g.client.Close()
}

func (g *Generator) GenerateSuggestion(ctx context.Context, text string, label domain.SentimentLabel, studyDomain string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(callCtx, genai.Text(buildPrompt(text, label, studyDomain)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	part := resp.Candidates[0].Content.Parts[0]
	txt, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini generate: unexpected part type %T", part)
	}
	return strings.TrimSpace(string(txt)), nil
}

func buildPrompt(text string, label domain.SentimentLabel, studyDomain string) string {
	var b strings.Builder
	b.WriteString("You are a mentor helping a student in the ")
	b.WriteString(studyDomain)
	b.WriteString(" domain act on employer feedback.\n")
	b.WriteString("The feedback was classified as ")
	b.WriteString(string(label))
	b.WriteString(".\n\nFeedback:\n")
	b.WriteString(text)
	b.WriteString("\n\nWrite one concrete, actionable improvement suggestion in 2-3 sentences. ")
	b.WriteString("Address the student directly and do not repeat the feedback text.")
	return b.String()
}
