package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// GeminiConfig defines configuration options for the Gemini provider.
type GeminiConfig struct {
	APIKey string
	Model  string
	Logger zerolog.Logger
}

// GeminiProvider implements Grader and MythGenerator against the Google
// Generative AI API.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiProvider builds a provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "models/gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Grade sends the rebuttal to Gemini and returns the raw model text.
func (p *GeminiProvider) Grade(ctx context.Context, input GradeInput) (string, error) {
	prompt := graderSystemPrompt() + "\n\n" + buildGradePrompt(input)

	content, err := p.generateText(ctx, "grade", prompt)
	if err != nil {
		return "", fmt.Errorf("gemini grade: %w", err)
	}

	return content, nil
}

// Generate asks Gemini for a fresh myth on the given theme.
func (p *GeminiProvider) Generate(ctx context.Context, theme string) (string, error) {
	content, err := p.generateText(ctx, "generate", buildMythPrompt(theme))
	if err != nil {
		return "", fmt.Errorf("gemini generate myth: %w", err)
	}

	return content, nil
}

func (p *GeminiProvider) generateText(ctx context.Context, operation, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	aiDuration.WithLabelValues(p.model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(p.model, operation).Inc()
		return "", err
	}

	content := responseText(resp)
	if content == "" {
		aiFailures.WithLabelValues(p.model, operation).Inc()
		return "", fmt.Errorf("empty response from gemini")
	}

	return content, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	builder := strings.Builder{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	return strings.TrimSpace(builder.String())
}
