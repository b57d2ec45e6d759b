package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sethvargo/go-retry"

	"github.com/heartmarshall/emolog-backend/internal/config"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// Claude classifies text through the Anthropic API. Unlike the local
// keyword classifier it is allowed to fail: callers are expected to wrap
// it with Fallback so a remote failure degrades instead of propagating.
type Claude struct {
	client anthropic.Client
	cfg    config.AnalyzerConfig
	log    *slog.Logger
}

// NewClaude creates the remote analyzer from configuration.
func NewClaude(cfg config.AnalyzerConfig, log *slog.Logger) *Claude {
	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		log:    log.With("analyzer", "claude"),
	}
}

// remoteOutcome is the JSON shape the model is instructed to return.
type remoteOutcome struct {
	PrimaryEmotion string  `json:"primary_emotion"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
	Intensity      string  `json:"intensity"`
}

// Analyze sends the text to the model and parses the structured verdict.
// Transient API errors are retried with exponential backoff up to the
// configured budget; whatever error remains is wrapped in
// domain.ErrDependencyUnavailable.
func (c *Claude) Analyze(ctx context.Context, text string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var responseText string
	backoff := retry.WithMaxRetries(uint64(c.cfg.MaxRetries), retry.NewExponential(c.cfg.RetryBaseWait))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.cfg.Model),
			MaxTokens: 256,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text))),
			},
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(msg.Content) == 0 {
			return retry.RetryableError(fmt.Errorf("empty response"))
		}
		responseText = msg.Content[0].Text
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: remote classify: %v", domain.ErrDependencyUnavailable, err)
	}

	outcome, err := parseOutcome(responseText)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
	}

	return Result{
		Label:      domain.EmotionLabel(outcome.PrimaryEmotion),
		Confidence: outcome.Confidence,
		Data: domain.AnalysisData{
			Reasoning: outcome.Reasoning,
			Intensity: domain.Intensity(outcome.Intensity),
			Source:    domain.SourceRemote,
			Timestamp: time.Now().UTC(),
			Text:      text,
		},
	}, nil
}

// buildPrompt creates the classification prompt for a single text.
func buildPrompt(text string) string {
	return fmt.Sprintf(`You are an emotion classifier for a personal journal application.

Classify the emotional content of the following text:

%q

Output ONLY a valid JSON object matching this exact schema:
{
  "primary_emotion": "<joy|sadness|anger|fear|surprise|neutral>",
  "confidence": <number between 0 and 1>,
  "reasoning": "<one short sentence describing the signal you used>",
  "intensity": "<low|medium|high>"
}

Rules:
- Pick exactly one primary emotion from the listed set
- Use "neutral" when no clear emotional signal is present
- Output ONLY the JSON, no markdown, no explanations`, text)
}

// parseOutcome extracts and validates the model's JSON verdict.
func parseOutcome(s string) (remoteOutcome, error) {
	jsonStr, err := extractJSON(s)
	if err != nil {
		return remoteOutcome{}, err
	}

	var out remoteOutcome
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return remoteOutcome{}, fmt.Errorf("parse model response: %w", err)
	}

	if !domain.EmotionLabel(out.PrimaryEmotion).IsValid() {
		return remoteOutcome{}, fmt.Errorf("model returned unknown label %q", out.PrimaryEmotion)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return remoteOutcome{}, fmt.Errorf("model returned confidence %v outside [0,1]", out.Confidence)
	}
	if !domain.Intensity(out.Intensity).IsValid() {
		out.Intensity = string(domain.IntensityMedium)
	}

	return out, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
