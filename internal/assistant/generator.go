// Package assistant turns directory data into a prompt for a language model
// and parses the business markup out of its answers.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/utafrali/LocalBizGo/pkg/httpclient"
)

// ErrNoAnswer is returned when the model replies with an empty answer.
var ErrNoAnswer = errors.New("language model returned no answer")

// Generator produces a free-text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config configures the OpenAI-compatible model endpoint.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// LLMGenerator calls a chat model through langchaingo.
type LLMGenerator struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// NewLLMGenerator creates a generator for cfg. All HTTP traffic goes through
// doer, which is where retries and the circuit breaker live.
func NewLLMGenerator(cfg Config, doer httpclient.Doer, logger *slog.Logger) (*LLMGenerator, error) {
	token := cfg.APIKey
	if token == "" {
		token = "none"
	}
	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if doer != nil {
		opts = append(opts, openai.WithHTTPClient(doer))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return NewGeneratorFromModel(client, cfg, logger), nil
}

// NewGeneratorFromModel wraps an existing langchaingo model.
func NewGeneratorFromModel(model llms.Model, cfg Config, logger *slog.Logger) *LLMGenerator {
	return &LLMGenerator{
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.With(slog.String("component", "llm")),
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.WarnContext(ctx, "llm call failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if answer == "" {
		return "", ErrNoAnswer
	}

	g.logger.DebugContext(ctx, "llm call completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("prompt_chars", len(prompt)),
		slog.Int("answer_chars", len(answer)),
	)
	return answer, nil
}
