// Package llm produces free-text commentary from a chat completion model.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// TextGenerator turns a system instruction and a user prompt into text.
type TextGenerator interface {
	// Generate returns the completion of prompt. Failures are reported as
	// upstream errors and are not retried.
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Config configures the OpenAI compatible chat model.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// EinoGenerator generates text with an eino chat model.
type EinoGenerator struct {
	chatModel   model.BaseChatModel
	maxTokens   int
	temperature float32
	logger      *logger.Logger
}

// NewEinoGenerator creates a generator backed by the eino OpenAI chat model.
func NewEinoGenerator(ctx context.Context, cfg Config, log *logger.Logger) (*EinoGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "llm api key is required")
	}

	maxTokens := cfg.MaxTokens

	//nolint:exhaustruct // third-party struct with many optional fields
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: &maxTokens,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create chat model", err)
	}

	return NewEinoGeneratorWithModel(chatModel, cfg, log), nil
}

// NewEinoGeneratorWithModel creates a generator around an existing chat model.
func NewEinoGeneratorWithModel(chatModel model.BaseChatModel, cfg Config, log *logger.Logger) *EinoGenerator {
	if log == nil {
		log = logger.NewNop()
	}

	return &EinoGenerator{
		chatModel:   chatModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      log,
	}
}

// Generate implements TextGenerator.
func (g *EinoGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if system != "" {
		messages = append(messages, schema.SystemMessage(system))
	}

	messages = append(messages, schema.UserMessage(prompt))

	opts := make([]model.Option, 0, 2)
	if g.maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(g.maxTokens))
	}

	if g.temperature > 0 {
		opts = append(opts, model.WithTemperature(g.temperature))
	}

	start := time.Now()

	msg, err := g.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		g.logger.Warn("Text generation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))

		return "", classify(err)
	}

	g.logger.Debug("Text generated", zap.Duration("elapsed", time.Since(start)))

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", errors.New(errors.ErrCodeTextGeneration, "chat model returned an empty completion")
	}

	return strings.TrimSpace(msg.Content), nil
}

func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return errors.Wrap(errors.ErrCodeRateLimited, "chat model rate limit exceeded", err)
	}

	return errors.Wrap(errors.ErrCodeTextGeneration, "chat model request failed", err)
}

// OfflineNotice is the text StaticGenerator returns.
const OfflineNotice = "AI commentary is unavailable because no language model is configured. " +
	"Technical indicators and signals above are computed from market data and remain valid."

// StaticGenerator answers every prompt with a fixed text. It backs the
// service when no API key is configured.
type StaticGenerator struct {
	Text string
}

// NewStaticGenerator returns a generator answering with OfflineNotice.
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{Text: OfflineNotice}
}

// Generate implements TextGenerator.
func (g *StaticGenerator) Generate(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeTextGeneration, "request cancelled", err)
	}

	return g.Text, nil
}

// New returns an EinoGenerator when cfg carries an API key and a StaticGenerator otherwise.
func New(ctx context.Context, cfg Config, log *logger.Logger) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return NewStaticGenerator(), nil
	}

	return NewEinoGenerator(ctx, cfg, log)
}
