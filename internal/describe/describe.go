// Package describe drafts marketing copy for a product with Gemini. It never
// fails: when the service is unavailable the caller gets placeholder text
// it can show in the description field instead.
package describe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/safar/solestride/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	MessageMissingKey  = "Gemini API key missing. Please configure GEMINI_API_KEY (or API_KEY) to enable AI description generation."
	MessageEmpty       = "Could not generate description. Please try again or enter manually."
	MessageAuthFailed  = "Authentication error with Gemini API. Please ensure your API key is valid and has access."
	MessageRateLimited = "Rate limit exceeded for Gemini API. Please wait a moment and try again."
	MessageFailed      = "Failed to generate description. An unexpected error occurred."
)

const (
	temperature     = 0.7
	maxOutputTokens = 100
)

type Draft struct {
	Title string
	Price decimal.Decimal
	Sizes []string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Generator struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// New returns a Generator backed by Gemini. Without an API key it returns a
// Generator that only answers MessageMissingKey.
func New(ctx context.Context, cfg config.GenAIConfig, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		logger.Warn("Gemini API key is not set; description generation disabled")
		return newGenerator(nil, cfg.Model, logger), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGenerator(client.Models, cfg.Model, logger), nil
}

func newGenerator(models contentGenerator, model string, logger *zap.Logger) *Generator {
	return &Generator{models: models, model: model, logger: logger}
}

func (g *Generator) Generate(ctx context.Context, d Draft) string {
	if g.models == nil {
		return MessageMissingKey
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(d)), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		g.logger.Error("Generate product description", zap.String("title", d.Title), zap.Error(err))
		return messageFor(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.logger.Warn("Gemini returned an empty description", zap.String("title", d.Title))
		return MessageEmpty
	}
	return text
}

func Prompt(d Draft) string {
	var b strings.Builder
	b.WriteString("Write a compelling and concise product description for a footwear item with the following details:\n")
	fmt.Fprintf(&b, "Title: %s\n", d.Title)
	fmt.Fprintf(&b, "Price: $%s\n", d.Price.StringFixed(2))
	fmt.Fprintf(&b, "Available Sizes: %s\n\n", strings.Join(d.Sizes, ", "))
	b.WriteString("Focus on comfort, style, and potential use cases. Keep it under 80 words.")
	return b.String()
}

func messageFor(err error) string {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	switch code {
	case http.StatusForbidden:
		return MessageAuthFailed
	case http.StatusTooManyRequests:
		return MessageRateLimited
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "403"), strings.Contains(msg, "API key"):
		return MessageAuthFailed
	case strings.Contains(msg, "429"):
		return MessageRateLimited
	}
	return MessageFailed
}
