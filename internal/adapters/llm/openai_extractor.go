package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	openai "github.com/sashabaranov/go-openai"
)

// Config holds the completion-API settings.
type Config struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible providers
	Model   string
}

// OpenAIExtractor turns scraped listing text into structured fields by
// prompting a chat-completion model and validating the reply against
// the extracted-property schema.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

// NewOpenAIExtractor creates the extractor.
func NewOpenAIExtractor(cfg Config) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

const systemPrompt = `You extract real-estate listing fields from scraped page text.
Respond with a single JSON object and nothing else. Fields:
  title (string), address (string), rooms (number or null),
  square_meters (integer, "unknown" or null),
  asked_price (integer, "unknown" or null),
  balcony_square_meters (integer, "unknown" or null),
  contact_name (string or null), contact_phone (string or null),
  description (string or null), property_type ("New", "Existing apartment" or null),
  apartment_broker (boolean or null).
Use "unknown" when the page states a field exists but hides its value.
Use null when the page says nothing about the field. Do not invent values.`

// Extract prompts the model and decodes its reply.
func (e *OpenAIExtractor) Extract(ctx context.Context, pageText, sourceURL string) (domain.ExtractedProperty, error) {
	extractorLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OpenAIExtractor",
		"model":     e.model,
		"url":       sourceURL,
	})

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Listing URL: %s\n\nPage text:\n%s", sourceURL, pageText)},
		},
	})
	if err != nil {
		extractorLogger.Error("Chat completion request failed", err, nil)
		return domain.ExtractedProperty{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.ExtractedProperty{}, fmt.Errorf("chat completion returned no choices")
	}

	raw := stripCodeFence(resp.Choices[0].Message.Content)

	if err := contracts.Validate("ExtractedProperty", "1.0.0", []byte(raw)); err != nil {
		extractorLogger.Warn("Model reply failed schema validation", port.Fields{"error": err.Error()})
		return domain.ExtractedProperty{}, fmt.Errorf("model reply rejected by schema: %w", err)
	}

	var extracted domain.ExtractedProperty
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return domain.ExtractedProperty{}, fmt.Errorf("failed to decode model reply: %w", err)
	}

	extractorLogger.Info("Extraction complete", port.Fields{
		"title":        extracted.Title,
		"tokens_total": resp.Usage.TotalTokens,
	})
	return extracted, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models insist
// on adding.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
