package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIProvider implements Provider using OpenAI chat completions with a
// strict JSON schema response.
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI provider. A missing API key is
// reported on first use so cached lookups keep working without one.
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIOrgID != "" {
		clientConfig.OrgID = config.OpenAIOrgID
	}
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Translate explains a standalone word
func (p *OpenAIProvider) Translate(ctx context.Context, word, targetLanguage string) (*Result, error) {
	return p.complete(ctx, systemPrompt(false, targetLanguage), plainUserPrompt(word), targetLanguage)
}

// TranslateInContext explains word as used in sentence
func (p *OpenAIProvider) TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error) {
	return p.complete(ctx, systemPrompt(true, targetLanguage), contextUserPrompt(word, sentence), targetLanguage)
}

func (p *OpenAIProvider) complete(ctx context.Context, system, user, targetLanguage string) (*Result, error) {
	if err := p.IsAvailable(); err != nil {
		return nil, err
	}

	schema := openAISchema(targetLanguage != "")
	req := openai.ChatCompletionRequest{
		Model: p.config.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &schema,
				Strict: true,
			},
		},
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}

	return decodeResult(resp.Choices[0].Message.Content, targetLanguage)
}

func openAISchema(withTarget bool) jsonschema.Definition {
	properties := map[string]jsonschema.Definition{
		fieldWord:          {Type: jsonschema.String},
		fieldPronunciation: {Type: jsonschema.String},
		fieldMeaning:       {Type: jsonschema.String},
		fieldExample:       {Type: jsonschema.String},
	}
	if withTarget {
		properties[fieldTargetTranslation] = jsonschema.Definition{Type: jsonschema.String}
	}

	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           properties,
		Required:             requiredFields(withTarget),
		AdditionalProperties: false,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI %w", ErrMissingAPIKey)
	}
	return nil
}
