package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Gemini API with a JSON
// response schema.
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini provider. Without an API key the
// client is not created and every call reports ErrMissingAPIKey.
func NewGeminiProvider(config *Config) (*GeminiProvider, error) {
	p := &GeminiProvider{config: config}
	if config.GeminiKey == "" {
		return p, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeminiBaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client

	return p, nil
}

// Translate explains a standalone word
func (p *GeminiProvider) Translate(ctx context.Context, word, targetLanguage string) (*Result, error) {
	return p.generate(ctx, systemPrompt(false, targetLanguage), plainUserPrompt(word), targetLanguage)
}

// TranslateInContext explains word as used in sentence
func (p *GeminiProvider) TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error) {
	return p.generate(ctx, systemPrompt(true, targetLanguage), contextUserPrompt(word, sentence), targetLanguage)
}

func (p *GeminiProvider) generate(ctx context.Context, system, user, targetLanguage string) (*Result, error) {
	if err := p.IsAvailable(); err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(p.config.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema(targetLanguage != ""),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(user), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no translation returned")
	}

	return decodeResult(text, targetLanguage)
}

func geminiSchema(withTarget bool) *genai.Schema {
	properties := map[string]*genai.Schema{
		fieldWord:          {Type: genai.TypeString},
		fieldPronunciation: {Type: genai.TypeString},
		fieldMeaning:       {Type: genai.TypeString},
		fieldExample:       {Type: genai.TypeString},
	}
	if withTarget {
		properties[fieldTargetTranslation] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   requiredFields(withTarget),
	}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is properly configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" || p.client == nil {
		return fmt.Errorf("Gemini %w", ErrMissingAPIKey)
	}
	return nil
}
