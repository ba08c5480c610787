package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pmzi/WordSmith/internal/translation"
)

// maxOtherModels caps how many non-chat models are printed.
const maxOtherModels = 10

// chatPrefixes identify models usable for chat completions.
var chatPrefixes = []string{"gpt-", "chatgpt-", "o1", "o3", "o4"}

// nonChatMarkers exclude audio, image and embedding variants of chat families.
var nonChatMarkers = []string{"tts", "audio", "realtime", "transcribe", "image", "embedding", "search"}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey  string
	current string
	client  *openai.Client
	out     io.Writer
}

// NewLister creates a model lister from the translation config. The
// configured model is highlighted in the output.
func NewLister(config *translation.Config, out io.Writer) *Lister {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIOrgID != "" {
		clientConfig.OrgID = config.OpenAIOrgID
	}
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &Lister{
		apiKey:  config.OpenAIKey,
		current: config.OpenAIModel,
		client:  openai.NewClientWithConfig(clientConfig),
		out:     out,
	}
}

// ListAvailableModels prints chat models first, then a short list of the rest
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY, configure openai.api_key in .wordsmith.yaml or run ws --set-openai-api-key")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels, otherModels := categorize(models.Models)

	fmt.Fprintln(l.out, "Available OpenAI Models:")
	fmt.Fprintln(l.out, "\nChat Models (usable as openai.model):")
	if len(chatModels) == 0 {
		fmt.Fprintln(l.out, "  No chat models found")
	}
	for _, model := range chatModels {
		marker := " "
		if model == l.current {
			marker = "*"
		}
		fmt.Fprintf(l.out, "%s %s\n", marker, model)
	}

	if len(otherModels) > 0 {
		fmt.Fprintln(l.out, "\nOther Models:")
		shown := otherModels
		if len(shown) > maxOtherModels {
			shown = shown[:maxOtherModels]
		}
		for _, model := range shown {
			fmt.Fprintf(l.out, "  %s\n", model)
		}
		if len(otherModels) > len(shown) {
			fmt.Fprintf(l.out, "  ... and %d more models\n", len(otherModels)-len(shown))
		}
	}

	return nil
}

func categorize(models []openai.Model) (chat, other []string) {
	for _, model := range models {
		if isChatModel(model.ID) {
			chat = append(chat, model.ID)
		} else {
			other = append(other, model.ID)
		}
	}
	sort.Strings(chat)
	sort.Strings(other)
	return chat, other
}

func isChatModel(id string) bool {
	for _, marker := range nonChatMarkers {
		if strings.Contains(id, marker) {
			return false
		}
	}
	for _, prefix := range chatPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
