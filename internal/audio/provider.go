package audio

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds configuration for the audio provider
type Config struct {
	OutputFormat string // "mp3", "wav", "opus", "aac" or "flac"

	OpenAIKey         string
	OpenAIOrgID       string
	OpenAIBaseURL     string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		OutputFormat:      "mp3",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Pronounce the English word slowly and clearly for a language learner.",
	}
}

// FileName returns the audio file name used for word.
func FileName(word, format string) string {
	if format == "" {
		format = "mp3"
	}
	return sanitizeFilename(word) + "." + format
}

// PathFor returns where the audio for word lives inside dir.
func PathFor(dir, word, format string) string {
	return filepath.Join(dir, FileName(word, format))
}

// sanitizeFilename creates a safe filename from a string
func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
