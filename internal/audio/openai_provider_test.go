package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Instructions   string  `json:"instructions"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

func newSpeechServer(t *testing.T, body []byte, status int) (*httptest.Server, *speechRequest) {
	t.Helper()

	var last speechRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&last); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(body)
	}))
	t.Cleanup(server.Close)

	return server, &last
}

func testConfig(baseURL string) *Config {
	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"
	config.OpenAIBaseURL = baseURL + "/v1"
	return config
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(&Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}

	provider, err := NewOpenAIProvider(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Name() = %v, want openai", provider.Name())
	}
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}

func TestGenerateAudio(t *testing.T) {
	server, last := newSpeechServer(t, []byte("ID3-fake-mp3"), http.StatusOK)

	provider, err := NewOpenAIProvider(testConfig(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	outputFile := filepath.Join(t.TempDir(), "clips", "ubiquitous.mp3")
	if err := provider.GenerateAudio(context.Background(), " ubiquitous ", outputFile); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read audio file: %v", err)
	}
	if string(data) != "ID3-fake-mp3" {
		t.Errorf("Audio content = %q", data)
	}

	if last.Input != "ubiquitous" {
		t.Errorf("Input = %q, want ubiquitous", last.Input)
	}
	if last.Model != "gpt-4o-mini-tts" || last.Voice != "alloy" {
		t.Errorf("Model/Voice = %s/%s", last.Model, last.Voice)
	}
	if last.Instructions == "" {
		t.Error("Expected instructions for gpt-4o-mini-tts")
	}
	if last.ResponseFormat != "mp3" {
		t.Errorf("ResponseFormat = %s, want mp3", last.ResponseFormat)
	}
	entries, err := os.ReadDir(filepath.Dir(outputFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the clip in the output directory, got %d entries", len(entries))
	}
}

func TestGenerateAudioErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		provider, _ := NewOpenAIProvider(&Config{OpenAIKey: "test-key"})
		if err := provider.GenerateAudio(context.Background(), "  ", filepath.Join(t.TempDir(), "x.mp3")); err == nil {
			t.Error("Expected error for empty text")
		}
	})

	t.Run("api error", func(t *testing.T) {
		server, _ := newSpeechServer(t, nil, http.StatusInternalServerError)
		provider, _ := NewOpenAIProvider(testConfig(server.URL))

		outputFile := filepath.Join(t.TempDir(), "x.mp3")
		if err := provider.GenerateAudio(context.Background(), "run", outputFile); err == nil {
			t.Error("Expected API error")
		}
		if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
			t.Error("Output file created on API error")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		server, _ := newSpeechServer(t, nil, http.StatusOK)
		provider, _ := NewOpenAIProvider(testConfig(server.URL))

		dir := t.TempDir()
		if err := provider.GenerateAudio(context.Background(), "run", filepath.Join(dir, "x.mp3")); err == nil {
			t.Error("Expected error for empty audio")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("Expected empty output directory, got %d entries", len(entries))
		}
	})
}

func TestResponseFormat(t *testing.T) {
	tests := []struct {
		file string
		want openai.SpeechResponseFormat
	}{
		{"a.mp3", openai.SpeechResponseFormatMp3},
		{"a.WAV", openai.SpeechResponseFormatWav},
		{"a.opus", openai.SpeechResponseFormatOpus},
		{"a.aac", openai.SpeechResponseFormatAac},
		{"a.flac", openai.SpeechResponseFormatFlac},
		{"a", openai.SpeechResponseFormatMp3},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := responseFormat(tt.file); got != tt.want {
				t.Errorf("responseFormat(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		word   string
		format string
		want   string
	}{
		{"Ubiquitous", "mp3", "ubiquitous.mp3"},
		{"ice cream", "wav", "ice_cream.wav"},
		{"don't", "", "don_t.mp3"},
		{"../etc", "mp3", "___etc.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := FileName(tt.word, tt.format); got != tt.want {
				t.Errorf("FileName(%q, %q) = %q, want %q", tt.word, tt.format, got, tt.want)
			}
		})
	}

	if got := PathFor("/clips", "run", "mp3"); got != filepath.Join("/clips", "run.mp3") {
		t.Errorf("PathFor() = %s", got)
	}
}
