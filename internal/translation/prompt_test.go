package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		targetLanguage string
		want           *Result
		wantErr        string
	}{
		{
			name:    "plain object",
			content: `{"word":"run","pronunciation":"ruhn","meaning":"move fast on foot","example":"I run every day."}`,
			want:    &Result{Word: "run", Pronunciation: "ruhn", Meaning: "move fast on foot", Example: "I run every day."},
		},
		{
			name:    "code fenced object",
			content: "```json\n{\"word\":\"run\",\"pronunciation\":\"ruhn\",\"meaning\":\"m\",\"example\":\"e\"}\n```",
			want:    &Result{Word: "run", Pronunciation: "ruhn", Meaning: "m", Example: "e"},
		},
		{
			name:           "gloss kept when requested",
			content:        `{"word":"run","pronunciation":"ruhn","meaning":"m","example":"e","translation_to_target_language":"correr"}`,
			targetLanguage: "Spanish",
			want:           &Result{Word: "run", Pronunciation: "ruhn", Meaning: "m", Example: "e", TargetTranslation: strPtr("correr")},
		},
		{
			name:    "gloss dropped when not requested",
			content: `{"word":"run","pronunciation":"ruhn","meaning":"m","example":"e","translation_to_target_language":"correr"}`,
			want:    &Result{Word: "run", Pronunciation: "ruhn", Meaning: "m", Example: "e"},
		},
		{
			name:           "empty gloss becomes nil",
			content:        `{"word":"run","pronunciation":"ruhn","meaning":"m","example":"e","translation_to_target_language":" "}`,
			targetLanguage: "Spanish",
			want:           &Result{Word: "run", Pronunciation: "ruhn", Meaning: "m", Example: "e"},
		},
		{
			name:    "not json",
			content: "I cannot help with that.",
			wantErr: "no JSON object found",
		},
		{
			name:    "broken json",
			content: `{"word": "run",}`,
			wantErr: "malformed translation response",
		},
		{
			name:    "missing fields",
			content: `{"word":"run","pronunciation":"","meaning":"m"}`,
			wantErr: "missing pronunciation, example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResult(tt.content, tt.targetLanguage)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	plain := systemPrompt(false, "")
	assert.Contains(t, plain, "meaning of the word in English")
	assert.NotContains(t, plain, fieldTargetTranslation)

	inContext := systemPrompt(true, "German")
	assert.Contains(t, inContext, "in the context of the sentence")
	assert.Contains(t, inContext, "into German")
	assert.Contains(t, inContext, fieldTargetTranslation)
}

func TestContextUserPrompt(t *testing.T) {
	assert.Equal(t, "Sentence: I went for a run today\nWord: run", contextUserPrompt("run", "I went for a run today"))
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []string{"word", "pronunciation", "meaning", "example"}, requiredFields(false))
	assert.Equal(t, []string{"word", "pronunciation", "meaning", "example", "translation_to_target_language"}, requiredFields(true))
}

func strPtr(s string) *string {
	return &s
}
