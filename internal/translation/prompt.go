package translation

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	fieldWord              = "word"
	fieldPronunciation     = "pronunciation"
	fieldMeaning           = "meaning"
	fieldExample           = "example"
	fieldTargetTranslation = "translation_to_target_language"
)

// schemaName is the name of the structured response sent to the model.
const schemaName = "Translation"

const plainInstructions = `You are a great translator. Give the user the meaning of the word in English.
Also give the user an example sentence using the word.
Give the pronunciation in a simple, readable respelling.
Do not hallucinate.
Be to the point and concise.`

const contextInstructions = `You are a great translator. Give the user the meaning of the word in the context of the sentence, in English.
Also give the user an example sentence using the word with the meaning it has in that context.
Give the pronunciation in a simple, readable respelling.
Do not hallucinate.
Be to the point and concise.`

// requiredFields lists the response properties the model must fill.
func requiredFields(withTarget bool) []string {
	fields := []string{fieldWord, fieldPronunciation, fieldMeaning, fieldExample}
	if withTarget {
		fields = append(fields, fieldTargetTranslation)
	}
	return fields
}

func systemPrompt(inContext bool, targetLanguage string) string {
	prompt := plainInstructions
	if inContext {
		prompt = contextInstructions
	}
	if targetLanguage != "" {
		prompt += fmt.Sprintf("\nAlso translate the word into %s and return it as %s.", targetLanguage, fieldTargetTranslation)
	}
	return prompt
}

func plainUserPrompt(word string) string {
	return word
}

func contextUserPrompt(word, sentence string) string {
	return fmt.Sprintf("Sentence: %s\nWord: %s", sentence, word)
}

// decodeResult parses the model output. Code fences around the JSON object
// are tolerated. A gloss is only kept when one was requested.
func decodeResult(content string, targetLanguage string) (*Result, error) {
	payload, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("malformed translation response: %w", err)
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{fieldWord, res.Word},
		{fieldPronunciation, res.Pronunciation},
		{fieldMeaning, res.Meaning},
		{fieldExample, res.Example},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("malformed translation response: missing %s", strings.Join(missing, ", "))
	}

	if targetLanguage == "" || (res.TargetTranslation != nil && strings.TrimSpace(*res.TargetTranslation) == "") {
		res.TargetTranslation = nil
	}

	return &res, nil
}

// extractJSON returns the first JSON object in s.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("malformed translation response: no JSON object found")
	}
	return s[start : end+1], nil
}
