package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pmzi/WordSmith/internal/audio"
	"github.com/pmzi/WordSmith/internal/word"
)

// Card represents a single Anki note built from a cached word
type Card struct {
	Word          string
	Pronunciation string
	Meaning       string
	Example       string
	Context       string
	Translation   string
	AudioFile     string // Path to audio file
	Tags          []string
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
	Tag            string // Tag added to every note
	MediaFolder    string // Folder holding pronunciation clips, if any
	AudioFormat    string // Audio file format (mp3, wav)
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "wordsmith_anki.csv",
		IncludeHeaders: true,
		Tag:            "wordsmith",
		AudioFormat:    "mp3",
	}
}

// Headers are the CSV columns in field order.
var Headers = []string{"Word", "Pronunciation", "Meaning", "Example", "Context", "Translation", "Audio", "Tags"}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddRecord turns a cached record into a card. The target language, if any,
// becomes an extra tag. A clip in MediaFolder named after the word is
// attached as audio.
func (g *Generator) AddRecord(rec word.Record) {
	card := Card{
		Word:          rec.Word,
		Pronunciation: rec.Pronunciation,
		Meaning:       rec.Meaning,
		Example:       rec.Example,
		Context:       word.Deref(rec.Context),
		Translation:   word.Deref(rec.TranslationToTargetLanguage),
	}
	if g.options.MediaFolder != "" {
		clip := audio.PathFor(g.options.MediaFolder, rec.Word, g.options.AudioFormat)
		if _, err := os.Stat(clip); err == nil {
			card.AudioFile = clip
		}
	}
	if g.options.Tag != "" {
		card.Tags = append(card.Tags, g.options.Tag)
	}
	if rec.TargetLanguage != nil && *rec.TargetLanguage != "" {
		card.Tags = append(card.Tags, sanitizeTag(*rec.TargetLanguage))
	}
	g.AddCard(card)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates the CSV file at OutputPath
func (g *Generator) GenerateCSV() error {
	if dir := filepath.Dir(g.options.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	return g.WriteCSV(file)
}

// WriteCSV writes the cards as CSV to w
func (g *Generator) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if g.options.IncludeHeaders {
		if err := writer.Write(Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Pronunciation,
			card.Meaning,
			card.Example,
			card.Context,
			card.Translation,
			formatAudioField(card.AudioFile),
			strings.Join(card.Tags, " "),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatAudioField formats the audio file reference for Anki
func formatAudioField(audioFile string) string {
	if audioFile == "" {
		return ""
	}

	// Anki audio format: [sound:filename.mp3]
	return fmt.Sprintf("[sound:%s]", filepath.Base(audioFile))
}

// GeneratorStats summarizes the cards of a generator
type GeneratorStats struct {
	Total           int
	WithContext     int
	WithTranslation int
	WithAudio       int
}

// Stats returns counts of the cards and their optional fields
func (g *Generator) Stats() GeneratorStats {
	stats := GeneratorStats{Total: len(g.cards)}
	for _, card := range g.cards {
		if card.Context != "" {
			stats.WithContext++
		}
		if card.Translation != "" {
			stats.WithTranslation++
		}
		if card.AudioFile != "" {
			stats.WithAudio++
		}
	}
	return stats
}

// sanitizeTag makes s usable as a single Anki tag
func sanitizeTag(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
