package lookup

import (
	"regexp"
	"strings"

	"github.com/pmzi/WordSmith/internal/word"
)

// Mode tells the resolver which provider operation to use.
type Mode int

const (
	Plain Mode = iota
	Contextual
)

func (m Mode) String() string {
	if m == Contextual {
		return "contextual"
	}
	return "plain"
}

// markerPattern matches a word wrapped in slashes, e.g. "/run/".
var markerPattern = regexp.MustCompile(`/([a-zA-Z]+)/`)

// Options are the caller supplied settings copied into every Request.
type Options struct {
	BypassCache    bool
	TargetLanguage string

	// StrictMarkers rejects input that marks more than one distinct word
	// instead of using the first marker.
	StrictMarkers bool
}

// Request is a single classified lookup.
type Request struct {
	Mode Mode
	Word string

	// Sentence is the input with marker slashes removed. Only set in
	// Contextual mode.
	Sentence string

	TargetLanguage *string
	BypassCache    bool
}

// Validate rejects input that cannot be classified.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrMalformedInput
	}
	return nil
}

// Classify parses raw input into a Request. The first marker wins unless
// opts.StrictMarkers is set. The word, sentence and target language are
// trimmed of surrounding whitespace; a blank target language counts as not
// requested.
func Classify(raw string, opts Options) (Request, error) {
	if err := Validate(raw); err != nil {
		return Request{}, err
	}

	req := Request{
		TargetLanguage: word.StringPtr(strings.TrimSpace(opts.TargetLanguage)),
		BypassCache:    opts.BypassCache,
	}

	matches := markerPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		req.Mode = Plain
		req.Word = strings.TrimSpace(raw)
		return req, nil
	}

	if opts.StrictMarkers {
		if words := distinctMarked(matches); len(words) > 1 {
			return Request{}, &AmbiguousMarkerError{Words: words}
		}
	}

	req.Mode = Contextual
	req.Word = matches[0][1]
	req.Sentence = strings.TrimSpace(markerPattern.ReplaceAllString(raw, "$1"))
	return req, nil
}

func distinctMarked(matches [][]string) []string {
	seen := make(map[string]bool, len(matches))
	var words []string
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		words = append(words, m[1])
	}
	return words
}
