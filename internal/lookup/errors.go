package lookup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput is returned for input that is empty after trimming.
var ErrMalformedInput = errors.New("no word provided")

// AmbiguousMarkerError is returned in strict mode when the input marks more
// than one distinct word.
type AmbiguousMarkerError struct {
	Words []string
}

func (e *AmbiguousMarkerError) Error() string {
	return fmt.Sprintf("ambiguous input: %d marked words (%s), mark only one", len(e.Words), strings.Join(e.Words, ", "))
}
