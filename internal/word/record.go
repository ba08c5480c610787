package word

import "time"

// Record is a persisted translation of a single literal word.
type Record struct {
	ID            int64
	Word          string
	Pronunciation string
	Meaning       string
	Example       string

	// Context is the sentence the word was last disambiguated in.
	// Nil when the word was looked up on its own.
	Context *string

	TargetLanguage              *string
	TranslationToTargetLanguage *string

	CreatedAt time.Time
}

// Fields holds everything an insert or update writes. Optional values are
// written as given, so a nil Context clears a previously stored one.
type Fields struct {
	Word                        string
	Pronunciation               string
	Meaning                     string
	Example                     string
	Context                     *string
	TargetLanguage              *string
	TranslationToTargetLanguage *string
}

// Fields returns the writable part of the record.
func (r *Record) Fields() Fields {
	return Fields{
		Word:                        r.Word,
		Pronunciation:               r.Pronunciation,
		Meaning:                     r.Meaning,
		Example:                     r.Example,
		Context:                     r.Context,
		TargetLanguage:              r.TargetLanguage,
		TranslationToTargetLanguage: r.TranslationToTargetLanguage,
	}
}

// HasContext reports whether the record was resolved inside a sentence.
func (r *Record) HasContext() bool {
	return r.Context != nil && *r.Context != ""
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
