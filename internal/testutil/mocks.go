package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pmzi/WordSmith/internal/translation"
	"github.com/pmzi/WordSmith/internal/word"
)

// MockProvider is a scripted translation provider.
type MockProvider struct {
	mu sync.Mutex

	// Results maps a word to the result returned for it. Words without an
	// entry get a generated result.
	Results map[string]*translation.Result
	// Errors maps a word to the error returned for it.
	Errors map[string]error
	// Delay is slept (or interrupted by ctx) before answering.
	Delay time.Duration

	Calls []string
}

// NewMockProvider returns a MockProvider with empty scripts.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Results: make(map[string]*translation.Result),
		Errors:  make(map[string]error),
	}
}

// Translate mocks a standalone translation
func (m *MockProvider) Translate(ctx context.Context, w, targetLanguage string) (*translation.Result, error) {
	return m.answer(ctx, fmt.Sprintf("Translate: %s (target=%s)", w, targetLanguage), w, targetLanguage)
}

// TranslateInContext mocks a translation in context of a sentence
func (m *MockProvider) TranslateInContext(ctx context.Context, w, sentence, targetLanguage string) (*translation.Result, error) {
	return m.answer(ctx, fmt.Sprintf("TranslateInContext: %s in %q (target=%s)", w, sentence, targetLanguage), w, targetLanguage)
}

func (m *MockProvider) answer(ctx context.Context, call, w, targetLanguage string) (*translation.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	delay := m.Delay
	err, hasErr := m.Errors[w]
	res, hasRes := m.Results[w]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if hasErr {
		return nil, err
	}
	if hasRes {
		copied := *res
		return &copied, nil
	}

	generated := &translation.Result{
		Word:          w,
		Pronunciation: "mock pronunciation of " + w,
		Meaning:       "mock meaning of " + w,
		Example:       "mock example of " + w,
	}
	if targetLanguage != "" {
		gloss := fmt.Sprintf("mock %s translation of %s", targetLanguage, w)
		generated.TargetTranslation = &gloss
	}
	return generated, nil
}

// CallCount returns the number of provider calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Name returns the mock provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockProvider) IsAvailable() error {
	return nil
}

// MockStore is an in-memory word store with injectable failures.
type MockStore struct {
	mu      sync.Mutex
	records map[int64]word.Record
	nextID  int64

	FindErr   error
	InsertErr error
	UpdateErr error

	Inserts int
	Updates int
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{records: make(map[int64]word.Record)}
}

// FindByWord mocks an exact lookup
func (m *MockStore) FindByWord(ctx context.Context, w string) (*word.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, rec := range m.records {
		if rec.Word == w {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

// Insert mocks storing a new record
func (m *MockStore) Insert(ctx context.Context, f word.Fields) (*word.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	m.Inserts++
	m.nextID++
	rec := recordFromFields(m.nextID, f, time.Now().UTC())
	m.records[rec.ID] = rec
	return &rec, nil
}

// Update mocks overwriting a record
func (m *MockStore) Update(ctx context.Context, id int64, f word.Fields) (*word.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	existing, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("word %d not found", id)
	}
	m.Updates++
	f.Word = existing.Word
	rec := recordFromFields(id, f, existing.CreatedAt)
	m.records[id] = rec
	return &rec, nil
}

// Records returns all records ordered by id.
func (m *MockStore) Records() []word.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]word.Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

func recordFromFields(id int64, f word.Fields, createdAt time.Time) word.Record {
	return word.Record{
		ID:                          id,
		Word:                        f.Word,
		Pronunciation:               f.Pronunciation,
		Meaning:                     f.Meaning,
		Example:                     f.Example,
		Context:                     f.Context,
		TargetLanguage:              f.TargetLanguage,
		TranslationToTargetLanguage: f.TranslationToTargetLanguage,
		CreatedAt:                   createdAt,
	}
}

// MockSpeaker writes a fixed payload instead of calling a TTS service.
type MockSpeaker struct {
	mu    sync.Mutex
	Err   error
	Texts []string
}

// GenerateAudio records text and writes a fake clip to outputFile
func (m *MockSpeaker) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputFile, []byte("mock audio of "+text), 0644)
}

// Count returns how many clips were requested.
func (m *MockSpeaker) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Texts)
}

// Name returns the mock speaker name
func (m *MockSpeaker) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockSpeaker) IsAvailable() error {
	return nil
}
