package resolver

import (
	"context"
	"log/slog"

	"github.com/pmzi/WordSmith/internal/lookup"
	"github.com/pmzi/WordSmith/internal/translation"
	"github.com/pmzi/WordSmith/internal/word"
)

// Store is the cache the resolver reads from and writes to.
type Store interface {
	FindByWord(ctx context.Context, w string) (*word.Record, error)
	Insert(ctx context.Context, f word.Fields) (*word.Record, error)
	Update(ctx context.Context, id int64, f word.Fields) (*word.Record, error)
}

// Outcome describes how a record was produced.
type Outcome int

const (
	// Cached means the stored record was returned untouched.
	Cached Outcome = iota
	// Inserted means the word was new and a record was created.
	Inserted
	// Refreshed means a stored record was overwritten with a fresh translation.
	Refreshed
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Refreshed:
		return "refreshed"
	default:
		return "cached"
	}
}

// Resolver resolves lookups against the cache and the provider.
type Resolver struct {
	store    Store
	provider translation.Provider
	logger   *slog.Logger
	locks    *keyLock
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for cache decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver around the given store and provider.
func New(store Store, provider translation.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
		locks:    newKeyLock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the record for req.Word.
func (r *Resolver) Resolve(ctx context.Context, req lookup.Request) (*word.Record, error) {
	rec, _, err := r.ResolveWithOutcome(ctx, req)
	return rec, err
}

// ResolveWithOutcome is Resolve that also reports whether the record came
// from the cache, was inserted, or was refreshed.
//
// Resolutions of the same word are serialized within this resolver so the
// lookup and the following write cannot interleave. A caller whose ctx ends
// while waiting for the word gets ctx.Err().
func (r *Resolver) ResolveWithOutcome(ctx context.Context, req lookup.Request) (*word.Record, Outcome, error) {
	unlock, err := r.locks.Lock(ctx, req.Word)
	if err != nil {
		return nil, Cached, err
	}
	defer unlock()

	log := r.logger.With(slog.String("word", req.Word), slog.String("mode", req.Mode.String()))

	existing, err := r.store.FindByWord(ctx, req.Word)
	if err != nil {
		return nil, Cached, &StorageError{Op: "find", Word: req.Word, Err: err}
	}

	if existing != nil && !req.BypassCache {
		log.Debug("cache hit", slog.Int64("id", existing.ID))
		return existing, Cached, nil
	}

	if existing == nil {
		log.Debug("cache miss")
	} else {
		log.Debug("cache bypassed", slog.Int64("id", existing.ID))
	}

	res, err := r.translate(ctx, req)
	if err != nil {
		return nil, Cached, &ProviderError{Provider: r.provider.Name(), Word: req.Word, Err: err}
	}

	fields := buildFields(req, res)

	if existing == nil {
		rec, err := r.store.Insert(ctx, fields)
		if err != nil {
			return nil, Cached, &StorageError{Op: "insert", Word: req.Word, Err: err}
		}
		log.Debug("record inserted", slog.Int64("id", rec.ID))
		return rec, Inserted, nil
	}

	rec, err := r.store.Update(ctx, existing.ID, fields)
	if err != nil {
		return nil, Cached, &StorageError{Op: "update", Word: req.Word, Err: err}
	}
	log.Debug("record refreshed", slog.Int64("id", rec.ID))
	return rec, Refreshed, nil
}

func (r *Resolver) translate(ctx context.Context, req lookup.Request) (*translation.Result, error) {
	targetLanguage := word.Deref(req.TargetLanguage)
	if req.Mode == lookup.Contextual {
		return r.provider.TranslateInContext(ctx, req.Word, req.Sentence, targetLanguage)
	}
	return r.provider.Translate(ctx, req.Word, targetLanguage)
}

// buildFields keys the record by the requested word, not the word echoed
// back by the provider.
func buildFields(req lookup.Request, res *translation.Result) word.Fields {
	f := word.Fields{
		Word:           req.Word,
		Pronunciation:  res.Pronunciation,
		Meaning:        res.Meaning,
		Example:        res.Example,
		TargetLanguage: req.TargetLanguage,
	}
	if req.Mode == lookup.Contextual {
		f.Context = word.StringPtr(req.Sentence)
	}
	if req.TargetLanguage != nil {
		f.TranslationToTargetLanguage = res.TargetTranslation
	}
	return f
}
