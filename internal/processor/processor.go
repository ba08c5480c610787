package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pmzi/WordSmith/internal/anki"
	"github.com/pmzi/WordSmith/internal/audio"
	"github.com/pmzi/WordSmith/internal/lookup"
	"github.com/pmzi/WordSmith/internal/resolver"
	"github.com/pmzi/WordSmith/internal/store"
	"github.com/pmzi/WordSmith/internal/translation"
	"github.com/pmzi/WordSmith/internal/word"
)

// Store is the cache used by the processor.
type Store interface {
	resolver.Store
	FindByID(ctx context.Context, id int64) (*word.Record, error)
	ListAll(ctx context.Context) ([]word.Record, error)
	Delete(ctx context.Context, id int64) error
}

// Options configures a Processor.
type Options struct {
	BypassCache    bool
	TargetLanguage string
	StrictMarkers  bool

	// Timeout bounds each resolution. Zero means no limit.
	Timeout time.Duration
	// Workers is the batch concurrency.
	Workers int

	// Speaker, when set, saves a pronunciation clip of every resolved
	// word into AudioDir.
	Speaker     audio.Provider
	AudioDir    string
	AudioFormat string

	Out    io.Writer
	ErrOut io.Writer
	Logger *slog.Logger
}

// Processor handles the main lookup logic
type Processor struct {
	store    Store
	resolver *resolver.Resolver
	opts     Options
	logger   *slog.Logger
}

// NewProcessor creates a new processor
func NewProcessor(s Store, provider translation.Provider, opts Options) *Processor {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.AudioFormat == "" {
		opts.AudioFormat = "mp3"
	}

	return &Processor{
		store:    s,
		resolver: resolver.New(s, provider, resolver.WithLogger(opts.Logger)),
		opts:     opts,
		logger:   opts.Logger,
	}
}

// ProcessInput resolves one raw lookup and prints the record.
func (p *Processor) ProcessInput(ctx context.Context, raw string) error {
	rec, outcome, err := p.resolve(ctx, raw, p.opts.TargetLanguage)
	if err != nil {
		return err
	}

	renderRecord(p.opts.Out, rec, outcome)
	if clip := p.speak(ctx, rec.Word); clip != "" {
		fmt.Fprintf(p.opts.Out, "  Audio: %s\n", clip)
	}
	return nil
}

// speak makes sure a pronunciation clip exists for w and returns its path.
// Audio is best effort, so failures are logged and yield "".
func (p *Processor) speak(ctx context.Context, w string) string {
	if p.opts.Speaker == nil || p.opts.AudioDir == "" {
		return ""
	}

	clip := audio.PathFor(p.opts.AudioDir, w, p.opts.AudioFormat)
	if _, err := os.Stat(clip); err == nil && !p.opts.BypassCache {
		return clip
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	if err := p.opts.Speaker.GenerateAudio(ctx, w, clip); err != nil {
		p.logger.Warn("audio generation failed",
			slog.String("word", w),
			slog.String("provider", p.opts.Speaker.Name()),
			slog.Any("error", err))
		return ""
	}
	return clip
}

func (p *Processor) resolve(ctx context.Context, raw, targetLanguage string) (*word.Record, resolver.Outcome, error) {
	if err := lookup.Validate(raw); err != nil {
		return nil, resolver.Cached, err
	}

	req, err := lookup.Classify(raw, lookup.Options{
		BypassCache:    p.opts.BypassCache,
		TargetLanguage: targetLanguage,
		StrictMarkers:  p.opts.StrictMarkers,
	})
	if err != nil {
		return nil, resolver.Cached, err
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	return p.resolver.ResolveWithOutcome(ctx, req)
}

// ListWords prints every cached word.
func (p *Processor) ListWords(ctx context.Context) error {
	records, err := p.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list words: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(p.opts.Out, "No cached words yet.")
		return nil
	}

	return renderTable(p.opts.Out, records)
}

// DeleteWord removes one cached record by id.
func (p *Processor) DeleteWord(ctx context.Context, id int64) error {
	rec, err := p.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no cached word with id %d", id)
	}
	if err != nil {
		return fmt.Errorf("failed to find word %d: %w", id, err)
	}

	if err := p.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete word %d: %w", id, err)
	}

	p.logger.Debug("record deleted", slog.Int64("id", id), slog.String("word", rec.Word))
	fmt.Fprintf(p.opts.Out, "Deleted %q (id %d)\n", rec.Word, id)
	return nil
}

// ExportAnki writes every cached word to an Anki-importable CSV file and
// returns how many cards were written.
func (p *Processor) ExportAnki(ctx context.Context, path string) (int, error) {
	records, err := p.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list words: %w", err)
	}

	options := anki.DefaultGeneratorOptions()
	options.OutputPath = path
	options.MediaFolder = p.opts.AudioDir
	options.AudioFormat = p.opts.AudioFormat
	gen := anki.NewGenerator(options)
	for _, rec := range records {
		gen.AddRecord(rec)
	}

	if err := gen.GenerateCSV(); err != nil {
		return 0, err
	}

	stats := gen.Stats()
	fmt.Fprintf(p.opts.Out, "Exported %d cards to %s (%d with context, %d with translation, %d with audio)\n",
		stats.Total, path, stats.WithContext, stats.WithTranslation, stats.WithAudio)
	if stats.WithAudio > 0 {
		fmt.Fprintf(p.opts.Out, "Copy the clips from %s into Anki's collection.media folder\n", p.opts.AudioDir)
	}

	return stats.Total, nil
}
