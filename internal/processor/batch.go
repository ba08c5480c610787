package processor

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pmzi/WordSmith/internal/batch"
	"github.com/pmzi/WordSmith/internal/resolver"
	"github.com/pmzi/WordSmith/internal/word"
)

// Summary counts the results of a batch run.
type Summary struct {
	Total     int
	Cached    int
	Inserted  int
	Refreshed int
	Errors    int
}

type batchResult struct {
	entry   batch.Entry
	record  *word.Record
	outcome resolver.Outcome
	clip    string
	err     error
}

// ProcessBatch resolves every entry of a batch file. Failed lines are
// reported and counted without stopping the run. Results are printed in
// file order.
func (p *Processor) ProcessBatch(ctx context.Context, path string) (Summary, error) {
	entries, err := batch.ReadBatchFile(path)
	if err != nil {
		return Summary{}, err
	}

	results := make([]batchResult, len(entries))

	g := new(errgroup.Group)
	g.SetLimit(p.opts.Workers)

	for i, entry := range entries {
		results[i].entry = entry

		if ctx.Err() != nil {
			results[i].err = ctx.Err()
			continue
		}

		g.Go(func() error {
			targetLanguage := entry.TargetLanguage
			if targetLanguage == "" {
				targetLanguage = p.opts.TargetLanguage
			}

			rec, outcome, err := p.resolve(ctx, entry.Input, targetLanguage)
			results[i].record = rec
			results[i].outcome = outcome
			results[i].err = err

			if err != nil {
				p.logger.Warn("batch lookup failed",
					slog.Int("line", entry.Line),
					slog.String("input", entry.Input),
					slog.Any("error", err))
				return nil
			}

			results[i].clip = p.speak(ctx, rec.Word)
			return nil
		})
	}
	g.Wait()

	summary := Summary{Total: len(entries)}
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(p.opts.Out)
		}
		if res.err != nil {
			summary.Errors++
			fmt.Fprintf(p.opts.ErrOut, "Error on line %d (%s): %v\n", res.entry.Line, res.entry.Input, res.err)
			continue
		}

		switch res.outcome {
		case resolver.Cached:
			summary.Cached++
		case resolver.Inserted:
			summary.Inserted++
		case resolver.Refreshed:
			summary.Refreshed++
		}
		renderRecord(p.opts.Out, res.record, res.outcome)
		if res.clip != "" {
			fmt.Fprintf(p.opts.Out, "  Audio: %s\n", res.clip)
		}
	}

	renderSummary(p.opts.Out, summary)

	return summary, ctx.Err()
}
