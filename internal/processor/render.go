package processor

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pmzi/WordSmith/internal/resolver"
	"github.com/pmzi/WordSmith/internal/word"
)

const maxMeaningWidth = 60

func renderRecord(w io.Writer, rec *word.Record, outcome resolver.Outcome) {
	header := rec.Word
	if outcome == resolver.Cached {
		header += " (cached)"
	}
	fmt.Fprintln(w, header)

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "  Pronunciation:\t%s\n", rec.Pronunciation)
	fmt.Fprintf(tw, "  Meaning:\t%s\n", rec.Meaning)
	fmt.Fprintf(tw, "  Example:\t%s\n", rec.Example)
	if rec.HasContext() {
		fmt.Fprintf(tw, "  Context:\t%s\n", *rec.Context)
	}
	if rec.TargetLanguage != nil && rec.TranslationToTargetLanguage != nil {
		fmt.Fprintf(tw, "  %s:\t%s\n", *rec.TargetLanguage, *rec.TranslationToTargetLanguage)
	}
	tw.Flush()
}

func renderTable(w io.Writer, records []word.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWORD\tMEANING\tADDED")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			rec.ID, rec.Word, truncate(rec.Meaning, maxMeaningWidth), rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func renderSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n=== Batch Summary ===\n")
	fmt.Fprintf(w, "Total lookups: %d\n", s.Total)
	fmt.Fprintf(w, "Cached: %d\n", s.Cached)
	fmt.Fprintf(w, "Translated: %d\n", s.Inserted+s.Refreshed)
	if s.Errors > 0 {
		fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
	fmt.Fprintf(w, "=====================\n")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
