// Package export writes crawl results to files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsamuelsen/quote-scraper/internal/domain"
)

// Header is the first row of every export.
var Header = []string{"text", "author", "tags"}

// CSVWriter implements ports.QuoteWriter for a CSV file.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSVWriter creates a writer for path. Defaults logger to slog.Default() if nil.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}

	return &CSVWriter{path: path, logger: logger}
}

// WriteQuotes creates (or truncates) the file and writes the header and one
// row per quote. A file left half-written by an I/O error is removed.
// Implements ports.QuoteWriter.
func (w *CSVWriter) WriteQuotes(ctx context.Context, quotes []domain.Quote) (err error) {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", w.path, closeErr)
		}
		if err != nil {
			_ = os.Remove(w.path)
		}
	}()

	if err = Encode(f, quotes); err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}

	w.logger.InfoContext(ctx, "quotes written",
		slog.String("path", w.path),
		slog.Int("rows", len(quotes)))

	return nil
}

// Encode writes the header and quotes to dst in CSV form.
func Encode(dst io.Writer, quotes []domain.Quote) error {
	cw := csv.NewWriter(dst)

	if err := cw.Write(Header); err != nil {
		return err
	}

	for i := range quotes {
		if err := cw.Write(Row(quotes[i])); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// Row renders one quote as CSV fields. Tags use Go's default formatting of
// a string slice, e.g. "[love life]"; "[]" when there are none.
func Row(q domain.Quote) []string {
	return []string{q.Text, q.Author, fmt.Sprint(q.Tags)}
}
