package report

import (
	"io"

	"github.com/nao1215/iconaudit/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different destinations
// (stdout, file, network) and future formats with the same API. It is
// not io.Writer because we write reports, not raw bytes.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.FaviconReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// Useful for writing to both stdout and a file in one run.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(report *model.FaviconReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
