package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"github.com/rowforgehq/rowforge/internal/textio"
)

// Writer handles streaming CSV output to a file or io.Writer.
// It ensures memory-efficient writing without accumulating rows.
type Writer struct {
	mu        sync.Mutex
	w         *csv.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a new CSV writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: csv.NewWriter(w),
	}
}

// NewFileWriter creates a new CSV writer that writes to a file, creating
// parent directories as needed and gzip-compressing when the path ends in
// .gz. The caller must call Close() when done to ensure the file is
// complete.
func NewFileWriter(path string) (*Writer, error) {
	sink, err := textio.OpenWriter(path)
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:         csv.NewWriter(sink),
		closeFunc: sink.Close,
	}, nil
}

// WriteHeader writes the header row. It does not count toward Count.
func (w *Writer) WriteHeader(columns []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// WriteRow writes a single data row.
func (w *Writer) WriteRow(cells []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.w.Write(cells); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of data rows written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes the CSV buffer and closes the underlying sink if there is
// one. Any error deferred by the csv encoder surfaces here.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.w.Flush()
	flushErr := w.w.Error()

	if w.closeFunc != nil {
		if err := w.closeFunc(); err != nil {
			return err
		}
	}
	return flushErr
}
