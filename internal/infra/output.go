package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LineWriter appends newline-terminated records to an output file.
// Safe for concurrent use.
type LineWriter struct {
	mu   sync.Mutex
	out  io.Writer
	path string
}

// NewFileLineWriter opens dir/name behind a lumberjack rotator.
// With fresh set, any file left by a previous run is removed first.
func NewFileLineWriter(dir, name string, maxSizeMB int, fresh bool) (*LineWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if fresh {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to reset %s: %w", path, err)
		}
	}

	return &LineWriter{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB, // Megabytes
			MaxBackups: 3,
		},
		path: path,
	}, nil
}

// NewLineWriter wraps an arbitrary writer (stdout, buffers in tests).
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{out: w}
}

// WriteLine writes line followed by a newline.
func (w *LineWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := io.WriteString(w.out, line+"\n")
	return err
}

// Path is the backing file, empty for plain writers.
func (w *LineWriter) Path() string {
	return w.path
}

// Close closes the underlying writer when it is closable.
func (w *LineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
