package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileTracer writes one request_<n>.txt file per completion into a
// directory dedicated to the current run.
type FileTracer struct {
	dir   string
	runID string

	mu  sync.Mutex
	seq int
}

// NewFileTracer creates <baseDir>/<run-id>/ for this run.
func NewFileTracer(baseDir string) (*FileTracer, error) {
	runID := newRunID()
	dir := filepath.Join(baseDir, runID)

	// 0700 - traces contain full conversations
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	return &FileTracer{dir: dir, runID: runID}, nil
}

// Dir returns the directory holding this run's trace files.
func (t *FileTracer) Dir() string {
	return t.dir
}

func (t *FileTracer) Record(ctx context.Context, rec Record) error {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	msgs, err := encodeMessages(rec.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}
	answer, err := json.Marshal(rec.Answer)
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("Messages:\n")
	buf.Write(msgs)
	buf.WriteString("\n\nAnswer:\n")
	buf.Write(answer)
	if rec.Err != "" {
		buf.WriteString("\n\nError:\n")
		buf.WriteString(rec.Err)
	}
	buf.WriteString("\n")

	path := filepath.Join(t.dir, fmt.Sprintf("request_%d.txt", seq))
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	return nil
}

func (t *FileTracer) Close() error {
	return nil
}
