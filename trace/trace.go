// Package trace records every outgoing completion for offline inspection.
//
// A Tracer is opened once per process run and closed on shutdown. Records are
// numbered sequentially within the run.
package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"cotchat/model"
)

const (
	KindNone   = "none"
	KindFiles  = "files"
	KindSQLite = "sqlite"
)

// Record is one completion call: the exact outgoing messages and the answer.
type Record struct {
	RunID    string
	Seq      int
	Time     time.Time
	Model    string
	Messages []model.Message
	Answer   string
	Err      string
}

// Tracer receives completion records.
type Tracer interface {
	Record(ctx context.Context, rec Record) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(context.Context, Record) error { return nil }
func (Nop) Close() error                         { return nil }

// Open creates the tracer selected by kind, storing its output under dir.
func Open(kind, dir string) (Tracer, error) {
	switch kind {
	case "", KindNone:
		return Nop{}, nil
	case KindFiles:
		return NewFileTracer(dir)
	case KindSQLite:
		return NewSQLiteTracer(dir)
	default:
		return nil, fmt.Errorf("unknown trace backend: %s", kind)
	}
}

// newRunID names a process run so that sequences from different runs never collide.
func newRunID() string {
	return time.Now().Format("20060102-150405") + "-" + uuid.New().String()[:8]
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// encodeMessages renders the message list the way it went over the wire.
func encodeMessages(messages []model.Message) ([]byte, error) {
	wire := make([]wireMessage, len(messages))
	for i, m := range messages {
		wire[i] = wireMessage{Role: string(m.Role), Content: m.Content}
	}
	return json.Marshal(wire)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	return nil
}
