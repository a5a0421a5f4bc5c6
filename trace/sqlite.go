package trace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"cotchat/model"
)

// SQLiteTracer stores records in <dir>/traces.db, keyed by run and sequence.
type SQLiteTracer struct {
	db    *sql.DB
	runID string

	mu  sync.Mutex
	seq int
}

func NewSQLiteTracer(dir string) (*SQLiteTracer, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dir, "traces.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t := &SQLiteTracer{db: db, runID: newRunID()}
	if err := t.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return t, nil
}

func (t *SQLiteTracer) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS traces (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		model TEXT NOT NULL,
		messages TEXT NOT NULL,
		answer TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_traces_created ON traces(created_at);
	`
	_, err := t.db.Exec(schema)
	return err
}

// RunID identifies the rows written by this tracer.
func (t *SQLiteTracer) RunID() string {
	return t.runID
}

func (t *SQLiteTracer) Record(ctx context.Context, rec Record) error {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	msgs, err := encodeMessages(rec.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	_, err = t.db.ExecContext(ctx, `
		INSERT INTO traces (run_id, seq, created_at, model, messages, answer, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.runID, seq, rec.Time, rec.Model, string(msgs), rec.Answer, rec.Err,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trace: %w", err)
	}
	return nil
}

// Records returns the rows of one run in sequence order.
func (t *SQLiteTracer) Records(ctx context.Context, runID string) ([]Record, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT run_id, seq, created_at, model, messages, answer, error
		FROM traces WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query traces: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec  Record
			msgs string
		)
		if err := rows.Scan(&rec.RunID, &rec.Seq, &rec.Time, &rec.Model, &msgs, &rec.Answer, &rec.Err); err != nil {
			return nil, fmt.Errorf("failed to scan trace: %w", err)
		}
		var wire []wireMessage
		if err := json.Unmarshal([]byte(msgs), &wire); err != nil {
			return nil, fmt.Errorf("failed to decode messages: %w", err)
		}
		for _, w := range wire {
			rec.Messages = append(rec.Messages, model.Message{Role: model.Role(w.Role), Content: w.Content})
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (t *SQLiteTracer) Close() error {
	return t.db.Close()
}
