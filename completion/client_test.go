package completion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cotchat/model"
	"cotchat/provider/testutil"
	"cotchat/trace"
)

type recordingTracer struct {
	records []trace.Record
	err     error
}

func (r *recordingTracer) Record(_ context.Context, rec trace.Record) error {
	r.records = append(r.records, rec)
	return r.err
}

func (r *recordingTracer) Close() error { return nil }

func TestBuildMessages(t *testing.T) {
	history := testutil.TestMessages()

	msgs := BuildMessages(history, "new prompt", "system rules")
	if len(msgs) != len(history)+2 {
		t.Fatalf("expected %d messages, got %d", len(history)+2, len(msgs))
	}
	if sys := msgs[len(history)]; sys.Role != model.RoleSystem || sys.Content != "system rules" {
		t.Errorf("system message misplaced: %+v", sys)
	}
	if last := msgs[len(msgs)-1]; last.Role != model.RoleUser || last.Content != "new prompt" {
		t.Errorf("prompt misplaced: %+v", last)
	}

	msgs = BuildMessages(history, "new prompt", "")
	if len(msgs) != len(history)+1 {
		t.Errorf("empty system prompt should be skipped, got %d messages", len(msgs))
	}

	// The caller's history must not be touched.
	if len(history) != 3 || history[2].Content != "Can you help me with a task?" {
		t.Error("history was modified")
	}
}

func TestCompleteSuccess(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	mock.CompleteFunc = func(ctx context.Context, req model.Request) (string, error) {
		return "  Paris \n", nil
	}
	tracer := &recordingTracer{}
	c := NewClient(mock, WithTracer(tracer))

	text, err := c.Complete(context.Background(), Call{Prompt: "capital?", SystemPrompt: "sys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Paris" {
		t.Errorf("got %q, want trimmed %q", text, "Paris")
	}

	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Model != "gpt-4o-mini" {
		t.Errorf("model should default to provider model, got %q", reqs[0].Model)
	}
	if reqs[0].Sampling != model.DefaultSampling() {
		t.Errorf("unexpected sampling: %+v", reqs[0].Sampling)
	}

	if len(tracer.records) != 1 {
		t.Fatalf("expected 1 trace record, got %d", len(tracer.records))
	}
	if tracer.records[0].Answer != "Paris" || len(tracer.records[0].Messages) != 2 {
		t.Errorf("unexpected trace record: %+v", tracer.records[0])
	}
}

func TestCompleteModelOverride(t *testing.T) {
	mock := testutil.NewMockProvider("default")
	c := NewClient(mock)

	if _, err := c.Complete(context.Background(), Call{Prompt: "hi", Model: "other"}); err != nil {
		t.Fatal(err)
	}
	if got := mock.Requests()[0].Model; got != "other" {
		t.Errorf("model: got %q, want %q", got, "other")
	}
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{name: "blank text", text: "   "},
		{name: "no content", err: model.ErrNoContent},
		{name: "wrapped no content", err: fmt.Errorf("sdk: %w", model.ErrNoContent)},
		{name: "transport error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider("m")
			mock.CompleteFunc = func(ctx context.Context, req model.Request) (string, error) {
				return tt.text, tt.err
			}
			tracer := &recordingTracer{}
			c := NewClient(mock, WithTracer(tracer), WithProviderName("mock"))

			text, err := c.Complete(context.Background(), Call{Prompt: "q"})
			if text != "" {
				t.Errorf("expected no text, got %q", text)
			}
			if !IsFailure(err) {
				t.Fatalf("expected a completion failure, got %v", err)
			}

			var pe *ProviderError
			isProvider := errors.As(err, &pe)
			isEmpty := errors.Is(err, ErrEmptyResponse)
			if tt.err != nil && !errors.Is(tt.err, model.ErrNoContent) {
				if !isProvider || pe.Provider != "mock" {
					t.Errorf("expected ProviderError from mock, got %v", err)
				}
				if !errors.Is(err, tt.err) {
					t.Error("ProviderError should unwrap to the cause")
				}
			} else if !isEmpty {
				t.Errorf("expected ErrEmptyResponse, got %v", err)
			}

			if len(tracer.records) != 1 || tracer.records[0].Err == "" {
				t.Errorf("failed call should be traced with its error: %+v", tracer.records)
			}
		})
	}
}

func TestCompleteTracerFailureIgnored(t *testing.T) {
	mock := testutil.NewMockProvider("m")
	c := NewClient(mock, WithTracer(&recordingTracer{err: errors.New("disk full")}))

	text, err := c.Complete(context.Background(), Call{Prompt: "q"})
	if err != nil {
		t.Fatalf("tracer failure leaked into the call: %v", err)
	}
	if text != "Mock response" {
		t.Errorf("got %q", text)
	}
}

func TestIsFailure(t *testing.T) {
	if IsFailure(nil) {
		t.Error("nil is not a failure")
	}
	if IsFailure(errors.New("other")) {
		t.Error("unrelated errors are not completion failures")
	}
	if !IsFailure(fmt.Errorf("wrapped: %w", ErrEmptyResponse)) {
		t.Error("wrapped ErrEmptyResponse should count")
	}
}
