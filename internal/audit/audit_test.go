package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type failingRecorder struct{ err error }

func (f failingRecorder) Record(context.Context, Check) error { return f.err }

type captureRecorder struct{ checks []Check }

func (c *captureRecorder) Record(_ context.Context, check Check) error {
	c.checks = append(c.checks, check)
	return nil
}

func TestLoggerRecorder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := NewLoggerRecorder(logger)

	if err := r.Record(context.Background(), Check{RequesterFID: 42, Custody: "0xA", Outcome: "browse", OwnerFIDs: []uint64{7}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"fid":42`, `"custody":"0xA"`, `"outcome":"browse"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}

	var nilRecorder *LoggerRecorder
	if err := nilRecorder.Record(context.Background(), Check{}); err != nil {
		t.Fatalf("nil recorder: %v", err)
	}
}

func TestMultiCallsEveryRecorder(t *testing.T) {
	boom := errors.New("boom")
	capture := &captureRecorder{}
	m := Multi{failingRecorder{err: boom}, nil, capture}

	err := m.Record(context.Background(), Check{RequesterFID: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(capture.checks) != 1 {
		t.Fatalf("expected later recorder to run, got %d checks", len(capture.checks))
	}
}
