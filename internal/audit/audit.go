// Package audit records the outcome of every validator check.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Check describes one message-bearing interaction after it was answered.
type Check struct {
	RequesterFID uint64
	Custody      string
	Validator    bool
	Owners       int
	OwnerFIDs    []uint64
	Outcome      string
	At           time.Time
}

// Recorder stores checks. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, check Check) error
}

// LoggerRecorder writes checks to the structured logger.
type LoggerRecorder struct {
	logger *slog.Logger
}

// NewLoggerRecorder constructs a logging recorder.
func NewLoggerRecorder(logger *slog.Logger) *LoggerRecorder {
	return &LoggerRecorder{logger: logger}
}

// Record writes the check at info level.
func (r *LoggerRecorder) Record(_ context.Context, check Check) error {
	if r == nil || r.logger == nil {
		return nil
	}
	r.logger.Info("validator check",
		slog.Uint64("fid", check.RequesterFID),
		slog.String("custody", check.Custody),
		slog.Bool("validator", check.Validator),
		slog.Int("owners", check.Owners),
		slog.Any("owner_fids", check.OwnerFIDs),
		slog.String("outcome", check.Outcome),
	)
	return nil
}
