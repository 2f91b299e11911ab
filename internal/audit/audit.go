// Package audit records one row per initialization attempt: which files
// were processed, whether it succeeded, and how long it took. This has no
// counterpart in the original tool, which never persisted a run history;
// it exists here because a batch initializer invoked repeatedly against a
// changing input set is exactly the kind of thing worth an audit trail.
package audit

import (
	"context"
	"time"
)

// Record is one initialization attempt.
type Record struct {
	RunID      string
	Files      []string
	Succeeded  bool
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
	GateCount  int
	TopEvents  int
	FaultTrees int
}

// Sink persists initialization records. The zero-value NopSink discards
// everything, matching this package's "audit is optional" stance.
type Sink interface {
	Record(ctx context.Context, r Record) error
	Close() error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) Record(context.Context, Record) error { return nil }
func (NopSink) Close() error                          { return nil }
