package utils

import (
	"context"
	"time"
)

// DBTimeout bounds a single repository statement. Every query here is a
// single-row read or a one-statement JSONB write, so a call running longer
// than this is a stuck connection, not a slow query.
const DBTimeout = 5 * time.Second

// WithDBTimeout derives the context repository calls run under. A sooner
// deadline already on ctx still wins.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DBTimeout)
}
