// Package ports declares the interfaces between the application core and
// its adapters.
package ports

import (
	"context"

	"segscore/app"
	"segscore/domain/core"
)

// ResultStore persists metric run results.
type ResultStore interface {
	// EnsureSchema creates the backing tables if they do not exist.
	EnsureSchema(ctx context.Context) error
	// SaveRun persists a run and its per-pair scores.
	SaveRun(ctx context.Context, run *app.RunResult) error
	// GetRun loads a run by identifier, including its pair scores.
	GetRun(ctx context.Context, id core.RunID) (*app.RunResult, error)
	// ListRuns returns the most recent runs, newest first, without pair
	// scores.
	ListRuns(ctx context.Context, limit int) ([]*app.RunResult, error)
	// Close releases the underlying connections.
	Close() error
}
