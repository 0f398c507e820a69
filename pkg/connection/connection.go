// Package connection implements the transport layer of the DeltaStream SDK:
// it submits SQL statements to the control plane and exposes result sets as
// lazily consumed rows.
//
// Resource managers in the root package depend only on the Connection
// interface, so any implementation (including test doubles) can be swapped in.
package connection

import (
	"context"
	"io"
)

// Connection executes statements against the DeltaStream control plane.
// Implementations must be safe for concurrent use.
type Connection interface {
	// Exec submits a statement and discards any result set.
	Exec(ctx context.Context, sql string) error
	// Query submits a statement and returns its result set. Rows are
	// consumed lazily; each call re-executes the statement.
	Query(ctx context.Context, sql string) (Rows, error)
	// Version reports the server version string.
	Version(ctx context.Context) (string, error)
	Close() error
}

// Column describes one column of a result set.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Rows is a finite, forward-only result set. Next returns io.EOF once the
// set is exhausted.
type Rows interface {
	Columns() []Column
	Next() ([]any, error)
	Close() error
}

// emptyRows is returned for statements that complete without a result set.
type emptyRows struct{}

func (emptyRows) Columns() []Column    { return nil }
func (emptyRows) Next() ([]any, error) { return nil, io.EOF }
func (emptyRows) Close() error         { return nil }
