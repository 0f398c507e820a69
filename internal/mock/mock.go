// Package mock provides a scripted Connection for tests. Rules match
// statements by substring; unmatched statements succeed with an empty
// result, so session USE statements work without setup.
package mock

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
)

type rule struct {
	substr  string
	columns []connection.Column
	rows    [][]any
	err     error
}

// Connection is a scripted connection.Connection. The zero value is usable.
type Connection struct {
	mu         sync.Mutex
	statements []string
	rules      []rule
	versionStr string
	closed     bool
}

var _ connection.Connection = (*Connection)(nil)

// OnRows scripts a result set for statements containing substr.
func (c *Connection) OnRows(substr string, columns []connection.Column, rows ...[]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, rule{substr: substr, columns: columns, rows: rows})
}

// OnErr scripts a failure for statements containing substr.
func (c *Connection) OnErr(substr string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, rule{substr: substr, err: err})
}

// OnDescribe scripts a property/value result, the shape DESCRIBE statements
// answer with.
func (c *Connection) OnDescribe(substr string, props map[string]string) {
	cols := []connection.Column{
		{Name: "property", Type: "VARCHAR"},
		{Name: "value", Type: "VARCHAR"},
	}
	rows := make([][]any, 0, len(props))
	for k, v := range props {
		rows = append(rows, []any{k, v})
	}
	c.OnRows(substr, cols, rows...)
}

// SetVersion scripts the Version response.
func (c *Connection) SetVersion(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versionStr = v
}

// Statements returns every statement executed so far, in order.
func (c *Connection) Statements() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.statements))
	copy(out, c.statements)
	return out
}

// match records the statement and returns the newest matching rule.
func (c *Connection) match(sql string) *rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = append(c.statements, sql)
	for i := len(c.rules) - 1; i >= 0; i-- {
		if strings.Contains(sql, c.rules[i].substr) {
			return &c.rules[i]
		}
	}
	return nil
}

func (c *Connection) Exec(ctx context.Context, sql string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r := c.match(sql); r != nil {
		return r.err
	}
	return nil
}

func (c *Connection) Query(ctx context.Context, sql string) (connection.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := c.match(sql)
	if r == nil {
		return &sliceRows{}, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	return &sliceRows{columns: r.columns, rows: r.rows}, nil
}

func (c *Connection) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versionStr == "" {
		return "0.0.0-mock", nil
	}
	return c.versionStr, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type sliceRows struct {
	columns []connection.Column
	rows    [][]any
	idx     int
}

func (r *sliceRows) Columns() []connection.Column { return r.columns }

func (r *sliceRows) Next() ([]any, error) {
	if r.idx >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.idx]
	r.idx++
	return row, nil
}

func (r *sliceRows) Close() error { return nil }
