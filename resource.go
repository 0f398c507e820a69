package deltastream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// ResourceManager is the contract every full-CRUD manager satisfies. All
// managers share identical control flow, error mapping and naming semantics;
// kind-specific types contribute only statement building and row parsing.
type ResourceManager[T, C, U any] interface {
	// List returns the resources visible under the current scope. Each call
	// issues a fresh round trip; an empty scope yields an empty slice, not
	// an error.
	List(ctx context.Context) ([]T, error)
	// Get fetches one resource by name. Unqualified names resolve against
	// the session context; explicit qualification overrides it.
	Get(ctx context.Context, name string) (T, error)
	// Create validates params locally before any network call, then creates
	// the resource and returns its fetched record.
	Create(ctx context.Context, params C) (T, error)
	// Update applies a partial update: only fields present in params change.
	Update(ctx context.Context, name string, params U) (T, error)
	Delete(ctx context.Context, name string) error
	// DeleteIfExists is Delete with ResourceNotFound suppressed.
	DeleteIfExists(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// qualification controls how an unqualified name resolves against the
// session context.
type qualification int

const (
	// qualifyNone: the name is global (databases, stores, compute pools).
	qualifyNone qualification = iota
	// qualifyDatabase: the name lives under the current database (schemas).
	qualifyDatabase
	// qualifyRelation: the name lives under database.schema (streams,
	// changelogs).
	qualifyRelation
)

// manager implements the shared half of every resource manager. It is
// stateless apart from the client reference.
type manager[T any] struct {
	client *Client

	kind     string // statement keyword, e.g. "STREAM"
	plural   string // LIST keyword, e.g. "STREAMS"
	describe string // DESCRIBE keyword; differs for relations ("RELATION")
	qualify  qualification
	fromRow  func(models.Row) T
}

func (m *manager[T]) exec(ctx context.Context, sql string) error {
	m.client.log.Debug("executing statement", "kind", m.kind, "sql", sql)
	return classifyStatementError(m.client.conn.Exec(ctx, terminate(sql)))
}

func (m *manager[T]) query(ctx context.Context, sql string) (connection.Rows, error) {
	m.client.log.Debug("executing query", "kind", m.kind, "sql", sql)
	rows, err := m.client.conn.Query(ctx, terminate(sql))
	if err != nil {
		return nil, classifyStatementError(err)
	}
	return rows, nil
}

func (m *manager[T]) list(ctx context.Context, scope string) ([]T, error) {
	sql := "LIST " + m.plural
	if scope != "" {
		sql += " " + scope
	}
	rows, err := m.query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rowMaps, err := rowsAsMaps(rows)
	if err != nil {
		return nil, classifyStatementError(err)
	}

	records := make([]T, 0, len(rowMaps))
	for _, row := range rowMaps {
		records = append(records, m.fromRow(row))
	}
	return records, nil
}

func (m *manager[T]) get(ctx context.Context, name string) (T, error) {
	var zero T
	rows, err := m.query(ctx, "DESCRIBE "+m.describe+" "+m.resolveName(name))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return zero, notFoundError(m.kind, name)
		}
		return zero, err
	}
	defer rows.Close()

	row, err := describeAsRow(rows)
	if err != nil {
		return zero, classifyStatementError(err)
	}
	if len(row) == 0 {
		return zero, notFoundError(m.kind, name)
	}
	return m.fromRow(row), nil
}

// create executes the prepared CREATE statement and fetches the resulting
// record so callers get server-populated fields.
func (m *manager[T]) create(ctx context.Context, name, sql string) (T, error) {
	var zero T
	if err := m.exec(ctx, sql); err != nil {
		if errors.Is(err, ErrResourceAlreadyExists) {
			return zero, alreadyExistsError(m.kind, name)
		}
		return zero, err
	}
	return m.get(ctx, name)
}

// update executes the prepared ALTER/UPDATE statements in order and fetches
// the updated record.
func (m *manager[T]) update(ctx context.Context, name string, sqls ...string) (T, error) {
	var zero T
	for _, sql := range sqls {
		if err := m.exec(ctx, sql); err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return zero, notFoundError(m.kind, name)
			}
			return zero, err
		}
	}
	return m.get(ctx, name)
}

func (m *manager[T]) drop(ctx context.Context, name string, ifExists bool) error {
	err := m.exec(ctx, "DROP "+m.kind+" "+m.resolveName(name))
	if err != nil && ifExists && errors.Is(err, ErrResourceNotFound) {
		return nil
	}
	return err
}

func (m *manager[T]) exists(ctx context.Context, name string) (bool, error) {
	_, err := m.get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// resolveName renders a name for use in a statement. Dotted names are taken
// as explicit qualification and escaped part by part; otherwise qualified
// kinds pick up their scope from the session context when one is selected.
func (m *manager[T]) resolveName(name string) string {
	if m.qualify == qualifyNone {
		return models.EscapeIdentifier(name)
	}
	if strings.Contains(name, ".") {
		parts := strings.Split(name, ".")
		escaped := make([]string, len(parts))
		for i, p := range parts {
			escaped[i] = models.EscapeIdentifier(p)
		}
		return strings.Join(escaped, ".")
	}
	session := m.client.Session
	db, schema := session.CurrentDatabase(), session.CurrentSchema()
	switch {
	case m.qualify == qualifyDatabase && db != "":
		return models.EscapeIdentifier(db) + "." + models.EscapeIdentifier(name)
	case m.qualify == qualifyRelation && db != "" && schema != "":
		return models.EscapeIdentifier(db) + "." + models.EscapeIdentifier(schema) + "." + models.EscapeIdentifier(name)
	}
	return models.EscapeIdentifier(name)
}

func terminate(sql string) string {
	if strings.HasSuffix(strings.TrimSpace(sql), ";") {
		return sql
	}
	return sql + ";"
}

// rowsAsMaps drains a result set into one Row per server row, keyed by
// column name, preserving server order.
func rowsAsMaps(rows connection.Rows) ([]models.Row, error) {
	cols := rows.Columns()
	var out []models.Row
	for {
		vals, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		row := models.Row{}
		for i, col := range cols {
			if i < len(vals) {
				row[col.Name] = valueToString(vals[i])
			}
		}
		out = append(out, row)
	}
}

// describeAsRow folds a DESCRIBE result into a single Row. The server
// answers either as property/value pairs or as a one-row result keyed by
// column name; both forms are accepted.
func describeAsRow(rows connection.Rows) (models.Row, error) {
	cols := rows.Columns()
	if len(cols) == 2 &&
		strings.EqualFold(cols[0].Name, "property") &&
		strings.EqualFold(cols[1].Name, "value") {
		row := models.Row{}
		for {
			vals, err := rows.Next()
			if errors.Is(err, io.EOF) {
				return row, nil
			}
			if err != nil {
				return nil, err
			}
			if len(vals) == 2 {
				row[valueToString(vals[0])] = valueToString(vals[1])
			}
		}
	}

	all, err := rowsAsMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return models.Row{}, nil
	}
	return all[0], nil
}

func valueToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
