package models

import (
	"errors"
	"strings"
)

// Stream is an append-only relation backed by a store entity.
type Stream struct {
	BaseResource
	RelationType string
	State        string
	Store        string
	Topic        string
}

func StreamFromRow(row Row) Stream {
	return Stream{
		BaseResource: baseFromRow(row),
		RelationType: row.Field("type", "relation_type"),
		State:        row.Field("state", "status"),
		Store:        row.Field("store"),
		Topic:        row.Field("topic"),
	}
}

// RelationColumn is one column of a relation's value schema.
type RelationColumn struct {
	Name     string
	DataType string
	NotNull  bool
}

func (c RelationColumn) toSQL() string {
	s := EscapeIdentifier(c.Name) + " " + c.DataType
	if c.NotNull {
		s += " NOT NULL"
	}
	return s
}

func columnsToSQL(cols []RelationColumn) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c.toSQL())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StreamCreateParams configures CREATE STREAM. Exactly one of Columns
// (explicit value schema) or As (a defining SELECT) must be provided.
type StreamCreateParams struct {
	Name    string
	Columns []RelationColumn
	// As is a SELECT statement the stream is derived from.
	As string

	Store       string
	Topic       string
	ValueFormat string
	KeyFormat   string

	Params  map[string]string
	Comment string
}

func (p StreamCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("stream name is required")
	}
	if len(p.Columns) == 0 && p.As == "" {
		return errors.New("stream requires either a column schema or a defining select")
	}
	if len(p.Columns) > 0 && p.As != "" {
		return errors.New("column schema and defining select are mutually exclusive")
	}
	return nil
}

func (p StreamCreateParams) WithClause() WithClause {
	var w WithClause
	w.Set("store", p.Store)
	w.Set("topic", p.Topic)
	w.Set("value.format", p.ValueFormat)
	w.Set("key.format", p.KeyFormat)
	w.Merge(p.Params)
	return w
}

// ColumnsSQL renders the explicit value schema, empty when none was given.
func (p StreamCreateParams) ColumnsSQL() string {
	if len(p.Columns) == 0 {
		return ""
	}
	return columnsToSQL(p.Columns)
}

type StreamUpdateParams struct {
	Comment *string
	Params  map[string]string
}

func (p StreamUpdateParams) Validate() error {
	if p.Comment == nil && len(p.Params) == 0 {
		return errors.New("update requires at least one field")
	}
	return nil
}
