package models

import "errors"

// Changelog is a relation carrying per-key upserts rather than appends.
type Changelog struct {
	BaseResource
	RelationType string
	State        string
	Store        string
	Topic        string
	PrimaryKey   []string
}

func ChangelogFromRow(row Row) Changelog {
	return Changelog{
		BaseResource: baseFromRow(row),
		RelationType: row.Field("type", "relation_type"),
		State:        row.Field("state", "status"),
		Store:        row.Field("store"),
		Topic:        row.Field("topic"),
	}
}

// ChangelogCreateParams configures CREATE CHANGELOG. A primary key is
// mandatory when an explicit column schema is given.
type ChangelogCreateParams struct {
	Name       string
	Columns    []RelationColumn
	PrimaryKey []string
	As         string

	Store       string
	Topic       string
	ValueFormat string
	KeyFormat   string

	Params  map[string]string
	Comment string
}

func (p ChangelogCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("changelog name is required")
	}
	if len(p.Columns) == 0 && p.As == "" {
		return errors.New("changelog requires either a column schema or a defining select")
	}
	if len(p.Columns) > 0 && p.As != "" {
		return errors.New("column schema and defining select are mutually exclusive")
	}
	if len(p.Columns) > 0 && len(p.PrimaryKey) == 0 {
		return errors.New("changelog with a column schema requires a primary key")
	}
	return nil
}

func (p ChangelogCreateParams) WithClause() WithClause {
	var w WithClause
	w.Set("store", p.Store)
	w.Set("topic", p.Topic)
	w.Set("value.format", p.ValueFormat)
	w.Set("key.format", p.KeyFormat)
	w.Merge(p.Params)
	return w
}

func (p ChangelogCreateParams) ColumnsSQL() string {
	if len(p.Columns) == 0 {
		return ""
	}
	return columnsToSQL(p.Columns)
}

type ChangelogUpdateParams struct {
	Comment *string
	Params  map[string]string
}

func (p ChangelogUpdateParams) Validate() error {
	if p.Comment == nil && len(p.Params) == 0 {
		return errors.New("update requires at least one field")
	}
	return nil
}
