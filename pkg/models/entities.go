package models

import "errors"

// Entity is a physical object in a store, e.g. a Kafka topic or a Kinesis
// stream. Entity names may be hierarchical ("catalog.schema") and are
// treated as a single identifier.
type Entity struct {
	Name   string
	IsLeaf bool
}

func EntityFromRow(row Row) Entity {
	return Entity{
		Name:   row.Field("name", "entity_name"),
		IsLeaf: row.FieldBool("is_leaf", "leaf"),
	}
}

// EntityCreateParams configures CREATE ENTITY. Params pass through to the
// store, e.g. "topic.partitions" or "kinesis.shards".
type EntityCreateParams struct {
	Name string
	// Store the entity is created in; the session's current store when empty.
	Store  string
	Params map[string]string
}

func (p EntityCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("entity name is required")
	}
	return nil
}

func (p EntityCreateParams) WithClause() WithClause {
	var w WithClause
	w.Merge(p.Params)
	return w
}

// EntityInsertParams configures INSERT INTO ENTITY. Each value is written
// with its own statement; maps and slices are JSON-encoded, strings are sent
// as-is.
type EntityInsertParams struct {
	Name   string
	Store  string
	Values []any
	Params map[string]string
}

func (p EntityInsertParams) Validate() error {
	if p.Name == "" {
		return errors.New("entity name is required")
	}
	if len(p.Values) == 0 {
		return errors.New("insert requires at least one value")
	}
	return nil
}

func (p EntityInsertParams) WithClause() WithClause {
	var w WithClause
	w.Merge(p.Params)
	return w
}
