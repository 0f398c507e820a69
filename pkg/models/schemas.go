package models

import "errors"

// Schema is a namespace within a database.
type Schema struct {
	BaseResource
	DatabaseName string
	IsDefault    bool
}

func SchemaFromRow(row Row) Schema {
	return Schema{
		BaseResource: baseFromRow(row),
		DatabaseName: row.Field("database", "database_name"),
		IsDefault:    row.FieldBool("is_default", "default"),
	}
}

type SchemaCreateParams struct {
	Name string
	// Database the schema belongs to; the session's current database when
	// empty.
	Database string
	Comment  string
}

func (p SchemaCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("schema name is required")
	}
	return nil
}

type SchemaUpdateParams struct {
	Comment *string
}

func (p SchemaUpdateParams) Validate() error {
	if p.Comment == nil {
		return errors.New("update requires at least one field")
	}
	return nil
}
