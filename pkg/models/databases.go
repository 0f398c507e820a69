package models

import "errors"

// Database is a top-level namespace for schemas and relations.
type Database struct {
	BaseResource
	IsDefault bool
}

func DatabaseFromRow(row Row) Database {
	return Database{
		BaseResource: baseFromRow(row),
		IsDefault:    row.FieldBool("is_default", "default"),
	}
}

type DatabaseCreateParams struct {
	Name    string
	Comment string
}

func (p DatabaseCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("database name is required")
	}
	return nil
}

// DatabaseUpdateParams is a partial update: nil fields are left untouched.
type DatabaseUpdateParams struct {
	Comment *string
}

func (p DatabaseUpdateParams) Validate() error {
	if p.Comment == nil {
		return errors.New("update requires at least one field")
	}
	return nil
}
