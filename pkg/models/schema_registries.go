package models

import (
	"errors"
	"strings"
)

// Schema registry types accepted by the control plane.
const (
	RegistryTypeConfluent      = "CONFLUENT"
	RegistryTypeConfluentCloud = "CONFLUENT_CLOUD"
)

// SchemaRegistry links serialized record schemas to the stores that use them.
type SchemaRegistry struct {
	BaseResource
	RegistryType string
	URIs         string
	State        string
}

func SchemaRegistryFromRow(row Row) SchemaRegistry {
	return SchemaRegistry{
		BaseResource: baseFromRow(row),
		RegistryType: row.Field("type", "registry_type"),
		URIs:         row.Field("uris", "uri"),
		State:        row.Field("state", "status"),
	}
}

type SchemaRegistryCreateParams struct {
	Name         string
	RegistryType string
	URIs         string
	Username     string
	Password     string
	Properties   map[string]string
	Comment      string
}

func (p SchemaRegistryCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("schema registry name is required")
	}
	if p.RegistryType == "" {
		return errors.New("schema registry type is required")
	}
	if p.URIs == "" {
		return errors.New("schema registry uris are required")
	}
	return nil
}

func (p SchemaRegistryCreateParams) WithClause() WithClause {
	var w WithClause
	w.Set("type", strings.ToUpper(p.RegistryType))
	w.Set("uris", p.URIs)
	w.Set("username", p.Username)
	w.Set("password", p.Password)
	w.Merge(p.Properties)
	return w
}

type SchemaRegistryUpdateParams struct {
	Properties map[string]string
	Comment    *string
}

func (p SchemaRegistryUpdateParams) Validate() error {
	if len(p.Properties) == 0 && p.Comment == nil {
		return errors.New("update requires at least one field")
	}
	return nil
}

func (p SchemaRegistryUpdateParams) WithClause() WithClause {
	var w WithClause
	w.Merge(p.Properties)
	return w
}
