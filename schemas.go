package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// SchemaManager manages schemas within a database. Unqualified names resolve
// against the session's current database.
type SchemaManager struct {
	manager[models.Schema]
}

func newSchemaManager(c *Client) *SchemaManager {
	return &SchemaManager{manager[models.Schema]{
		client:   c,
		kind:     "SCHEMA",
		plural:   "SCHEMAS",
		describe: "SCHEMA",
		qualify:  qualifyDatabase,
		fromRow:  models.SchemaFromRow,
	}}
}

// List returns the schemas of the session's current database.
func (m *SchemaManager) List(ctx context.Context) ([]models.Schema, error) {
	return m.list(ctx, "")
}

// ListIn returns the schemas of a specific database regardless of the
// session selection.
func (m *SchemaManager) ListIn(ctx context.Context, database string) ([]models.Schema, error) {
	return m.list(ctx, "IN DATABASE "+models.EscapeIdentifier(database))
}

func (m *SchemaManager) Get(ctx context.Context, name string) (models.Schema, error) {
	return m.get(ctx, name)
}

func (m *SchemaManager) Create(ctx context.Context, params models.SchemaCreateParams) (models.Schema, error) {
	if err := params.Validate(); err != nil {
		return models.Schema{}, invalidConfiguration(err)
	}
	name := params.Name
	if params.Database != "" {
		name = params.Database + "." + params.Name
	}
	sql := "CREATE SCHEMA " + m.resolveName(name)
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	return m.create(ctx, name, sql)
}

func (m *SchemaManager) Update(ctx context.Context, name string, params models.SchemaUpdateParams) (models.Schema, error) {
	if err := params.Validate(); err != nil {
		return models.Schema{}, invalidConfiguration(err)
	}
	sql := "ALTER SCHEMA " + m.resolveName(name) + " SET COMMENT " + models.EscapeString(*params.Comment)
	return m.update(ctx, name, sql)
}

func (m *SchemaManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *SchemaManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *SchemaManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

var _ ResourceManager[models.Schema, models.SchemaCreateParams, models.SchemaUpdateParams] = (*SchemaManager)(nil)
