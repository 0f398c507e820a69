package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// SchemaRegistryManager manages schema registries, which stores consult to
// resolve serialized record schemas.
type SchemaRegistryManager struct {
	manager[models.SchemaRegistry]
}

func newSchemaRegistryManager(c *Client) *SchemaRegistryManager {
	return &SchemaRegistryManager{manager[models.SchemaRegistry]{
		client:   c,
		kind:     "SCHEMA_REGISTRY",
		plural:   "SCHEMA_REGISTRIES",
		describe: "SCHEMA_REGISTRY",
		fromRow:  models.SchemaRegistryFromRow,
	}}
}

func (m *SchemaRegistryManager) List(ctx context.Context) ([]models.SchemaRegistry, error) {
	return m.list(ctx, "")
}

func (m *SchemaRegistryManager) Get(ctx context.Context, name string) (models.SchemaRegistry, error) {
	return m.get(ctx, name)
}

func (m *SchemaRegistryManager) Create(ctx context.Context, params models.SchemaRegistryCreateParams) (models.SchemaRegistry, error) {
	if err := params.Validate(); err != nil {
		return models.SchemaRegistry{}, invalidConfiguration(err)
	}
	sql := "CREATE SCHEMA_REGISTRY " + m.resolveName(params.Name) + " " + params.WithClause().ToSQL()
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	return m.create(ctx, params.Name, sql)
}

func (m *SchemaRegistryManager) Update(ctx context.Context, name string, params models.SchemaRegistryUpdateParams) (models.SchemaRegistry, error) {
	if err := params.Validate(); err != nil {
		return models.SchemaRegistry{}, invalidConfiguration(err)
	}
	var sqls []string
	if w := params.WithClause().ToSQL(); w != "" {
		sqls = append(sqls, "UPDATE SCHEMA_REGISTRY "+m.resolveName(name)+" "+w)
	}
	if params.Comment != nil {
		sqls = append(sqls, "ALTER SCHEMA_REGISTRY "+m.resolveName(name)+" SET COMMENT "+models.EscapeString(*params.Comment))
	}
	return m.update(ctx, name, sqls...)
}

func (m *SchemaRegistryManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *SchemaRegistryManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *SchemaRegistryManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

var _ ResourceManager[models.SchemaRegistry, models.SchemaRegistryCreateParams, models.SchemaRegistryUpdateParams] = (*SchemaRegistryManager)(nil)
