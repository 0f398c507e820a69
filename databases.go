package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// DatabaseManager manages databases, the top-level namespaces relations
// live in.
type DatabaseManager struct {
	manager[models.Database]
}

func newDatabaseManager(c *Client) *DatabaseManager {
	return &DatabaseManager{manager[models.Database]{
		client:   c,
		kind:     "DATABASE",
		plural:   "DATABASES",
		describe: "DATABASE",
		fromRow:  models.DatabaseFromRow,
	}}
}

func (m *DatabaseManager) List(ctx context.Context) ([]models.Database, error) {
	return m.list(ctx, "")
}

func (m *DatabaseManager) Get(ctx context.Context, name string) (models.Database, error) {
	return m.get(ctx, name)
}

func (m *DatabaseManager) Create(ctx context.Context, params models.DatabaseCreateParams) (models.Database, error) {
	if err := params.Validate(); err != nil {
		return models.Database{}, invalidConfiguration(err)
	}
	sql := "CREATE DATABASE " + m.resolveName(params.Name)
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	return m.create(ctx, params.Name, sql)
}

func (m *DatabaseManager) Update(ctx context.Context, name string, params models.DatabaseUpdateParams) (models.Database, error) {
	if err := params.Validate(); err != nil {
		return models.Database{}, invalidConfiguration(err)
	}
	sql := "ALTER DATABASE " + m.resolveName(name) + " SET COMMENT " + models.EscapeString(*params.Comment)
	return m.update(ctx, name, sql)
}

func (m *DatabaseManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *DatabaseManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *DatabaseManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

var _ ResourceManager[models.Database, models.DatabaseCreateParams, models.DatabaseUpdateParams] = (*DatabaseManager)(nil)
