package deltastream

import (
	"context"
	"strings"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// ChangelogManager manages changelogs, relations carrying per-key upserts.
// Unqualified names resolve against the session's database and schema.
type ChangelogManager struct {
	manager[models.Changelog]
}

func newChangelogManager(c *Client) *ChangelogManager {
	return &ChangelogManager{manager[models.Changelog]{
		client:   c,
		kind:     "CHANGELOG",
		plural:   "CHANGELOGS",
		describe: "RELATION",
		qualify:  qualifyRelation,
		fromRow:  models.ChangelogFromRow,
	}}
}

func (m *ChangelogManager) List(ctx context.Context) ([]models.Changelog, error) {
	return m.list(ctx, "")
}

func (m *ChangelogManager) Get(ctx context.Context, name string) (models.Changelog, error) {
	return m.get(ctx, name)
}

func (m *ChangelogManager) Create(ctx context.Context, params models.ChangelogCreateParams) (models.Changelog, error) {
	if err := params.Validate(); err != nil {
		return models.Changelog{}, invalidConfiguration(err)
	}
	sql := "CREATE CHANGELOG " + m.resolveName(params.Name)
	if cols := params.ColumnsSQL(); cols != "" {
		// The primary key rides inside the column list.
		keys := make([]string, 0, len(params.PrimaryKey))
		for _, k := range params.PrimaryKey {
			keys = append(keys, models.EscapeIdentifier(k))
		}
		cols = strings.TrimSuffix(cols, ")") + ", PRIMARY KEY(" + strings.Join(keys, ", ") + "))"
		sql += " " + cols
	}
	if w := params.WithClause().ToSQL(); w != "" {
		sql += " " + w
	}
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	if params.As != "" {
		sql += " AS " + params.As
	}
	created, err := m.create(ctx, params.Name, sql)
	if err != nil {
		return models.Changelog{}, err
	}
	if len(created.PrimaryKey) == 0 {
		created.PrimaryKey = params.PrimaryKey
	}
	return created, nil
}

func (m *ChangelogManager) Update(ctx context.Context, name string, params models.ChangelogUpdateParams) (models.Changelog, error) {
	if err := params.Validate(); err != nil {
		return models.Changelog{}, invalidConfiguration(err)
	}
	var sqls []string
	if len(params.Params) > 0 {
		w := models.WithClause{}
		w.Merge(params.Params)
		sqls = append(sqls, "UPDATE CHANGELOG "+m.resolveName(name)+" "+w.ToSQL())
	}
	if params.Comment != nil {
		sqls = append(sqls, "ALTER CHANGELOG "+m.resolveName(name)+" SET COMMENT "+models.EscapeString(*params.Comment))
	}
	return m.update(ctx, name, sqls...)
}

func (m *ChangelogManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *ChangelogManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *ChangelogManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

var _ ResourceManager[models.Changelog, models.ChangelogCreateParams, models.ChangelogUpdateParams] = (*ChangelogManager)(nil)
