package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// StreamManager manages streams, append-only relations over store entities.
// Unqualified names resolve against the session's database and schema.
type StreamManager struct {
	manager[models.Stream]
}

func newStreamManager(c *Client) *StreamManager {
	return &StreamManager{manager[models.Stream]{
		client:   c,
		kind:     "STREAM",
		plural:   "STREAMS",
		describe: "RELATION",
		qualify:  qualifyRelation,
		fromRow:  models.StreamFromRow,
	}}
}

func (m *StreamManager) List(ctx context.Context) ([]models.Stream, error) {
	return m.list(ctx, "")
}

func (m *StreamManager) Get(ctx context.Context, name string) (models.Stream, error) {
	return m.get(ctx, name)
}

func (m *StreamManager) Create(ctx context.Context, params models.StreamCreateParams) (models.Stream, error) {
	if err := params.Validate(); err != nil {
		return models.Stream{}, invalidConfiguration(err)
	}
	sql := "CREATE STREAM " + m.resolveName(params.Name)
	if cols := params.ColumnsSQL(); cols != "" {
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
	return m.create(ctx, params.Name, sql)
}

// CreateFromSelect creates a stream derived from a SELECT statement.
func (m *StreamManager) CreateFromSelect(ctx context.Context, name, selectSQL string, params map[string]string) (models.Stream, error) {
	return m.Create(ctx, models.StreamCreateParams{
		Name:   name,
		As:     selectSQL,
		Params: params,
	})
}

func (m *StreamManager) Update(ctx context.Context, name string, params models.StreamUpdateParams) (models.Stream, error) {
	if err := params.Validate(); err != nil {
		return models.Stream{}, invalidConfiguration(err)
	}
	var sqls []string
	if len(params.Params) > 0 {
		w := models.WithClause{}
		w.Merge(params.Params)
		sqls = append(sqls, "UPDATE STREAM "+m.resolveName(name)+" "+w.ToSQL())
	}
	if params.Comment != nil {
		sqls = append(sqls, "ALTER STREAM "+m.resolveName(name)+" SET COMMENT "+models.EscapeString(*params.Comment))
	}
	return m.update(ctx, name, sqls...)
}

func (m *StreamManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *StreamManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *StreamManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

// Start resumes ingestion for a stopped stream.
func (m *StreamManager) Start(ctx context.Context, name string) error {
	return m.exec(ctx, "START STREAM "+m.resolveName(name))
}

// Stop pauses ingestion for a stream.
func (m *StreamManager) Stop(ctx context.Context, name string) error {
	return m.exec(ctx, "STOP STREAM "+m.resolveName(name))
}

var _ ResourceManager[models.Stream, models.StreamCreateParams, models.StreamUpdateParams] = (*StreamManager)(nil)
