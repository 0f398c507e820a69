package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// StoreManager manages stores, the connections to external streaming and
// storage systems.
type StoreManager struct {
	manager[models.Store]
}

func newStoreManager(c *Client) *StoreManager {
	return &StoreManager{manager[models.Store]{
		client:   c,
		kind:     "STORE",
		plural:   "STORES",
		describe: "STORE",
		fromRow:  models.StoreFromRow,
	}}
}

func (m *StoreManager) List(ctx context.Context) ([]models.Store, error) {
	return m.list(ctx, "")
}

func (m *StoreManager) Get(ctx context.Context, name string) (models.Store, error) {
	return m.get(ctx, name)
}

func (m *StoreManager) Create(ctx context.Context, params models.StoreCreateParams) (models.Store, error) {
	if err := params.Validate(); err != nil {
		return models.Store{}, invalidConfiguration(err)
	}
	sql := "CREATE STORE " + m.resolveName(params.Name) + " " + params.WithClause().ToSQL()
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	return m.create(ctx, params.Name, sql)
}

// CreateKafka creates a Kafka store; params.StoreType is overridden.
func (m *StoreManager) CreateKafka(ctx context.Context, params models.StoreCreateParams) (models.Store, error) {
	params.StoreType = models.StoreTypeKafka
	return m.Create(ctx, params)
}

// CreateKinesis creates a Kinesis store; params.StoreType is overridden.
func (m *StoreManager) CreateKinesis(ctx context.Context, params models.StoreCreateParams) (models.Store, error) {
	params.StoreType = models.StoreTypeKinesis
	return m.Create(ctx, params)
}

// CreateS3 creates an S3 store; params.StoreType is overridden.
func (m *StoreManager) CreateS3(ctx context.Context, params models.StoreCreateParams) (models.Store, error) {
	params.StoreType = models.StoreTypeS3
	return m.Create(ctx, params)
}

func (m *StoreManager) Update(ctx context.Context, name string, params models.StoreUpdateParams) (models.Store, error) {
	if err := params.Validate(); err != nil {
		return models.Store{}, invalidConfiguration(err)
	}
	var sqls []string
	if w := params.WithClause().ToSQL(); w != "" {
		sqls = append(sqls, "UPDATE STORE "+m.resolveName(name)+" "+w)
	}
	if params.Comment != nil {
		sqls = append(sqls, "ALTER STORE "+m.resolveName(name)+" SET COMMENT "+models.EscapeString(*params.Comment))
	}
	return m.update(ctx, name, sqls...)
}

func (m *StoreManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *StoreManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *StoreManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

// TestConnection asks the server to verify it can reach the store and
// returns the reported status fields.
func (m *StoreManager) TestConnection(ctx context.Context, name string) (models.Row, error) {
	rows, err := m.query(ctx, "TEST STORE "+m.resolveName(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return describeAsRow(rows)
}

// ListTopics returns the names of the store's entities at the top level,
// e.g. Kafka topic names.
func (m *StoreManager) ListTopics(ctx context.Context, name string) ([]string, error) {
	rows, err := m.query(ctx, "LIST TOPICS FROM STORE "+m.resolveName(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rowMaps, err := rowsAsMaps(rows)
	if err != nil {
		return nil, classifyStatementError(err)
	}
	topics := make([]string, 0, len(rowMaps))
	for _, row := range rowMaps {
		topics = append(topics, row.Field("name", "topic"))
	}
	return topics, nil
}

var _ ResourceManager[models.Store, models.StoreCreateParams, models.StoreUpdateParams] = (*StoreManager)(nil)
