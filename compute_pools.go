package deltastream

import (
	"context"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// ComputePoolManager manages compute pools, the provisioned capacity
// queries run on.
type ComputePoolManager struct {
	manager[models.ComputePool]
}

func newComputePoolManager(c *Client) *ComputePoolManager {
	return &ComputePoolManager{manager[models.ComputePool]{
		client:   c,
		kind:     "COMPUTE_POOL",
		plural:   "COMPUTE_POOLS",
		describe: "COMPUTE_POOL",
		fromRow:  models.ComputePoolFromRow,
	}}
}

func (m *ComputePoolManager) List(ctx context.Context) ([]models.ComputePool, error) {
	return m.list(ctx, "")
}

func (m *ComputePoolManager) Get(ctx context.Context, name string) (models.ComputePool, error) {
	return m.get(ctx, name)
}

func (m *ComputePoolManager) Create(ctx context.Context, params models.ComputePoolCreateParams) (models.ComputePool, error) {
	if err := params.Validate(); err != nil {
		return models.ComputePool{}, invalidConfiguration(err)
	}
	sql := "CREATE COMPUTE_POOL " + m.resolveName(params.Name) + " " + params.WithClause().ToSQL()
	if params.Comment != "" {
		sql += " COMMENT " + models.EscapeString(params.Comment)
	}
	return m.create(ctx, params.Name, sql)
}

func (m *ComputePoolManager) Update(ctx context.Context, name string, params models.ComputePoolUpdateParams) (models.ComputePool, error) {
	if err := params.Validate(); err != nil {
		return models.ComputePool{}, invalidConfiguration(err)
	}
	sql := "UPDATE COMPUTE_POOL " + m.resolveName(name) + " " + params.WithClause().ToSQL()
	return m.update(ctx, name, sql)
}

func (m *ComputePoolManager) Delete(ctx context.Context, name string) error {
	return m.drop(ctx, name, false)
}

func (m *ComputePoolManager) DeleteIfExists(ctx context.Context, name string) error {
	return m.drop(ctx, name, true)
}

func (m *ComputePoolManager) Exists(ctx context.Context, name string) (bool, error) {
	return m.exists(ctx, name)
}

// Start brings the pool to its running state. The transition is
// asynchronous; poll Get until ActualState converges.
func (m *ComputePoolManager) Start(ctx context.Context, name string) error {
	return m.exec(ctx, "START COMPUTE_POOL "+m.resolveName(name))
}

// Stop suspends the pool.
func (m *ComputePoolManager) Stop(ctx context.Context, name string) error {
	return m.exec(ctx, "STOP COMPUTE_POOL "+m.resolveName(name))
}

var _ ResourceManager[models.ComputePool, models.ComputePoolCreateParams, models.ComputePoolUpdateParams] = (*ComputePoolManager)(nil)
