package deltastream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// EntityManager manages entities, the physical objects inside a store such
// as Kafka topics. Entity names may be hierarchical ("catalog.schema") and
// are always treated as one identifier; there is no partial update for
// entities, recreate instead.
type EntityManager struct {
	manager[models.Entity]
}

func newEntityManager(c *Client) *EntityManager {
	return &EntityManager{manager[models.Entity]{
		client:   c,
		kind:     "ENTITY",
		plural:   "ENTITIES",
		describe: "ENTITY",
		fromRow:  models.EntityFromRow,
	}}
}

// inStore renders the store clause, empty when the session default applies.
func inStore(store string) string {
	if store == "" {
		return ""
	}
	return " IN STORE " + models.EscapeIdentifier(store)
}

// List returns the top-level entities of the session's current store.
func (m *EntityManager) List(ctx context.Context) ([]models.Entity, error) {
	return m.list(ctx, "")
}

// ListIn returns the top-level entities of a specific store.
func (m *EntityManager) ListIn(ctx context.Context, store string) ([]models.Entity, error) {
	if store == "" {
		return m.list(ctx, "")
	}
	return m.list(ctx, "IN STORE "+models.EscapeIdentifier(store))
}

func (m *EntityManager) Get(ctx context.Context, name string) (models.Entity, error) {
	return m.GetIn(ctx, name, "")
}

func (m *EntityManager) GetIn(ctx context.Context, name, store string) (models.Entity, error) {
	rows, err := m.query(ctx, "DESCRIBE ENTITY "+models.EscapeIdentifier(name)+inStore(store))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return models.Entity{}, notFoundError(m.kind, name)
		}
		return models.Entity{}, err
	}
	defer rows.Close()

	row, err := describeAsRow(rows)
	if err != nil {
		return models.Entity{}, classifyStatementError(err)
	}
	if len(row) == 0 {
		return models.Entity{}, notFoundError(m.kind, name)
	}
	entity := m.fromRow(row)
	if entity.Name == "" {
		entity.Name = name
	}
	return entity, nil
}

func (m *EntityManager) Create(ctx context.Context, params models.EntityCreateParams) (models.Entity, error) {
	if err := params.Validate(); err != nil {
		return models.Entity{}, invalidConfiguration(err)
	}
	sql := "CREATE ENTITY " + models.EscapeIdentifier(params.Name) + inStore(params.Store)
	if w := params.WithClause().ToSQL(); w != "" {
		sql += " " + w
	}
	if err := m.exec(ctx, sql); err != nil {
		if errors.Is(err, ErrResourceAlreadyExists) {
			return models.Entity{}, alreadyExistsError(m.kind, params.Name)
		}
		return models.Entity{}, err
	}
	return m.GetIn(ctx, params.Name, params.Store)
}

func (m *EntityManager) Delete(ctx context.Context, name string) error {
	return m.DeleteIn(ctx, name, "")
}

func (m *EntityManager) DeleteIn(ctx context.Context, name, store string) error {
	return m.exec(ctx, "DROP ENTITY "+models.EscapeIdentifier(name)+inStore(store))
}

func (m *EntityManager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InsertValues writes records into an entity, one statement per value.
// Strings pass through verbatim; everything else is JSON-encoded. The first
// failure stops the sequence, so earlier values may already be written.
func (m *EntityManager) InsertValues(ctx context.Context, params models.EntityInsertParams) error {
	if err := params.Validate(); err != nil {
		return invalidConfiguration(err)
	}
	with := params.WithClause().ToSQL()
	for i, value := range params.Values {
		encoded, err := encodeValue(value)
		if err != nil {
			return invalidConfiguration(fmt.Errorf("value %d: %w", i, err))
		}
		sql := "INSERT INTO ENTITY " + models.EscapeIdentifier(params.Name) + inStore(params.Store) +
			" VALUE(" + models.EscapeString(encoded) + ")"
		if with != "" {
			sql += " " + with
		}
		if err := m.exec(ctx, sql); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

func encodeValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
