package deltastream

import (
	"context"
	"errors"
	"sync"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
	"github.com/deltastreaminc/deltastream.go/pkg/logger"
	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// SessionContext holds the current database, schema and store selection.
// Unqualified resource names resolve against it.
//
// Selection is changed only through the Use* methods: each issues a USE
// statement through the connection and updates the in-memory state on
// success. On failure or cancellation the previous selection stays intact;
// a statement that already reached the server may still have applied there.
// Use* calls are serialized, so concurrent selections resolve to whichever
// round trip completed last with no torn state visible to readers.
type SessionContext struct {
	conn connection.Connection
	log  logger.Logger

	// useMu serializes selection round trips; mu guards the fields.
	useMu sync.Mutex
	mu    sync.RWMutex

	database string
	schema   string
	store    string
}

func newSessionContext(conn connection.Connection, log logger.Logger, database, schema string) *SessionContext {
	return &SessionContext{
		conn:     conn,
		log:      log,
		database: database,
		schema:   schema,
	}
}

// CurrentDatabase returns the selected database without a round trip.
func (s *SessionContext) CurrentDatabase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.database
}

// CurrentSchema returns the selected schema without a round trip.
func (s *SessionContext) CurrentSchema() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema
}

// CurrentStore returns the selected store without a round trip.
func (s *SessionContext) CurrentStore() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// UseDatabase selects the database subsequent statements run against.
// Selecting a database clears the schema selection: a schema is only
// meaningful relative to its database.
func (s *SessionContext) UseDatabase(ctx context.Context, name string) error {
	s.useMu.Lock()
	defer s.useMu.Unlock()

	if err := s.exec(ctx, "USE DATABASE "+models.EscapeIdentifier(name)); err != nil {
		return err
	}

	s.mu.Lock()
	s.database = name
	s.schema = ""
	s.mu.Unlock()

	s.log.Debug("database selected", "database", name)
	return nil
}

// UseSchema selects a schema within the current database.
func (s *SessionContext) UseSchema(ctx context.Context, name string) error {
	s.useMu.Lock()
	defer s.useMu.Unlock()

	s.mu.RLock()
	database := s.database
	s.mu.RUnlock()
	if database == "" {
		return invalidConfiguration(errors.New("no database selected"))
	}

	if err := s.exec(ctx, "USE SCHEMA "+models.EscapeIdentifier(name)); err != nil {
		return err
	}

	s.mu.Lock()
	s.schema = name
	s.mu.Unlock()

	s.log.Debug("schema selected", "database", database, "schema", name)
	return nil
}

// UseStore selects the default store for entity operations.
func (s *SessionContext) UseStore(ctx context.Context, name string) error {
	s.useMu.Lock()
	defer s.useMu.Unlock()

	if err := s.exec(ctx, "USE STORE "+models.EscapeIdentifier(name)); err != nil {
		return err
	}

	s.mu.Lock()
	s.store = name
	s.mu.Unlock()

	s.log.Debug("store selected", "store", name)
	return nil
}

func (s *SessionContext) exec(ctx context.Context, sql string) error {
	return classifyStatementError(s.conn.Exec(ctx, terminate(sql)))
}
