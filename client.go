package deltastream

import (
	"context"
	"errors"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
	"github.com/deltastreaminc/deltastream.go/pkg/logger"
	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

// Client is the entry point of the SDK. It owns one connection to the
// control plane and exposes a manager per resource kind plus the session
// context unqualified names resolve against.
//
// A Client is safe for concurrent use. Close releases the connection;
// operations after Close fail.
type Client struct {
	conn connection.Connection
	log  logger.Logger

	Session *SessionContext

	Databases        *DatabaseManager
	Schemas          *SchemaManager
	Stores           *StoreManager
	Streams          *StreamManager
	Changelogs       *ChangelogManager
	Entities         *EntityManager
	ComputePools     *ComputePoolManager
	SchemaRegistries *SchemaRegistryManager
}

// Option tweaks client construction.
type Option func(*options)

type options struct {
	tokenProvider connection.TokenProvider
	logger        logger.Logger
}

// WithTokenProvider replaces the static token with a per-request provider,
// e.g. for short-lived credentials.
func WithTokenProvider(p connection.TokenProvider) Option {
	return func(o *options) { o.tokenProvider = p }
}

// WithLogger sets the logger used by the client and its connection.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client from an explicit configuration.
func New(cfg *connection.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, invalidConfiguration(errors.New("nil config"))
	}
	o := applyOptions(opts)
	if o.tokenProvider != nil {
		cfg.TokenProvider = o.tokenProvider
	}
	if o.logger != nil {
		cfg.Logger = o.logger
	}
	conn, err := connection.NewHTTPConnection(cfg)
	if err != nil {
		return nil, invalidConfiguration(err)
	}
	return newClient(conn, cfg.Logger, cfg.DatabaseName, cfg.SchemaName), nil
}

// NewFromDSN creates a client from a connection string of the form
//
//	deltastream://:TOKEN@api.deltastream.io/v2?organizationID=...
func NewFromDSN(dsn string, opts ...Option) (*Client, error) {
	cfg, err := connection.ParseDSN(dsn)
	if err != nil {
		return nil, invalidConfiguration(err)
	}
	return New(cfg, opts...)
}

// NewFromEnvironment creates a client from DELTASTREAM_* variables.
// DELTASTREAM_DSN, when set, takes precedence over the component variables;
// otherwise DELTASTREAM_TOKEN and DELTASTREAM_ORG_ID are required and
// DELTASTREAM_SERVER_URL, DELTASTREAM_DATABASE_NAME and
// DELTASTREAM_SCHEMA_NAME are optional.
func NewFromEnvironment(opts ...Option) (*Client, error) {
	if dsn := GetEnvOrDefault(EnvDSN, ""); dsn != "" {
		return NewFromDSN(dsn, opts...)
	}

	token := GetEnvOrDefault(EnvToken, "")
	if token == "" {
		return nil, invalidConfiguration(errors.New(EnvToken + " is not set"))
	}
	orgID := GetEnvOrDefault(EnvOrganizationID, "")
	if orgID == "" {
		return nil, invalidConfiguration(errors.New(EnvOrganizationID + " is not set"))
	}

	cfg := connection.NewConfig(GetEnvOrDefault(EnvServerURL, connection.DefaultServerURL))
	cfg.TokenProvider = connection.StaticTokenProvider(token)
	cfg.OrganizationID = orgID
	cfg.DatabaseName = GetEnvOrDefault(EnvDatabaseName, "")
	cfg.SchemaName = GetEnvOrDefault(EnvSchemaName, "")
	return New(cfg, opts...)
}

// NewWithConnection wires the client over a caller-supplied connection.
// Useful for tests and alternative transports.
func NewWithConnection(conn connection.Connection, opts ...Option) *Client {
	o := applyOptions(opts)
	log := o.logger
	if log == nil {
		log = logger.Nop{}
	}
	return newClient(conn, log, "", "")
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newClient(conn connection.Connection, log logger.Logger, database, schema string) *Client {
	if log == nil {
		log = logger.Nop{}
	}
	c := &Client{
		conn:    conn,
		log:     log,
		Session: newSessionContext(conn, log, database, schema),
	}
	c.Databases = newDatabaseManager(c)
	c.Schemas = newSchemaManager(c)
	c.Stores = newStoreManager(c)
	c.Streams = newStreamManager(c)
	c.Changelogs = newChangelogManager(c)
	c.Entities = newEntityManager(c)
	c.ComputePools = newComputePoolManager(c)
	c.SchemaRegistries = newSchemaRegistryManager(c)
	return c
}

// TestConnection performs one authenticated round trip and reports failure
// through the usual error taxonomy.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Version(ctx)
	return err
}

// Version reports the server version.
func (c *Client) Version(ctx context.Context) (string, error) {
	v, err := c.conn.Version(ctx)
	if err != nil {
		return "", classifyStatementError(err)
	}
	return v, nil
}

// ExecSQL runs a raw statement, discarding any result set. The statement is
// terminated and classified like every manager statement.
func (c *Client) ExecSQL(ctx context.Context, sql string) error {
	return classifyStatementError(c.conn.Exec(ctx, terminate(sql)))
}

// QuerySQL runs a raw statement and returns its rows as maps keyed by
// column name.
func (c *Client) QuerySQL(ctx context.Context, sql string) ([]models.Row, error) {
	rows, err := c.conn.Query(ctx, terminate(sql))
	if err != nil {
		return nil, classifyStatementError(err)
	}
	defer rows.Close()
	out, err := rowsAsMaps(rows)
	if err != nil {
		return nil, classifyStatementError(err)
	}
	return out, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
