package connection

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/deltastreaminc/deltastream.go/pkg/logger"
	logslog "github.com/deltastreaminc/deltastream.go/pkg/logger/slog"
)

// TokenProvider supplies the bearer token for a request. It is called per
// round trip so short-lived credentials can be refreshed by the caller.
type TokenProvider func(ctx context.Context) (string, error)

// StaticTokenProvider always returns the given token.
func StaticTokenProvider(token string) TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Config carries everything needed to reach the control plane.
type Config struct {
	// ServerURL is the control plane base URL, e.g. "https://api.deltastream.io/v2".
	ServerURL string
	// TokenProvider supplies the bearer token. Required.
	TokenProvider TokenProvider
	// OrganizationID scopes every statement to a tenant. Required.
	OrganizationID string
	// RoleName is the role statements execute under. Optional.
	RoleName string
	// DatabaseName and SchemaName seed the statement context. Optional.
	DatabaseName string
	SchemaName   string
	// Timeout bounds a single statement round trip, polling included.
	Timeout time.Duration
	// HTTPClient overrides the default client, e.g. for custom TLS.
	HTTPClient *http.Client
	Logger     logger.Logger
}

// NewConfig creates a Config for the given endpoint with defaults filled in.
// It is not mandatory to go through this constructor, but it guarantees the
// timeout and logger are set.
func NewConfig(serverURL string) *Config {
	return &Config{
		ServerURL: serverURL,
		Timeout:   DefaultTimeout,
		Logger:    logslog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

// Validate reports the first missing required field.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return ErrNoServerURL
	}
	if c.TokenProvider == nil {
		return ErrNoTokenProvider
	}
	if c.OrganizationID == "" {
		return ErrNoOrganizationID
	}
	return nil
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.timeout()}
}

func (c *Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Config) logger() logger.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logger.Nop{}
}
