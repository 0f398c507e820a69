package connection

import (
	"fmt"
	"net/url"
)

// ParseDSN turns a connection string into a Config. The accepted form is
//
//	deltastream://:TOKEN@api.deltastream.io/v2?organizationID=...
//
// with optional roleName, databaseName and schemaName query parameters.
// The "https" and "http" schemes are accepted as aliases; "deltastream"
// maps to https. The token may alternatively be supplied via a "token"
// query parameter.
func ParseDSN(dsn string) (*Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}

	var scheme string
	switch u.Scheme {
	case "deltastream", "https":
		scheme = "https"
	case "http":
		scheme = "http"
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidDSN, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidDSN)
	}

	q := u.Query()

	token := q.Get("token")
	if u.User != nil {
		if pw, ok := u.User.Password(); ok && pw != "" {
			token = pw
		} else if name := u.User.Username(); name != "" && token == "" {
			// deltastream://TOKEN@host form
			token = name
		}
	}
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrInvalidDSN)
	}

	cfg := NewConfig(fmt.Sprintf("%s://%s%s", scheme, u.Host, u.EscapedPath()))
	cfg.TokenProvider = StaticTokenProvider(token)
	cfg.OrganizationID = q.Get("organizationID")
	cfg.RoleName = q.Get("roleName")
	cfg.DatabaseName = q.Get("databaseName")
	cfg.SchemaName = q.Get("schemaName")

	if cfg.OrganizationID == "" {
		return nil, fmt.Errorf("%w: missing organizationID", ErrInvalidDSN)
	}

	return cfg, nil
}
