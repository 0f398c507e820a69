package connection

import (
	"errors"
	"time"
)

const (
	// DefaultServerURL is the public control plane endpoint.
	DefaultServerURL = "https://api.deltastream.io/v2"
	// DefaultTimeout bounds a single statement round trip.
	DefaultTimeout = 30 * time.Second
	// DefaultPollInterval is the delay between status polls for statements
	// the server accepted asynchronously.
	DefaultPollInterval = 500 * time.Millisecond
	// CloseMessageCode identifies a clean websocket shutdown.
	CloseMessageCode = 1000
)

// SQLSTATE codes surfaced by the control plane.
const (
	SQLStateSuccessfulCompletion  = "00000"
	SQLStatePending               = "03000"
	SQLStateInvalidAuthorization  = "28000"
	SQLStateInvalidDatabase       = "3D000"
	SQLStateInvalidSchema         = "3F000"
	SQLStateUndefinedObject       = "42704"
	SQLStateInsufficientPrivilege = "42501"
	SQLStateDuplicateObject       = "42710"
)

var (
	ErrNoServerURL      = errors.New("server url not set")
	ErrNoTokenProvider  = errors.New("token provider not set")
	ErrNoOrganizationID = errors.New("organization id not set")
	ErrInvalidDSN       = errors.New("invalid dsn")
	ErrTimeout          = errors.New("request timed out")
	ErrAuthentication   = errors.New("authentication rejected")
	ErrClosed           = errors.New("connection closed")
)
