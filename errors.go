package deltastream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
)

// The error kinds every public operation can return. Wrapped errors carry
// detail; match with errors.Is or the predicates below.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	// ErrInvalidConfiguration is raised by local validation before any
	// network call is made.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrConnection covers an unreachable control plane and rejected
	// credentials.
	ErrConnection = errors.New("connection failed")
	// ErrTransport is any other failure surfaced by the transport, e.g. a
	// malformed response.
	ErrTransport = errors.New("transport failure")
	// ErrTimeout is the transport's timeout sentinel, re-exported so callers
	// can treat timeouts as their own kind.
	ErrTimeout = connection.ErrTimeout
)

func IsNotFound(err error) bool      { return errors.Is(err, ErrResourceNotFound) }
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrResourceAlreadyExists) }
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
func IsConnectionError(err error) bool { return errors.Is(err, ErrConnection) }
func IsTransportError(err error) bool  { return errors.Is(err, ErrTransport) }
func IsTimeout(err error) bool         { return errors.Is(err, ErrTimeout) }

// classifyStatementError maps transport and server failures onto the SDK
// taxonomy. Errors are never downgraded or swallowed here.
func classifyStatementError(err error) error {
	if err == nil {
		return nil
	}
	var sqlErr *connection.SQLError
	if errors.As(err, &sqlErr) {
		switch sqlErr.SQLState {
		case connection.SQLStateDuplicateObject:
			return fmt.Errorf("%w: %s", ErrResourceAlreadyExists, sqlErr.Message)
		case connection.SQLStateUndefinedObject,
			connection.SQLStateInvalidDatabase,
			connection.SQLStateInvalidSchema:
			return fmt.Errorf("%w: %s", ErrResourceNotFound, sqlErr.Message)
		case connection.SQLStateInvalidAuthorization,
			connection.SQLStateInsufficientPrivilege:
			return fmt.Errorf("%w: %s", ErrConnection, sqlErr.Message)
		default:
			return fmt.Errorf("%w: %v", ErrTransport, sqlErr)
		}
	}
	if errors.Is(err, connection.ErrTimeout) {
		return err
	}
	if errors.Is(err, connection.ErrAuthentication) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func invalidConfiguration(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
}

func notFoundError(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrResourceNotFound, strings.ToLower(kind), name)
}

func alreadyExistsError(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrResourceAlreadyExists, strings.ToLower(kind), name)
}
