package deltastream

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
)

func TestClassifyStatementError(t *testing.T) {
	sqlErr := func(state string) error {
		return &connection.SQLError{SQLState: state, Message: "boom"}
	}

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"duplicate", sqlErr(connection.SQLStateDuplicateObject), ErrResourceAlreadyExists},
		{"undefined object", sqlErr(connection.SQLStateUndefinedObject), ErrResourceNotFound},
		{"invalid database", sqlErr(connection.SQLStateInvalidDatabase), ErrResourceNotFound},
		{"invalid schema", sqlErr(connection.SQLStateInvalidSchema), ErrResourceNotFound},
		{"bad authorization", sqlErr(connection.SQLStateInvalidAuthorization), ErrConnection},
		{"insufficient privilege", sqlErr(connection.SQLStateInsufficientPrivilege), ErrConnection},
		{"other sqlstate", sqlErr("XX000"), ErrTransport},
		{"timeout", connection.ErrTimeout, ErrTimeout},
		{"authentication", connection.ErrAuthentication, ErrConnection},
		{"plain error", errors.New("conn reset"), ErrTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyStatementError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestSQLErrorDetailPreserved(t *testing.T) {
	in := &connection.SQLError{SQLState: "XX000", Message: "internal error", StatementID: "s1"}
	got := classifyStatementError(in)

	var sqlErr *connection.SQLError
	assert.ErrorAs(t, got, &sqlErr)
	assert.Equal(t, "s1", sqlErr.StatementID)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(notFoundError("STREAM", "s")))
	assert.True(t, IsAlreadyExists(alreadyExistsError("STORE", "k")))
	assert.True(t, IsInvalidConfiguration(invalidConfiguration(errors.New("bad"))))
	assert.True(t, IsTimeout(fmt.Errorf("wrapped: %w", connection.ErrTimeout)))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestErrorMessagesNameTheResource(t *testing.T) {
	err := notFoundError("STREAM", "pageviews")
	assert.Contains(t, err.Error(), `stream "pageviews"`)

	err = alreadyExistsError("DATABASE", "db1")
	assert.Contains(t, err.Error(), `database "db1"`)
}
