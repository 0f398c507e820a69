package deltastream

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltastreaminc/deltastream.go/internal/mock"
	"github.com/deltastreaminc/deltastream.go/pkg/connection"
)

func newMockClient(t *testing.T) (*Client, *mock.Connection) {
	t.Helper()
	conn := &mock.Connection{}
	client := NewWithConnection(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client, conn
}

func TestUseDatabaseAndSchema(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	require.NoError(t, client.Session.UseDatabase(ctx, "analytics"))
	require.NoError(t, client.Session.UseSchema(ctx, "public"))

	assert.Equal(t, "analytics", client.Session.CurrentDatabase())
	assert.Equal(t, "public", client.Session.CurrentSchema())
	assert.Equal(t, []string{
		`USE DATABASE "analytics";`,
		`USE SCHEMA "public";`,
	}, conn.Statements())
}

func TestUseDatabaseClearsSchema(t *testing.T) {
	client, _ := newMockClient(t)
	ctx := context.Background()

	require.NoError(t, client.Session.UseDatabase(ctx, "analytics"))
	require.NoError(t, client.Session.UseSchema(ctx, "public"))
	require.NoError(t, client.Session.UseDatabase(ctx, "other"))

	assert.Equal(t, "other", client.Session.CurrentDatabase())
	assert.Equal(t, "", client.Session.CurrentSchema())
}

func TestUseSchemaWithoutDatabase(t *testing.T) {
	client, conn := newMockClient(t)

	err := client.Session.UseSchema(context.Background(), "public")
	assert.True(t, IsInvalidConfiguration(err))
	assert.Empty(t, conn.Statements())
}

func TestUseDatabaseFailureKeepsSelection(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	require.NoError(t, client.Session.UseDatabase(ctx, "analytics"))

	conn.OnErr(`USE DATABASE "missing"`, &connection.SQLError{
		SQLState: connection.SQLStateInvalidDatabase,
		Message:  "database does not exist",
	})
	err := client.Session.UseDatabase(ctx, "missing")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "analytics", client.Session.CurrentDatabase())
}

func TestUseStore(t *testing.T) {
	client, conn := newMockClient(t)

	require.NoError(t, client.Session.UseStore(context.Background(), "kafka_store"))
	assert.Equal(t, "kafka_store", client.Session.CurrentStore())
	assert.Equal(t, []string{`USE STORE "kafka_store";`}, conn.Statements())
}

func TestConcurrentUseDatabase(t *testing.T) {
	client, _ := newMockClient(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		name := "a"
		if i%2 == 1 {
			name = "b"
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			assert.NoError(t, client.Session.UseDatabase(ctx, name))
		}(name)
	}
	wg.Wait()

	// Whichever round trip finished last won; either way the selection is
	// one of the requested databases with the schema cleared.
	got := client.Session.CurrentDatabase()
	assert.Contains(t, []string{"a", "b"}, got)
	assert.Equal(t, "", client.Session.CurrentSchema())
}
