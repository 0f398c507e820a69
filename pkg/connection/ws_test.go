package connection

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataplaneServer(t *testing.T, script func(*websocket.Conn)) *DataplaneRequest {
	t.Helper()
	upgrader := websocket.Upgrader{}
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()
		script(ws)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		assert.Equal(t, "Bearer dp-token", gotAuth)
	})
	return &DataplaneRequest{
		URI:   "ws" + strings.TrimPrefix(srv.URL, "http"),
		Token: "dp-token",
	}
}

func newWSTestConnection(t *testing.T) *HTTPConnection {
	t.Helper()
	cfg := NewConfig("https://unused.example")
	cfg.TokenProvider = StaticTokenProvider("cp-token")
	cfg.OrganizationID = "org-1"
	conn, err := NewHTTPConnection(cfg)
	require.NoError(t, err)
	return conn
}

func TestDataplaneRowsStreamed(t *testing.T) {
	dp := newDataplaneServer(t, func(ws *websocket.Conn) {
		require.NoError(t, ws.WriteJSON(dataplaneMessage{
			Type:    dataplaneMetadata,
			Columns: []Column{{Name: "userid", Type: "VARCHAR"}},
		}))
		require.NoError(t, ws.WriteJSON(dataplaneMessage{
			Type: dataplaneData,
			Data: [][]any{{"u1"}, {"u2"}},
		}))
		require.NoError(t, ws.WriteJSON(dataplaneMessage{
			Type: dataplaneData,
			Data: [][]any{{"u3"}},
		}))
		require.NoError(t, ws.WriteJSON(dataplaneMessage{Type: dataplaneEnd}))
	})

	conn := newWSTestConnection(t)
	rows, err := conn.openDataplaneRows(context.Background(), dp)
	require.NoError(t, err)
	defer rows.Close()

	require.Len(t, rows.Columns(), 1)
	assert.Equal(t, "userid", rows.Columns()[0].Name)

	var got []string
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, row[0].(string))
	}
	assert.Equal(t, []string{"u1", "u2", "u3"}, got)
}

func TestDataplaneErrorFrame(t *testing.T) {
	dp := newDataplaneServer(t, func(ws *websocket.Conn) {
		require.NoError(t, ws.WriteJSON(dataplaneMessage{Type: dataplaneMetadata}))
		require.NoError(t, ws.WriteJSON(dataplaneMessage{
			Type:     dataplaneError,
			SQLState: SQLStateUndefinedObject,
			Message:  "relation does not exist",
		}))
	})

	conn := newWSTestConnection(t)
	rows, err := conn.openDataplaneRows(context.Background(), dp)
	require.NoError(t, err)
	defer rows.Close()

	_, err = rows.Next()
	var sqlErr *SQLError
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, SQLStateUndefinedObject, sqlErr.SQLState)
}

func TestDataplaneMissingMetadataFrame(t *testing.T) {
	dp := newDataplaneServer(t, func(ws *websocket.Conn) {
		require.NoError(t, ws.WriteJSON(dataplaneMessage{Type: dataplaneData}))
	})

	conn := newWSTestConnection(t)
	_, err := conn.openDataplaneRows(context.Background(), dp)
	assert.Error(t, err)
}
