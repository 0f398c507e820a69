package connection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deltastreaminc/deltastream.go/pkg/logger"
)

// dataplaneMessage is one frame on the result-set websocket. The server
// sends a metadata frame first, then any number of data frames, and finally
// either an end or an error frame.
type dataplaneMessage struct {
	Type     string   `json:"type"`
	Columns  []Column `json:"columns,omitempty"`
	Data     [][]any  `json:"data,omitempty"`
	SQLState string   `json:"sqlState,omitempty"`
	Message  string   `json:"message,omitempty"`
}

const (
	dataplaneMetadata = "metadata"
	dataplaneData     = "data"
	dataplaneEnd      = "end"
	dataplaneError    = "error"
)

// dataplaneRows streams a result set from the data plane over a websocket.
type dataplaneRows struct {
	ws      *websocket.Conn
	columns []Column
	log     logger.Logger

	buf    [][]any
	done   bool
	closed bool
}

var _ Rows = (*dataplaneRows)(nil)

// openDataplaneRows dials the endpoint the control plane redirected us to.
// The data plane issues its own short-lived token, distinct from the
// control plane credentials.
func (c *HTTPConnection) openDataplaneRows(ctx context.Context, dp *DataplaneRequest) (Rows, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+dp.Token)

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, dp.URI, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %s", ErrAuthentication, http.StatusText(resp.StatusCode))
		}
		return nil, translateNetError(err)
	}

	r := &dataplaneRows{ws: ws, log: c.log}

	// The first frame carries the column metadata.
	var msg dataplaneMessage
	if err := r.read(&msg); err != nil {
		_ = r.Close()
		return nil, err
	}
	if msg.Type != dataplaneMetadata {
		_ = r.Close()
		return nil, fmt.Errorf("malformed response: expected metadata frame, got %q", msg.Type)
	}
	r.columns = msg.Columns

	return r, nil
}

func (r *dataplaneRows) Columns() []Column { return r.columns }

func (r *dataplaneRows) Next() ([]any, error) {
	if r.closed {
		return nil, ErrClosed
	}
	for len(r.buf) == 0 {
		if r.done {
			return nil, io.EOF
		}
		var msg dataplaneMessage
		if err := r.read(&msg); err != nil {
			return nil, err
		}
		switch msg.Type {
		case dataplaneData:
			r.buf = msg.Data
		case dataplaneEnd:
			r.done = true
		case dataplaneError:
			r.done = true
			return nil, &SQLError{SQLState: msg.SQLState, Message: msg.Message}
		case dataplaneMetadata:
			r.columns = msg.Columns
		default:
			r.log.Warn("ignoring unknown dataplane frame", "type", msg.Type)
		}
	}
	row := r.buf[0]
	r.buf = r.buf[1:]
	return row, nil
}

func (r *dataplaneRows) read(msg *dataplaneMessage) error {
	if err := r.ws.ReadJSON(msg); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			return io.EOF
		}
		return translateNetError(err)
	}
	return nil
}

func (r *dataplaneRows) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	deadline := time.Now().Add(time.Second)
	_ = r.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(CloseMessageCode, ""), deadline)
	return r.ws.Close()
}
