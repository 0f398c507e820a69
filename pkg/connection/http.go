package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/deltastreaminc/deltastream.go/pkg/logger"
)

// HTTPConnection submits statements to the control plane REST API. It keeps
// the statement context (database, schema, store) the server last resolved,
// so USE statements affect subsequent submissions.
type HTTPConnection struct {
	serverURL      string
	httpClient     *http.Client
	tokenProvider  TokenProvider
	organizationID string
	roleName       string
	pollInterval   time.Duration
	log            logger.Logger

	mu     sync.RWMutex
	sctx   StatementContext
	closed bool
}

var _ Connection = (*HTTPConnection)(nil)

func NewHTTPConnection(cfg *Config) (*HTTPConnection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HTTPConnection{
		serverURL:      strings.TrimSuffix(cfg.ServerURL, "/"),
		httpClient:     cfg.httpClient(),
		tokenProvider:  cfg.TokenProvider,
		organizationID: cfg.OrganizationID,
		roleName:       cfg.RoleName,
		pollInterval:   DefaultPollInterval,
		log:            cfg.logger(),
		sctx: StatementContext{
			OrganizationID: cfg.OrganizationID,
			RoleName:       cfg.RoleName,
			DatabaseName:   cfg.DatabaseName,
			SchemaName:     cfg.SchemaName,
		},
	}, nil
}

func (c *HTTPConnection) Exec(ctx context.Context, sql string) error {
	_, err := c.submit(ctx, sql)
	return err
}

func (c *HTTPConnection) Query(ctx context.Context, sql string) (Rows, error) {
	st, err := c.submit(ctx, sql)
	if err != nil {
		return nil, err
	}
	if st.ResultSet == nil {
		return emptyRows{}, nil
	}
	if dp := st.ResultSet.Metadata.DataplaneRequest; dp != nil {
		return c.openDataplaneRows(ctx, dp)
	}
	return newResultRows(ctx, c, st), nil
}

func (c *HTTPConnection) Version(ctx context.Context) (string, error) {
	var v struct {
		Major int `json:"major"`
		Minor int `json:"minor"`
		Patch int `json:"patch"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.serverURL+"/version", nil, &v); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch), nil
}

func (c *HTTPConnection) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.httpClient.CloseIdleConnections()
	return nil
}

// submit sends the statement and, when the server accepts it asynchronously,
// polls until a terminal state. A non-success terminal SQLSTATE is returned
// as *SQLError.
func (c *HTTPConnection) submit(ctx context.Context, sql string) (*StatementStatus, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrClosed
	}
	req := statementRequest{
		Statement:    sql,
		Organization: c.organizationID,
		Role:         c.roleName,
		Database:     c.sctx.DatabaseName,
		Schema:       c.sctx.SchemaName,
		Store:        c.sctx.StoreName,
	}
	c.mu.RUnlock()

	c.log.Debug("submitting statement", "sql", sql)

	var st StatementStatus
	if err := c.doJSON(ctx, http.MethodPost, c.serverURL+"/statements", &req, &st); err != nil {
		return nil, err
	}

	for st.SQLState == SQLStatePending {
		select {
		case <-ctx.Done():
			return nil, translateNetError(ctx.Err())
		case <-time.After(c.pollInterval):
		}
		next, err := c.fetchStatus(ctx, st.StatementID, -1)
		if err != nil {
			return nil, err
		}
		st = *next
	}

	if st.SQLState != SQLStateSuccessfulCompletion {
		return nil, &SQLError{SQLState: st.SQLState, Message: st.Message, StatementID: st.StatementID}
	}

	c.updateContext(&st)
	return &st, nil
}

// fetchStatus retrieves the current status of a statement. A partitionID of
// -1 asks for the status only; otherwise the given result partition is
// included.
func (c *HTTPConnection) fetchStatus(ctx context.Context, statementID string, partitionID int) (*StatementStatus, error) {
	u := fmt.Sprintf("%s/statements/%s", c.serverURL, statementID)
	if partitionID >= 0 {
		u = fmt.Sprintf("%s?partitionID=%d", u, partitionID)
	}
	var st StatementStatus
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// updateContext adopts the session scope the server resolved for the
// statement. This is how USE DATABASE and friends take effect.
func (c *HTTPConnection) updateContext(st *StatementStatus) {
	if st.ResultSet == nil || st.ResultSet.Metadata.Context == nil {
		return
	}
	sctx := st.ResultSet.Metadata.Context
	c.mu.Lock()
	defer c.mu.Unlock()
	if sctx.RoleName != "" {
		c.roleName = sctx.RoleName
	}
	c.sctx.DatabaseName = sctx.DatabaseName
	c.sctx.SchemaName = sctx.SchemaName
	c.sctx.StoreName = sctx.StoreName
}

func (c *HTTPConnection) doJSON(ctx context.Context, method, url string, in, out any) error {
	token, err := c.tokenProvider(ctx)
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}

	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateNetError(err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return translateNetError(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthentication, httpErrorDetail(resp.StatusCode, respBytes))
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// 202 carries a pending StatementStatus; decoded like 200.
	default:
		return fmt.Errorf("unexpected response: %s", httpErrorDetail(resp.StatusCode, respBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

func httpErrorDetail(status int, body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return fmt.Sprintf("%s: %s", http.StatusText(status), e.Message)
	}
	return http.StatusText(status)
}

// translateNetError maps transport-level failures onto the package
// sentinels so callers can distinguish timeouts from other faults.
func translateNetError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
