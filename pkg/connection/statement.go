package connection

import "fmt"

// Wire types for the /statements endpoint.

type statementRequest struct {
	Statement    string `json:"statement"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
	Database     string `json:"database,omitempty"`
	Schema       string `json:"schema,omitempty"`
	Store        string `json:"store,omitempty"`
}

// StatementStatus is the server's answer to a submitted statement. A
// non-success SQLState other than pending is terminal.
type StatementStatus struct {
	StatementID string     `json:"statementID"`
	SQLState    string     `json:"sqlState"`
	Message     string     `json:"message,omitempty"`
	CreatedOn   int64      `json:"createdOn,omitempty"`
	ResultSet   *ResultSet `json:"resultSet,omitempty"`
}

type ResultSet struct {
	Metadata ResultSetMetadata `json:"metadata"`
	Data     [][]any           `json:"data"`
}

type ResultSetMetadata struct {
	Encoding         string            `json:"encoding,omitempty"`
	PartitionInfo    []PartitionInfo   `json:"partitionInfo,omitempty"`
	Columns          []Column          `json:"columns"`
	Context          *StatementContext `json:"context,omitempty"`
	DataplaneRequest *DataplaneRequest `json:"dataplaneRequest,omitempty"`
}

type PartitionInfo struct {
	RowCount int `json:"rowCount"`
}

// StatementContext is the session scope the server resolved for the
// statement. USE statements return an updated context here.
type StatementContext struct {
	OrganizationID string `json:"organizationID,omitempty"`
	RoleName       string `json:"roleName,omitempty"`
	DatabaseName   string `json:"databaseName,omitempty"`
	SchemaName     string `json:"schemaName,omitempty"`
	StoreName      string `json:"storeName,omitempty"`
}

// DataplaneRequest redirects result consumption to a data plane endpoint,
// typically a websocket delivering rows as they are produced.
type DataplaneRequest struct {
	URI         string `json:"uri"`
	Token       string `json:"token"`
	RequestType string `json:"requestType,omitempty"`
}

// SQLError is a terminal statement failure reported by the server.
type SQLError struct {
	SQLState    string
	Message     string
	StatementID string
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("statement failed (SQLSTATE %s): %s", e.SQLState, e.Message)
}
