package connection

import (
	"context"
	"io"
)

// resultRows iterates an inline result set. Large results arrive split into
// partitions; partitions after the first are fetched on demand.
type resultRows struct {
	// The context that issued the query also bounds later partition
	// fetches, so cancelling the caller stops the iteration.
	ctx  context.Context
	conn *HTTPConnection

	statementID string
	columns     []Column
	partitions  []PartitionInfo

	data      [][]any
	idx       int
	partition int
	closed    bool
}

var _ Rows = (*resultRows)(nil)

func newResultRows(ctx context.Context, conn *HTTPConnection, st *StatementStatus) *resultRows {
	return &resultRows{
		ctx:         ctx,
		conn:        conn,
		statementID: st.StatementID,
		columns:     st.ResultSet.Metadata.Columns,
		partitions:  st.ResultSet.Metadata.PartitionInfo,
		data:        st.ResultSet.Data,
	}
}

func (r *resultRows) Columns() []Column { return r.columns }

func (r *resultRows) Next() ([]any, error) {
	if r.closed {
		return nil, ErrClosed
	}
	for r.idx >= len(r.data) {
		if r.partition+1 >= len(r.partitions) {
			return nil, io.EOF
		}
		r.partition++
		st, err := r.conn.fetchStatus(r.ctx, r.statementID, r.partition)
		if err != nil {
			return nil, err
		}
		if st.ResultSet == nil {
			return nil, io.EOF
		}
		r.data = st.ResultSet.Data
		r.idx = 0
	}
	row := r.data[r.idx]
	r.idx++
	return row, nil
}

func (r *resultRows) Close() error {
	r.closed = true
	return nil
}
