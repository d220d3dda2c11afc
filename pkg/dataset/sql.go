package dataset

import (
	"context"
	"database/sql"

	"github.com/agentstation/mirror/pkg/errors"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs a statement and materialises its result set. Driver values
// are normalised: []byte becomes string and time.Time is rendered in
// RFC 3339.
func Query(ctx context.Context, db Querier, query string, args ...any) (*Dataset, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapIO("query", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WrapIO("query", query, err)
	}
	d, err := newDataset(columns)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.WrapIO("scan", query, err)
		}
		rec := make(Record, len(columns))
		for j, v := range values {
			rec[j] = Normalize(v)
		}
		d.records = append(d.records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapIO("query", query, err)
	}
	return d, nil
}
