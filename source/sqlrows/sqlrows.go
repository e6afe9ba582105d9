// Package sqlrows adapts database/sql result sets to the mapper's row source.
//
// Column values are scanned into interface values, so what the driver
// returns is what the mapper sees. Tags come from the column's database
// type name when it is specific enough (DATE, TIME, CLOB, JSON, UUID,
// arrays, decimals) and from the Go value otherwise.
package sqlrows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rowmapper/convert"
	"rowmapper/source"
)

// ErrNilRows is returned by New when it is given no result set.
var ErrNilRows = errors.New("sqlrows: nil rows")

// Queryer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Rows wraps *sql.Rows.
//
// database/sql cannot tell whether a result is empty without advancing, so
// BeforeFirst reads the first row and the next call to Next replays it.
type Rows struct {
	rows    *sql.Rows
	columns []string
	dbTypes []string
	index   map[string]int
	current []any
	peeked  bool
	moved   bool
	done    bool
}

// New wraps rows. The caller still owns rows and must close it, directly or via Close.
//
// A nil *Rows is a valid, empty row source.
func New(rows *sql.Rows) (*Rows, error) {
	if rows == nil {
		return nil, ErrNilRows
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	dbTypes := make([]string, len(columns))

	types, err := rows.ColumnTypes()
	if err == nil {
		for i, ct := range types {
			dbTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	return &Rows{
		rows:    rows,
		columns: columns,
		dbTypes: dbTypes,
		index:   index,
	}, nil
}

// Query runs query on q and wraps the result.
func Query(ctx context.Context, q Queryer, query string, args ...any) (*Rows, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	r, err := New(rows)
	if err != nil {
		_ = rows.Close()

		return nil, err
	}

	return r, nil
}

// Columns returns the result's column names.
func (r *Rows) Columns() []string {
	if r == nil {
		return nil
	}

	return append([]string(nil), r.columns...)
}

// BeforeFirst reports whether the result has a first row that has not been
// consumed yet.
func (r *Rows) BeforeFirst() (bool, error) {
	if r == nil || r.moved {
		return false, nil
	}

	if r.peeked {
		return true, nil
	}

	ok, err := r.advance()
	if err != nil || !ok {
		return false, err
	}

	r.peeked = true

	return true, nil
}

// Next advances to the next row.
func (r *Rows) Next() (bool, error) {
	if r == nil {
		return false, nil
	}

	r.moved = true

	if r.peeked {
		r.peeked = false

		return true, nil
	}

	return r.advance()
}

func (r *Rows) advance() (bool, error) {
	if r.done {
		return false, nil
	}

	if !r.rows.Next() {
		r.done = true
		r.current = nil

		return false, r.rows.Err()
	}

	values := make([]any, len(r.columns))
	dest := make([]any, len(r.columns))

	for i := range values {
		dest[i] = &values[i]
	}

	if err := r.rows.Scan(dest...); err != nil {
		return false, fmt.Errorf("failed to scan row: %w", err)
	}

	r.current = values

	return true, nil
}

// Column returns the value of name in the current row.
func (r *Rows) Column(name string) (convert.Value, error) {
	if r == nil || !r.moved || r.current == nil {
		return convert.Value{}, source.ErrNoCurrentRow
	}

	i, ok := r.index[name]
	if !ok {
		return convert.Value{}, fmt.Errorf("%w: %q", source.ErrUnknownColumn, name)
	}

	v := r.current[i]

	return convert.Value{Tag: TagFor(r.dbTypes[i], v), Data: v}, nil
}

// Close closes the underlying rows.
func (r *Rows) Close() error {
	if r == nil || r.rows == nil {
		return nil
	}

	return r.rows.Close()
}

// TagFor picks the tag of v given its column's database type name.
// Time-based tags are only used when the driver returned a time.Time.
func TagFor(dbType string, v any) convert.TypeTag {
	if v == nil {
		return convert.Null
	}

	fallback := convert.TagOf(v)

	declared := declaredTag(strings.ToUpper(strings.TrimSpace(dbType)))
	switch declared {
	case convert.Unknown:
		return fallback
	case convert.Timestamp, convert.Date, convert.Time:
		if _, ok := v.(time.Time); ok {
			return declared
		}

		return fallback
	default:
		return declared
	}
}

func declaredTag(dbType string) convert.TypeTag {
	switch {
	case dbType == "":
		return convert.Unknown
	case strings.HasPrefix(dbType, "TIMESTAMP"), strings.HasPrefix(dbType, "DATETIME"):
		return convert.Timestamp
	case dbType == "DATE":
		return convert.Date
	case dbType == "TIME", strings.HasPrefix(dbType, "TIME "), dbType == "TIMETZ":
		return convert.Time
	case dbType == "CLOB", dbType == "NCLOB", dbType == "LONGTEXT", dbType == "MEDIUMTEXT":
		return convert.Clob
	case dbType == "BLOB", dbType == "LONGBLOB", dbType == "MEDIUMBLOB", dbType == "BYTEA":
		return convert.Blob
	case dbType == "JSON", dbType == "JSONB":
		return convert.JSON
	case dbType == "UUID", dbType == "UNIQUEIDENTIFIER":
		return convert.UUID
	case dbType == "DECIMAL", dbType == "NUMERIC", strings.HasPrefix(dbType, "DECIMAL("), strings.HasPrefix(dbType, "NUMERIC("):
		return convert.Decimal
	case strings.HasPrefix(dbType, "_"), strings.HasSuffix(dbType, "[]"), strings.HasPrefix(dbType, "ARRAY"):
		return convert.Array
	default:
		return convert.Unknown
	}
}
