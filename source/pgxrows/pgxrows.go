// Package pgxrows adapts pgx result sets to the mapper's row source.
package pgxrows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"rowmapper/convert"
	"rowmapper/source"
)

// Queryer is satisfied by *pgx.Conn, pgx.Tx and *pgxpool.Pool.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Rows wraps pgx.Rows. Values are decoded with Rows.Values and tagged by
// the column's type OID.
//
// BeforeFirst reads the first row; the next call to Next replays it.
type Rows struct {
	rows    pgx.Rows
	fields  []pgconn.FieldDescription
	index   map[string]int
	current []any
	peeked  bool
	moved   bool
	done    bool
}

// New wraps rows. Close releases the connection.
func New(rows pgx.Rows) *Rows {
	if rows == nil {
		return nil
	}

	fields := rows.FieldDescriptions()

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}

	return &Rows{rows: rows, fields: fields, index: index}
}

// Query runs sql on q and wraps the result.
func Query(ctx context.Context, q Queryer, sql string, args ...any) (*Rows, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	return New(rows), nil
}

// BeforeFirst reports whether a first row exists and has not been consumed.
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
		r.rows.Close()

		return false, r.rows.Err()
	}

	values, err := r.rows.Values()
	if err != nil {
		return false, fmt.Errorf("failed to get values: %w", err)
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
	if !ok || i >= len(r.current) {
		return convert.Value{}, fmt.Errorf("%w: %q", source.ErrUnknownColumn, name)
	}

	return Normalize(r.fields[i].DataTypeOID, r.current[i]), nil
}

// Close closes the underlying rows.
func (r *Rows) Close() {
	if r == nil {
		return
	}

	r.rows.Close()
}

// Normalize converts pgx-specific values into the plain Go values the
// converters understand and tags them by oid.
func Normalize(oid uint32, v any) convert.Value {
	if v == nil {
		return convert.NullValue
	}

	switch x := v.(type) {
	case [16]byte:
		v = uuid.UUID(x)
	case pgtype.Time:
		if !x.Valid {
			return convert.NullValue
		}

		v = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(x.Microseconds) * time.Microsecond)
	case pgtype.Numeric:
		if !x.Valid {
			return convert.NullValue
		}

		f, err := x.Float64Value()
		if err == nil && f.Valid {
			v = f.Float64
		}
	}

	tag := TagForOID(oid)
	if tag == convert.Unknown {
		tag = convert.TagOf(v)
	}

	return convert.Value{Tag: tag, Data: v}
}

// TagForOID maps a Postgres type OID to a tag. Unlisted types give convert.Unknown.
func TagForOID(oid uint32) convert.TypeTag {
	switch oid {
	case pgtype.BoolOID:
		return convert.Bool
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID:
		return convert.Int
	case pgtype.Float4OID, pgtype.Float8OID:
		return convert.Float
	case pgtype.NumericOID:
		return convert.Decimal
	case pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID:
		return convert.String
	case pgtype.ByteaOID:
		return convert.Bytes
	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		return convert.Timestamp
	case pgtype.DateOID:
		return convert.Date
	case pgtype.TimeOID:
		return convert.Time
	case pgtype.JSONOID, pgtype.JSONBOID:
		return convert.JSON
	case pgtype.UUIDOID:
		return convert.UUID
	case pgtype.BoolArrayOID, pgtype.Int2ArrayOID, pgtype.Int4ArrayOID, pgtype.Int8ArrayOID,
		pgtype.Float4ArrayOID, pgtype.Float8ArrayOID, pgtype.TextArrayOID, pgtype.VarcharArrayOID,
		pgtype.UUIDArrayOID:
		return convert.Array
	default:
		return convert.Unknown
	}
}
