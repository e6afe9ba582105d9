// Package arrowrows adapts Arrow record batches to the mapper's row source.
package arrowrows

import (
	"fmt"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"

	"rowmapper/convert"
	"rowmapper/source"
)

// Rows iterates the rows of one or more records in order. Records are
// expected to share a schema; column lookup uses each record's own schema.
// The caller keeps ownership of the records.
type Rows struct {
	records []arrow.Record
	rec     int
	row     int64
	moved   bool
}

// New returns a cursor over records.
func New(records ...arrow.Record) *Rows {
	return &Rows{records: records, row: -1}
}

// BeforeFirst reports whether any record holds a row and the cursor has not moved.
func (r *Rows) BeforeFirst() (bool, error) {
	if r == nil || r.moved {
		return false, nil
	}

	for _, rec := range r.records {
		if rec != nil && rec.NumRows() > 0 {
			return true, nil
		}
	}

	return false, nil
}

// Next advances to the next row, moving across records as needed.
func (r *Rows) Next() (bool, error) {
	if r == nil {
		return false, nil
	}

	r.moved = true

	for r.rec < len(r.records) {
		rec := r.records[r.rec]
		if rec != nil && r.row+1 < rec.NumRows() {
			r.row++

			return true, nil
		}

		r.rec++
		r.row = -1
	}

	return false, nil
}

// Column returns the value of name in the current row.
func (r *Rows) Column(name string) (convert.Value, error) {
	if r == nil || !r.moved || r.rec >= len(r.records) || r.row < 0 {
		return convert.Value{}, source.ErrNoCurrentRow
	}

	rec := r.records[r.rec]

	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return convert.Value{}, fmt.Errorf("%w: %q", source.ErrUnknownColumn, name)
	}

	return Value(rec.Column(idx[0]), int(r.row))
}

// Value decodes row i of col.
func Value(col arrow.Array, i int) (convert.Value, error) {
	if col.IsNull(i) {
		return convert.NullValue, nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		return convert.Value{Tag: convert.Bool, Data: a.Value(i)}, nil
	case *array.Int8:
		return convert.Value{Tag: convert.Int, Data: a.Value(i)}, nil
	case *array.Int16:
		return convert.Value{Tag: convert.Int, Data: a.Value(i)}, nil
	case *array.Int32:
		return convert.Value{Tag: convert.Int, Data: a.Value(i)}, nil
	case *array.Int64:
		return convert.Value{Tag: convert.Int, Data: a.Value(i)}, nil
	case *array.Uint8:
		return convert.Value{Tag: convert.Uint, Data: a.Value(i)}, nil
	case *array.Uint16:
		return convert.Value{Tag: convert.Uint, Data: a.Value(i)}, nil
	case *array.Uint32:
		return convert.Value{Tag: convert.Uint, Data: a.Value(i)}, nil
	case *array.Uint64:
		return convert.Value{Tag: convert.Uint, Data: a.Value(i)}, nil
	case *array.Float32:
		return convert.Value{Tag: convert.Float, Data: a.Value(i)}, nil
	case *array.Float64:
		return convert.Value{Tag: convert.Float, Data: a.Value(i)}, nil
	case *array.String:
		return convert.Value{Tag: convert.String, Data: a.Value(i)}, nil
	case *array.LargeString:
		return convert.Value{Tag: convert.String, Data: a.Value(i)}, nil
	case *array.Binary:
		return convert.Value{Tag: convert.Bytes, Data: append([]byte(nil), a.Value(i)...)}, nil
	case *array.Date32:
		return convert.Value{Tag: convert.Date, Data: a.Value(i).ToTime()}, nil
	case *array.Date64:
		return convert.Value{Tag: convert.Date, Data: a.Value(i).ToTime()}, nil
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit

		return convert.Value{Tag: convert.Time, Data: a.Value(i).ToTime(unit)}, nil
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit

		return convert.Value{Tag: convert.Time, Data: a.Value(i).ToTime(unit)}, nil
	case *array.Timestamp:
		toTime, err := a.DataType().(*arrow.TimestampType).GetToTimeFunc()
		if err != nil {
			return convert.Value{}, fmt.Errorf("timestamp column: %w", err)
		}

		return convert.Value{Tag: convert.Timestamp, Data: toTime(a.Value(i))}, nil
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale

		return convert.Value{Tag: convert.Decimal, Data: a.Value(i).ToFloat64(scale)}, nil
	case *array.List, *array.LargeList, *array.FixedSizeList:
		return convert.Value{Tag: convert.Array, Data: col.GetOneForMarshal(i)}, nil
	case *array.Struct:
		return convert.Value{Tag: convert.Struct, Data: col.GetOneForMarshal(i)}, nil
	default:
		return convert.Of(col.GetOneForMarshal(i)), nil
	}
}
