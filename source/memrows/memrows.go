// Package memrows is an in-memory row source.
package memrows

import (
	"fmt"

	"rowmapper/convert"
	"rowmapper/source"
)

// Rows is a forward-only cursor over rows held in memory.
type Rows struct {
	columns []string
	index   map[string]int
	rows    [][]any
	pos     int
}

// New returns a cursor over rows. Each cell is either a plain Go value,
// whose tag is inferred with convert.TagOf, or a convert.Value carrying an
// explicit tag. A row shorter than columns lacks the trailing columns.
func New(columns []string, rows ...[]any) *Rows {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	return &Rows{
		columns: columns,
		index:   index,
		rows:    rows,
		pos:     -1,
	}
}

// Columns returns the column names.
func (r *Rows) Columns() []string {
	if r == nil {
		return nil
	}

	return append([]string(nil), r.columns...)
}

// BeforeFirst reports whether there are rows and the cursor has not moved yet.
func (r *Rows) BeforeFirst() (bool, error) {
	if r == nil {
		return false, nil
	}

	return r.pos < 0 && len(r.rows) > 0, nil
}

// Next advances to the next row.
func (r *Rows) Next() (bool, error) {
	if r == nil {
		return false, nil
	}

	if r.pos < len(r.rows) {
		r.pos++
	}

	return r.pos < len(r.rows), nil
}

// Column returns the value of name in the current row.
func (r *Rows) Column(name string) (convert.Value, error) {
	if r == nil || r.pos < 0 || r.pos >= len(r.rows) {
		return convert.Value{}, source.ErrNoCurrentRow
	}

	i, ok := r.index[name]
	if !ok || i >= len(r.rows[r.pos]) {
		return convert.Value{}, fmt.Errorf("%w: %q", source.ErrUnknownColumn, name)
	}

	switch cell := r.rows[r.pos][i].(type) {
	case convert.Value:
		return cell, nil
	case *convert.Value:
		if cell == nil {
			return convert.NullValue, nil
		}

		return *cell, nil
	default:
		return convert.Of(cell), nil
	}
}
