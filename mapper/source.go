package mapper

import (
	"rowmapper/convert"
)

// RowSource is a forward-only cursor over tabular rows.
//
// BeforeFirst is called once, before the first Next, and reports whether
// any row is available. Next advances to the following row. Column fetches
// a value of the current row by column name; an error is a field-level
// failure.
type RowSource interface {
	BeforeFirst() (bool, error)
	Next() (bool, error)
	Column(name string) (convert.Value, error)
}
