// Package source groups the row-source adapters consumed by the mapper.
//
// Every adapter exposes BeforeFirst, Next and Column and attaches a
// convert.TypeTag to each fetched value.
package source

import "errors"

var (
	// ErrUnknownColumn is returned when the current row has no such column.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoCurrentRow is returned by a column fetch outside of a row.
	ErrNoCurrentRow = errors.New("no current row")
)
