package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrMappingFailed matches every fatal mapping error via errors.Is.
	ErrMappingFailed = errors.New("mapping failed")
	// ErrNoRows is returned by MapOne when the source is empty.
	ErrNoRows = errors.New("mapper: no rows")
)

// Op names the step of a mapping call that failed.
type Op string

const (
	OpConstruct   Op = "construct"
	OpBeforeFirst Op = "before-first"
	OpNext        Op = "next"
)

// MappingError is the single error a mapping call returns when it aborts.
// No partial result accompanies it.
type MappingError struct {
	Type string
	Op   Op
	Err  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrMappingFailed, e.Type, e.Op, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// Is reports ErrMappingFailed as a match.
func (e *MappingError) Is(target error) bool { return target == ErrMappingFailed }
