package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Diagnostics holds all findings of one check run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for the kind of finding, e.g. "column_collision".
	Code string
	// Message is the human-readable description.
	Message string
	// Type is the destination type the finding relates to, if any.
	Type string
	// Field is the field path the finding relates to, if any.
	Field string
	// Suggestions are likely intended names.
	Suggestions []string
}

// Severity is the level of a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Add records d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case Error:
		d.Errors = append(d.Errors, diag)
	case Warning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typ, field string, suggestions ...string) {
	d.Add(Diagnostic{Severity: Error, Code: code, Message: message, Type: typ, Field: field, Suggestions: suggestions})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typ, field string, suggestions ...string) {
	d.Add(Diagnostic{Severity: Warning, Code: code, Message: message, Type: typ, Field: field, Suggestions: suggestions})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typ, field string) {
	d.Add(Diagnostic{Severity: Info, Code: code, Message: message, Type: typ, Field: field})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Codes returns the codes of all diagnostics, errors first.
func (d *Diagnostics) Codes() []string {
	var out []string
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			out = append(out, diag.Code)
		}
	}

	return out
}

// Err returns the error diagnostics joined into one error, or nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Write prints every diagnostic on its own line, errors first.
func (d *Diagnostics) Write(w io.Writer) error {
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if _, err := fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag); err != nil {
				return err
			}
		}
	}

	return nil
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
