package importer

import "fmt"

// RecordError locates a bad value in an input dataset.
type RecordError struct {
	Table  string
	Line   int
	Column string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: line %d: %v", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d, column %s: %v", e.Table, e.Line, e.Column, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
