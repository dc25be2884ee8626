package dataprocessing

import "errors"

var (
	// ErrColumnNotFound means a field mapping references a column that is
	// not present in the uploaded table's header.
	ErrColumnNotFound = errors.New("column not found")
)
