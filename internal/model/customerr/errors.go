package customerr

import "fmt"

type ValidationError struct {
	Field string
	Err   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

// StorageError marks a failure of the persistence layer, as opposed to bad input or missing data.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Cause() error {
	return e.Err
}
