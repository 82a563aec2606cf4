package source

import "fmt"

// SourceUnavailableError is returned when a record could not be obtained at
// all, after retries.
type SourceUnavailableError struct {
	Record Record
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s record unavailable: %s", e.Record, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
