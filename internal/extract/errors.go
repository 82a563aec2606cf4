package extract

import (
	"fmt"

	"github.com/acmload/clustertime/internal/milestone"
)

// MalformedRecordError is returned when a source record lacks a structurally
// required field or carries a value of the wrong shape.
type MalformedRecordError struct {
	Source milestone.Source
	Field  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s record: required field %q is missing", e.Source, e.Field)
	}

	return fmt.Sprintf("malformed %s record: field %q: %s", e.Source, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func missingField(source milestone.Source, field string) error {
	return &MalformedRecordError{
		Source: source,
		Field:  field,
	}
}

func invalidField(source milestone.Source, field string, err error) error {
	return &MalformedRecordError{
		Source: source,
		Field:  field,
		Err:    err,
	}
}
