package domain

import (
	"errors"
	"fmt"
)

// ErrUnscoredReview marks an attempt to store a review without sentiment.
var ErrUnscoredReview = errors.New("review has no sentiment")

// ValidationError rejects a submission because of one field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// QueryParameterError rejects a query parameter that cannot be parsed.
type QueryParameterError struct {
	Param string
	Value string
	Err   error
}

func (e *QueryParameterError) Error() string {
	return fmt.Sprintf("invalid query parameter %s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *QueryParameterError) Unwrap() error {
	return e.Err
}

// DataLoadError reports a malformed seed dataset.
type DataLoadError struct {
	Row   int
	Field string
	Err   error
}

func (e *DataLoadError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("seed data: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("seed data row %d: %s: %v", e.Row, e.Field, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
