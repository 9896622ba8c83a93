package domain

import "fmt"

// ParseError reports malformed data, either a response body the client
// could not decode or a bean payload handed between views.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
