package importer

import "fmt"

// SourceParseError reports a source that could not be parsed. Only that
// source is skipped.
type SourceParseError struct {
	Name string
	Err  error
}

func (e *SourceParseError) Error() string {
	return fmt.Sprintf("parse source %s: %v", e.Name, e.Err)
}

func (e *SourceParseError) Unwrap() error {
	return e.Err
}
