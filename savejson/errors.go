package savejson

import "fmt"

// ParseError wraps whatever made a save document unreadable: JSON syntax
// errors, unknown fields, wrong value types, trailing data.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("savejson: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EncodeError wraps a failure to render a snapshot as JSON.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("savejson: encode: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
