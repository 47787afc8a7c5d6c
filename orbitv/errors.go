package orbitv

import (
	"errors"
	"fmt"
)

// Reasons a DecodeError can wrap, for errors.Is checks.
var (
	ErrRecordSize  = errors.New("not a fixed-size OrbitV record")
	ErrIndexRange  = errors.New("entity index out of range")
	ErrTimeAccCode = errors.New("unknown time acceleration code")
)

// DecodeError reports a legacy save pair that could not be interpreted.
// Path names the offending file — the .rnd record or its STARSr companion.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("orbitv: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
