package stream

import (
	"errors"
	"fmt"
)

// ErrNoResource is wrapped by every Error raised on a detached or closed stream.
var ErrNoResource = errors.New("no resource")

// Error is returned by Stream operations that fail. Op names the failed operation ("tell", "seek", "rewind",
// "read", "write", "get contents") and URI the stream's "uri" metadata.
type Error struct {
	Op  string
	URI string
	Err error
}

func (e *Error) Error() string {
	msg := "unable to " + e.Op + " stream"
	if e.URI != "" {
		msg += " " + e.URI
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
