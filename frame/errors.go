package frame

import (
	"fmt"
)

// DecodeError is returned if a frame is well-formed JSON, but a field is missing or has the wrong shape
type DecodeError struct {
	Path string // Dotted field path, e.g. "item.message.ts"
	Msg  string
	Err  error // Underlying encoding/json error, if any
}

func newDecodeError(path string, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("field %q: %s", e.Path, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TextError is returned if a frame is not valid UTF-8
type TextError struct {
	Offset int // Offset of the first invalid byte
	Err    error
}

func (e *TextError) Error() string {
	return fmt.Sprintf("invalid text at byte %d: %s", e.Offset, e.Err.Error())
}

func (e *TextError) Unwrap() error {
	return e.Err
}

// SyntaxError is returned for input that encoding/json accepts but the frame parser does not,
// e.g. deeply nested values. It wraps a *json.SyntaxError so that it is classified like any
// other malformed frame.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed JSON near byte %d", e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
