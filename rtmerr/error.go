// Package rtmerr defines the error type shared by the RTM decoder and transport. Every failure,
// whether it comes from the HTTP client, the websocket, text or JSON decoding, or the Slack API
// itself, is represented as an *Error of one of a fixed set of kinds.
package rtmerr

import (
	"errors"
	"fmt"
)

// Kind identifies the origin of an Error
type Kind int

// All possible Kind constants
const (
	KindHTTP       Kind = iota + 1 // HTTP client failure
	KindURL                        // URL could not be parsed
	KindWebSocket                  // Websocket dial, read or write failure
	KindUTF8                       // Frame is not valid UTF-8
	KindJSONParse                  // Frame is not well-formed JSON
	KindJSONDecode                 // Well-formed JSON, but missing or wrongly shaped fields
	KindJSONEncode                 // Outbound payload could not be encoded
	KindAPI                        // Slack rejected a request
	KindInternal                   // Local I/O and everything else
)

var kindNames = map[Kind]string{
	KindHTTP:       "http",
	KindURL:        "url",
	KindWebSocket:  "websocket",
	KindUTF8:       "utf8 decode",
	KindJSONParse:  "json parse",
	KindJSONDecode: "json decode",
	KindJSONEncode: "json encode",
	KindAPI:        "slack api",
	KindInternal:   "internal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the unified error type. Err holds the originating error for all kinds but
// KindAPI and KindInternal, which carry a descriptive Msg instead.
type Error struct {
	Kind Kind
	Err  error
	Msg  string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error: %q", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s error: %s [%T]", e.Kind, e.Err.Error(), e.Err)
}

// Unwrap returns the wrapped error, so errors.Is and errors.As see through an Error
func (e *Error) Unwrap() error {
	return e.Err
}

// Cause returns the originating lower-layer error, or nil for the API and internal kinds
func (e *Error) Cause() error {
	switch e.Kind {
	case KindAPI, KindInternal:
		return nil
	default:
		return e.Err
	}
}

// API returns an error describing a request the Slack API rejected
func API(msg string) *Error {
	return &Error{Kind: KindAPI, Msg: msg}
}

// Internal returns an error for failures that have no dedicated kind
func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg}
}

// Internalf is like Internal, but formats the message
func Internalf(format string, args ...interface{}) *Error {
	return Internal(fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first *Error in err's chain, or 0 if there is none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is returns true if err's chain contains an *Error of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Retryable returns true if the failure is likely transient, i.e. if reconnecting might
// help. Transport failures are retryable; decoding failures, API rejections, bad URLs and
// internal errors are not.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindHTTP, KindWebSocket:
		return true
	default:
		return false
	}
}

func wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Err: err}
}
