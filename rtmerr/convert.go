package rtmerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/slack-go/slack"
	"golang.org/x/text/encoding"
	"heckel.io/rtmtail/frame"
)

// FromHTTP converts an HTTP client error. URL parse failures, which the HTTP client reports
// as a *url.Error with op "parse" or as a nested escape/host error, are re-tagged as KindURL.
func FromHTTP(err error) *Error {
	if err == nil {
		return nil
	} else if isURLParseError(err) {
		return wrap(KindURL, err)
	}
	return wrap(KindHTTP, err)
}

// FromWebSocket converts an error returned while dialing, reading or writing the websocket
func FromWebSocket(err error) *Error {
	return wrap(KindWebSocket, err)
}

// FromUTF8 converts a text decoding error
func FromUTF8(err error) *Error {
	return wrap(KindUTF8, err)
}

// FromJSONParse converts an error about malformed JSON text
func FromJSONParse(err error) *Error {
	return wrap(KindJSONParse, err)
}

// FromJSONDecode converts an error about well-formed JSON that does not have the expected shape
func FromJSONDecode(err error) *Error {
	return wrap(KindJSONDecode, err)
}

// FromJSONEncode converts an error that occurred while encoding an outbound payload
func FromJSONEncode(err error) *Error {
	return wrap(KindJSONEncode, err)
}

// FromIO converts a local I/O error. There is no dedicated kind for I/O, so the
// error's Go representation is kept as the message of a KindInternal error.
func FromIO(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(fmt.Sprintf("%#v", err))
}

// From classifies an arbitrary error by inspecting its chain. Errors that match no known
// domain become KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var (
		e           *Error
		urlErr      *url.Error
		closeErr    *websocket.CloseError
		textErr     *frame.TextError
		decodeErr   *frame.DecodeError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		marshalErr  *json.MarshalerError
		unsupported *json.UnsupportedValueError
		unsupType   *json.UnsupportedTypeError
		slackErr    slack.SlackErrorResponse
		rateErr     *slack.RateLimitedError
		statusErr   slack.StatusCodeError
		pathErr     *fs.PathError
	)
	switch {
	case errors.As(err, &e):
		return e
	case errors.As(err, &textErr), errors.Is(err, encoding.ErrInvalidUTF8):
		return wrap(KindUTF8, err)
	case errors.As(err, &decodeErr), errors.As(err, &typeErr):
		return wrap(KindJSONDecode, err)
	case errors.As(err, &syntaxErr):
		return wrap(KindJSONParse, err)
	case errors.As(err, &marshalErr), errors.As(err, &unsupported), errors.As(err, &unsupType):
		return wrap(KindJSONEncode, err)
	case errors.As(err, &slackErr):
		return API(slackErr.Err)
	case errors.As(err, &rateErr), errors.As(err, &statusErr):
		return wrap(KindHTTP, err)
	case errors.As(err, &closeErr), errors.Is(err, websocket.ErrBadHandshake),
		errors.Is(err, websocket.ErrCloseSent), errors.Is(err, websocket.ErrReadLimit):
		return wrap(KindWebSocket, err)
	case errors.As(err, &urlErr), isURLParseError(err):
		return FromHTTP(err)
	case errors.As(err, &pathErr), errors.Is(err, io.ErrUnexpectedEOF):
		return FromIO(err)
	default:
		return Internal(err.Error())
	}
}

func isURLParseError(err error) bool {
	var (
		urlErr    *url.Error
		escapeErr url.EscapeError
		hostErr   url.InvalidHostError
	)
	if errors.As(err, &escapeErr) || errors.As(err, &hostErr) {
		return true
	}
	for errors.As(err, &urlErr) {
		if urlErr.Op == "parse" {
			return true
		}
		err = urlErr.Err
	}
	return false
}
