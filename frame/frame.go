// Package frame provides a read-only view of a single JSON frame as received from the RTM
// stream. Field reads distinguish between absent fields and fields of the wrong shape, and
// every failure carries the dotted path of the offending field.
package frame

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Kind is the JSON type of a value
type Kind int

// All possible Kind constants
const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

var kindNames = map[Kind]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Object: "object",
	Array:  "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is a parsed JSON value, usually a frame or a nested object within a frame
type Value struct {
	res  gjson.Result
	path string
}

// Parse validates that data is UTF-8 encoded, well-formed JSON and returns it as a Value.
// Invalid text yields a *TextError, malformed JSON the *json.SyntaxError of the standard
// library. The top-level value may be of any kind; callers requiring an object check Kind.
func Parse(data []byte) (Value, error) {
	if _, n, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return Value{}, &TextError{Offset: n, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return Value{}, syntaxError(data)
	}
	return Value{res: gjson.ParseBytes(data)}, nil
}

// ParseString is like Parse, but takes a string
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// syntaxError uses encoding/json to produce a structured error for input gjson rejected
func syntaxError(data []byte) error {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return &SyntaxError{Offset: int64(len(data)), Err: &json.SyntaxError{Offset: int64(len(data))}} // gjson is stricter than encoding/json here
}

// Path returns the dotted path of this value within the frame, or an empty string for the root
func (v Value) Path() string {
	return v.path
}

// Raw returns the raw JSON text of the value
func (v Value) Raw() string {
	return v.res.Raw
}

// Kind returns the JSON type of the value
func (v Value) Kind() Kind {
	return kindOf(v.res)
}

// Has returns true if the field exists and is not null
func (v Value) Has(key string) bool {
	r := v.res.Get(key)
	return r.Exists() && r.Type != gjson.Null
}

// String reads a required string field
func (v Value) String(key string) (string, error) {
	r, err := v.required(key, String)
	if err != nil {
		return "", err
	}
	return r.Str, nil
}

// OptString reads an optional string field. It returns nil if the field is absent or null.
func (v Value) OptString(key string) (*string, error) {
	r, ok, err := v.optional(key, String)
	if err != nil || !ok {
		return nil, err
	}
	return &r.Str, nil
}

// Bool reads a required boolean field
func (v Value) Bool(key string) (bool, error) {
	r, err := v.required(key, Bool)
	if err != nil {
		return false, err
	}
	return r.Bool(), nil
}

// OptBool reads an optional boolean field
func (v Value) OptBool(key string) (*bool, error) {
	r, ok, err := v.optional(key, Bool)
	if err != nil || !ok {
		return nil, err
	}
	b := r.Bool()
	return &b, nil
}

// Int reads a required integer field. Numbers with a fractional part are rejected.
func (v Value) Int(key string) (int64, error) {
	r, err := v.required(key, Number)
	if err != nil {
		return 0, err
	}
	return v.integer(key, r)
}

// OptInt reads an optional integer field
func (v Value) OptInt(key string) (*int64, error) {
	r, ok, err := v.optional(key, Number)
	if err != nil || !ok {
		return nil, err
	}
	i, err := v.integer(key, r)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Object reads a required nested object
func (v Value) Object(key string) (Value, error) {
	r, err := v.required(key, Object)
	if err != nil {
		return Value{}, err
	}
	return Value{res: r, path: v.child(key)}, nil
}

// OptObject reads an optional nested object. The boolean result is false if the field is absent or null.
func (v Value) OptObject(key string) (Value, bool, error) {
	r, ok, err := v.optional(key, Object)
	if err != nil || !ok {
		return Value{}, false, err
	}
	return Value{res: r, path: v.child(key)}, true, nil
}

// Array reads a required array field, returning its elements
func (v Value) Array(key string) ([]Value, error) {
	r, err := v.required(key, Array)
	if err != nil {
		return nil, err
	}
	return v.elements(key, r), nil
}

// OptArray reads an optional array field. A nil slice means the field was absent or null.
func (v Value) OptArray(key string) ([]Value, error) {
	r, ok, err := v.optional(key, Array)
	if err != nil || !ok {
		return nil, err
	}
	return v.elements(key, r), nil
}

// Strings reads a required array of strings
func (v Value) Strings(key string) ([]string, error) {
	elements, err := v.Array(key)
	if err != nil {
		return nil, err
	}
	return stringsOf(elements)
}

// OptStrings reads an optional array of strings
func (v Value) OptStrings(key string) ([]string, error) {
	elements, err := v.OptArray(key)
	if err != nil || elements == nil {
		return nil, err
	}
	return stringsOf(elements)
}

// StringMap reads an optional object whose values are all strings
func (v Value) StringMap(key string) (map[string]string, error) {
	obj, ok, err := v.OptObject(key)
	if err != nil || !ok {
		return nil, err
	}
	m := make(map[string]string)
	obj.res.ForEach(func(k, val gjson.Result) bool {
		if val.Type != gjson.String {
			err = newDecodeError(obj.child(k.Str), "expected string, found %s", kindOf(val))
			return false
		}
		m[k.Str] = val.Str
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Unmarshal decodes an optional field into dst using encoding/json. It returns false if the
// field was absent or null, in which case dst is left untouched. This is meant for nested
// types owned by other packages that come with their own JSON tags.
func (v Value) Unmarshal(key string, dst interface{}) (bool, error) {
	r := v.res.Get(key)
	if !r.Exists() || r.Type == gjson.Null {
		return false, nil
	}
	if err := json.Unmarshal([]byte(r.Raw), dst); err != nil {
		return false, &DecodeError{Path: v.child(key), Msg: err.Error(), Err: err}
	}
	return true, nil
}

// Error returns a decode error for the given field of this value. This is used by decoders
// that validate field contents beyond their JSON type.
func (v Value) Error(key string, format string, args ...interface{}) *DecodeError {
	return newDecodeError(v.child(key), format, args...)
}

func (v Value) required(key string, want Kind) (gjson.Result, error) {
	r := v.res.Get(key)
	if !r.Exists() {
		return r, newDecodeError(v.child(key), "missing required field")
	}
	if got := kindOf(r); got != want {
		return r, newDecodeError(v.child(key), "expected %s, found %s", want, got)
	}
	return r, nil
}

func (v Value) optional(key string, want Kind) (gjson.Result, bool, error) {
	r := v.res.Get(key)
	if !r.Exists() || r.Type == gjson.Null {
		return r, false, nil
	}
	if got := kindOf(r); got != want {
		return r, false, newDecodeError(v.child(key), "expected %s, found %s", want, got)
	}
	return r, true, nil
}

// int64Limit is 2^63, the first float64 that does not fit into an int64
const int64Limit = 1 << 63

func (v Value) integer(key string, r gjson.Result) (int64, error) {
	i, err := strconv.ParseInt(r.Raw, 10, 64)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) || r.Num != math.Trunc(r.Num) || r.Num >= int64Limit || r.Num < -int64Limit {
		return 0, newDecodeError(v.child(key), "expected integer, found %s", r.Raw)
	}
	return int64(r.Num), nil // e.g. 1e3
}

func (v Value) elements(key string, r gjson.Result) []Value {
	results := r.Array()
	values := make([]Value, len(results))
	base := v.child(key)
	for i, e := range results {
		values[i] = Value{res: e, path: base + "." + strconv.Itoa(i)}
	}
	return values
}

func (v Value) child(key string) string {
	if v.path == "" {
		return key
	}
	return v.path + "." + key
}

func stringsOf(elements []Value) ([]string, error) {
	s := make([]string, len(elements))
	for i, e := range elements {
		if e.res.Type != gjson.String {
			return nil, newDecodeError(e.path, "expected string, found %s", kindOf(e.res))
		}
		s[i] = e.res.Str
	}
	return s, nil
}

func kindOf(r gjson.Result) Kind {
	switch r.Type {
	case gjson.True, gjson.False:
		return Bool
	case gjson.Number:
		return Number
	case gjson.String:
		return String
	case gjson.JSON:
		if r.IsArray() {
			return Array
		}
		return Object
	default:
		return Null
	}
}
