package frame

import (
	"github.com/tidwall/gjson"
)

// Get returns the field with the given key, if it exists and is not null
func (v Value) Get(key string) (Value, bool) {
	r := v.res.Get(key)
	if !r.Exists() || r.Type == gjson.Null {
		return Value{}, false
	}
	return Value{res: r, path: v.child(key)}, true
}

// Fields reads several fields of the same object. The first failure is kept, and all
// later reads become no-ops returning zero values, so a decoder can read all fields and
// check Err once at the end. Callers must discard the results if Err is not nil.
type Fields struct {
	v   Value
	err error
}

// Fields returns a field reader for this value
func (v Value) Fields() *Fields {
	return &Fields{v: v}
}

// Err returns the first error encountered, if any
func (f *Fields) Err() error {
	return f.err
}

// Fail records err, unless an earlier error was already recorded
func (f *Fields) Fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Value returns the underlying value
func (f *Fields) Value() Value {
	return f.v
}

// String reads a required string field
func (f *Fields) String(key string) string {
	if f.err != nil {
		return ""
	}
	s, err := f.v.String(key)
	f.Fail(err)
	return s
}

// OptString reads an optional string field
func (f *Fields) OptString(key string) *string {
	if f.err != nil {
		return nil
	}
	s, err := f.v.OptString(key)
	f.Fail(err)
	return s
}

// Bool reads a required boolean field
func (f *Fields) Bool(key string) bool {
	if f.err != nil {
		return false
	}
	b, err := f.v.Bool(key)
	f.Fail(err)
	return b
}

// OptBool reads an optional boolean field
func (f *Fields) OptBool(key string) *bool {
	if f.err != nil {
		return nil
	}
	b, err := f.v.OptBool(key)
	f.Fail(err)
	return b
}

// Int reads a required integer field
func (f *Fields) Int(key string) int64 {
	if f.err != nil {
		return 0
	}
	i, err := f.v.Int(key)
	f.Fail(err)
	return i
}

// OptInt reads an optional integer field
func (f *Fields) OptInt(key string) *int64 {
	if f.err != nil {
		return nil
	}
	i, err := f.v.OptInt(key)
	f.Fail(err)
	return i
}

// Object reads a required nested object
func (f *Fields) Object(key string) Value {
	if f.err != nil {
		return Value{}
	}
	obj, err := f.v.Object(key)
	f.Fail(err)
	return obj
}

// OptObject reads an optional nested object
func (f *Fields) OptObject(key string) (Value, bool) {
	if f.err != nil {
		return Value{}, false
	}
	obj, ok, err := f.v.OptObject(key)
	f.Fail(err)
	return obj, ok && err == nil
}

// OptArray reads an optional array field
func (f *Fields) OptArray(key string) []Value {
	if f.err != nil {
		return nil
	}
	elements, err := f.v.OptArray(key)
	f.Fail(err)
	return elements
}

// OptStrings reads an optional array of strings
func (f *Fields) OptStrings(key string) []string {
	if f.err != nil {
		return nil
	}
	s, err := f.v.OptStrings(key)
	f.Fail(err)
	return s
}

// StringMap reads an optional object of strings
func (f *Fields) StringMap(key string) map[string]string {
	if f.err != nil {
		return nil
	}
	m, err := f.v.StringMap(key)
	f.Fail(err)
	return m
}

// Unmarshal decodes an optional field into dst using encoding/json
func (f *Fields) Unmarshal(key string, dst interface{}) bool {
	if f.err != nil {
		return false
	}
	found, err := f.v.Unmarshal(key, dst)
	f.Fail(err)
	return found
}
