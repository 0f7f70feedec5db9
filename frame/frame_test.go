package frame

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

const testFrame = `{
	"type": "message",
	"reply_to": 12,
	"big": 1e3,
	"ratio": 1.5,
	"ok": false,
	"nothing": null,
	"pinned_to": ["C1", "C2"],
	"mixed": ["C1", 2],
	"icons": {"image_36": "a.png", "image_48": "b.png"},
	"edited": {"user": "U1", "ts": "1.2", "deep": {"n": "x"}},
	"attachments": [{"color": "#36a64f"}]
}`

func TestParseAndReadFields(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)
	assert.Equal(t, Object, v.Kind())
	assert.Equal(t, "", v.Path())

	ty, err := v.String("type")
	assert.Nil(t, err)
	assert.Equal(t, "message", ty)

	replyTo, err := v.Int("reply_to")
	assert.Nil(t, err)
	assert.Equal(t, int64(12), replyTo)

	big, err := v.Int("big")
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), big)

	ok, err := v.Bool("ok")
	assert.Nil(t, err)
	assert.False(t, ok)

	pinned, err := v.Strings("pinned_to")
	assert.Nil(t, err)
	assert.Equal(t, []string{"C1", "C2"}, pinned)

	icons, err := v.StringMap("icons")
	assert.Nil(t, err)
	assert.Equal(t, "b.png", icons["image_48"])
}

func TestOptionalFields(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	s, err := v.OptString("does-not-exist")
	assert.Nil(t, err)
	assert.Nil(t, s)

	s, err = v.OptString("nothing")
	assert.Nil(t, err)
	assert.Nil(t, s)

	b, err := v.OptBool("ok")
	assert.Nil(t, err)
	require.NotNil(t, b)
	assert.False(t, *b)

	arr, err := v.OptArray("nothing")
	assert.Nil(t, err)
	assert.Nil(t, arr)

	_, found, err := v.OptObject("nothing")
	assert.Nil(t, err)
	assert.False(t, found)

	assert.True(t, v.Has("type"))
	assert.False(t, v.Has("nothing"))
	assert.False(t, v.Has("does-not-exist"))
}

func TestMissingAndWrongShape(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	_, err = v.String("ts")
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "ts", decodeErr.Path)
	assert.Equal(t, `field "ts": missing required field`, err.Error())

	_, err = v.String("reply_to")
	assert.Equal(t, `field "reply_to": expected string, found number`, err.Error())

	_, err = v.String("nothing")
	assert.Equal(t, `field "nothing": expected string, found null`, err.Error())

	_, err = v.Int("ratio")
	assert.Equal(t, `field "ratio": expected integer, found 1.5`, err.Error())

	_, err = v.OptBool("type")
	assert.Equal(t, `field "type": expected bool, found string`, err.Error())

	_, err = v.Strings("mixed")
	assert.Equal(t, `field "mixed.1": expected string, found number`, err.Error())
}

func TestNestedPaths(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	edited, err := v.Object("edited")
	require.Nil(t, err)
	assert.Equal(t, "edited", edited.Path())

	deep, err := edited.Object("deep")
	require.Nil(t, err)
	_, err = deep.Int("n")
	assert.Equal(t, `field "edited.deep.n": expected number, found string`, err.Error())

	attachments, err := v.Array("attachments")
	require.Nil(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "attachments.0", attachments[0].Path())
	color, err := attachments[0].String("color")
	assert.Nil(t, err)
	assert.Equal(t, "#36a64f", color)
}

func TestUnmarshal(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	var edited struct {
		User string `json:"user"`
		TS   string `json:"ts"`
	}
	found, err := v.Unmarshal("edited", &edited)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "U1", edited.User)

	found, err = v.Unmarshal("nothing", &edited)
	assert.Nil(t, err)
	assert.False(t, found)

	var wrong []int
	_, err = v.Unmarshal("pinned_to", &wrong)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "pinned_to", decodeErr.Path)
	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := ParseString(`{"type": "hello"`)
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))

	_, err = Parse(nil)
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestSyntaxErrorHasDetail(t *testing.T) {
	err := syntaxError([]byte(`{"type":"hello"}`))
	var syntaxErr *json.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "malformed JSON near byte 16", err.Error())
}

func TestIntegerOutOfRange(t *testing.T) {
	for _, n := range []string{"9223372036854775808", "-9223372036854775809", "9.3e18", "-1e19", "1e19"} {
		v, err := ParseString(`{"reply_to": ` + n + `}`)
		require.Nil(t, err)
		_, err = v.Int("reply_to")
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), n)
		assert.Equal(t, "reply_to", decodeErr.Path)
	}
	for n, expected := range map[string]int64{
		"9223372036854775807":  9223372036854775807,
		"-9223372036854775808": -9223372036854775808,
		"-9.2e18":              -9200000000000000000,
	} {
		v, err := ParseString(`{"reply_to": ` + n + `}`)
		require.Nil(t, err)
		i, err := v.Int("reply_to")
		require.Nil(t, err, n)
		assert.Equal(t, expected, i)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("{\"text\": \"ab\xff\"}"))
	var textErr *TextError
	require.True(t, errors.As(err, &textErr))
	assert.Equal(t, 12, textErr.Offset)
	assert.True(t, errors.Is(err, encoding.ErrInvalidUTF8))
}

func TestParseNonObject(t *testing.T) {
	v, err := ParseString(`[1, 2, 3]`)
	require.Nil(t, err)
	assert.Equal(t, Array, v.Kind())
	assert.False(t, v.Has("type"))
}

func TestFieldsKeepsFirstError(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	f := v.Fields()
	assert.Equal(t, "message", f.String("type"))
	assert.Equal(t, int64(12), f.Int("reply_to"))
	assert.Nil(t, f.Err())

	assert.Equal(t, "", f.String("ts"))          // missing, recorded
	assert.Equal(t, int64(0), f.Int("reply_to")) // skipped
	assert.Nil(t, f.OptStrings("pinned_to"))     // skipped
	f.Fail(errors.New("ignored, not the first"))
	assert.Equal(t, `field "ts": missing required field`, f.Err().Error())
}

func TestGet(t *testing.T) {
	v, err := ParseString(testFrame)
	require.Nil(t, err)

	field, ok := v.Get("edited")
	require.True(t, ok)
	assert.Equal(t, Object, field.Kind())
	assert.Equal(t, "edited", field.Path())

	field, ok = v.Get("type")
	require.True(t, ok)
	assert.Equal(t, String, field.Kind())

	_, ok = v.Get("nothing")
	assert.False(t, ok)
}
