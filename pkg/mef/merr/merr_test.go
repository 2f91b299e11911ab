package merr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLocation(t *testing.T) {
	assert.Equal(t, "line 5: bad thing", WithLocation(5, "bad thing"))
	assert.Equal(t, "bad thing", WithLocation(0, "bad thing"), "a non-positive line is omitted")
}

func TestValidationBuildsLocationPrefixedMessage(t *testing.T) {
	err := Validation(3, "gate %q is broken", "g1")
	assert.Equal(t, `line 3: gate "g1" is broken`, err.Error())
}

func TestWrapFilePreservesConcreteType(t *testing.T) {
	err := WrapFile("model.xml", &ValidationError{Msg: "oops"})
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "WrapFile must preserve the concrete error type for callers that type-switch on it")
	assert.Contains(t, ve.Msg, "model.xml")
	assert.Contains(t, ve.Msg, "oops")
}

func TestWrapFileLeavesUnknownTypesAlone(t *testing.T) {
	generic := assertError("generic failure")
	err := WrapFile("model.xml", generic)
	assert.Equal(t, generic, err)
}

func assertError(msg string) error { return &plainError{msg} }

type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

func TestMultiErrorAccumulatesAndFormats(t *testing.T) {
	me := NewMultiError("bad things detected")
	assert.Nil(t, me.Err(), "no lines added yet, nothing to report")

	me.Add("thing 1")
	me.Add("thing 2")
	assert.Equal(t, 2, me.Len())

	err := me.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad things detected")
	assert.Contains(t, err.Error(), "thing 1")
	assert.Contains(t, err.Error(), "thing 2")
}
