package xmlcodec

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, "structural", KindStructural.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "io", KindIO.String())
	assert.Equal(t, "message", KindMessage.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestErrorIs(t *testing.T) {
	err := structuralf("expected %s", "tag")
	assert.ErrorIs(t, err, ErrStructural)
	assert.NotErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrMessage)

	wrapped := fmt.Errorf("loading config: %w", err)
	assert.ErrorIs(t, wrapped, ErrStructural)
	assert.Equal(t, KindStructural, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(io.EOF))

	other := structuralf("expected %s", "tag")
	assert.NotErrorIs(t, err, other, "only the kind sentinels match by kind")
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindParse, Msg: "invalid scalar", Path: "doc.n", Text: "x", Type: "int", Err: errors.New("bad")}
	assert.Equal(t, `xmlcodec: doc.n: invalid scalar (cannot parse "x" as int): bad`, err.Error())
	assert.Equal(t, "xmlcodec: i/o error", ErrIO.Error())
}

func TestIOError(t *testing.T) {
	assert.NoError(t, ioError("read", nil))

	err := ioError("write", io.ErrShortWrite)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)

	inner := structuralf("boom")
	assert.Same(t, inner, ioError("read", inner), "codec errors keep their kind")
}

func TestWithPath(t *testing.T) {
	assert.NoError(t, withPath(nil, "a"))

	base := parseError("x", "int", errors.New("bad"))
	err := withPath(base, "a.b")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "a.b", e.Path)
	assert.Empty(t, base.(*Error).Path, "withPath copies instead of mutating")

	assert.Same(t, err, withPath(err, "a"), "the innermost path wins")

	custom := withPath(errors.New("hook failed"), "a.c")
	assert.ErrorIs(t, custom, ErrMessage)
	assert.Contains(t, custom.Error(), "a.c: custom codec failed: hook failed")
}
