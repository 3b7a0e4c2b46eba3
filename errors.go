package xmlcodec

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every error the codec returns.
type Kind uint8

const (
	// KindStructural is an unexpected token where a tag, text or document
	// boundary was required, a mismatched end tag, or a sequence, tuple or
	// enum requested without a valid enclosing tag.
	KindStructural Kind = iota + 1
	// KindParse is scalar text that does not parse as the requested type.
	KindParse
	// KindIO is a read or write failure of the underlying stream.
	KindIO
	// KindMessage is a free-form contract violation.
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindMessage:
		return "message"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	// ErrStructural matches any error of KindStructural with errors.Is.
	ErrStructural = &Error{Kind: KindStructural, Msg: "structural error"}

	// ErrParse matches any error of KindParse with errors.Is.
	ErrParse = &Error{Kind: KindParse, Msg: "parse error"}

	// ErrIO matches any error of KindIO with errors.Is.
	ErrIO = &Error{Kind: KindIO, Msg: "i/o error"}

	// ErrMessage matches any error of KindMessage with errors.Is.
	ErrMessage = &Error{Kind: KindMessage, Msg: "codec error"}

	// ErrNilIO indicates that NewDecoder/NewEncoder was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("xmlcodec: NewDecoder/NewEncoder called with a nil io.Reader/io.Writer")

	// ErrInputTooLarge indicates the document exceeded the configured input limit.
	ErrInputTooLarge = errors.New("xmlcodec: input exceeds configured maximum size")

	// ErrInvalidTarget indicates Decode was handed something other than a non-nil pointer.
	ErrInvalidTarget = errors.New("xmlcodec: decode target must be a non-nil pointer")

	// ErrUnsupportedType indicates a Go type the binding cannot map to markup.
	ErrUnsupportedType = errors.New("xmlcodec: unsupported type")
)

// Error is the single error type returned by the codec. Kind drives
// errors.Is against the Err* kind sentinels; Err is the wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Path string // field path, e.g. "document.content.number"
	Text string // offending text for KindParse
	Type string // target type for KindParse
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("xmlcodec: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Kind == KindParse && e.Type != "" {
		fmt.Fprintf(&b, " (cannot parse %q as %s)", e.Text, e.Type)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality against the bare kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == ErrStructural || t == ErrParse || t == ErrIO || t == ErrMessage {
		return e.Kind == t.Kind
	}
	return e == t
}

// KindOf returns the Kind of err, or 0 when err is not a codec error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func structuralf(format string, args ...any) error {
	return &Error{Kind: KindStructural, Msg: fmt.Sprintf(format, args...)}
}

func messagef(format string, args ...any) error {
	return &Error{Kind: KindMessage, Msg: fmt.Sprintf(format, args...)}
}

func parseError(text, typ string, err error) error {
	return &Error{Kind: KindParse, Msg: "invalid scalar", Text: text, Type: typ, Err: err}
}

func ioError(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindIO, Msg: op, Err: err}
}

// withPath prefixes the field path of a codec error. Errors from hooks that
// are not *Error are wrapped as KindMessage so the path is not lost.
func withPath(err error, path string) error {
	if err == nil || path == "" {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			cp := *e
			cp.Path = path
			return &cp
		}
		return err
	}
	return &Error{Kind: KindMessage, Msg: "custom codec failed", Path: path, Err: err}
}
