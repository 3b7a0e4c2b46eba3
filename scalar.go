package xmlcodec

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// ParseInteger parses decimal text as T. Surrounding whitespace is ignored.
func ParseInteger[T constraints.Integer](s string) (T, error) {
	typ := reflect.TypeFor[T]()
	text := strings.TrimSpace(s)
	if ^T(0) < 0 {
		n, err := strconv.ParseInt(text, 10, typ.Bits())
		if err != nil {
			return 0, parseError(s, typ.String(), err)
		}
		return T(n), nil
	}
	n, err := strconv.ParseUint(text, 10, typ.Bits())
	if err != nil {
		return 0, parseError(s, typ.String(), err)
	}
	return T(n), nil
}

// ParseFloat parses text as T. Surrounding whitespace is ignored.
func ParseFloat[T constraints.Float](s string) (T, error) {
	typ := reflect.TypeFor[T]()
	f, err := strconv.ParseFloat(strings.TrimSpace(s), typ.Bits())
	if err != nil {
		return 0, parseError(s, typ.String(), err)
	}
	return T(f), nil
}

// ParseBool accepts the forms of strconv.ParseBool.
func ParseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, parseError(s, "bool", err)
	}
	return b, nil
}

// FormatInteger renders v in decimal.
func FormatInteger[T constraints.Integer](v T) string {
	if ^T(0) < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// FormatFloat renders v in the shortest form that parses back to v.
func FormatFloat[T constraints.Float](v T) string {
	return strconv.FormatFloat(float64(v), 'g', -1, reflect.TypeFor[T]().Bits())
}

// parseScalar stores text into a value of basic kind.
func parseScalar(s string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := ParseBool(s)
		if err != nil {
			return err
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := ParseInteger[int64](s)
		if err != nil {
			return retype(err, rv.Type())
		}
		if rv.OverflowInt(n) {
			return parseError(s, rv.Type().String(), strconv.ErrRange)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := ParseInteger[uint64](s)
		if err != nil {
			return retype(err, rv.Type())
		}
		if rv.OverflowUint(n) {
			return parseError(s, rv.Type().String(), strconv.ErrRange)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := ParseFloat[float64](s)
		if err != nil {
			return retype(err, rv.Type())
		}
		if rv.OverflowFloat(f) {
			return parseError(s, rv.Type().String(), strconv.ErrRange)
		}
		rv.SetFloat(f)
	default:
		return messagef("%s is not a scalar", rv.Type())
	}
	return nil
}

// formatScalar renders a value of basic kind.
func formatScalar(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FormatInteger(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FormatInteger(rv.Uint()), true
	case reflect.Float32:
		return FormatFloat(float32(rv.Float())), true
	case reflect.Float64:
		return FormatFloat(rv.Float()), true
	}
	return "", false
}

// retype names the destination type in a parse error raised for its
// widest counterpart.
func retype(err error, typ reflect.Type) error {
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Type = typ.String()
		return &cp
	}
	return err
}
