package xmlcodec

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	n, err := ParseInteger[int16](" -300 ")
	require.NoError(t, err)
	assert.Equal(t, int16(-300), n)

	u, err := ParseInteger[uint8]("255")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u)

	_, err = ParseInteger[uint8]("256")
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParseInteger[uint]("-1")
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParseInteger[int]("1.5")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "int", e.Type)
	assert.Equal(t, "1.5", e.Text)
}

func TestParseFloatAndBool(t *testing.T) {
	f, err := ParseFloat[float32]("0.1")
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), f)

	_, err = ParseFloat[float64]("abc")
	assert.ErrorIs(t, err, ErrParse)

	b, err := ParseBool(" true")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = ParseBool("yes")
	assert.ErrorIs(t, err, ErrParse)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "-42", FormatInteger(int8(-42)))
	assert.Equal(t, "18446744073709551615", FormatInteger(uint64(math.MaxUint64)))
	assert.Equal(t, "0.1", FormatFloat(float32(0.1)))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
	assert.Equal(t, "2", FormatFloat(2.0))
}

func TestParseScalarOverflow(t *testing.T) {
	var small int8
	err := parseScalar("128", reflect.ValueOf(&small).Elem())
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindParse, e.Kind)
	assert.Equal(t, "int8", e.Type)

	var f32 float32
	assert.ErrorIs(t, parseScalar("1e39", reflect.ValueOf(&f32).Elem()), ErrParse)

	var ch chan int
	assert.ErrorIs(t, parseScalar("x", reflect.ValueOf(&ch).Elem()), ErrMessage)
}

func TestLowerCamel(t *testing.T) {
	cases := map[string]string{
		"Circle":   "circle",
		"XMLName":  "xmlName",
		"ID":       "id",
		"lateAttr": "lateAttr",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, lowerCamel(in), in)
	}
}

func TestTypeRootName(t *testing.T) {
	assert.Equal(t, "point", typeRootName(reflect.TypeFor[*Point]()))
	assert.Equal(t, "point", typeRootName(reflect.TypeFor[[]Point]()))
	assert.Equal(t, "box", typeRootName(reflect.TypeFor[Box[[]string]]()))
	assert.Equal(t, "", typeRootName(reflect.TypeFor[map[string]int]()))
}
