package xmlcodec

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

type Base struct {
	ID string `xml:"@id"`
}

type Node struct {
	Base
	Name     string `xml:"name"`
	Children []Node `xml:"node"`
}

type Box[T any] struct {
	Value T `xml:"value"`
}

type scalars struct {
	B   bool    `xml:"b"`
	I8  int8    `xml:"i8"`
	I64 int64   `xml:"@i64"`
	U16 uint16  `xml:"u16"`
	U64 uint64  `xml:"u64"`
	F32 float32 `xml:"f32"`
	F64 float64 `xml:"f64"`
	Raw []byte  `xml:"raw"`
	Txt string  `xml:"."`
}

type shapes struct {
	XMLName struct{} `xml:"shapes"`
	Main    Shape    `xml:"main"`
	Extra   []Shape  `xml:"extra"`
	Maybe   *Shape   `xml:"maybe"`
}

func roundTrip[T any](t *testing.T, in T, opts ...Option) {
	t.Helper()
	data, err := Marshal(&in, opts...)
	require.NoError(t, err)

	out := new(T)
	require.NoError(t, Unmarshal(data, out, opts...), "document:\n%s", data)
	if diff := cmp.Diff(in, *out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s\ndocument:\n%s", diff, data)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("Drawing", func(t *testing.T) {
		roundTrip(t, Drawing{
			ID:      "d1",
			Title:   "Plan & <elevation>",
			Shape:   Segment{A: -1, B: 7},
			Points:  []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
			Pos:     [2]int{10, 20},
			Scale:   Ptr(0.25),
			Tags:    []string{"a", "b", "c"},
			Created: mustTime("2024-03-01T12:00:00Z"),
			Temp:    -3.5,
			Meta:    map[string]string{"owner": "ops", "@rev": "3"},
		})
	})

	t.Run("DrawingEmpty", func(t *testing.T) {
		roundTrip(t, Drawing{Shape: Square{}})
	})

	t.Run("Compact", func(t *testing.T) {
		roundTrip(t, Drawing{Shape: Label("x"), Tags: []string{"only"}}, compact...)
	})

	t.Run("Schema", func(t *testing.T) {
		roundTrip(t, Schema{
			Target: "urn:t",
			Decls: []Decl{
				Import{Namespace: "urn:a", Location: "a.xsd"},
				Annotation{Text: "docs"},
				Separator{},
				Import{Namespace: "urn:b"},
			},
		})
	})

	t.Run("Shapes", func(t *testing.T) {
		var maybe Shape = Circle{R: 0.5}
		roundTrip(t, shapes{
			Main:  Circle{R: 2},
			Extra: []Shape{Square{}, Label("l"), Segment{A: 1, B: 2}, Circle{R: 3}},
			Maybe: &maybe,
		})
		roundTrip(t, shapes{Main: Square{}})
	})

	t.Run("RootEnum", func(t *testing.T) {
		for _, shape := range []Shape{Square{}, Circle{R: 1}, Label("n"), Segment{A: 5, B: 6}} {
			roundTrip(t, shape)
		}
	})

	t.Run("EnumAttribute", func(t *testing.T) {
		out, err := MarshalString(tagged{Kind: Square{}, Name: "n"}, compact...)
		require.NoError(t, err)
		require.Equal(t, `<tagged kind="square"><name>n</name></tagged>`, out)

		roundTrip(t, tagged{Kind: Square{}, Name: "n"})
		roundTrip(t, tagged{Name: "none"})
	})

	t.Run("Tree", func(t *testing.T) {
		roundTrip(t, Node{
			Base: Base{ID: "1"},
			Name: "root",
			Children: []Node{
				{Base: Base{ID: "2"}, Name: "left"},
				{Base: Base{ID: "3"}, Name: "right", Children: []Node{{Base: Base{ID: "4"}, Name: "leaf"}}},
			},
		})
	})

	t.Run("Generic", func(t *testing.T) {
		roundTrip(t, Box[int]{Value: 42})
		roundTrip(t, Box[[]string]{Value: []string{"x", "y"}})
		roundTrip(t, Box[map[string]int]{Value: map[string]int{"a": 1, "b": 2}})
	})

	t.Run("Scalars", func(t *testing.T) {
		roundTrip(t, scalars{
			B: true, I8: -128, I64: -1 << 62, U16: 65535, U64: 1<<64 - 1,
			F32: 0.1, F64: 1e-300, Raw: []byte("bytes"), Txt: "tail",
		})
	})

	t.Run("Any", func(t *testing.T) {
		in := any(map[string]any{
			"@id":  "7",
			"name": "x",
			"tag":  []any{"a", "b"},
			"nest": map[string]any{"@k": "v", "deep": "d"},
		})
		roundTrip(t, in, WithRootName("root"))
	})
}

// Marshal on an interface value sees only the dynamic value; a root enum
// keeps its wrapper element when passed by pointer.
func TestRootEnumNeedsPointer(t *testing.T) {
	shape := Shape(Circle{R: 1})

	bare, err := MarshalString(shape, compact...)
	require.NoError(t, err)
	require.Equal(t, `<circle><r>1</r></circle>`, bare)

	data, err := MarshalString(&shape, compact...)
	require.NoError(t, err)
	require.Equal(t, `<shape><circle><r>1</r></circle></shape>`, data)

	var got Shape
	require.NoError(t, UnmarshalString(data, &got))
	if !reflect.DeepEqual(shape, got) {
		t.Errorf("got %#v, want %#v", got, shape)
	}
}
