package xmlcodec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TypeInfoTestSuite struct {
	suite.Suite
}

func (s *TypeInfoTestSuite) TestFieldLayout() {
	type inner struct {
		Shared string `xml:"shared"`
	}
	type layout struct {
		inner
		XMLName  struct{} `xml:"p:layout"`
		ID       string   `xml:",attr"`
		Class    string   `xml:"@class"`
		Body     string   `xml:",chardata"`
		Skipped  string   `xml:"-"`
		Plain    int      `xml:",omitempty"`
		Prefixed string   `xml:"q:item"`
		hidden   string
	}
	ti, err := getTypeInfo(reflect.TypeFor[layout]())
	s.Require().NoError(err)
	s.Assert().True(ti.hasRoot)
	s.Assert().Equal(QName{Prefix: "p", Local: "layout"}, ti.root)

	keys := make([]string, len(ti.fields))
	for i := range ti.fields {
		keys[i] = ti.fields[i].key()
	}
	s.Assert().Equal([]string{"shared", "@ID", "@class", ".", "Plain", "q:item"}, keys)
	s.Assert().Equal([]int{0, 0}, ti.fields[0].index)
	s.Assert().True(ti.fields[4].omitEmpty)

	f, ok := ti.lookup("item")
	s.Require().True(ok, "prefixed names are found by local part")
	s.Assert().Equal("q:item", f.name)

	again, err := getTypeInfo(reflect.TypeFor[layout]())
	s.Require().NoError(err)
	s.Assert().Same(ti, again)
}

func (s *TypeInfoTestSuite) TestShapes() {
	unit, err := getTypeInfo(reflect.TypeFor[Square]())
	s.Require().NoError(err)
	s.Assert().True(unit.unit)

	tuple, err := getTypeInfo(reflect.TypeFor[Segment]())
	s.Require().NoError(err)
	s.Assert().True(tuple.tuple)
	s.Assert().False(tuple.unit)
	s.Assert().Len(tuple.fields, 2)

	schema, err := getTypeInfo(reflect.TypeFor[Schema]())
	s.Require().NoError(err)
	s.Assert().Equal(1, schema.choice)
}

func (s *TypeInfoTestSuite) TestInvalidLayouts() {
	type duplicate struct {
		A string `xml:"x"`
		B string `xml:"x"`
	}
	type twoChoices struct {
		A []Decl `xml:",choice"`
		B []Decl `xml:",choice"`
	}
	type notEnum struct {
		A []string `xml:",choice"`
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[duplicate](),
		reflect.TypeFor[twoChoices](),
		reflect.TypeFor[notEnum](),
	} {
		_, err := getTypeInfo(typ)
		s.Assert().ErrorIs(err, ErrUnsupportedType, typ.String())
	}
}

func TestTypeInfoSuite(t *testing.T) {
	suite.Run(t, new(TypeInfoTestSuite))
}

type Piece interface{ isPiece() }

type word string

func (word) isPiece() {}

type Dup struct{}

func (Dup) isPiece() {}

type dupNamed struct{}

func (dupNamed) isPiece() {}

func (dupNamed) XMLVariant() string { return "dup" }

func TestRegisterEnum(t *testing.T) {
	require.ErrorIs(t, RegisterEnum[string]("x"), ErrUnsupportedType)
	require.ErrorIs(t, RegisterEnum[Piece](nil), ErrUnsupportedType)
	require.ErrorIs(t, RegisterEnum[Piece](Dup{}, dupNamed{}), ErrUnsupportedType)

	info, ok := lookupEnum(reflect.TypeFor[Shape]())
	require.True(t, ok)
	kinds := map[string]variantKind{}
	for name, v := range info.byName {
		kinds[name] = v.kind
	}
	assert.Equal(t, map[string]variantKind{
		"square":  variantUnit,
		"circle":  variantStruct,
		"label":   variantNewtype,
		"segment": variantTuple,
	}, kinds)
	assert.Equal(t, "tuple", variantTuple.String())

	require.NoError(t, RegisterEnum[Piece](word(""), Dup{}))
	assert.True(t, isEnum(reflect.TypeFor[Piece]()))
	assert.False(t, isEnum(reflect.TypeFor[word]()))
}
