package xmlcodec

import (
	"fmt"
	"strings"
	"time"
)

// Shape is a tagged union with one variant of every kind.
type Shape interface{ isShape() }

type Square struct{}

type Circle struct {
	R float64 `xml:"r"`
}

type Label string

type Segment struct {
	Tuple
	A, B int
}

func (Square) isShape()  {}
func (Circle) isShape()  {}
func (Label) isShape()   {}
func (Segment) isShape() {}

// Decl is the content model of a schema: annotations and imports in any order.
type Decl interface{ isDecl() }

type Annotation struct {
	Text string `xml:"."`
}

type Import struct {
	Namespace string `xml:"@namespace"`
	Location  string `xml:"@schemaLocation,omitempty"`
}

type Separator struct{}

func (Annotation) isDecl() {}
func (Import) isDecl()     {}
func (Separator) isDecl()  {}

func (Separator) XMLVariant() string { return "sep" }

func init() {
	if err := RegisterEnum[Shape](Square{}, Circle{}, Label(""), Segment{}); err != nil {
		panic(err)
	}
	if err := RegisterEnum[Decl](Annotation{}, Import{}, Separator{}); err != nil {
		panic(err)
	}
}

type Schema struct {
	XMLName struct{} `xml:"schema"`
	Target  string   `xml:"@targetNamespace"`
	Decls   []Decl   `xml:",choice"`
}

type Point struct {
	X int `xml:"@x"`
	Y int `xml:"@y"`
}

type Drawing struct {
	XMLName struct{}          `xml:"drawing"`
	ID      string            `xml:"@id"`
	Title   string            `xml:"title"`
	Shape   Shape             `xml:"shape"`
	Points  []Point           `xml:"point"`
	Pos     [2]int            `xml:"pos"`
	Scale   *float64          `xml:"scale"`
	Hidden  struct{}          `xml:"hidden"`
	Tags    []string          `xml:"tag"`
	Created time.Time         `xml:"created"`
	Temp    celsius           `xml:"temp"`
	Meta    map[string]string `xml:"meta"`
}

type document struct {
	XMLName struct{} `xml:"document"`
	Value   string   `xml:"value"`
}

type numbered struct {
	XMLName struct{} `xml:"root"`
	N       int      `xml:"n"`
}

// celsius encodes itself with a unit suffix.
type celsius float64

func (c celsius) MarshalXMLValue(e *Encoder) error {
	return e.EncodeText(fmt.Sprintf("%.1fC", float64(c)))
}

func (c *celsius) UnmarshalXMLValue(d ValueDecoder) error {
	return d.DecodeScalar(celsiusVisitor{Expecting: "temperature", c: c})
}

type celsiusVisitor struct {
	Expecting
	c *celsius
}

func (v celsiusVisitor) VisitText(s string) error {
	f, err := ParseFloat[float64](strings.TrimSuffix(s, "C"))
	if err != nil {
		return err
	}
	*v.c = celsius(f)
	return nil
}

// compact drops the declaration and indentation for one-line assertions.
var compact = []Option{WithDeclaration(false), WithIndent("")}

// reading is a tuple of mixed scalar types.
type reading struct {
	XMLName struct{} `xml:"t"`
	Tuple
	A int
	B float64
	C string
}

// tagged carries an enum in an attribute, where only unit variants fit.
type tagged struct {
	XMLName struct{} `xml:"tagged"`
	Kind    Shape    `xml:"@kind"`
	Name    string   `xml:"name"`
}
