package xmlcodec

import "fmt"

// Visitor receives the decoded shape of exactly one value. A ValueDecoder
// calls exactly one Visit method per Decode call.
type Visitor interface {
	// VisitText receives a text run or an attribute value.
	VisitText(s string) error
	// VisitUnit receives a value without content.
	VisitUnit() error
	// VisitNone receives an absent optional.
	VisitNone() error
	// VisitSome receives a present optional; d decodes the inner value.
	VisitSome(d ValueDecoder) error
	// VisitMap receives keyed content: attributes, text and child elements.
	VisitMap(m MapAccess) error
	// VisitSeq receives a sequence of elements.
	VisitSeq(s SeqAccess) error
	// VisitEnum receives a tagged union.
	VisitEnum(e EnumAccess) error
}

// ValueDecoder is the source of one value. The method called states the
// shape the caller expects; the decoder chooses the Visit call.
type ValueDecoder interface {
	DecodeAny(v Visitor) error
	DecodeScalar(v Visitor) error
	DecodeOption(v Visitor) error
	DecodeUnit(v Visitor) error
	DecodeMap(v Visitor) error
	DecodeStruct(v Visitor) error
	DecodeSeq(v Visitor) error
	DecodeTuple(n int, v Visitor) error
	DecodeEnum(v Visitor) error
	// Skip discards the value.
	Skip() error
}

// MapAccess iterates keyed content. Attribute keys carry AttrPrefix, the
// text run is TextKey, child elements are keyed by their qualified name.
type MapAccess interface {
	// NextKey returns the next key, or ok == false when the content ends.
	NextKey() (key string, ok bool, err error)
	// NextValue decodes the value of the key returned last. It must be
	// called exactly once per key.
	NextValue(fn func(ValueDecoder) error) error
}

// SeqAccess iterates the elements of a sequence or tuple.
type SeqAccess interface {
	// Next decodes the next element with fn, or reports ok == false when
	// the sequence has ended.
	Next(fn func(ValueDecoder) error) (ok bool, err error)
}

// EnumAccess exposes the discriminant of a tagged union and then exactly
// one of the content accessors.
type EnumAccess interface {
	Variant() (string, error)
	UnitVariant() error
	NewtypeVariant(fn func(ValueDecoder) error) error
	TupleVariant(n int, v Visitor) error
	StructVariant(v Visitor) error
}

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalXMLValue(e *Encoder) error
}

// Unmarshaler is implemented by types that decode themselves.
type Unmarshaler interface {
	UnmarshalXMLValue(d ValueDecoder) error
}

// Expecting implements Visitor by rejecting every call. Embed it and
// override the calls a visitor accepts; the string names what it expects.
type Expecting string

func (e Expecting) unexpected(what string) error {
	return messagef("invalid type: %s, expected %s", what, string(e))
}

func (e Expecting) VisitText(s string) error     { return e.unexpected(fmt.Sprintf("text %q", s)) }
func (e Expecting) VisitUnit() error             { return e.unexpected("unit") }
func (e Expecting) VisitNone() error             { return e.unexpected("none") }
func (e Expecting) VisitSome(ValueDecoder) error { return e.unexpected("optional") }
func (e Expecting) VisitMap(MapAccess) error     { return e.unexpected("map") }
func (e Expecting) VisitSeq(SeqAccess) error     { return e.unexpected("sequence") }
func (e Expecting) VisitEnum(EnumAccess) error   { return e.unexpected("enum") }

var _ Visitor = Expecting("")
