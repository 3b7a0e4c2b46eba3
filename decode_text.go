package xmlcodec

import "strings"

// textDecoder decodes a string that was already taken off the stream, an
// attribute value, a text run reported under TextKey or a tuple token.
type textDecoder string

var _ ValueDecoder = textDecoder("")

func (t textDecoder) DecodeAny(v Visitor) error    { return v.VisitText(string(t)) }
func (t textDecoder) DecodeScalar(v Visitor) error { return v.VisitText(string(t)) }
func (t textDecoder) DecodeOption(v Visitor) error { return v.VisitSome(t) }
func (t textDecoder) DecodeUnit(v Visitor) error   { return v.VisitUnit() }
func (t textDecoder) DecodeEnum(v Visitor) error   { return v.VisitEnum(textVariant(t)) }
func (t textDecoder) Skip() error                  { return nil }

func (t textDecoder) DecodeMap(Visitor) error {
	return structuralf("expected element content, found text %q", string(t))
}

func (t textDecoder) DecodeStruct(v Visitor) error { return t.DecodeMap(v) }

func (t textDecoder) DecodeSeq(Visitor) error {
	return structuralf("sequence requires an enclosing tag")
}

func (t textDecoder) DecodeTuple(_ int, v Visitor) error {
	return v.VisitSeq(&tupleAccess{items: strings.Fields(string(t))})
}
