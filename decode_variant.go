package xmlcodec

// variantAccess is a variant named by an element; the element is open.
type variantAccess struct {
	d    *Decoder
	name QName
}

var _ EnumAccess = (*variantAccess)(nil)

func (a *variantAccess) Variant() (string, error) {
	return a.d.cur.match.key(a.name), nil
}

func (a *variantAccess) UnitVariant() error {
	return messagef("unit variant %s must be written as text, not as element", a.name)
}

func (a *variantAccess) NewtypeVariant(fn func(ValueDecoder) error) error {
	return fn(a.d)
}

func (a *variantAccess) TupleVariant(n int, v Visitor) error {
	return a.d.DecodeTuple(n, v)
}

func (a *variantAccess) StructVariant(v Visitor) error {
	return a.d.DecodeStruct(v)
}

// textVariant is a variant named by a text run. Only unit content exists.
type textVariant string

var _ EnumAccess = textVariant("")

func (t textVariant) Variant() (string, error) { return string(t), nil }

func (t textVariant) UnitVariant() error { return nil }

func (t textVariant) NewtypeVariant(func(ValueDecoder) error) error {
	return messagef("expected unit variant, %q has content", string(t))
}

func (t textVariant) TupleVariant(int, Visitor) error {
	return messagef("expected unit variant, %q has content", string(t))
}

func (t textVariant) StructVariant(Visitor) error {
	return messagef("expected unit variant, %q has content", string(t))
}

// elementVariant is a variant named by an element that was reported as a
// map key; d decodes its content.
type elementVariant struct {
	name string
	d    ValueDecoder
}

var _ EnumAccess = elementVariant{}

func (a elementVariant) Variant() (string, error) { return a.name, nil }

func (a elementVariant) UnitVariant() error {
	return a.d.DecodeUnit(unitVisitor{Expecting: "unit"})
}

func (a elementVariant) NewtypeVariant(fn func(ValueDecoder) error) error { return fn(a.d) }

func (a elementVariant) TupleVariant(n int, v Visitor) error { return a.d.DecodeTuple(n, v) }

func (a elementVariant) StructVariant(v Visitor) error { return a.d.DecodeStruct(v) }
