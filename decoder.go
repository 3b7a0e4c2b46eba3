package xmlcodec

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
)

// Decoder reads one document and turns it into a typed value. It
// implements ValueDecoder over the element the cursor stands in.
type Decoder struct {
	cur  *cursor
	in   *Reader
	opts options
	log  *slog.Logger
	err  error
}

var _ ValueDecoder = (*Decoder)(nil)

// NewDecoder returns a Decoder reading markup from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := buildOptions(opts)
	d := &Decoder{opts: o, log: o.logger}
	in, err := NewReader(r)
	if err != nil {
		d.err = err
		return d
	}
	if o.maxInput > 0 {
		in.WithLimit(o.maxInput)
	}
	d.in = in
	d.cur = newCursor(newXMLSource(in), nameMatcher{localOnly: o.localNames}, o.logger)
	return d
}

// NewTokenDecoder returns a Decoder reading from an arbitrary token source.
func NewTokenDecoder(src TokenSource, opts ...Option) *Decoder {
	o := buildOptions(opts)
	d := &Decoder{opts: o, log: o.logger}
	if src == nil {
		d.err = ErrNilIO
		return d
	}
	d.cur = newCursor(src, nameMatcher{localOnly: o.localNames}, o.logger)
	return d
}

// InputOffset reports the number of bytes read from the input so far.
func (d *Decoder) InputOffset() int64 {
	if d.in == nil {
		return 0
	}
	return d.in.Count()
}

// Decode reads the whole document into the value pointed to by v.
func (d *Decoder) Decode(v any) error {
	if d.err != nil {
		return d.err
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	if err := d.cur.ExpectStartDocument(); err != nil {
		return err
	}
	root, _, err := d.cur.OpenTag()
	if err != nil {
		return err
	}
	if want, ok := rootNameOf(rv.Type().Elem()); ok && !d.cur.match.equal(root, want) {
		return structuralf("expected root element <%s>, found <%s>", want, root)
	}
	depth := d.cur.Depth()
	if err := decodeValue(d, rv.Elem(), root.Local); err != nil {
		return err
	}
	if d.cur.Depth() == depth {
		if err := d.cur.CloseTag(root); err != nil {
			return err
		}
	}
	return d.cur.ExpectEndDocument()
}

// DecodeAny lets the markup decide: an element with attributes or child
// elements is a map, an empty element is a unit, otherwise a scalar.
func (d *Decoder) DecodeAny(v Visitor) error {
	if tag, ok := d.cur.Current(); ok && len(tag.attrs) > 0 {
		return d.DecodeMap(v)
	}
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenStartElement:
		return d.DecodeMap(v)
	case TokenEndElement:
		d.cur.TakeCurrent()
		return v.VisitUnit()
	case TokenCharacters:
		return d.DecodeScalar(v)
	}
	return structuralf("expected value, found %s", t)
}

// DecodeScalar reads one text run. An element without content yields the
// empty string. Attributes of the element are discarded.
func (d *Decoder) DecodeScalar(v Visitor) error {
	d.cur.TakeCurrent()
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenEndElement:
		return v.VisitText("")
	case TokenCharacters:
		s, err := d.cur.ReadText()
		if err != nil {
			return err
		}
		return v.VisitText(s)
	}
	return structuralf("expected text, found %s", t)
}

// DecodeOption reports an element without content and without attributes
// as absent.
func (d *Decoder) DecodeOption(v Visitor) error {
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	tag, ok := d.cur.Current()
	if (t.Kind == TokenEndElement || t.Kind == TokenEndDocument) && (!ok || len(tag.attrs) == 0) {
		d.cur.TakeCurrent()
		return v.VisitNone()
	}
	return v.VisitSome(d)
}

// DecodeUnit accepts an empty element and ignores a text run.
func (d *Decoder) DecodeUnit(v Visitor) error {
	d.cur.TakeCurrent()
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenCharacters:
		if _, err := d.cur.ReadText(); err != nil {
			return err
		}
	case TokenEndElement, TokenEndDocument:
	default:
		return structuralf("expected empty element, found %s", t)
	}
	return v.VisitUnit()
}

// DecodeMap iterates attributes, the text run and child elements of the
// current element.
func (d *Decoder) DecodeMap(v Visitor) error {
	return v.VisitMap(newMapAccess(d))
}

// DecodeStruct is DecodeMap; field names are resolved by the visitor.
func (d *Decoder) DecodeStruct(v Visitor) error {
	return d.DecodeMap(v)
}

// DecodeSeq reads consecutive elements sharing the current tag's name.
func (d *Decoder) DecodeSeq(v Visitor) error {
	tag, ok := d.cur.TakeCurrent()
	if !ok {
		return structuralf("sequence requires an enclosing tag")
	}
	d.log.Debug("sequence start", "name", tag.name.String())
	return v.VisitSeq(&seqAccess{d: d, tag: tag, first: true})
}

// DecodeTuple splits one text run on whitespace.
func (d *Decoder) DecodeTuple(n int, v Visitor) error {
	d.cur.TakeCurrent()
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	var items []string
	switch t.Kind {
	case TokenEndElement:
	case TokenCharacters:
		s, err := d.cur.ReadText()
		if err != nil {
			return err
		}
		items = strings.Fields(s)
	default:
		return structuralf("expected tuple text, found %s", t)
	}
	if n >= 0 && len(items) != n {
		d.log.Debug("tuple arity differs", "want", n, "got", len(items))
	}
	return v.VisitSeq(&tupleAccess{items: items})
}

// DecodeEnum dispatches on the next token: a child element names the
// variant, a text run is a unit variant.
func (d *Decoder) DecodeEnum(v Visitor) error {
	t, err := d.cur.Peek()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenStartElement:
		name, _, err := d.cur.OpenTag()
		if err != nil {
			return err
		}
		depth := d.cur.Depth()
		d.log.Debug("variant", "name", name.String())
		if err := v.VisitEnum(&variantAccess{d: d, name: name}); err != nil {
			return err
		}
		if d.cur.Depth() == depth {
			return d.cur.CloseTag(name)
		}
		return nil
	case TokenCharacters:
		s, err := d.cur.ReadText()
		if err != nil {
			return err
		}
		d.log.Debug("unit variant", "name", s)
		return v.VisitEnum(textVariant(s))
	}
	return structuralf("expected enum value, found %s", t)
}

// Skip discards the content of the current element.
func (d *Decoder) Skip() error {
	d.cur.TakeCurrent()
	return d.cur.SkipContent()
}
