package xmlcodec

import (
	"io"
	"log/slog"
	"reflect"
)

// pendingTag is a start tag that is logically open but not yet written.
// Attributes can be added until content forces it out.
type pendingTag struct {
	name  QName
	attrs []Attr
}

// Encoder turns typed values into a token stream. At most one start tag
// is pending at any time; it is written on the first content-bearing call.
type Encoder struct {
	sink    TokenSink
	out     *Writer
	opts    options
	log     *slog.Logger
	pending *pendingTag
	nsDecls []Attr // written on the first start tag only
	err     error
}

// NewEncoder returns an Encoder writing markup to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := buildOptions(opts)
	e := &Encoder{opts: o, log: o.logger}
	out, err := NewWriter(w)
	if err != nil {
		e.err = err
		return e
	}
	e.out = out
	e.sink = newXMLSink(out, o.indent, o.declaration)
	return e
}

// NewTokenEncoder returns an Encoder writing to an arbitrary token sink.
func NewTokenEncoder(sink TokenSink, opts ...Option) *Encoder {
	o := buildOptions(opts)
	e := &Encoder{opts: o, log: o.logger}
	if sink == nil {
		e.err = ErrNilIO
		return e
	}
	e.sink = sink
	return e
}

// Encode writes v as a complete document. The root element is named after
// the XMLName field tag, the WithRootName option or the Go type name, in
// that order.
func (e *Encoder) Encode(v any) error {
	if e.err != nil {
		return e.err
	}
	rv := reflect.ValueOf(v)
	root, err := e.rootName(rv)
	if err != nil {
		return err
	}
	if err := e.write(Token{Kind: TokenStartDocument}); err != nil {
		return err
	}
	e.nsDecls = e.opts.namespaceAttrs()
	e.open(root)
	if err := encodeValue(e, rv, root.Local); err != nil {
		return err
	}
	// A root that received nothing, e.g. an empty sequence, still has to
	// exist for the document to be well formed.
	if e.pending != nil {
		if err := e.EncodeUnit(); err != nil {
			return err
		}
	}
	if err := e.write(Token{Kind: TokenEndDocument}); err != nil {
		return err
	}
	return e.sink.Flush()
}

// Written reports the number of bytes produced so far.
func (e *Encoder) Written() int64 {
	if e.out == nil {
		return 0
	}
	return e.out.Count()
}

func (e *Encoder) rootName(rv reflect.Value) (QName, error) {
	if rv.IsValid() {
		if name, ok := rootNameOf(rv.Type()); ok {
			return name, nil
		}
	}
	if e.opts.rootName != "" {
		return ParseQName(e.opts.rootName), nil
	}
	if rv.IsValid() {
		if name := typeRootName(rv.Type()); name != "" {
			return QName{Local: name}, nil
		}
	}
	return QName{}, messagef("cannot derive a root element name, use WithRootName")
}

func (e *Encoder) write(t Token) error {
	if err := e.sink.WriteToken(t); err != nil {
		return ioError("write", err)
	}
	return nil
}

// open makes name the pending tag.
func (e *Encoder) open(name QName) {
	e.pending = &pendingTag{name: name}
}

// flush writes the pending tag. It reports the name and whether a tag was
// opened; with nothing pending it is a no-op.
func (e *Encoder) flush() (QName, bool, error) {
	p := e.pending
	if p == nil {
		return QName{}, false, nil
	}
	e.pending = nil
	if err := p.name.check(); err != nil {
		return QName{}, false, err
	}
	attrs := p.attrs
	if len(e.nsDecls) > 0 {
		attrs = append(e.nsDecls[:len(e.nsDecls):len(e.nsDecls)], attrs...)
		e.nsDecls = nil
	}
	e.log.Debug("flush tag", "name", p.name.String(), "attrs", len(attrs))
	if err := e.write(StartElement(p.name, attrs...)); err != nil {
		return QName{}, false, err
	}
	return p.name, true, nil
}

func (e *Encoder) closeIf(name QName, opened bool) error {
	if !opened {
		return nil
	}
	return e.write(EndElement(name))
}

// EncodeText writes s as the content of the pending tag.
func (e *Encoder) EncodeText(s string) error {
	name, opened, err := e.flush()
	if err != nil {
		return err
	}
	if s != "" {
		if err := e.write(Characters(s)); err != nil {
			return err
		}
	}
	return e.closeIf(name, opened)
}

// EncodeNone writes an absent optional as an empty element.
func (e *Encoder) EncodeNone() error {
	return e.EncodeUnit()
}

// EncodeUnit writes the pending tag as an empty element.
func (e *Encoder) EncodeUnit() error {
	name, opened, err := e.flush()
	if err != nil {
		return err
	}
	return e.closeIf(name, opened)
}

// EncodeStruct starts keyed content inside the pending tag.
func (e *Encoder) EncodeStruct() (*StructEncoder, error) {
	return &StructEncoder{e: e, tag: e.pending}, nil
}

// EncodeMap is EncodeStruct.
func (e *Encoder) EncodeMap() (*StructEncoder, error) {
	return e.EncodeStruct()
}

// EncodeSeq starts a sequence. A sequence has no element of its own; each
// item repeats the pending tag.
func (e *Encoder) EncodeSeq() (*SeqEncoder, error) {
	if e.pending == nil {
		return nil, messagef("sequence requires an enclosing tag")
	}
	return &SeqEncoder{e: e, name: e.pending.name, first: true}, nil
}

// EncodeTuple starts a tuple written as one whitespace separated text run.
func (e *Encoder) EncodeTuple() (*TupleEncoder, error) {
	return &TupleEncoder{e: e}, nil
}
