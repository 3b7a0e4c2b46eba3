package xmlcodec

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// xmlSource adapts encoding/xml to TokenSource. Raw tokens keep prefixes
// as written; element balance is checked by the cursor, not here.
// Adjacent character data and CDATA sections are coalesced across comments
// and processing instructions, trimmed, and whitespace-only runs are
// dropped. DOCTYPE directives are discarded.
type xmlSource struct {
	in      *Reader
	dec     *xml.Decoder
	started bool
	done    bool
	pending *Token // token read past the end of a text run
}

var _ TokenSource = (*xmlSource)(nil)

func newXMLSource(in *Reader) *xmlSource {
	return &xmlSource{in: in, dec: xml.NewDecoder(in)}
}

// NextToken implements TokenSource.
func (s *xmlSource) NextToken() (Token, error) {
	if !s.started {
		s.started = true
		return Token{Kind: TokenStartDocument}, nil
	}
	if s.pending != nil {
		t := *s.pending
		s.pending = nil
		return t, nil
	}
	for !s.done {
		raw, err := s.dec.RawToken()
		if err != nil {
			if err == io.EOF {
				s.done = true
				break
			}
			return Token{}, s.fail(err)
		}
		switch t := raw.(type) {
		case xml.CharData:
			text, err := s.coalesce(t)
			if err != nil {
				return Token{}, err
			}
			if text != "" {
				return Characters(text), nil
			}
			if s.pending != nil {
				t := *s.pending
				s.pending = nil
				return t, nil
			}
		default:
			if tok, ok := convertToken(raw); ok {
				return tok, nil
			}
		}
	}
	return Token{Kind: TokenEndDocument}, nil
}

// coalesce joins first with every directly following CharData and stashes
// the first non-text token in s.pending.
func (s *xmlSource) coalesce(first xml.CharData) (string, error) {
	var b strings.Builder
	b.Write(first)
	for {
		raw, err := s.dec.RawToken()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return "", s.fail(err)
		}
		switch t := raw.(type) {
		case xml.CharData:
			b.Write(t)
			continue
		case xml.Comment, xml.ProcInst, xml.Directive:
			// Markup inside a text run does not split it.
			continue
		}
		if tok, ok := convertToken(raw); ok {
			s.pending = &tok
			break
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func (s *xmlSource) fail(err error) error {
	if failed := s.in.Failed(); failed != nil {
		return ioError("read", failed)
	}
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &Error{Kind: KindStructural, Msg: "malformed markup", Err: err}
	}
	return ioError("read", err)
}

func convertToken(raw xml.Token) (Token, bool) {
	switch t := raw.(type) {
	case xml.StartElement:
		var attrs []Attr
		if len(t.Attr) > 0 {
			attrs = make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
		}
		return StartElement(rawName(t.Name), attrs...), true
	case xml.EndElement:
		return EndElement(rawName(t.Name)), true
	case xml.Comment:
		return Token{Kind: TokenComment, Text: string(t)}, true
	case xml.ProcInst:
		return Token{Kind: TokenProcInst, Name: QName{Local: t.Target}, Text: string(t.Inst)}, true
	}
	return Token{}, false
}

// rawName converts a RawToken name, whose Space holds the literal prefix.
func rawName(n xml.Name) QName {
	return QName{Prefix: n.Space, Local: n.Local}
}
