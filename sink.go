package xmlcodec

import (
	"encoding/xml"
	"strings"
	"unicode/utf8"
)

// declaration is the XML header without the trailing newline of xml.Header.
const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

type openElement struct {
	name     QName
	children bool // a child element was written inside
}

// xmlSink renders tokens as XML text. The closing '>' of a start tag is
// held back until the next token so that an element without content is
// written self-closed.
type xmlSink struct {
	w           *Writer
	indent      string
	declaration bool
	stack       []openElement
	unclosed    bool // last start tag still lacks its '>'
}

var _ TokenSink = (*xmlSink)(nil)

func newXMLSink(w *Writer, indent string, declaration bool) *xmlSink {
	return &xmlSink{w: w, indent: indent, declaration: declaration}
}

// WriteToken implements TokenSink.
func (s *xmlSink) WriteToken(t Token) error {
	switch t.Kind {
	case TokenStartDocument:
		if s.declaration {
			s.w.WriteString(declaration)
		}
	case TokenEndDocument:
		if len(s.stack) > 0 {
			return structuralf("end of document with <%s> still open", s.stack[len(s.stack)-1].name)
		}
	case TokenStartElement:
		for _, a := range t.Attrs {
			if !isCharData(a.Value) {
				return messagef("attribute %s holds characters XML cannot represent", a.Name)
			}
		}
		s.finishStart()
		if len(s.stack) > 0 {
			s.stack[len(s.stack)-1].children = true
		}
		s.newline(len(s.stack))
		s.w.WriteByte('<')
		s.w.WriteString(t.Name.String())
		for _, a := range t.Attrs {
			s.w.WriteByte(' ')
			s.w.WriteString(a.Name.String())
			s.w.WriteString(`="`)
			xml.EscapeText(s.w, []byte(a.Value))
			s.w.WriteByte('"')
		}
		s.stack = append(s.stack, openElement{name: t.Name})
		s.unclosed = true
	case TokenEndElement:
		if len(s.stack) == 0 {
			return structuralf("end tag </%s> without start tag", t.Name)
		}
		top := s.stack[len(s.stack)-1]
		if top.name != t.Name {
			return structuralf("end tag </%s> does not match start tag <%s>", t.Name, top.name)
		}
		s.stack = s.stack[:len(s.stack)-1]
		if s.unclosed {
			s.unclosed = false
			s.w.WriteString("/>")
			break
		}
		if top.children {
			s.newline(len(s.stack))
		}
		s.w.WriteString("</")
		s.w.WriteString(t.Name.String())
		s.w.WriteByte('>')
	case TokenCharacters:
		if t.Text == "" {
			return nil
		}
		if !isCharData(t.Text) {
			return messagef("text %q holds characters XML cannot represent", t.Text)
		}
		s.finishStart()
		xml.EscapeText(s.w, []byte(t.Text))
	case TokenComment:
		s.finishStart()
		s.w.WriteString("<!--")
		s.w.WriteString(t.Text)
		s.w.WriteString("-->")
	case TokenProcInst:
		s.finishStart()
		s.w.WriteString("<?")
		s.w.WriteString(t.Name.Local)
		if t.Text != "" {
			s.w.WriteByte(' ')
			s.w.WriteString(t.Text)
		}
		s.w.WriteString("?>")
	default:
		return messagef("cannot write %s", t.Kind)
	}
	return ioError("write", s.w.Err())
}

// Flush implements TokenSink.
func (s *xmlSink) Flush() error {
	s.finishStart()
	return ioError("write", s.w.Flush())
}

func (s *xmlSink) finishStart() {
	if s.unclosed {
		s.unclosed = false
		s.w.WriteByte('>')
	}
}

func (s *xmlSink) newline(depth int) {
	if s.indent == "" || s.w.Count() == 0 {
		return
	}
	s.w.WriteByte('\n')
	s.w.WriteString(strings.Repeat(s.indent, depth))
}

// isCharData reports whether s is valid UTF-8 made of the characters the
// Char production of XML 1.0 allows. EscapeText would replace anything
// else with U+FFFD.
func isCharData(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			return false
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case 0x20 <= r && r <= 0xD7FF, 0xE000 <= r && r <= 0xFFFD, 0x10000 <= r && r <= 0x10FFFF:
		default:
			return false
		}
		s = s[size:]
	}
	return true
}
