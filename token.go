package xmlcodec

import "fmt"

// TokenKind enumerates the atomic markup events.
type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenStartDocument
	TokenEndDocument
	TokenStartElement
	TokenEndElement
	TokenCharacters
	TokenComment
	TokenProcInst
)

func (k TokenKind) String() string {
	switch k {
	case TokenStartDocument:
		return "start document"
	case TokenEndDocument:
		return "end document"
	case TokenStartElement:
		return "start element"
	case TokenEndElement:
		return "end element"
	case TokenCharacters:
		return "characters"
	case TokenComment:
		return "comment"
	case TokenProcInst:
		return "processing instruction"
	}
	return "invalid token"
}

// Token is the union of all token kinds. Name is set for elements (and the
// target of a processing instruction), Attrs only for start elements, Text
// for characters, comments and processing instructions.
type Token struct {
	Kind  TokenKind
	Name  QName
	Attrs []Attr
	Text  string
}

func (t Token) String() string {
	switch t.Kind {
	case TokenStartElement:
		return fmt.Sprintf("<%s>", t.Name)
	case TokenEndElement:
		return fmt.Sprintf("</%s>", t.Name)
	case TokenCharacters:
		return fmt.Sprintf("characters %q", t.Text)
	}
	return t.Kind.String()
}

// StartElement builds a start element token.
func StartElement(name QName, attrs ...Attr) Token {
	return Token{Kind: TokenStartElement, Name: name, Attrs: attrs}
}

// EndElement builds an end element token.
func EndElement(name QName) Token {
	return Token{Kind: TokenEndElement, Name: name}
}

// Characters builds a text token.
func Characters(text string) Token {
	return Token{Kind: TokenCharacters, Text: text}
}

// TokenSource produces tokens in document order. The first token is
// TokenStartDocument and the last is TokenEndDocument; text runs are
// already coalesced, trimmed and free of whitespace-only runs.
type TokenSource interface {
	NextToken() (Token, error)
}

// TokenSink consumes tokens in document order.
type TokenSink interface {
	WriteToken(Token) error
	Flush() error
}

// SliceSource replays a fixed token list, mostly useful in tests and for
// documents built in memory.
type SliceSource struct {
	Tokens []Token
	N      int
}

// NextToken implements TokenSource.
func (s *SliceSource) NextToken() (Token, error) {
	if s.N >= len(s.Tokens) {
		return Token{Kind: TokenEndDocument}, nil
	}
	t := s.Tokens[s.N]
	s.N++
	return t, nil
}

// SliceSink records every token written to it.
type SliceSink struct {
	Tokens []Token
}

// WriteToken implements TokenSink.
func (s *SliceSink) WriteToken(t Token) error {
	s.Tokens = append(s.Tokens, t)
	return nil
}

// Flush implements TokenSink.
func (s *SliceSink) Flush() error { return nil }

var (
	_ TokenSource = (*SliceSource)(nil)
	_ TokenSink   = (*SliceSink)(nil)
)
