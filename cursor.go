package xmlcodec

import (
	"log/slog"
)

// openTag is the context left behind by the most recent OpenTag.
type openTag struct {
	name  QName
	attrs []Attr
}

// cursor puts one token of lookahead over a TokenSource. Comments and
// processing instructions never reach the caller.
type cursor struct {
	src    TokenSource
	match  nameMatcher
	log    *slog.Logger
	peeked Token
	has    bool
	depth  int
	tag    *openTag
}

func newCursor(src TokenSource, match nameMatcher, log *slog.Logger) *cursor {
	return &cursor{src: src, match: match, log: log}
}

func (c *cursor) fetch() (Token, error) {
	for {
		t, err := c.src.NextToken()
		if err != nil {
			return Token{}, ioError("read", err)
		}
		switch t.Kind {
		case TokenComment, TokenProcInst:
			continue
		case TokenInvalid:
			return Token{}, structuralf("invalid token from source")
		}
		return t, nil
	}
}

// Peek returns the next meaningful token without consuming it.
func (c *cursor) Peek() (Token, error) {
	if !c.has {
		t, err := c.fetch()
		if err != nil {
			return Token{}, err
		}
		c.peeked, c.has = t, true
	}
	return c.peeked, nil
}

// Next consumes the next meaningful token. Any current-tag context is
// dropped, it only survives until the first token after OpenTag.
func (c *cursor) Next() (Token, error) {
	t, err := c.Peek()
	if err != nil {
		return Token{}, err
	}
	c.has = false
	c.tag = nil
	return t, nil
}

func (c *cursor) ExpectStartDocument() error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Kind != TokenStartDocument {
		return structuralf("expected start document, found %s", t)
	}
	return nil
}

func (c *cursor) ExpectEndDocument() error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Kind != TokenEndDocument {
		return structuralf("expected end document, found %s", t)
	}
	return nil
}

// OpenTag consumes a start tag and makes it the current tag. Namespace
// declarations are filtered out of the returned attributes.
func (c *cursor) OpenTag() (QName, []Attr, error) {
	t, err := c.Next()
	if err != nil {
		return QName{}, nil, err
	}
	if t.Kind != TokenStartElement {
		return QName{}, nil, structuralf("expected start tag, found %s", t)
	}
	attrs := t.Attrs[:0:0]
	for _, a := range t.Attrs {
		if !a.Name.isNamespaceDecl() {
			attrs = append(attrs, a)
		}
	}
	c.depth++
	c.tag = &openTag{name: t.Name, attrs: attrs}
	c.log.Debug("open tag", "name", t.Name.String(), "depth", c.depth)
	return t.Name, attrs, nil
}

// CloseTag consumes the end tag of name.
func (c *cursor) CloseTag(name QName) error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Kind != TokenEndElement {
		return structuralf("expected </%s>, found %s", name, t)
	}
	if !c.match.equal(t.Name, name) {
		return structuralf("end tag </%s> does not match <%s>", t.Name, name)
	}
	c.depth--
	c.log.Debug("close tag", "name", name.String(), "depth", c.depth)
	return nil
}

// ReadText consumes one text run.
func (c *cursor) ReadText() (string, error) {
	t, err := c.Next()
	if err != nil {
		return "", err
	}
	if t.Kind != TokenCharacters {
		return "", structuralf("expected text, found %s", t)
	}
	return t.Text, nil
}

// Depth reports the number of tags opened and not yet closed.
func (c *cursor) Depth() int { return c.depth }

// Current returns the current-tag context without taking it.
func (c *cursor) Current() (*openTag, bool) {
	return c.tag, c.tag != nil
}

// TakeCurrent returns the current-tag context and clears it.
func (c *cursor) TakeCurrent() (*openTag, bool) {
	t := c.tag
	c.tag = nil
	return t, t != nil
}

// Restore reinstates a context taken with TakeCurrent.
func (c *cursor) Restore(t *openTag) { c.tag = t }

// SkipContent consumes everything inside the current element and stops
// in front of its end tag.
func (c *cursor) SkipContent() error {
	nested := 0
	for {
		t, err := c.Peek()
		if err != nil {
			return err
		}
		switch t.Kind {
		case TokenEndDocument:
			return nil
		case TokenEndElement:
			if nested == 0 {
				return nil
			}
			nested--
		case TokenStartElement:
			nested++
		}
		if _, err := c.Next(); err != nil {
			return err
		}
	}
}
