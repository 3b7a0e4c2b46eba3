package xmlcodec

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func q(local string) QName { return QName{Local: local} }

func newTestCursor(localOnly bool, tokens ...Token) *cursor {
	src := &SliceSource{Tokens: append([]Token{{Kind: TokenStartDocument}}, tokens...)}
	return newCursor(src, nameMatcher{localOnly: localOnly}, slog.New(slog.DiscardHandler))
}

type CursorTestSuite struct {
	suite.Suite
}

func (s *CursorTestSuite) TestPeekDoesNotConsume() {
	c := newTestCursor(false, StartElement(q("a")), EndElement(q("a")))
	s.Require().NoError(c.ExpectStartDocument())

	first, err := c.Peek()
	s.Require().NoError(err)
	again, err := c.Peek()
	s.Require().NoError(err)
	s.Assert().Equal(first, again)

	next, err := c.Next()
	s.Require().NoError(err)
	s.Assert().Equal(first, next)

	after, err := c.Peek()
	s.Require().NoError(err)
	s.Assert().Equal(TokenEndElement, after.Kind)
}

func (s *CursorTestSuite) TestSkipsCommentsAndProcessingInstructions() {
	c := newTestCursor(false,
		Token{Kind: TokenComment, Text: "c"},
		Token{Kind: TokenProcInst, Name: q("pi")},
		StartElement(q("a")),
		Token{Kind: TokenComment, Text: "d"},
		Characters("x"),
		EndElement(q("a")),
	)
	s.Require().NoError(c.ExpectStartDocument())
	name, _, err := c.OpenTag()
	s.Require().NoError(err)
	s.Assert().Equal(q("a"), name)
	text, err := c.ReadText()
	s.Require().NoError(err)
	s.Assert().Equal("x", text)
	s.Require().NoError(c.CloseTag(q("a")))
	s.Require().NoError(c.ExpectEndDocument())
}

func (s *CursorTestSuite) TestOpenTagTracksDepthAndContext() {
	c := newTestCursor(false,
		StartElement(q("a"),
			Attr{Name: q("id"), Value: "1"},
			Attr{Name: q("xmlns"), Value: "urn:a"},
			Attr{Name: QName{Prefix: "xmlns", Local: "p"}, Value: "urn:p"},
		),
		StartElement(q("b")),
		EndElement(q("b")),
		EndElement(q("a")),
	)
	s.Require().NoError(c.ExpectStartDocument())

	_, attrs, err := c.OpenTag()
	s.Require().NoError(err)
	s.Assert().Equal([]Attr{{Name: q("id"), Value: "1"}}, attrs, "namespace declarations are not attributes")
	s.Assert().Equal(1, c.Depth())

	tag, ok := c.Current()
	s.Require().True(ok)
	s.Assert().Equal(q("a"), tag.name)

	_, _, err = c.OpenTag()
	s.Require().NoError(err)
	s.Assert().Equal(2, c.Depth())

	s.Require().NoError(c.CloseTag(q("b")))
	_, ok = c.Current()
	s.Assert().False(ok, "consuming a token drops the context")
	s.Assert().Equal(1, c.Depth())
}

func (s *CursorTestSuite) TestTakeAndRestoreContext() {
	c := newTestCursor(false, StartElement(q("a")))
	s.Require().NoError(c.ExpectStartDocument())
	_, _, err := c.OpenTag()
	s.Require().NoError(err)

	tag, ok := c.TakeCurrent()
	s.Require().True(ok)
	_, ok = c.Current()
	s.Assert().False(ok)

	c.Restore(tag)
	again, ok := c.Current()
	s.Assert().True(ok)
	s.Assert().Same(tag, again)
}

func (s *CursorTestSuite) TestStructuralErrors() {
	s.T().Run("MismatchedEndTag", func(t *testing.T) {
		c := newTestCursor(false, StartElement(q("a")), EndElement(q("b")))
		require.NoError(t, c.ExpectStartDocument())
		_, _, err := c.OpenTag()
		require.NoError(t, err)
		err = c.CloseTag(q("a"))
		assert.ErrorIs(t, err, ErrStructural)
	})

	s.T().Run("TextWhereTagExpected", func(t *testing.T) {
		c := newTestCursor(false, Characters("x"))
		require.NoError(t, c.ExpectStartDocument())
		_, _, err := c.OpenTag()
		assert.ErrorIs(t, err, ErrStructural)
	})

	s.T().Run("TagWhereTextExpected", func(t *testing.T) {
		c := newTestCursor(false, StartElement(q("a")))
		require.NoError(t, c.ExpectStartDocument())
		_, err := c.ReadText()
		assert.ErrorIs(t, err, ErrStructural)
	})

	s.T().Run("MissingStartDocument", func(t *testing.T) {
		c := newCursor(&SliceSource{Tokens: []Token{StartElement(q("a"))}}, nameMatcher{}, slog.New(slog.DiscardHandler))
		assert.ErrorIs(t, c.ExpectStartDocument(), ErrStructural)
	})

	s.T().Run("TrailingContent", func(t *testing.T) {
		c := newTestCursor(false, StartElement(q("a")))
		require.NoError(t, c.ExpectStartDocument())
		assert.ErrorIs(t, c.ExpectEndDocument(), ErrStructural)
	})
}

func (s *CursorTestSuite) TestNameMatching() {
	s.T().Run("PrefixMattersByDefault", func(t *testing.T) {
		c := newTestCursor(false, StartElement(QName{Prefix: "p", Local: "a"}), EndElement(q("a")))
		require.NoError(t, c.ExpectStartDocument())
		_, _, err := c.OpenTag()
		require.NoError(t, err)
		assert.ErrorIs(t, c.CloseTag(QName{Prefix: "p", Local: "a"}), ErrStructural)
	})

	s.T().Run("LocalNameOnly", func(t *testing.T) {
		c := newTestCursor(true, StartElement(QName{Prefix: "p", Local: "a"}), EndElement(q("a")))
		require.NoError(t, c.ExpectStartDocument())
		_, _, err := c.OpenTag()
		require.NoError(t, err)
		assert.NoError(t, c.CloseTag(QName{Prefix: "p", Local: "a"}))
	})
}

func (s *CursorTestSuite) TestSkipContent() {
	c := newTestCursor(false,
		StartElement(q("a")),
		StartElement(q("b")), Characters("x"), StartElement(q("c")), EndElement(q("c")), EndElement(q("b")),
		Characters("y"),
		EndElement(q("a")),
	)
	s.Require().NoError(c.ExpectStartDocument())
	_, _, err := c.OpenTag()
	s.Require().NoError(err)
	s.Require().NoError(c.SkipContent())
	s.Require().NoError(c.CloseTag(q("a")))
	s.Assert().Equal(0, c.Depth())
}

func TestCursorSuite(t *testing.T) {
	suite.Run(t, new(CursorTestSuite))
}
