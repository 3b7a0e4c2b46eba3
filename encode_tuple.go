package xmlcodec

import (
	"strings"
	"unicode"
)

// TupleEncoder collects scalar forms and writes them as one text run
// separated by single spaces.
type TupleEncoder struct {
	e       *Encoder
	parts   []string
	wrapped []QName
}

// Element adds the textual form of one item.
func (t *TupleEncoder) Element(text string) error {
	if text == "" || strings.ContainsFunc(text, unicode.IsSpace) {
		return messagef("tuple item %q would not survive whitespace splitting", text)
	}
	t.parts = append(t.parts, text)
	return nil
}

// End writes the tuple.
func (t *TupleEncoder) End() error {
	if err := t.e.EncodeText(strings.Join(t.parts, " ")); err != nil {
		return err
	}
	for _, name := range t.wrapped {
		if err := t.e.write(EndElement(name)); err != nil {
			return err
		}
	}
	return nil
}
