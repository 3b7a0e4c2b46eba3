package xmlcodec

import (
	"strings"
	"unicode/utf8"
)

// Reserved pseudo-keys shared by the decoder accessors and the encoder.
const (
	// AttrPrefix marks a map key as an attribute of the current element.
	AttrPrefix = "@"
	// TextKey is the key of an element's direct text content.
	TextKey = "."
)

// QName is a tag or attribute name with an optional prefix.
type QName struct {
	Prefix string
	Local  string
}

// ParseQName splits "prefix:local" at the last colon.
func ParseQName(s string) QName {
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		return QName{Prefix: s[:i], Local: s[i+1:]}
	}
	return QName{Local: s}
}

func (n QName) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// IsZero reports whether the name is empty.
func (n QName) IsZero() bool { return n.Local == "" && n.Prefix == "" }

// check rejects names that cannot appear in markup.
func (n QName) check() error {
	if n.IsZero() {
		return messagef("empty element or attribute name")
	}
	if n.Local == "" || !isName(n.String()) {
		return messagef("%q is not a valid XML name", n.String())
	}
	return nil
}

// isName matches the Name production of XML 1.0.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if !isNameStartChar(r) && (i == 0 || !isNameChar(r)) {
			return false
		}
	}
	return true
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		return true
	case 0xC0 <= r && r <= 0xD6, 0xD8 <= r && r <= 0xF6, 0xF8 <= r && r <= 0x2FF,
		0x370 <= r && r <= 0x37D, 0x37F <= r && r <= 0x1FFF, 0x200C <= r && r <= 0x200D,
		0x2070 <= r && r <= 0x218F, 0x2C00 <= r && r <= 0x2FEF, 0x3001 <= r && r <= 0xD7FF,
		0xF900 <= r && r <= 0xFDCF, 0xFDF0 <= r && r <= 0xFFFD, 0x10000 <= r && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	switch {
	case r == '-' || r == '.' || '0' <= r && r <= '9' || r == 0xB7:
		return true
	case 0x300 <= r && r <= 0x36F, 0x203F <= r && r <= 0x2040:
		return true
	}
	return false
}

// isNamespaceDecl reports xmlns and xmlns:p attribute names.
func (n QName) isNamespaceDecl() bool {
	return n.Prefix == "xmlns" || (n.Prefix == "" && n.Local == "xmlns")
}

// Attr is a single attribute in document order.
type Attr struct {
	Name  QName
	Value string
}

// Namespace is a prefix declaration written on the root element.
type Namespace struct {
	Prefix string
	URI    string
}

// nameMatcher is the comparison policy for qualified names.
type nameMatcher struct {
	localOnly bool
}

func (m nameMatcher) equal(a, b QName) bool {
	if m.localOnly {
		return a.Local == b.Local
	}
	return a == b
}

// key renders the name as a map key.
func (m nameMatcher) key(n QName) string {
	if m.localOnly {
		return n.Local
	}
	return n.String()
}

// IsAttrKey reports whether key names an attribute and returns the attribute name.
func IsAttrKey(key string) (string, bool) {
	if strings.HasPrefix(key, AttrPrefix) && len(key) > len(AttrPrefix) {
		return key[len(AttrPrefix):], true
	}
	return "", false
}
