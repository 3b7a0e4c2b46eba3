package xmlcodec

import "unicode"

func Ptr[T any](v T) *T { return &v } // Ptr returns a pointer to a copy of v, handy for optional fields.

// lowerCamel lowers the leading run of upper case letters, keeping the last
// one of a longer run upper case: "Circle" → "circle", "XMLName" → "xmlName".
func lowerCamel(s string) string {
	r := []rune(s)
	i := 0
	for i < len(r) && unicode.IsUpper(r[i]) {
		i++
	}
	switch {
	case i == 0:
		return s
	case i == 1 || i == len(r):
		for j := 0; j < i; j++ {
			r[j] = unicode.ToLower(r[j])
		}
	default:
		for j := 0; j < i-1; j++ {
			r[j] = unicode.ToLower(r[j])
		}
	}
	return string(r)
}
