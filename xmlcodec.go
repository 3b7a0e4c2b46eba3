// Package xmlcodec maps typed Go values onto XML documents and back.
//
// Structs become elements whose fields are attributes (`xml:"@id"`), the
// text content (`xml:"."`) or child elements. A repeated child element is
// a sequence, a whitespace separated text run is a tuple, and a registered
// interface type is a tagged union whose variant is named by a child
// element or, for unit variants, by the text itself.
//
// Decoding pulls tokens through a cursor with one token of lookahead;
// encoding pushes tokens through a write-behind start tag that collects
// attributes until the first content arrives.
package xmlcodec

import (
	"bytes"
	"io"
)

// Unmarshal decodes the document in data into v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// UnmarshalString decodes the document in s into v.
func UnmarshalString(s string, v any, opts ...Option) error {
	return Unmarshal([]byte(s), v, opts...)
}

// UnmarshalFrom decodes the document read from r into v.
func UnmarshalFrom(r io.Reader, v any, opts ...Option) error {
	return NewDecoder(r, opts...).Decode(v)
}

// Marshal encodes v as a complete document. Nothing is returned on error.
func Marshal(v any, opts ...Option) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	if err := NewEncoder(buf, opts...).Encode(v); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any, opts ...Option) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	if err := NewEncoder(buf, opts...).Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarshalInto encodes v into dst without allocating the output and returns
// the number of bytes used. A dst that is too small fails with an IO error
// wrapping io.ErrShortWrite.
func MarshalInto(dst []byte, v any, opts ...Option) (int, error) {
	w := NewBytesWriter(dst)
	if err := NewEncoder(w, opts...).Encode(v); err != nil {
		return w.Len(), err
	}
	return w.Len(), nil
}

// MarshalTo encodes v directly to w. Output written before an error is
// not retracted.
func MarshalTo(w io.Writer, v any, opts ...Option) error {
	return NewEncoder(w, opts...).Encode(v)
}

// MarshalWithNamespaces encodes v with defaultNS as the default namespace
// and decls declared on the root element.
func MarshalWithNamespaces(v any, defaultNS string, decls []Namespace, opts ...Option) (string, error) {
	all := make([]Option, 0, len(opts)+len(decls)+1)
	all = append(all, WithDefaultNamespace(defaultNS))
	for _, ns := range decls {
		all = append(all, WithNamespace(ns.Prefix, ns.URI))
	}
	return MarshalString(v, append(all, opts...)...)
}
