package xmlcodec

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// encodeValue encodes rv into the pending tag and attaches path to the
// first error.
func encodeValue(e *Encoder, rv reflect.Value, path string) error {
	return withPath(encodeInto(e, rv, path), path)
}

func encodeInto(e *Encoder, rv reflect.Value, path string) error {
	if !rv.IsValid() {
		return e.EncodeNone()
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return e.EncodeNone()
		}
		if info, ok := lookupEnum(rv.Type()); ok {
			return encodeVariant(e, info, rv.Elem(), path)
		}
		return encodeInto(e, rv.Elem(), path)
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return e.EncodeNone()
	}
	if m, ok := asInterface[Marshaler](rv); ok {
		return m.MarshalXMLValue(e)
	}
	if tm, ok := asInterface[encoding.TextMarshaler](rv); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return err
		}
		return e.EncodeText(string(text))
	}
	switch rv.Kind() {
	case reflect.Pointer:
		return encodeInto(e, rv.Elem(), path)
	case reflect.Struct:
		ti, err := getTypeInfo(rv.Type())
		if err != nil {
			return err
		}
		switch {
		case ti.unit:
			return e.EncodeUnit()
		case ti.tuple:
			t, err := e.EncodeTuple()
			if err != nil {
				return err
			}
			return encodeTupleFields(t, ti, rv, path)
		}
		s, err := e.EncodeStruct()
		if err != nil {
			return err
		}
		return encodeStructFields(s, ti, rv, path)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		return encodeMap(e, rv, path)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.EncodeText(string(rv.Bytes()))
		}
		if rv.Len() == 0 {
			return nil
		}
		s, err := e.EncodeSeq()
		if err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			ev := rv.Index(i)
			epath := path + "." + strconv.Itoa(i)
			if err := s.Element(func(e *Encoder) error { return encodeValue(e, ev, epath) }); err != nil {
				return err
			}
		}
		return s.End()
	case reflect.Array:
		t, err := e.EncodeTuple()
		if err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			text, err := formatText(rv.Index(i))
			if err != nil {
				return withPath(err, path+"."+strconv.Itoa(i))
			}
			if err := t.Element(text); err != nil {
				return err
			}
		}
		return t.End()
	default:
		if text, ok := formatScalar(rv); ok {
			return e.EncodeText(text)
		}
	}
	return &Error{Kind: KindMessage, Msg: fmt.Sprintf("cannot encode %s", rv.Type()), Err: ErrUnsupportedType}
}

// asInterface finds an implementation of I on rv or, when addressable, on
// its address.
func asInterface[I any](rv reflect.Value) (I, bool) {
	if rv.CanInterface() {
		if x, ok := rv.Interface().(I); ok {
			return x, true
		}
	}
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		if x, ok := rv.Addr().Interface().(I); ok {
			return x, true
		}
	}
	var zero I
	return zero, false
}

// formatText renders a value that has to fit into an attribute, a text run
// or a tuple item.
func formatText(rv reflect.Value) (string, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil
		}
		if info, ok := lookupEnum(rv.Type()); ok {
			return unitVariantText(info, rv.Elem())
		}
		if tm, ok := asInterface[encoding.TextMarshaler](rv); ok {
			text, err := tm.MarshalText()
			return string(text), err
		}
		rv = rv.Elem()
	}
	if tm, ok := asInterface[encoding.TextMarshaler](rv); ok {
		text, err := tm.MarshalText()
		return string(text), err
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return string(rv.Bytes()), nil
	}
	if text, ok := formatScalar(rv); ok {
		return text, nil
	}
	return "", &Error{Kind: KindMessage, Msg: fmt.Sprintf("%s cannot be written as text", rv.Type()), Err: ErrUnsupportedType}
}

// unitVariantText renders an enum in a text position, where only a unit
// variant has a form.
func unitVariantText(info *enumInfo, val reflect.Value) (string, error) {
	v, err := info.variantOf(val)
	if err != nil {
		return "", err
	}
	if v.kind != variantUnit {
		return "", messagef("expected unit variant, %s is a %s variant", v.name, v.kind)
	}
	return v.name, nil
}

func isNilOrAbsent(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// encodeStructFields writes attributes first, then text and child
// elements in field order, and closes the element.
func encodeStructFields(s *StructEncoder, ti *typeInfo, rv reflect.Value, path string) error {
	for i := range ti.fields {
		f := &ti.fields[i]
		if f.kind != fieldAttr {
			continue
		}
		fv := rv.FieldByIndex(f.index)
		if isNilOrAbsent(fv) || (f.omitEmpty && fv.IsZero()) {
			continue
		}
		text, err := formatText(fv)
		if err != nil {
			return withPath(err, path+"."+f.key())
		}
		if err := s.Attr(f.name, text); err != nil {
			return err
		}
	}
	for i := range ti.fields {
		f := &ti.fields[i]
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		fpath := path + "." + f.key()
		switch f.kind {
		case fieldText:
			if isNilOrAbsent(fv) {
				continue
			}
			text, err := formatText(fv)
			if err != nil {
				return withPath(err, fpath)
			}
			if err := s.Text(text); err != nil {
				return err
			}
		case fieldElement:
			if err := s.Field(f.name, func(e *Encoder) error { return encodeValue(e, fv, fpath) }); err != nil {
				return err
			}
		case fieldChoice:
			if err := encodeChoice(s, fv, path); err != nil {
				return err
			}
		}
	}
	return s.End()
}

// encodeChoice writes every item of a choice field as a child element
// named after its variant.
func encodeChoice(s *StructEncoder, fv reflect.Value, path string) error {
	info, _ := lookupEnum(fv.Type().Elem())
	for i := 0; i < fv.Len(); i++ {
		item := fv.Index(i)
		if item.IsNil() {
			continue
		}
		v, err := info.variantOf(item.Elem())
		if err != nil {
			return withPath(err, path+"."+strconv.Itoa(i))
		}
		ipath := path + "." + v.name
		err = s.Field(v.name, func(e *Encoder) error {
			return withPath(encodeVariantContent(e, v, item.Elem(), ipath), ipath)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeVariantContent writes the payload of a variant into the pending
// tag, without a wrapper element.
func encodeVariantContent(e *Encoder, v *variantInfo, val reflect.Value, path string) error {
	switch v.kind {
	case variantUnit:
		return e.EncodeUnit()
	case variantNewtype:
		return encodeInto(e, val, path)
	}
	base := reflect.Indirect(val)
	ti, err := getTypeInfo(base.Type())
	if err != nil {
		return err
	}
	if v.kind == variantTuple {
		t, err := e.EncodeTuple()
		if err != nil {
			return err
		}
		return encodeTupleFields(t, ti, base, path)
	}
	s, err := e.EncodeStruct()
	if err != nil {
		return err
	}
	return encodeStructFields(s, ti, base, path)
}

// encodeVariant writes an enum value: a unit variant as text, any other
// variant as an element named after it.
func encodeVariant(e *Encoder, info *enumInfo, val reflect.Value, path string) error {
	v, err := info.variantOf(val)
	if err != nil {
		return err
	}
	path += "." + v.name
	switch v.kind {
	case variantUnit:
		return e.EncodeUnitVariant(v.name)
	case variantNewtype:
		return e.EncodeNewtypeVariant(v.name, func(e *Encoder) error { return encodeValue(e, val, path) })
	}
	base := reflect.Indirect(val)
	ti, err := getTypeInfo(base.Type())
	if err != nil {
		return err
	}
	if v.kind == variantTuple {
		t, err := e.EncodeTupleVariant(v.name)
		if err != nil {
			return err
		}
		return encodeTupleFields(t, ti, base, path)
	}
	s, err := e.EncodeStructVariant(v.name)
	if err != nil {
		return err
	}
	return encodeStructFields(s, ti, base, path)
}

func encodeTupleFields(t *TupleEncoder, ti *typeInfo, rv reflect.Value, path string) error {
	for i := range ti.fields {
		text, err := formatText(rv.FieldByIndex(ti.fields[i].index))
		if err != nil {
			return withPath(err, path+"."+strconv.Itoa(i))
		}
		if err := t.Element(text); err != nil {
			return withPath(err, path+"."+strconv.Itoa(i))
		}
	}
	return t.End()
}

// encodeMap writes attribute keys first, then the text key and child
// elements, each group in sorted order.
func encodeMap(e *Encoder, rv reflect.Value, path string) error {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.SortFunc(keys, func(a, b string) int {
		_, attrA := IsAttrKey(a)
		_, attrB := IsAttrKey(b)
		switch {
		case attrA && !attrB:
			return -1
		case attrB && !attrA:
			return 1
		}
		return strings.Compare(a, b)
	})
	s, err := e.EncodeMap()
	if err != nil {
		return err
	}
	keyType := rv.Type().Key()
	for _, key := range keys {
		val := rv.MapIndex(reflect.ValueOf(key).Convert(keyType))
		kpath := path + "." + key
		if name, ok := IsAttrKey(key); ok {
			if isNilOrAbsent(val) {
				continue
			}
			text, err := formatText(val)
			if err != nil {
				return withPath(err, kpath)
			}
			if err := s.Attr(name, text); err != nil {
				return err
			}
			continue
		}
		if key == TextKey {
			text, err := formatText(val)
			if err != nil {
				return withPath(err, kpath)
			}
			if err := s.Text(text); err != nil {
				return err
			}
			continue
		}
		if err := s.Field(key, func(e *Encoder) error { return encodeValue(e, val, kpath) }); err != nil {
			return err
		}
	}
	return s.End()
}
