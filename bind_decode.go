package xmlcodec

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// decodeValue decodes into rv, which must be settable, and attaches path to
// the first error.
func decodeValue(d ValueDecoder, rv reflect.Value, path string) error {
	return withPath(decodeInto(d, rv, path), path)
}

func decodeInto(d ValueDecoder, rv reflect.Value, path string) error {
	if rv.CanAddr() {
		switch u := rv.Addr().Interface().(type) {
		case Unmarshaler:
			return u.UnmarshalXMLValue(d)
		case encoding.TextUnmarshaler:
			return d.DecodeScalar(textUnmarshalVisitor{Expecting: "text", u: u, typ: rv.Type()})
		}
	}
	if info, ok := lookupEnum(rv.Type()); ok {
		return d.DecodeEnum(&enumVisitor{Expecting: "enum", info: info, rv: rv, path: path})
	}
	switch rv.Kind() {
	case reflect.Pointer:
		return d.DecodeOption(&optionVisitor{Expecting: "optional", rv: rv, path: path})
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			return d.DecodeAny(&anyVisitor{Expecting: "any value", rv: rv})
		}
	case reflect.Struct:
		ti, err := getTypeInfo(rv.Type())
		if err != nil {
			return err
		}
		switch {
		case ti.unit:
			return d.DecodeUnit(unitVisitor{Expecting: "unit"})
		case ti.tuple:
			return d.DecodeTuple(len(ti.fields), &tupleVisitor{Expecting: "tuple", ti: ti, rv: rv, path: path})
		}
		return d.DecodeStruct(&structVisitor{Expecting: "struct", ti: ti, rv: rv, path: path})
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		return d.DecodeMap(&mapVisitor{Expecting: "map", rv: rv, path: path})
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return d.DecodeScalar(bytesVisitor{Expecting: "text", rv: rv})
		}
		return d.DecodeSeq(&sliceVisitor{Expecting: "sequence", rv: rv, path: path})
	case reflect.Array:
		return d.DecodeTuple(rv.Len(), &arrayVisitor{Expecting: "tuple", rv: rv, path: path})
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return d.DecodeScalar(scalarVisitor{Expecting: "text", rv: rv})
	}
	return &Error{Kind: KindMessage, Msg: fmt.Sprintf("cannot decode into %s", rv.Type()), Err: ErrUnsupportedType}
}

type scalarVisitor struct {
	Expecting
	rv reflect.Value
}

func (v scalarVisitor) VisitText(s string) error { return parseScalar(s, v.rv) }

type bytesVisitor struct {
	Expecting
	rv reflect.Value
}

func (v bytesVisitor) VisitText(s string) error {
	v.rv.SetBytes([]byte(s))
	return nil
}

type textUnmarshalVisitor struct {
	Expecting
	u   encoding.TextUnmarshaler
	typ reflect.Type
}

func (v textUnmarshalVisitor) VisitText(s string) error {
	if err := v.u.UnmarshalText([]byte(s)); err != nil {
		return parseError(s, v.typ.String(), err)
	}
	return nil
}

type unitVisitor struct{ Expecting }

func (unitVisitor) VisitUnit() error { return nil }

type optionVisitor struct {
	Expecting
	rv   reflect.Value
	path string
}

func (v *optionVisitor) VisitNone() error {
	v.rv.SetZero()
	return nil
}

func (v *optionVisitor) VisitSome(d ValueDecoder) error {
	if v.rv.IsNil() {
		v.rv.Set(reflect.New(v.rv.Type().Elem()))
	}
	return decodeInto(d, v.rv.Elem(), v.path)
}

type structVisitor struct {
	Expecting
	ti   *typeInfo
	rv   reflect.Value
	path string
}

func (v *structVisitor) VisitMap(m MapAccess) error {
	var seen map[*fieldInfo]bool
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		f, found := v.ti.lookup(key)
		if !found {
			if _, attr := IsAttrKey(key); v.ti.choice >= 0 && !attr && key != TextKey {
				if err := v.decodeChoice(m, key); err != nil {
					return err
				}
				continue
			}
			if err := m.NextValue(ValueDecoder.Skip); err != nil {
				return err
			}
			continue
		}
		fv := v.rv.FieldByIndex(f.index)
		if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.Uint8 {
			// Repeated keys append; the first occurrence replaces any
			// previous content of the target.
			if seen == nil {
				seen = make(map[*fieldInfo]bool)
			}
			if !seen[f] {
				seen[f] = true
				fv.SetZero()
			}
		}
		path := v.path + "." + key
		if err := m.NextValue(func(d ValueDecoder) error { return decodeValue(d, fv, path) }); err != nil {
			return err
		}
	}
}

// decodeChoice appends the element named key to the choice field as the
// variant of the same name.
func (v *structVisitor) decodeChoice(m MapAccess, key string) error {
	f := &v.ti.fields[v.ti.choice]
	fv := v.rv.FieldByIndex(f.index)
	info, _ := lookupEnum(fv.Type().Elem())
	elem := reflect.New(fv.Type().Elem()).Elem()
	path := v.path + "." + key
	err := m.NextValue(func(d ValueDecoder) error {
		return (&enumVisitor{Expecting: "enum", info: info, rv: elem, path: path}).VisitEnum(elementVariant{name: key, d: d})
	})
	if err != nil {
		return withPath(err, path)
	}
	fv.Set(reflect.Append(fv, elem))
	return nil
}

type tupleVisitor struct {
	Expecting
	ti   *typeInfo
	rv   reflect.Value
	path string
}

func (v *tupleVisitor) VisitSeq(s SeqAccess) error {
	for i := range v.ti.fields {
		fv := v.rv.FieldByIndex(v.ti.fields[i].index)
		path := v.path + "." + strconv.Itoa(i)
		ok, err := s.Next(func(d ValueDecoder) error { return decodeValue(d, fv, path) })
		if err != nil {
			return err
		}
		if !ok {
			return messagef("%s expects %d tuple items, found %d", v.rv.Type(), len(v.ti.fields), i)
		}
	}
	return expectSeqEnd(s, len(v.ti.fields))
}

type arrayVisitor struct {
	Expecting
	rv   reflect.Value
	path string
}

func (v *arrayVisitor) VisitSeq(s SeqAccess) error {
	n := v.rv.Len()
	for i := 0; i < n; i++ {
		ev := v.rv.Index(i)
		path := v.path + "." + strconv.Itoa(i)
		ok, err := s.Next(func(d ValueDecoder) error { return decodeValue(d, ev, path) })
		if err != nil {
			return err
		}
		if !ok {
			return messagef("%s expects %d tuple items, found %d", v.rv.Type(), n, i)
		}
	}
	return expectSeqEnd(s, n)
}

func expectSeqEnd(s SeqAccess, n int) error {
	ok, err := s.Next(ValueDecoder.Skip)
	if err != nil {
		return err
	}
	if ok {
		return messagef("expected %d tuple items, found more", n)
	}
	return nil
}

type sliceVisitor struct {
	Expecting
	rv   reflect.Value
	path string
}

func (v *sliceVisitor) VisitSeq(s SeqAccess) error {
	elemType := v.rv.Type().Elem()
	for {
		elem := reflect.New(elemType).Elem()
		path := v.path + "." + strconv.Itoa(v.rv.Len())
		ok, err := s.Next(func(d ValueDecoder) error { return decodeValue(d, elem, path) })
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v.rv.Set(reflect.Append(v.rv, elem))
	}
}

type mapVisitor struct {
	Expecting
	rv   reflect.Value
	path string
}

func (v *mapVisitor) VisitMap(m MapAccess) error {
	typ := v.rv.Type()
	if v.rv.IsNil() {
		v.rv.Set(reflect.MakeMap(typ))
	}
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		kv := reflect.ValueOf(key).Convert(typ.Key())
		elem := reflect.New(typ.Elem()).Elem()
		if existing := v.rv.MapIndex(kv); existing.IsValid() && elem.Kind() == reflect.Slice {
			elem.Set(existing)
		}
		path := v.path + "." + key
		if err := m.NextValue(func(d ValueDecoder) error { return decodeValue(d, elem, path) }); err != nil {
			return err
		}
		v.rv.SetMapIndex(kv, elem)
	}
}

// anyVisitor builds string, map[string]any, []any or nil.
type anyVisitor struct {
	Expecting
	rv reflect.Value
}

func (v *anyVisitor) set(x any) error {
	if x == nil {
		v.rv.SetZero()
		return nil
	}
	v.rv.Set(reflect.ValueOf(x))
	return nil
}

func (v *anyVisitor) VisitText(s string) error { return v.set(s) }
func (v *anyVisitor) VisitUnit() error         { return v.set(nil) }
func (v *anyVisitor) VisitNone() error         { return v.set(nil) }

func (v *anyVisitor) VisitSome(d ValueDecoder) error { return d.DecodeAny(v) }

func (v *anyVisitor) VisitMap(m MapAccess) error {
	out := make(map[string]any)
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		var val any
		err = m.NextValue(func(d ValueDecoder) error {
			return d.DecodeAny(&anyVisitor{Expecting: v.Expecting, rv: reflect.ValueOf(&val).Elem()})
		})
		if err != nil {
			return err
		}
		switch prev := out[key].(type) {
		case nil:
			if _, dup := out[key]; dup {
				out[key] = []any{nil, val}
			} else {
				out[key] = val
			}
		case []any:
			out[key] = append(prev, val)
		default:
			out[key] = []any{prev, val}
		}
	}
	return v.set(out)
}

type enumVisitor struct {
	Expecting
	info *enumInfo
	rv   reflect.Value
	path string
}

func (v *enumVisitor) VisitEnum(a EnumAccess) error {
	name, err := a.Variant()
	if err != nil {
		return err
	}
	variant, err := v.info.variantNamed(name)
	if err != nil {
		return err
	}
	target, stored := variant.newValue()
	path := v.path + "." + name
	switch variant.kind {
	case variantUnit:
		err = a.UnitVariant()
	case variantNewtype:
		err = a.NewtypeVariant(func(d ValueDecoder) error { return decodeValue(d, target, path) })
	case variantTuple:
		ti, terr := getTypeInfo(target.Type())
		if terr != nil {
			return terr
		}
		err = a.TupleVariant(len(ti.fields), &tupleVisitor{Expecting: "tuple", ti: ti, rv: target, path: path})
	case variantStruct:
		ti, terr := getTypeInfo(target.Type())
		if terr != nil {
			return terr
		}
		err = a.StructVariant(&structVisitor{Expecting: "struct", ti: ti, rv: target, path: path})
	}
	if err != nil {
		return err
	}
	v.rv.Set(stored)
	return nil
}
