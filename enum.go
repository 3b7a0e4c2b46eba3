package xmlcodec

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// enumRegistry maps an interface type to the variants registered for it.
var enumRegistry = xsync.NewMap[reflect.Type, *enumInfo]()

type variantKind uint8

const (
	variantUnit variantKind = iota
	variantNewtype
	variantTuple
	variantStruct
)

func (k variantKind) String() string {
	switch k {
	case variantUnit:
		return "unit"
	case variantNewtype:
		return "newtype"
	case variantTuple:
		return "tuple"
	}
	return "struct"
}

type variantInfo struct {
	name string
	typ  reflect.Type // dynamic type stored in the interface
	kind variantKind
}

// newValue allocates a zero variant. It returns the value to decode into
// and the value to store in the interface.
func (v *variantInfo) newValue() (target, stored reflect.Value) {
	if v.typ.Kind() == reflect.Pointer {
		p := reflect.New(v.typ.Elem())
		return p.Elem(), p
	}
	val := reflect.New(v.typ).Elem()
	return val, val
}

type enumInfo struct {
	iface  reflect.Type
	byName map[string]*variantInfo
	byType map[reflect.Type]*variantInfo
}

// Variant lets a type choose the name it is written under when used as a
// variant of a registered enum.
type Variant interface {
	XMLVariant() string
}

// RegisterEnum declares the implementations of the interface I that form a
// tagged union. The dynamic type of each sample value selects the variant
// shape: an empty struct is a unit variant, a struct embedding Tuple is a
// tuple variant, any other struct a struct variant and everything else a
// newtype variant. Names come from Variant when implemented, otherwise from
// the type name with a lower case first letter.
func RegisterEnum[I any](variants ...I) error {
	iface := reflect.TypeFor[I]()
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: enum type %s is not an interface", ErrUnsupportedType, iface)
	}
	info := &enumInfo{
		iface:  iface,
		byName: make(map[string]*variantInfo, len(variants)),
		byType: make(map[reflect.Type]*variantInfo, len(variants)),
	}
	for _, sample := range variants {
		rv := reflect.ValueOf(sample)
		if !rv.IsValid() {
			return fmt.Errorf("%w: nil variant for enum %s", ErrUnsupportedType, iface)
		}
		v := &variantInfo{typ: rv.Type()}
		if named, ok := any(sample).(Variant); ok {
			v.name = named.XMLVariant()
		} else {
			v.name = typeRootName(v.typ)
		}
		kind, err := variantKindOf(v.typ)
		if err != nil {
			return err
		}
		v.kind = kind
		if v.name == "" {
			return fmt.Errorf("%w: variant %s of enum %s has no name", ErrUnsupportedType, v.typ, iface)
		}
		if _, dup := info.byName[v.name]; dup {
			return fmt.Errorf("%w: enum %s registers variant %q twice", ErrUnsupportedType, iface, v.name)
		}
		info.byName[v.name] = v
		info.byType[v.typ] = v
	}
	enumRegistry.Store(iface, info)
	return nil
}

func variantKindOf(t reflect.Type) (variantKind, error) {
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return variantNewtype, nil
	}
	ti, err := getTypeInfo(base)
	if err != nil {
		return 0, err
	}
	switch {
	case ti.unit:
		return variantUnit, nil
	case ti.tuple:
		return variantTuple, nil
	}
	return variantStruct, nil
}

func lookupEnum(t reflect.Type) (*enumInfo, bool) {
	if t.Kind() != reflect.Interface {
		return nil, false
	}
	return enumRegistry.Load(t)
}

func isEnum(t reflect.Type) bool {
	_, ok := lookupEnum(t)
	return ok
}

// variantOf finds the variant for the dynamic value held by an enum.
func (info *enumInfo) variantOf(rv reflect.Value) (*variantInfo, error) {
	v, ok := info.byType[rv.Type()]
	if !ok {
		return nil, messagef("%s is not a registered variant of %s", rv.Type(), info.iface)
	}
	return v, nil
}

func (info *enumInfo) variantNamed(name string) (*variantInfo, error) {
	v, ok := info.byName[name]
	if !ok {
		return nil, messagef("unknown variant %q of %s", name, info.iface)
	}
	return v, nil
}
