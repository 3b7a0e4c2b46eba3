package xmlcodec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// typeInfoCache keeps the parsed field layout of every struct type seen so
// far. Building it costs a full walk over the struct tags.
var typeInfoCache = xsync.NewMap[reflect.Type, *typeInfo]()

// Tuple marks a struct as a tuple when embedded: its fields are written in
// order as one whitespace separated text run.
type Tuple struct{}

var tupleType = reflect.TypeFor[Tuple]()

type fieldKind uint8

const (
	fieldElement fieldKind = iota
	fieldAttr
	fieldText
	fieldChoice
)

type fieldInfo struct {
	index     []int
	name      string // element or attribute name as written
	kind      fieldKind
	omitEmpty bool
}

// key is the map key the decoder reports for the field.
func (f *fieldInfo) key() string {
	switch f.kind {
	case fieldAttr:
		return AttrPrefix + f.name
	case fieldText:
		return TextKey
	}
	return f.name
}

type typeInfo struct {
	typ     reflect.Type
	root    QName // from the XMLName field tag
	hasRoot bool
	fields  []fieldInfo
	byKey   map[string]int
	byLocal map[string]int
	choice  int // index into fields, -1 without a choice field
	tuple   bool
	unit    bool
}

// lookup resolves a decoder key to a field. Keys reported without prefix
// fall back to the local part of prefixed field names.
func (ti *typeInfo) lookup(key string) (*fieldInfo, bool) {
	if i, ok := ti.byKey[key]; ok {
		return &ti.fields[i], true
	}
	if i, ok := ti.byLocal[key]; ok {
		return &ti.fields[i], true
	}
	return nil, false
}

func getTypeInfo(t reflect.Type) (*typeInfo, error) {
	if ti, ok := typeInfoCache.Load(t); ok {
		return ti, nil
	}
	ti := &typeInfo{
		typ:     t,
		byKey:   make(map[string]int),
		byLocal: make(map[string]int),
		choice:  -1,
	}
	if err := ti.collect(t, nil); err != nil {
		return nil, err
	}
	ti.unit = len(ti.fields) == 0 && !ti.tuple
	ti, _ = typeInfoCache.LoadOrStore(t, ti)
	return ti, nil
}

func (ti *typeInfo) collect(t reflect.Type, parent []int) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(parent[:len(parent):len(parent)], i)
		tag, hasTag := sf.Tag.Lookup("xml")
		if tag == "-" {
			continue
		}
		if sf.Anonymous {
			if sf.Type == tupleType {
				ti.tuple = true
				continue
			}
			if sf.Type.Kind() == reflect.Struct && !hasTag {
				if err := ti.collect(sf.Type, index); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if sf.Name == "XMLName" {
			if name != "" {
				ti.root, ti.hasRoot = ParseQName(name), true
			}
			continue
		}
		f := fieldInfo{index: index, name: name}
		for _, opt := range strings.Split(opts, ",") {
			switch opt {
			case "attr":
				f.kind = fieldAttr
			case "chardata":
				f.kind = fieldText
			case "choice":
				f.kind = fieldChoice
			case "omitempty":
				f.omitEmpty = true
			}
		}
		switch {
		case name == TextKey:
			f.kind, f.name = fieldText, ""
		case strings.HasPrefix(name, AttrPrefix):
			f.kind, f.name = fieldAttr, name[len(AttrPrefix):]
		}
		if f.name == "" && f.kind != fieldText && f.kind != fieldChoice {
			f.name = sf.Name
		}
		if f.kind == fieldChoice {
			if ti.choice >= 0 {
				return fmt.Errorf("%w: %s has more than one choice field", ErrUnsupportedType, ti.typ)
			}
			if sf.Type.Kind() != reflect.Slice || !isEnum(sf.Type.Elem()) {
				return fmt.Errorf("%w: choice field %s.%s must be a slice of a registered enum", ErrUnsupportedType, ti.typ, sf.Name)
			}
			ti.choice = len(ti.fields)
			ti.fields = append(ti.fields, f)
			continue
		}
		key := f.key()
		if _, dup := ti.byKey[key]; dup {
			return fmt.Errorf("%w: %s maps %q twice", ErrUnsupportedType, ti.typ, key)
		}
		ti.byKey[key] = len(ti.fields)
		if q := ParseQName(f.name); q.Prefix != "" {
			local := q.Local
			if f.kind == fieldAttr {
				local = AttrPrefix + local
			}
			ti.byLocal[local] = len(ti.fields)
		}
		ti.fields = append(ti.fields, f)
	}
	return nil
}

// rootNameOf returns the root element name fixed by an XMLName field tag.
func rootNameOf(t reflect.Type) (QName, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return QName{}, false
	}
	ti, err := getTypeInfo(t)
	if err != nil || !ti.hasRoot {
		return QName{}, false
	}
	return ti.root, true
}

// typeRootName derives a root element name from a named Go type.
func typeRootName(t reflect.Type) string {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			if t.Name() == "" {
				t = t.Elem()
				continue
			}
		}
		break
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	return lowerCamel(name)
}
