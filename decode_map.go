package xmlcodec

// mapAccess walks one element as keyed content: attributes in document
// order first, then the text run and child elements as they appear.
type mapAccess struct {
	d     *Decoder
	attrs []Attr
	value *string // attribute value or text run waiting for NextValue
	text  bool    // the text run was reported
	child bool    // a child element waits for NextValue
	end   QName
	depth int
}

var _ MapAccess = (*mapAccess)(nil)

func newMapAccess(d *Decoder) *mapAccess {
	m := &mapAccess{d: d}
	if tag, ok := d.cur.TakeCurrent(); ok {
		m.attrs = tag.attrs
	}
	return m
}

func (m *mapAccess) NextKey() (string, bool, error) {
	if m.value != nil || m.child {
		return "", false, messagef("map key requested before its previous value was decoded")
	}
	if len(m.attrs) > 0 {
		a := m.attrs[0]
		m.attrs = m.attrs[1:]
		value := a.Value
		m.value = &value
		return AttrPrefix + m.d.cur.match.key(a.Name), true, nil
	}
	t, err := m.d.cur.Peek()
	if err != nil {
		return "", false, err
	}
	switch t.Kind {
	case TokenEndElement, TokenEndDocument:
		return "", false, nil
	case TokenCharacters:
		if m.text {
			return "", false, structuralf("second text run in element")
		}
		s, err := m.d.cur.ReadText()
		if err != nil {
			return "", false, err
		}
		m.text = true
		m.value = &s
		return TextKey, true, nil
	case TokenStartElement:
		name, _, err := m.d.cur.OpenTag()
		if err != nil {
			return "", false, err
		}
		m.child = true
		m.end = name
		m.depth = m.d.cur.Depth()
		key := m.d.cur.match.key(name)
		m.d.log.Debug("element key", "key", key)
		return key, true, nil
	}
	return "", false, structuralf("expected map key, found %s", t)
}

func (m *mapAccess) NextValue(fn func(ValueDecoder) error) error {
	if m.value != nil {
		s := *m.value
		m.value = nil
		return fn(textDecoder(s))
	}
	if !m.child {
		return messagef("map value requested without a key")
	}
	m.child = false
	if err := fn(m.d); err != nil {
		return err
	}
	switch m.d.cur.Depth() {
	case m.depth:
		return m.d.cur.CloseTag(m.end)
	case m.depth - 1:
		// A sequence already consumed the end tag of its last element.
		return nil
	}
	return structuralf("unbalanced content in <%s>", m.end)
}
