package xmlcodec

// StructEncoder writes keyed content: attributes while the owning tag is
// still pending, then text and child elements.
type StructEncoder struct {
	e       *Encoder
	tag     *pendingTag // owning tag, nil when content goes into an open element
	name    QName
	opened  bool
	wrapped []QName // variant wrappers closed by End, innermost first
	ended   bool
}

// Attr adds an attribute to the owning tag.
func (s *StructEncoder) Attr(name, value string) error {
	if s.tag == nil || s.e.pending != s.tag {
		return messagef("cannot add attribute %s outside an open tag", name)
	}
	qn := ParseQName(name)
	if err := qn.check(); err != nil {
		return err
	}
	s.tag.attrs = append(s.tag.attrs, Attr{Name: qn, Value: value})
	return nil
}

// Text writes the direct text content of the element.
func (s *StructEncoder) Text(text string) error {
	if err := s.start(); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return s.e.write(Characters(text))
}

// Field writes one child element named key; fn encodes its value. If fn
// produces nothing, as an empty sequence does, the key is left out.
func (s *StructEncoder) Field(key string, fn func(*Encoder) error) error {
	if err := s.start(); err != nil {
		return err
	}
	child := &pendingTag{name: ParseQName(key)}
	s.e.pending = child
	if err := fn(s.e); err != nil {
		return err
	}
	if s.e.pending != nil {
		s.e.log.Debug("drop empty field", "key", key)
		s.e.pending = nil
	}
	return nil
}

// End closes the element. An element that never received content is
// written self-closed.
func (s *StructEncoder) End() error {
	if s.ended {
		return nil
	}
	s.ended = true
	if err := s.start(); err != nil {
		return err
	}
	if err := s.e.closeIf(s.name, s.opened); err != nil {
		return err
	}
	for _, name := range s.wrapped {
		if err := s.e.write(EndElement(name)); err != nil {
			return err
		}
	}
	return nil
}

// start writes the owning tag if it is still pending.
func (s *StructEncoder) start() error {
	if s.tag == nil || s.e.pending != s.tag {
		return nil
	}
	name, opened, err := s.e.flush()
	if err != nil {
		return err
	}
	s.name, s.opened = name, opened
	return nil
}
