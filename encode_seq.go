package xmlcodec

// SeqEncoder writes repeated sibling elements sharing one name.
type SeqEncoder struct {
	e     *Encoder
	name  QName
	first bool
}

// Element encodes the next item. The first item uses the pending tag with
// its attributes; later ones reopen the name with no attributes.
func (s *SeqEncoder) Element(fn func(*Encoder) error) error {
	if !s.first {
		s.e.open(s.name)
	}
	s.first = false
	return fn(s.e)
}

// End finishes the sequence. A sequence without items leaves the pending
// tag to the caller, which drops it.
func (s *SeqEncoder) End() error {
	return nil
}
