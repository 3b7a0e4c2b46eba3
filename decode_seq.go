package xmlcodec

// seqAccess reads a run of sibling elements with the same name. The first
// element is already open when the access is created; each later one is
// entered only after the previous end tag is consumed and the lookahead
// shows another start tag with the shared name.
type seqAccess struct {
	d     *Decoder
	tag   *openTag
	first bool
	done  bool
	depth int
}

var _ SeqAccess = (*seqAccess)(nil)

func (s *seqAccess) Next(fn func(ValueDecoder) error) (bool, error) {
	if s.done {
		return false, nil
	}
	if s.first {
		s.first = false
		s.depth = s.d.cur.Depth()
		s.d.cur.Restore(s.tag)
		return true, fn(s.d)
	}
	if s.d.cur.Depth() == s.depth {
		if err := s.d.cur.CloseTag(s.tag.name); err != nil {
			return false, err
		}
	}
	t, err := s.d.cur.Peek()
	if err != nil {
		return false, err
	}
	if t.Kind != TokenStartElement || !s.d.cur.match.equal(t.Name, s.tag.name) {
		s.done = true
		s.d.log.Debug("sequence end", "name", s.tag.name.String())
		return false, nil
	}
	if _, _, err := s.d.cur.OpenTag(); err != nil {
		return false, err
	}
	return true, fn(s.d)
}
