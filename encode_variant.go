package xmlcodec

// EncodeUnitVariant writes a unit variant as text equal to its name.
func (e *Encoder) EncodeUnitVariant(name string) error {
	e.log.Debug("unit variant", "name", name)
	return e.EncodeText(name)
}

// EncodeNewtypeVariant writes an element named after the variant inside the
// pending tag; fn encodes the payload into it.
func (e *Encoder) EncodeNewtypeVariant(name string, fn func(*Encoder) error) error {
	wrapped, err := e.enterVariant(name)
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	if e.pending != nil {
		if err := e.EncodeUnit(); err != nil {
			return err
		}
	}
	for _, parent := range wrapped {
		if err := e.write(EndElement(parent)); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTupleVariant writes a tuple inside an element named after the variant.
func (e *Encoder) EncodeTupleVariant(name string) (*TupleEncoder, error) {
	wrapped, err := e.enterVariant(name)
	if err != nil {
		return nil, err
	}
	return &TupleEncoder{e: e, wrapped: wrapped}, nil
}

// EncodeStructVariant writes keyed content inside an element named after
// the variant.
func (e *Encoder) EncodeStructVariant(name string) (*StructEncoder, error) {
	wrapped, err := e.enterVariant(name)
	if err != nil {
		return nil, err
	}
	return &StructEncoder{e: e, tag: e.pending, wrapped: wrapped}, nil
}

// enterVariant writes the pending tag and opens the variant tag in its
// place. It returns the tags the variant encoder has to close afterwards.
func (e *Encoder) enterVariant(name string) ([]QName, error) {
	parent, opened, err := e.flush()
	if err != nil {
		return nil, err
	}
	e.log.Debug("variant", "name", name)
	e.open(ParseQName(name))
	if opened {
		return []QName{parent}, nil
	}
	return nil, nil
}
