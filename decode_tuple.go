package xmlcodec

// tupleAccess hands out whitespace separated tokens of one text run.
type tupleAccess struct {
	items []string
}

var _ SeqAccess = (*tupleAccess)(nil)

func (t *tupleAccess) Next(fn func(ValueDecoder) error) (bool, error) {
	if len(t.items) == 0 {
		return false, nil
	}
	item := t.items[0]
	t.items = t.items[1:]
	return true, fn(textDecoder(item))
}
