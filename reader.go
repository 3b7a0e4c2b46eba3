package xmlcodec

import (
	"io"
)

// Reader is the byte stream under the tokenizer. It counts consumed bytes,
// enforces an optional size limit and tracks the first error, so the decoder
// can tell a failing stream apart from malformed markup.
type Reader struct {
	r     io.Reader
	count int64 // total bytes read
	limit int64 // 0 means unlimited
	err   error // first error encountered.
}

var _ io.Reader = (*Reader)(nil)

// NewReader wraps r. It reuses r when it is already a *Reader.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if reader, ok := r.(*Reader); ok {
		return reader, nil
	}
	return &Reader{r: r}, nil
}

// WithLimit caps the number of bytes the reader will deliver and returns
// the reader for chaining. Reading past the cap fails with ErrInputTooLarge.
func (r *Reader) WithLimit(n int64) *Reader {
	r.limit = n
	return r
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.limit > 0 {
		// Allow one byte beyond the limit so an exact-size document still ends cleanly.
		if remain := r.limit - r.count + 1; int64(len(p)) > remain {
			p = p[:remain]
		}
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	if r.limit > 0 && r.count > r.limit {
		r.setError(ErrInputTooLarge)
		return n, r.err
	}
	r.setError(err)
	return n, r.err
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// Failed returns the latched error when it is a real stream failure
// rather than a clean end of input.
func (r *Reader) Failed() error {
	if r.err == nil || r.err == io.EOF {
		return nil
	}
	return r.err
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}
