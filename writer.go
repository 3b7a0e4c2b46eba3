package xmlcodec

import (
	"bufio"
	"bytes"
	"io"
)

type bufferedWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	Flush() error
}

// bytesBufferAdapter lets an in-memory buffer skip the bufio layer.
type bytesBufferAdapter struct{ *bytes.Buffer }

func (w bytesBufferAdapter) Flush() error { return nil }

// Writer provides the buffered byte layer under the markup sink.
// It tracks the first error that occurs; after an error, all subsequent
// write operations become no-ops.
type Writer struct {
	w     bufferedWriter
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	depth int
}

var _ io.Writer = (*Writer)(nil)

// NewWriterSize creates a new Writer with a specified buffer size.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	// Share the outer buffer; only the outermost writer flushes it.
	case *Writer:
		return &Writer{w: bw.w, depth: bw.depth + 1}, nil
	case *bufio.Writer:
		return &Writer{w: bw, depth: 1}, nil
	// underlying is a buf so we don't need buffering
	case *bytes.Buffer:
		return &Writer{w: bytesBufferAdapter{bw}}, nil
	case *BytesWriter:
		return &Writer{w: bw}, nil
	}

	return &Writer{w: bufio.NewWriterSize(w, size)}, nil
}

// NewWriter creates a new Writer with a default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// Write implements the io.Writer interface.
func (w *Writer) Write(buf []byte) (int, error) {
	if len(buf) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(buf)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteString implements the io.StringWriter interface.
func (w *Writer) WriteString(str string) (int, error) {
	if str == "" || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.WriteString(str)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteByte implements the io.ByteWriter interface.
func (w *Writer) WriteByte(v byte) error {
	if w.err != nil {
		return w.err
	}
	err := w.w.WriteByte(v)
	if err == nil {
		w.count++
	} else {
		w.err = err
	}
	return err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	// Only the outermost writer should be responsible for the final flush.
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	err := w.w.Flush()
	w.setError(err)
	return err
}
