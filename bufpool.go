package xmlcodec

import (
	"bytes"
	"sync"
)

// maxPooledBuffer keeps a single huge document from pinning its buffer in
// the pool forever.
const maxPooledBuffer = 1 << 20

// bytesBufPool reuses the in-memory documents built by Marshal.
// This reduces GC pressure by avoiding frequent allocations. We pool *bytes.Buffer
// because they are easily reset and resized.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common documents.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bytesBufPool.Put(buf)
}
