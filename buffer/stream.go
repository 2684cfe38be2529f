package buffer

import (
	"io"

	"github.com/c360/streambuf/errors"
)

// Stream adapts any byte buffer to the standard library's stream
// interfaces, for code that deals in plain byte I/O rather than the richer
// ranges/commit/discard contract. The adapter shares its buffer's
// single-owner model: it adds no locking.
//
// Reading from an empty stream returns ErrEmpty until the write side is
// closed, after which it returns io.EOF. A short write (the underlying ring
// buffer ran out of space) is reported as io.ErrShortWrite alongside the
// count actually accepted.
type Stream struct {
	buf         Buffer[byte]
	writeClosed bool
}

var (
	_ io.Reader     = (*Stream)(nil)
	_ io.Writer     = (*Stream)(nil)
	_ io.ByteReader = (*Stream)(nil)
	_ io.ByteWriter = (*Stream)(nil)
)

// NewStream wraps buf in a byte-stream adapter.
func NewStream(buf Buffer[byte]) *Stream {
	return &Stream{buf: buf}
}

// Buffer returns the underlying buffer.
func (s *Stream) Buffer() Buffer[byte] {
	return s.buf
}

// CloseWrite marks the write side closed. Buffered data stays readable;
// once it is drained, Read reports io.EOF.
func (s *Stream) CloseWrite() {
	s.writeClosed = true
}

// Read copies buffered bytes into p. It never blocks: an empty stream
// returns ErrEmpty (or io.EOF after CloseWrite) instead of waiting.
func (s *Stream) Read(p []byte) (int, error) {
	n := s.buf.Read(p)
	if n > 0 {
		return n, nil
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.writeClosed {
		return 0, io.EOF
	}
	return 0, errors.ErrEmpty
}

// Write copies p into the buffer. A fixed-capacity buffer that cannot take
// all of p returns the accepted count with io.ErrShortWrite.
func (s *Stream) Write(p []byte) (int, error) {
	if s.writeClosed {
		return 0, io.ErrClosedPipe
	}

	n := s.buf.Write(p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReadByte reads and removes a single byte.
func (s *Stream) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := s.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteByte writes a single byte.
func (s *Stream) WriteByte(c byte) error {
	_, err := s.Write([]byte{c})
	return err
}
