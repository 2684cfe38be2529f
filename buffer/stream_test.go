package buffer

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/streambuf/errors"
)

func TestStreamReadWrite(t *testing.T) {
	buf, err := NewDynamic[byte](WithExtentSize[byte](8))
	require.NoError(t, err)
	s := NewStream(buf)

	n, err := s.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	dst := make([]byte, 3)
	n, err = s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("hel"), dst)

	n, err = s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("lo"), dst[:2])
}

func TestStreamEmptyThenEOF(t *testing.T) {
	buf, err := NewDynamic[byte]()
	require.NoError(t, err)
	s := NewStream(buf)

	// Empty with the write side open: not EOF yet.
	dst := make([]byte, 4)
	n, err := s.Read(dst)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, cerrors.ErrEmpty)

	s.Write([]byte("ab"))
	s.CloseWrite()

	// Buffered data is still readable after close.
	n, err = s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Drained and closed: EOF.
	_, err = s.Read(dst)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamWriteAfterClose(t *testing.T) {
	buf, err := NewDynamic[byte]()
	require.NoError(t, err)
	s := NewStream(buf)

	s.CloseWrite()
	n, err := s.Write([]byte("x"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	assert.ErrorIs(t, s.WriteByte('x'), io.ErrClosedPipe)
}

func TestStreamShortWrite(t *testing.T) {
	ring, err := NewCircular[byte](4)
	require.NoError(t, err)
	s := NewStream(ring)

	n, err := s.Write([]byte("abcdef"))
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestStreamByteAtATime(t *testing.T) {
	ring, err := NewCircular[byte](8)
	require.NoError(t, err)
	s := NewStream(ring)

	for _, c := range []byte("abc") {
		require.NoError(t, s.WriteByte(c))
	}

	var got []byte
	for {
		c, err := s.ReadByte()
		if err != nil {
			assert.ErrorIs(t, err, cerrors.ErrEmpty)
			break
		}
		got = append(got, c)
	}
	assert.Equal(t, []byte("abc"), got)
}

func TestStreamZeroLengthRead(t *testing.T) {
	buf, err := NewDynamic[byte]()
	require.NoError(t, err)
	s := NewStream(buf)

	n, err := s.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}

func TestStreamWithStdlibCopy(t *testing.T) {
	buf, err := NewDynamic[byte](WithExtentSize[byte](16))
	require.NoError(t, err)
	s := NewStream(buf)

	payload := []byte("a payload that spans several extents of the buffer")
	n, err := s.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	s.CloseWrite()

	// io.ReadAll drives the stream like any other io.Reader.
	got, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
