package buffer

import (
	"testing"
)

func BenchmarkCircularWriteRead(b *testing.B) {
	buf, err := NewCircular[byte](64 * 1024)
	if err != nil {
		b.Fatal(err)
	}

	chunk := make([]byte, 1024)
	dst := make([]byte, 1024)

	b.ResetTimer()
	b.SetBytes(int64(len(chunk)))
	for i := 0; i < b.N; i++ {
		buf.Write(chunk)
		buf.Read(dst)
	}
}

func BenchmarkCircularZeroCopy(b *testing.B) {
	buf, err := NewCircular[byte](64 * 1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.SetBytes(1024)
	for i := 0; i < b.N; i++ {
		n := 0
		for _, r := range buf.WritableRanges() {
			if len(r) > 1024-n {
				r = r[:1024-n]
			}
			n += len(r)
			if n == 1024 {
				break
			}
		}
		buf.Commit(n)
		buf.Discard(n)
	}
}

func BenchmarkDynamicWriteRead(b *testing.B) {
	buf, err := NewDynamic[byte]()
	if err != nil {
		b.Fatal(err)
	}

	chunk := make([]byte, 1024)
	dst := make([]byte, 1024)

	b.ResetTimer()
	b.SetBytes(int64(len(chunk)))
	for i := 0; i < b.N; i++ {
		buf.Write(chunk)
		buf.Read(dst)
	}
}

func BenchmarkDynamicGrowEvict(b *testing.B) {
	buf, err := NewDynamic[byte](WithExtentSize[byte](512))
	if err != nil {
		b.Fatal(err)
	}

	chunk := make([]byte, 2048)
	dst := make([]byte, 2048)

	b.ResetTimer()
	b.SetBytes(int64(len(chunk)))
	for i := 0; i < b.N; i++ {
		buf.Write(chunk)
		buf.Read(dst)
	}
}

func BenchmarkStreamWrite(b *testing.B) {
	buf, err := NewDynamic[byte]()
	if err != nil {
		b.Fatal(err)
	}
	s := NewStream(buf)

	chunk := make([]byte, 1024)
	dst := make([]byte, 1024)

	b.ResetTimer()
	b.SetBytes(int64(len(chunk)))
	for i := 0; i < b.N; i++ {
		if _, err := s.Write(chunk); err != nil {
			b.Fatal(err)
		}
		if _, err := s.Read(dst); err != nil {
			b.Fatal(err)
		}
	}
}
