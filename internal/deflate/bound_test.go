// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// deflateOnce compresses data with a single call into exactly the bound.
func deflateOnce(t *testing.T, s *Stream, data []byte) []byte {
	t.Helper()
	buf := make([]byte, s.Bound(uint64(len(data))))
	s.In, s.Out = data, buf
	st, err := s.Deflate(FinishFlush)
	assert.NilError(t, err)
	assert.Assert(t, is.Equal(st, StatusStreamEnd), "output did not fit in %d bytes", len(buf))
	return buf[:len(buf)-len(s.Out)]
}

func TestBoundRandom(t *testing.T) {
	data := randomBytes(1<<20, 9)
	hdr := &Header{Name: "random.bin", Comment: "incompressible", Extra: []byte("xx"), HeaderCRC: true}
	for _, format := range []Format{Raw, Zlib, Gzip} {
		for _, strategy := range allStrategies {
			for _, level := range []int{0, 1, 4, 9} {
				opts := []Option{WithFormat(format), WithLevel(level), WithStrategy(strategy)}
				if format == Gzip {
					opts = append(opts, WithHeader(hdr))
				}
				s, err := NewStream(opts...)
				assert.NilError(t, err)
				out := deflateOnce(t, s, data)
				if level == 1 {
					assert.Assert(t, bytes.Equal(inflate(t, format, out, nil), data))
				}
			}
		}
	}
}

func TestBoundSmall(t *testing.T) {
	text := opticks(t)
	for _, strategy := range allStrategies {
		for _, level := range []int{0, 1, 6} {
			for _, wbits := range []int{9, 15} {
				s, err := NewStream(WithFormat(Zlib), WithLevel(level), WithStrategy(strategy), WithWindowBits(wbits))
				assert.NilError(t, err)
				for n := 0; n < 600; n += 37 {
					assert.NilError(t, s.Reset())
					deflateOnce(t, s, randomBytes(n, int64(n)))
					assert.NilError(t, s.Reset())
					deflateOnce(t, s, text[:n])
				}
			}
		}
	}
}

func TestBoundDictionary(t *testing.T) {
	s, err := NewStream(WithFormat(Zlib), WithDictionary([]byte("dictionary")))
	assert.NilError(t, err)
	// zlib header with a dictionary id
	assert.Check(t, is.Equal(s.Bound(0), uint64(7+10)))
	deflateOnce(t, s, randomBytes(100000, 10))
}

func TestBoundDictionaryEmpty(t *testing.T) {
	for _, level := range []int{0, 1, 6, 9} {
		s, err := NewStream(WithFormat(Zlib), WithLevel(level), WithDictionary([]byte("dictionary")))
		assert.NilError(t, err)
		buf := make([]byte, Bound(0))
		s.Out = buf
		st, err := s.Deflate(FinishFlush)
		assert.NilError(t, err)
		assert.Check(t, is.Equal(st, StatusStreamEnd), "level %d", level)
		assert.Check(t, len(buf)-len(s.Out) <= int(Bound(0)))
	}
}

func TestBoundFormulas(t *testing.T) {
	const n = 1 << 20
	assert.Check(t, is.Equal(Bound(n), uint64(n+n/8+n/64+5+10)))
	assert.Check(t, is.Equal(Bound(0), uint64(15)))

	s, err := NewStream(WithFormat(Zlib))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(s.Bound(n), uint64(n+n>>12+n>>14+13)))

	// any other window or index size falls back to the conservative bound
	s, err = NewStream(WithFormat(Zlib), WithMemLevel(9))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(s.Bound(n), uint64(n+n/8+n/64+5+6)))
	s, err = NewStream(WithFormat(Zlib), WithStrategy(Quick))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(s.Bound(n), uint64(n+n/8+n/64+5+6)))

	s, err = NewStream(WithFormat(Raw))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(s.Bound(n), uint64(n+n>>12+n>>14+7)))
	s, err = NewStream(WithHeader(&Header{Name: "abc", Extra: []byte{1}, HeaderCRC: true}))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(s.Bound(n), uint64(n+n>>12+n>>14+7+18+3+4+2)))
}
