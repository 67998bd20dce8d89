// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/intel/fastzlib/internal/cpu"
)

func TestSelectImpl(t *testing.T) {
	assert.Check(t, is.Equal(selectImpl(cpu.LevelGeneric), genericImpl))
	assert.Check(t, is.Equal(selectImpl(cpu.LevelWord), wordImpl))
	assert.Check(t, is.Equal(selectImpl(cpu.LevelCRC), crcImpl))
	assert.Check(t, is.Equal(Implementation(), selectImpl(cpu.ArchLevel).name))
}

func TestMatchLenKernels(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		n := r.Intn(maxMatch + 1)
		a := make([]byte, n)
		r.Read(a)
		b := append([]byte(nil), a...)
		b = append(b, 'x')
		if n > 0 && r.Intn(4) != 0 {
			b[r.Intn(n)] ^= byte(1 + r.Intn(255))
		}
		want := matchLenGeneric(a, b)
		assert.Assert(t, is.Equal(matchLenWord(a, b), want), "case %d", i)
	}
	assert.Check(t, is.Equal(matchLenWord([]byte("abcdefghijk"), []byte("abcdefghijZ")), 10))
	assert.Check(t, is.Equal(matchLenWord(nil, nil), 0))
}

func TestSlideKernels(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for _, n := range []int{0, 3, 8, 256, 1021} {
		tab := make([]uint16, n)
		for i := range tab {
			tab[i] = uint16(r.Intn(1 << 16))
		}
		a := append([]uint16(nil), tab...)
		b := append([]uint16(nil), tab...)
		slideGeneric(a, 1<<15)
		slideUnrolled(b, 1<<15)
		assert.Check(t, is.DeepEqual(a, b))
	}
}

func TestHashRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, bits := range []uint{8, 12, 15, 16} {
		for i := 0; i < 1000; i++ {
			v := r.Uint32()
			assert.Assert(t, hashMul(v, bits) < 1<<bits)
			assert.Assert(t, hashCRC(v, bits) < 1<<bits)
		}
	}
}

func compressWith(t *testing.T, kernels *impl, data []byte, opts ...Option) []byte {
	t.Helper()
	s, err := NewStream(opts...)
	assert.NilError(t, err)
	s.impl = kernels
	return deflateAll(t, s, data, 10000, 10000)
}

func TestKernelsAgree(t *testing.T) {
	data := append(opticks(t)[:100000], randomBytes(20000, 8)...)
	for _, strategy := range allStrategies {
		for _, level := range []int{1, 6, 9} {
			opts := []Option{WithLevel(level), WithStrategy(strategy), WithWindowBits(12)}
			generic := compressWith(t, genericImpl, data, opts...)
			word := compressWith(t, wordImpl, data, opts...)
			// same hash, so the same tokens
			assert.Assert(t, is.DeepEqual(generic, word, cmp.Comparer(bytes.Equal)), "%s level %d", strategy, level)

			crc := compressWith(t, crcImpl, data, opts...)
			assert.Assert(t, bytes.Equal(inflate(t, Raw, crc, nil), data), "%s level %d", strategy, level)
		}
	}
}
