// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func kraft(lens []uint8, maxBits int) int {
	total := 0
	for _, l := range lens {
		if l != 0 {
			total += 1 << (maxBits - int(l))
		}
	}
	return total
}

func TestLengthsComplete(t *testing.T) {
	hist := make([]uint16, 286)
	for i, c := range []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)) {
		hist[c] += uint16(i%3 + 1)
	}
	hist[256] = 1
	lens := make([]uint8, len(hist))
	n := NewBuilder().Lengths(hist, MaxBits, lens)
	assert.Equal(t, kraft(lens, MaxBits), 1<<MaxBits)
	used := 0
	for i, l := range lens {
		assert.Assert(t, l <= MaxBits)
		if hist[i] != 0 {
			assert.Assert(t, l != 0, "symbol %d has no code", i)
			used++
		}
	}
	assert.Equal(t, n, used)
}

func TestLengthsLimited(t *testing.T) {
	// Fibonacci weights produce a maximally skewed tree.
	hist := make([]uint16, 30)
	a, b := uint16(1), uint16(1)
	for i := range hist[:22] {
		hist[i] = a
		a, b = b, a+b
	}
	for _, maxBits := range []int{7, 9, 15} {
		lens := make([]uint8, len(hist))
		NewBuilder().Lengths(hist, maxBits, lens)
		assert.Equal(t, kraft(lens, maxBits), 1<<maxBits, "maxBits %d", maxBits)
		for i := range hist[:22] {
			assert.Assert(t, lens[i] >= 1 && int(lens[i]) <= maxBits, "maxBits %d sym %d len %d", maxBits, i, lens[i])
		}
		// more frequent symbols never get longer codes
		for i := 2; i < 22; i++ {
			assert.Assert(t, lens[i] <= lens[i-1])
		}
	}
}

func TestLengthsForcesTwoCodes(t *testing.T) {
	for _, hist := range [][]uint16{
		make([]uint16, 19),
		{0, 0, 0, 7, 0},
		{5, 0, 0},
	} {
		lens := make([]uint8, len(hist))
		n := NewBuilder().Lengths(hist, 7, lens)
		assert.Equal(t, n, 2)
		assert.Equal(t, kraft(lens, 7), 1<<7)
	}
}

func TestCodesPrefixFree(t *testing.T) {
	lens := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	codes := make([]uint16, len(lens))
	Codes(lens, codes)
	for i := range lens {
		for j := range lens {
			if i == j || lens[i] > lens[j] {
				continue
			}
			// codes are bit reversed, so a prefix is a match of the low bits
			mask := uint16(1)<<lens[i] - 1
			assert.Assert(t, codes[j]&mask != codes[i], "code %d is a prefix of %d", i, j)
		}
	}
	// RFC 1951 section 3.2.2 example: F=00 A=010 ... H=1111
	assert.Equal(t, codes[5], uint16(0b00))
	assert.Equal(t, codes[0], uint16(0b010))
	assert.Equal(t, codes[7], uint16(0b1111))
}
