// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds the length-limited canonical prefix codes used by
// DEFLATE blocks.
package huffman

import "sort"

type litCount struct {
	lit   uint16
	count uint32
}

type decLitCounts []litCount

// Len is the number of elements in the collection.
func (c decLitCounts) Len() int {
	return len(c)
}

// Less orders by decreasing count, then by increasing symbol.
func (c decLitCounts) Less(i int, j int) bool {
	if c[i].count != c[j].count {
		return c[i].count > c[j].count
	}
	return c[i].lit < c[j].lit
}

// Swap swaps the elements with indexes i and j.
func (c decLitCounts) Swap(i int, j int) {
	c[i], c[j] = c[j], c[i]
}

// Builder computes length-limited code lengths from a histogram.
// A Builder keeps its scratch buffers between calls; it must be reused
// to avoid allocation and must not be shared between goroutines.
type Builder struct {
	counts    decLitCounts
	w         []uint32
	lenCounts []int
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Lengths writes into lens the code length of every symbol of histogram,
// no code being longer than maxBits. Symbols with a zero count get length
// zero, except that at least two symbols always receive a code: inflaters
// reject incomplete code-length codes, so unused symbols are borrowed
// with a weight of one when fewer than two are present.
// It returns the number of symbols with a code.
func (b *Builder) Lengths(histogram []uint16, maxBits int, lens []uint8) int {
	b.counts = b.counts[:0]
	for i, v := range histogram {
		if v != 0 {
			b.counts = append(b.counts, litCount{lit: uint16(i), count: uint32(v)})
		}
	}
	for i := 0; len(b.counts) < 2 && i < len(histogram); i++ {
		if histogram[i] == 0 {
			b.counts = append(b.counts, litCount{lit: uint16(i), count: 1})
		}
	}
	for i := range lens {
		lens[i] = 0
	}
	sort.Sort(b.counts)

	if cap(b.w) < len(b.counts) {
		b.w = make([]uint32, len(b.counts))
	}
	b.w = b.w[:len(b.counts)]
	for i, v := range b.counts {
		b.w[i] = v.count
	}

	maxLen := int(moffatLens(b.w))
	if maxLen <= maxBits {
		for i, v := range b.w {
			lens[b.counts[i].lit] = uint8(v)
		}
		return len(b.counts)
	}

	if cap(b.lenCounts) < maxLen+1 {
		b.lenCounts = make([]int, maxLen+1)
	}
	b.lenCounts = b.lenCounts[:maxLen+1]
	for i := range b.lenCounts {
		b.lenCounts[i] = 0
	}
	for _, v := range b.w {
		b.lenCounts[v]++
	}
	enforceMaxLen(b.lenCounts, maxBits)

	// Lengths are handed out shortest first to the most frequent symbols.
	idx := 0
	for length := 1; length <= maxBits; length++ {
		for j := 0; j < b.lenCounts[length]; j++ {
			lens[b.counts[idx].lit] = uint8(length)
			idx++
		}
	}
	return len(b.counts)
}

func enforceMaxLen(lenCounts []int, maxLen int) {
	// move all oversize length to the maxLen
	for i := maxLen + 1; i < len(lenCounts); i++ {
		lenCounts[maxLen] += lenCounts[i]
		lenCounts[i] = 0
	}

	// Kraft-McMillan inequality
	// https://en.wikipedia.org/wiki/Kraft%E2%80%93McMillan_inequality
	// -> sum(lengthAnum * 2 ^ (maxLength - lengthA),... ) + maxLengthNum == 2 ^ maxLength
	total := 0
	for i := 1; i <= maxLen; i++ {
		total += lenCounts[i] << (maxLen - i)
	}
	for total != 1<<maxLen {
		// retire one longest leaf and split the deepest shorter one
		lenCounts[maxLen]--
		for i := maxLen - 1; i > 0; i-- {
			if lenCounts[i] != 0 {
				lenCounts[i]--
				lenCounts[i+1] += 2
				break
			}
		}
		total--
	}
}
