// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/intel/fastzlib/internal/huffman"
)

const (
	numRepeat3_6     = 16
	zeroRepeat3_10   = 17
	zeroRepeat11_138 = 18
)

// dynamicHeader run-length encodes the code lengths of a dynamic block
// and writes them with the bit length tree.
type dynamicHeader struct {
	litNum      int
	distanceNum int
	codeSize    int     // HCLEN + 4
	data        []uint8 // code length symbols, repeat symbols followed by their extra value
	histogram   [blCodes]uint16
	lens        [blCodes]uint8
	rcodes      [blCodes]uint16
}

func (c *dynamicHeader) init() {
	c.data = make([]uint8, 0, 2*(lCodes+dCodes))
}

// build prepares the header for the given trees and returns its size in
// bits, the 3 block type bits excluded.
func (c *dynamicHeader) build(b *huffman.Builder, litLens, distLens []uint8) int {
	c.litNum = lCodes
	for c.litNum > literals+1 && litLens[c.litNum-1] == 0 {
		c.litNum--
	}
	c.distanceNum = dCodes
	for c.distanceNum > 1 && distLens[c.distanceNum-1] == 0 {
		c.distanceNum--
	}

	c.data = c.data[:0]
	c.histogram = [blCodes]uint16{}
	c.alphabet(litLens[:c.litNum])
	c.alphabet(distLens[:c.distanceNum])

	b.Lengths(c.histogram[:], maxBLBits, c.lens[:])
	c.codeSize = blCodes
	for c.codeSize > 4 && c.lens[blOrder[c.codeSize-1]] == 0 {
		c.codeSize--
	}

	size := 5 + 5 + 4 + 3*c.codeSize
	for sym, n := range c.histogram {
		size += int(n) * (int(c.lens[sym]) + int(extraBLbits[sym]))
	}
	return size
}

func (c *dynamicHeader) writeTo(b *bitBuf) {
	huffman.Codes(c.lens[:], c.rcodes[:])
	// HLIT
	b.writeBits(uint32(c.litNum-257), 5)
	// HDIST
	b.writeBits(uint32(c.distanceNum-1), 5)
	// HCLEN
	b.writeBits(uint32(c.codeSize-4), 4)
	//  (HCLEN + 4) x 3 bits: code lengths for the code length
	// alphabet given just above, in the order: 16, 17, 18,
	// 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15
	for i := 0; i < c.codeSize; i++ {
		b.writeBits(uint32(c.lens[blOrder[i]]), 3)
	}

	for i := 0; i < len(c.data); i++ {
		value := c.data[i]
		b.writeBits(uint32(c.rcodes[value]), uint(c.lens[value]))
		switch value {
		case numRepeat3_6, zeroRepeat3_10, zeroRepeat11_138:
			i++
			b.writeBits(uint32(c.data[i]), uint(extraBLbits[value]))
		}
	}
}

// alphabet appends the run-length encoding of source to data. Runs do
// not continue from one tree into the other.
func (c *dynamicHeader) alphabet(source []uint8) {
	for start := 0; start < len(source); {
		end := start + 1
		for end < len(source) && source[end] == source[start] {
			end++
		}
		if source[start] == 0 {
			c.zeroRepeat(end - start)
		} else {
			c.numRepeat(source[start], end-start)
		}
		start = end
	}
}

func (c *dynamicHeader) numRepeat(num byte, repeated int) {
	c.data = append(c.data, num)
	c.histogram[num]++
	repeated--
	for repeated >= 3 {
		n := repeated
		if n > 6 {
			n = 6
		}
		c.data = append(c.data, numRepeat3_6, uint8(n-3))
		c.histogram[numRepeat3_6]++
		repeated -= n
	}
	for ; repeated > 0; repeated-- {
		c.data = append(c.data, num)
		c.histogram[num]++
	}
}

func (c *dynamicHeader) zeroRepeat(repeated int) {
	for repeated >= 11 {
		n := repeated
		if n > 138 {
			n = 138
		}
		c.data = append(c.data, zeroRepeat11_138, uint8(n-11))
		c.histogram[zeroRepeat11_138]++
		repeated -= n
	}
	if repeated >= 3 {
		c.data = append(c.data, zeroRepeat3_10, uint8(repeated-3))
		c.histogram[zeroRepeat3_10]++
		return
	}
	for ; repeated > 0; repeated-- {
		c.data = append(c.data, 0)
		c.histogram[0]++
	}
}
