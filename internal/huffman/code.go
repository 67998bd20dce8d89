// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "math/bits"

// MaxBits is the longest code length DEFLATE allows.
const MaxBits = 15

// Codes assigns canonical codes to lens and stores them bit-reversed in
// codes, ready to be written LSB first.
func Codes(lens []uint8, codes []uint16) {
	var blCount, nextCodes [MaxBits + 1]uint16
	for _, v := range lens {
		blCount[v]++
	}
	blCount[0] = 0

	code := uint16(0)
	for n := 1; n <= MaxBits; n++ {
		code = (code + blCount[n-1]) << 1
		nextCodes[n] = code
	}
	for i, l := range lens {
		if l == 0 {
			codes[i] = 0
			continue
		}
		codes[i] = bits.Reverse16(nextCodes[l]) >> (16 - l)
		nextCodes[l]++
	}
}
