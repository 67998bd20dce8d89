// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"math/bits"
	"sync"

	"github.com/intel/fastzlib/internal/huffman"
)

const (
	lengthCodes = 29
	literals    = 256
	endBlock    = 256
	lCodes      = literals + 1 + lengthCodes
	dCodes      = 30
	blCodes     = 19
	maxBLBits   = 7

	storedBlock  = 0
	staticTrees  = 1
	dynamicTrees = 2

	maxStored = 0xffff
)

var extraLbits = [lengthCodes]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var extraDbits = [dCodes]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

var extraBLbits = [blCodes]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3, 7,
}

// order of the bit length code lengths
var blOrder = [blCodes]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// codeTables are the fixed tables of the entropy coder: the static
// literal/length and distance codes of RFC 1951 section 3.2.6 and the
// length to length-code mapping.
type codeTables struct {
	litLens    [lCodes + 2]uint8
	litCodes   [lCodes + 2]uint16
	distLens   [dCodes]uint8
	distCodes  [dCodes]uint16
	lengthCode [maxMatch - minMatch + 1]uint8
	baseLength [lengthCodes]uint8
}

var (
	tablesOnce sync.Once
	tables     *codeTables
)

// staticTables returns the fixed tables, building them on first use.
func staticTables() *codeTables {
	tablesOnce.Do(func() {
		t := &codeTables{}
		length := 0
		for code := 0; code < lengthCodes-1; code++ {
			t.baseLength[code] = uint8(length)
			for n := 0; n < 1<<extraLbits[code]; n++ {
				t.lengthCode[length] = uint8(code)
				length++
			}
		}
		// length 258 has its own code, overwriting the last entry of code 27
		t.lengthCode[length-1] = lengthCodes - 1

		for n := range t.litLens {
			switch {
			case n < 144:
				t.litLens[n] = 8
			case n < 256:
				t.litLens[n] = 9
			case n < 280:
				t.litLens[n] = 7
			default:
				t.litLens[n] = 8
			}
		}
		huffman.Codes(t.litLens[:], t.litCodes[:])
		for n := range t.distLens {
			t.distLens[n] = 5
			t.distCodes[n] = bits.Reverse16(uint16(n)) >> 11
		}
		tables = t
	})
	return tables
}

// distCode returns the distance code of a 1-based distance and the value
// of its extra bits.
func distCode(dist int) (code int, extra uint32) {
	if dist <= 2 {
		return dist - 1, 0
	}
	d := uint32(dist - 1)
	msb := 32 - bits.LeadingZeros32(d)
	numExtraBits := uint32(msb - 2)
	extra = d & (1<<numExtraBits - 1)
	d >>= numExtraBits
	return int(d + 2*numExtraBits), extra
}
