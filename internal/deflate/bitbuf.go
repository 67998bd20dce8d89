// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// bitBuf packs bits LSB first into a 64-bit accumulator and spills whole
// bytes onto output, the pending bytes not yet handed to the caller.
type bitBuf struct {
	output []byte
	bits   uint64
	bitLen uint
}

func (b *bitBuf) reset() {
	b.output = b.output[:0]
	b.bits = 0
	b.bitLen = 0
}

// writeBits appends the count low bits of code; count is at most 16.
func (b *bitBuf) writeBits(code uint32, count uint) {
	b.bits |= uint64(code) << b.bitLen
	b.bitLen += count
	if b.bitLen >= 48 {
		v := b.bits
		b.output = append(b.output, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40))
		b.bits >>= 48
		b.bitLen -= 48
	}
}

// sync moves every complete byte of the accumulator to output,
// keeping at most 7 bits back.
func (b *bitBuf) sync() {
	for b.bitLen >= 8 {
		b.output = append(b.output, byte(b.bits))
		b.bits >>= 8
		b.bitLen -= 8
	}
}

// flushLastByte pads the accumulator to a byte boundary and empties it.
func (b *bitBuf) flushLastByte() {
	b.sync()
	if b.bitLen > 0 {
		b.output = append(b.output, byte(b.bits))
	}
	b.bits = 0
	b.bitLen = 0
}

// putByte appends a byte; the accumulator must be empty.
func (b *bitBuf) putByte(c byte) {
	b.output = append(b.output, c)
}

func (b *bitBuf) putShortLSB(v uint16) {
	b.output = append(b.output, byte(v), byte(v>>8))
}

func (b *bitBuf) putShortMSB(v uint16) {
	b.output = append(b.output, byte(v>>8), byte(v))
}

func (b *bitBuf) putUint32LSB(v uint32) {
	b.output = append(b.output, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
