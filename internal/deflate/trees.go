// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/intel/fastzlib/internal/huffman"
)

// encoder is the entropy coding back end. It collects tokens and their
// frequencies, then writes each block as stored, static or dynamic,
// whichever is shortest. Pending output bytes live in bb, separately
// from the token list.
type encoder struct {
	bb         bitBuf
	syms       []token
	litBufSize int
	tab        *codeTables

	litFreq  [lCodes]uint16
	distFreq [dCodes]uint16

	litLens   [lCodes]uint8
	litCodes  [lCodes]uint16
	distLens  [dCodes]uint8
	distCodes [dCodes]uint16

	header  dynamicHeader
	builder *huffman.Builder
}

func (e *encoder) init(litBufSize int) {
	e.litBufSize = litBufSize
	e.tab = staticTables()
	e.builder = huffman.NewBuilder()
	e.syms = make([]token, 0, litBufSize)
	e.bb.output = make([]byte, 0, 4*litBufSize)
	e.header.init()
	e.initBlock()
}

func (e *encoder) reset() {
	e.bb.reset()
	e.initBlock()
}

func (e *encoder) initBlock() {
	e.litFreq = [lCodes]uint16{}
	e.distFreq = [dCodes]uint16{}
	e.litFreq[endBlock] = 1
	e.syms = e.syms[:0]
}

// clone returns a deep copy sharing no buffers with e.
func (e *encoder) clone() encoder {
	c := *e
	c.syms = append(make([]token, 0, cap(e.syms)), e.syms...)
	c.bb.output = append(make([]byte, 0, cap(e.bb.output)), e.bb.output...)
	c.header.init()
	c.builder = huffman.NewBuilder()
	return c
}

// tallyLit records a literal and reports whether the block is full.
func (e *encoder) tallyLit(c byte) bool {
	e.syms = append(e.syms, literalToken(c))
	e.litFreq[c]++
	return len(e.syms) == e.litBufSize-1
}

// tallyDist records a match of length lc+minMatch at distance dist and
// reports whether the block is full.
func (e *encoder) tallyDist(dist, lc int) bool {
	invariant(dist >= 1 && dist <= 1<<maxWindowBits, "match distance out of range")
	invariant(lc >= 0 && lc <= maxMatch-minMatch, "match length out of range")
	e.syms = append(e.syms, matchToken(dist, lc))
	e.litFreq[literals+1+int(e.tab.lengthCode[lc])]++
	code, _ := distCode(dist)
	e.distFreq[code]++
	return len(e.syms) == e.litBufSize-1
}

// blockBits returns the size in bits of the current block's symbols with
// the dynamic trees and with the static trees, excluding headers.
func (e *encoder) blockBits() (optLen, staticLen int) {
	for i, f := range e.litFreq {
		if f == 0 {
			continue
		}
		n := int(f)
		optLen += n * int(e.litLens[i])
		staticLen += n * int(e.tab.litLens[i])
		if i > literals {
			x := n * int(extraLbits[i-literals-1])
			optLen += x
			staticLen += x
		}
	}
	for i, f := range e.distFreq {
		if f == 0 {
			continue
		}
		n := int(f)
		optLen += n * (int(e.distLens[i]) + int(extraDbits[i]))
		staticLen += n * (int(e.tab.distLens[i]) + int(extraDbits[i]))
	}
	return optLen, staticLen
}

// flushBlock writes the tallied tokens as one block. buf holds the raw
// bytes of the block when they are still in the window, nil otherwise.
func (e *encoder) flushBlock(buf []byte, storedLen int, last bool, level int, strategy Strategy) {
	var optLenb, staticLenb int
	if level > 0 {
		e.builder.Lengths(e.litFreq[:], huffman.MaxBits, e.litLens[:])
		e.builder.Lengths(e.distFreq[:], huffman.MaxBits, e.distLens[:])
		optLen, staticLen := e.blockBits()
		optLen += e.header.build(e.builder, e.litLens[:], e.distLens[:])

		optLenb = (optLen + 3 + 7) >> 3
		staticLenb = (staticLen + 3 + 7) >> 3
		if staticLenb <= optLenb || strategy == Fixed {
			optLenb = staticLenb
		}
	} else {
		optLenb = storedLen + 5
		staticLenb = optLenb
	}

	lastBit := uint32(0)
	if last {
		lastBit = 1
	}
	switch {
	case buf != nil && storedLen+4 <= optLenb && storedLen <= maxStored:
		e.storedBlock(buf, last)
	case staticLenb == optLenb:
		e.bb.writeBits(staticTrees<<1|lastBit, 3)
		e.compressBlock(e.tab.litLens[:], e.tab.litCodes[:], e.tab.distLens[:], e.tab.distCodes[:])
	default:
		e.bb.writeBits(dynamicTrees<<1|lastBit, 3)
		huffman.Codes(e.litLens[:], e.litCodes[:])
		huffman.Codes(e.distLens[:], e.distCodes[:])
		e.header.writeTo(&e.bb)
		e.compressBlock(e.litLens[:], e.litCodes[:], e.distLens[:], e.distCodes[:])
	}
	e.initBlock()
	if last {
		e.bb.flushLastByte()
	}
}

// storedBlock writes buf as a stored block. A nil buf makes the empty
// block used as a sync marker.
func (e *encoder) storedBlock(buf []byte, last bool) {
	lastBit := uint32(0)
	if last {
		lastBit = 1
	}
	e.bb.writeBits(storedBlock<<1|lastBit, 3)
	e.bb.flushLastByte()
	e.bb.putShortLSB(uint16(len(buf)))
	e.bb.putShortLSB(^uint16(len(buf)))
	e.bb.output = append(e.bb.output, buf...)
}

// align writes an empty static block, giving the inflater enough bits
// to finish the previous block.
func (e *encoder) align() {
	e.bb.writeBits(staticTrees<<1, 3)
	e.bb.writeBits(uint32(e.tab.litCodes[endBlock]), uint(e.tab.litLens[endBlock]))
	e.bb.sync()
}

func (e *encoder) compressBlock(litLens []uint8, litCodes []uint16, distLens []uint8, distCodes []uint16) {
	for _, t := range e.syms {
		if t.dist() == 0 {
			lit := t.litLen()
			e.bb.writeBits(uint32(litCodes[lit]), uint(litLens[lit]))
			continue
		}
		e.writeMatch(t.litLen(), t.dist(), litLens, litCodes, distLens, distCodes)
	}
	e.bb.writeBits(uint32(litCodes[endBlock]), uint(litLens[endBlock]))
}

func (e *encoder) writeMatch(lc, dist int, litLens []uint8, litCodes []uint16, distLens []uint8, distCodes []uint16) {
	code := int(e.tab.lengthCode[lc])
	sym := literals + 1 + code
	e.bb.writeBits(uint32(litCodes[sym]), uint(litLens[sym]))
	if extra := extraLbits[code]; extra != 0 {
		e.bb.writeBits(uint32(lc-int(e.tab.baseLength[code])), uint(extra))
	}
	dcode, dextra := distCode(dist)
	e.bb.writeBits(uint32(distCodes[dcode]), uint(distLens[dcode]))
	if extra := extraDbits[dcode]; extra != 0 {
		e.bb.writeBits(dextra, uint(extra))
	}
}

// staticHeader opens a static block for the quick strategy.
func (e *encoder) staticHeader(last bool) {
	lastBit := uint32(0)
	if last {
		lastBit = 1
	}
	e.bb.writeBits(staticTrees<<1|lastBit, 3)
}

// staticLit writes a literal with the static codes.
func (e *encoder) staticLit(c byte) {
	e.bb.writeBits(uint32(e.tab.litCodes[c]), uint(e.tab.litLens[c]))
}

// staticMatch writes a match with the static codes.
func (e *encoder) staticMatch(dist, lc int) {
	invariant(dist >= 1 && dist <= 1<<maxWindowBits, "match distance out of range")
	e.writeMatch(lc, dist, e.tab.litLens[:], e.tab.litCodes[:], e.tab.distLens[:], e.tab.distCodes[:])
}

// staticEnd closes a static block, padding to a byte if last.
func (e *encoder) staticEnd(last bool) {
	e.bb.writeBits(uint32(e.tab.litCodes[endBlock]), uint(e.tab.litLens[endBlock]))
	if last {
		e.bb.flushLastByte()
	}
}
