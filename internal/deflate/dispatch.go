// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"github.com/intel/fastzlib/internal/cpu"
)

// impl is a set of interchangeable kernels. All variants of a kernel
// return the same results; hash variants differ, but a stream keeps the
// one it was created with.
type impl struct {
	name string
	// hash maps four bytes to hashBits bits.
	hash func(v uint32, hashBits uint) uint32
	// matchLen returns the length of the common prefix of a and b;
	// len(b) >= len(a).
	matchLen func(a, b []byte) int
	// slide rebases a table of window positions by wSize, clearing the
	// entries that fall out of the window.
	slide func(tab []uint16, wSize uint16)
}

var (
	genericImpl = &impl{
		name:     "generic",
		hash:     hashMul,
		matchLen: matchLenGeneric,
		slide:    slideGeneric,
	}
	wordImpl = &impl{
		name:     "word",
		hash:     hashMul,
		matchLen: matchLenWord,
		slide:    slideUnrolled,
	}
	crcImpl = &impl{
		name:     "crc",
		hash:     hashCRC,
		matchLen: matchLenWord,
		slide:    slideUnrolled,
	}
)

// selectImpl returns the kernels for an architecture level from the
// internal/cpu package.
func selectImpl(level int) *impl {
	switch {
	case level >= cpu.LevelCRC:
		return crcImpl
	case level >= cpu.LevelWord:
		return wordImpl
	}
	return genericImpl
}

// Implementation returns the name of the kernels new streams use on this
// machine.
func Implementation() string {
	return selectImpl(cpu.ArchLevel).name
}

func load32(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i : i+4])
}

func hashMul(v uint32, hashBits uint) uint32 {
	const prime = 0x9E3779B1
	return (v * prime) >> (32 - hashBits)
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func hashCRC(v uint32, hashBits uint) uint32 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return crc32.Update(0, castagnoli, b[:]) & (1<<hashBits - 1)
}

func matchLenGeneric(a, b []byte) int {
	b = b[:len(a)]
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}

func matchLenWord(a, b []byte) int {
	b = b[:len(a)]
	n := 0
	for len(a)-n >= 8 {
		x := binary.LittleEndian.Uint64(a[n:]) ^ binary.LittleEndian.Uint64(b[n:])
		if x != 0 {
			return n + bits.TrailingZeros64(x)>>3
		}
		n += 8
	}
	for ; n < len(a); n++ {
		if a[n] != b[n] {
			break
		}
	}
	return n
}

func slideGeneric(tab []uint16, wSize uint16) {
	for i, m := range tab {
		if m >= wSize {
			tab[i] = m - wSize
		} else {
			tab[i] = 0
		}
	}
}

func slideUnrolled(tab []uint16, wSize uint16) {
	sub := func(m uint16) uint16 {
		if m < wSize {
			return 0
		}
		return m - wSize
	}
	for len(tab) >= 8 {
		t := tab[:8:8]
		t[0], t[1], t[2], t[3] = sub(t[0]), sub(t[1]), sub(t[2]), sub(t[3])
		t[4], t[5], t[6], t[7] = sub(t[4]), sub(t[5]), sub(t[6]), sub(t[7])
		tab = tab[8:]
	}
	slideGeneric(tab, wSize)
}
