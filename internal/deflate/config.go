// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// Compression levels.
const (
	NoCompression      = 0
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1

	defaultLevel = 6
)

// Strategy tunes the tokenizer for a kind of input.
type Strategy int

// Strategies, numbered as zlib numbers them. Quick is an addition: a
// single probe match finder that writes static Huffman codes directly.
const (
	DefaultStrategy Strategy = iota
	Filtered
	HuffmanOnly
	RLE
	Fixed
	Quick
)

func (s Strategy) String() string {
	switch s {
	case DefaultStrategy:
		return "default"
	case Filtered:
		return "filtered"
	case HuffmanOnly:
		return "huffman-only"
	case RLE:
		return "rle"
	case Fixed:
		return "fixed"
	case Quick:
		return "quick"
	}
	return "invalid"
}

// ParseStrategy returns the strategy named by s.
func ParseStrategy(s string) (Strategy, bool) {
	for st := DefaultStrategy; st <= Quick; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// Flush controls block boundaries on a call to Deflate.
type Flush int

// Flush modes, with zlib's numbering.
const (
	NoFlush Flush = iota
	PartialFlush
	SyncFlush
	FullFlush
	FinishFlush
	BlockFlush
)

// rank orders flush modes by strength; BlockFlush sits between
// NoFlush and PartialFlush.
func rank(f Flush) int {
	r := int(f) * 2
	if f > FinishFlush {
		r -= 9
	}
	return r
}

// Format selects the container around the DEFLATE data.
type Format int

const (
	// Raw writes bare DEFLATE blocks (RFC 1951).
	Raw Format = iota
	// Zlib writes the zlib header and adler32 trailer (RFC 1950).
	Zlib
	// Gzip writes the gzip header and crc32 trailer (RFC 1952).
	Gzip
)

func (f Format) String() string {
	switch f {
	case Raw:
		return "raw"
	case Zlib:
		return "zlib"
	case Gzip:
		return "gzip"
	}
	return "invalid"
}

const (
	minMatch       = 3 // shortest match DEFLATE can encode
	actualMinMatch = 4 // shortest match the hash can find
	maxMatch       = 258
	minLookahead   = maxMatch + minMatch + 1

	minWindowBits = 9
	maxWindowBits = 15
	minMemLevel   = 1
	maxMemLevel   = 9
	defMemLevel   = 8

	// bytes zeroed past the input so comparisons never see stale data
	winInit = maxMatch
)

type compressFunc int

const (
	funcStored compressFunc = iota
	funcFast
	funcSlow
)

// config is one row of the level table. For funcFast, lazy is the
// longest match that still has all its strings inserted.
type config struct {
	good  int // reduce lazy search above this match length
	lazy  int // do not perform lazy search above this match length
	nice  int // quit search above this match length
	chain int
	fn    compressFunc
}

var configTable = [10]config{
	/* 0 */ {0, 0, 0, 0, funcStored},
	/* 1 */ {4, 4, 8, 4, funcFast},
	/* 2 */ {4, 5, 16, 8, funcFast},
	/* 3 */ {4, 6, 32, 32, funcFast},
	/* 4 */ {4, 4, 16, 16, funcSlow},
	/* 5 */ {8, 16, 32, 32, funcSlow},
	/* 6 */ {8, 16, 128, 128, funcSlow},
	/* 7 */ {8, 32, 128, 256, funcSlow},
	/* 8 */ {32, 128, 258, 1024, funcSlow},
	/* 9 */ {32, 258, 258, 4096, funcSlow},
}

// debugDeflate enables internal invariant checks.
const debugDeflate = false

func invariant(cond bool, msg string) {
	if debugDeflate && !cond {
		panic("deflate: " + msg)
	}
}
