// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import "fmt"

// token is a literal byte or a match.
// |dist (16 bit)|litLen (8 bit)|
// dist == 0 marks a literal. For a match litLen is length - minMatch.
type token uint32

func literalToken(c byte) token {
	return token(c)
}

func matchToken(dist, lc int) token {
	return token(uint32(dist)<<8 | uint32(lc))
}

func (t token) dist() int { return int(t >> 8) }

func (t token) litLen() int { return int(t & 0xff) }

func (t token) String() string {
	if t.dist() == 0 {
		return fmt.Sprintf("%q", rune(t.litLen()))
	}
	return fmt.Sprintf("<LEN/DIST %d / %d >", t.litLen()+minMatch, t.dist())
}
