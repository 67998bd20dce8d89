// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// longestMatch walks the hash chain starting at curMatch looking for the
// longest string equal to the one at strstart. It only reports matches
// longer than prevLength; otherwise it returns prevLength and the current
// matchStart. The returned length never exceeds lookahead. It does not
// modify the stream.
func (s *Stream) longestMatch(curMatch int) (bestLen, matchStart int) {
	chain := s.maxChain
	scan := s.strstart
	bestLen = s.prevLength
	matchStart = s.matchStart
	nice := s.niceMatch
	limit := nilPos
	if s.strstart > s.maxDist() {
		limit = s.strstart - s.maxDist()
	}
	win := s.window

	maxLen := min(maxMatch, s.lookahead)
	if bestLen >= maxLen {
		return min(bestLen, s.lookahead), matchStart
	}
	if bestLen < actualMinMatch-1 {
		bestLen = actualMinMatch - 1
	}
	if s.prevLength >= s.goodMatch {
		chain >>= 2
	}
	// Do not look for matches beyond the end of the input, so that the
	// output does not depend on how the input was split.
	if nice > s.lookahead {
		nice = s.lookahead
	}
	invariant(s.strstart <= s.windowSize-minLookahead, "need lookahead")

	scanStart := load32(win, scan)
	cur := win[scan : scan+maxLen]
	for {
		invariant(curMatch < s.strstart, "no future")
		// Skip unless the bytes that would extend the best match and the
		// first four bytes agree.
		if win[curMatch+bestLen] == win[scan+bestLen] &&
			win[curMatch+bestLen-1] == win[scan+bestLen-1] &&
			load32(win, curMatch) == scanStart {
			n := s.impl.matchLen(cur, win[curMatch:curMatch+maxLen])
			if n > bestLen {
				matchStart = curMatch
				bestLen = n
				if n >= nice || n >= maxLen {
					break
				}
			}
		}
		curMatch = int(s.prev[curMatch&s.wMask])
		chain--
		if curMatch <= limit || chain <= 0 {
			break
		}
	}
	return min(bestLen, s.lookahead), matchStart
}
