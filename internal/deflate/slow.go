// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// deflateSlow uses lazy evaluation: a match is only taken if no longer
// match starts at the next position.
func (s *Stream) deflateSlow(flush Flush) blockState {
	for {
		if s.lookahead < minLookahead {
			s.fillWindow()
			if s.lookahead < minLookahead && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		hashHead := nilPos
		if s.lookahead >= actualMinMatch {
			hashHead = s.insertString(s.strstart)
		}

		s.prevLength, s.prevMatch = s.matchLength, s.matchStart
		s.matchLength = actualMinMatch - 1

		if hashHead != nilPos && s.prevLength < s.maxLazy && s.strstart-hashHead <= s.maxDist() {
			s.matchLength, s.matchStart = s.longestMatch(hashHead)
			if s.matchLength <= 5 && s.strategy == Filtered {
				s.matchLength = actualMinMatch - 1
			}
		}

		switch {
		case s.prevLength >= actualMinMatch && s.matchLength <= s.prevLength:
			// The previous match is at least as long: emit it.
			maxInsert := s.strstart + s.lookahead - actualMinMatch
			bflush := s.enc.tallyDist(s.strstart-1-s.prevMatch, s.prevLength-minMatch)

			// strstart-1 and strstart are already inserted; the strings
			// that lack actualMinMatch bytes of lookahead are not.
			s.lookahead -= s.prevLength - 1
			movFwd := s.prevLength - 2
			insertCnt := min(movFwd, max(0, maxInsert-s.strstart))
			s.bulkInsert(s.strstart+1, insertCnt)
			s.prevLength = 0
			s.matchAvailable = false
			s.matchLength = actualMinMatch - 1
			s.strstart += movFwd + 1

			if bflush && s.flushBlock(false) {
				return needMore
			}
		case s.matchAvailable:
			// No better match before: the previous position becomes a
			// literal.
			if s.enc.tallyLit(s.window[s.strstart-1]) {
				s.flushBlockOnly(false)
			}
			s.strstart++
			s.lookahead--
			if len(s.Out) == 0 {
				return needMore
			}
		default:
			// Wait for the next step to decide.
			s.matchAvailable = true
			s.strstart++
			s.lookahead--
		}
	}
	invariant(flush != NoFlush, "no flush")
	if s.matchAvailable {
		s.enc.tallyLit(s.window[s.strstart-1])
		s.matchAvailable = false
	}
	return s.finishBlock(flush, min(s.strstart, actualMinMatch-1))
}
