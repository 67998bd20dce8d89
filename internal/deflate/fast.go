// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// deflateFast takes the first match found at each position without lazy
// evaluation, and only inserts the strings inside a match when the match
// is short.
func (s *Stream) deflateFast(flush Flush) blockState {
	for {
		// Keep enough lookahead for a full match plus the strings
		// inserted after it, except at the end of the input.
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
		if hashHead != nilPos && s.strstart-hashHead <= s.maxDist() {
			s.matchLength, s.matchStart = s.longestMatch(hashHead)
		}

		var bflush bool
		if s.matchLength >= actualMinMatch {
			bflush = s.enc.tallyDist(s.strstart-s.matchStart, s.matchLength-minMatch)
			s.lookahead -= s.matchLength

			if s.matchLength <= s.maxLazy && s.lookahead >= actualMinMatch {
				// the string at strstart is already in the table
				s.matchLength--
				for ; s.matchLength != 0; s.matchLength-- {
					s.strstart++
					s.insertString(s.strstart)
				}
				s.strstart++
			} else {
				s.strstart += s.matchLength
				s.matchLength = 0
			}
		} else {
			bflush = s.enc.tallyLit(s.window[s.strstart])
			s.lookahead--
			s.strstart++
		}
		if bflush && s.flushBlock(false) {
			return needMore
		}
	}
	return s.finishBlock(flush, min(s.strstart, actualMinMatch-1))
}

// finishBlock ends a strategy once the lookahead is used up: it records
// how many trailing strings still need inserting and closes the block
// as the flush mode demands.
func (s *Stream) finishBlock(flush Flush, insert int) blockState {
	s.insert = insert
	if flush == FinishFlush {
		if s.flushBlock(true) {
			return finishStarted
		}
		return finishDone
	}
	if len(s.enc.syms) != 0 {
		if s.flushBlock(false) {
			return needMore
		}
	}
	return blockDone
}
