// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// deflateRLE only looks for runs of the previous byte, emitting matches
// at distance one. The position index is left untouched.
func (s *Stream) deflateRLE(flush Flush) blockState {
	for {
		// a whole run needs maxMatch bytes of lookahead
		if s.lookahead <= maxMatch {
			s.fillWindow()
			if s.lookahead <= maxMatch && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		s.matchLength = 0
		if s.lookahead >= minMatch && s.strstart > 0 {
			n := min(maxMatch, s.lookahead)
			s.matchLength = s.impl.matchLen(s.window[s.strstart:s.strstart+n], s.window[s.strstart-1:s.strstart-1+n])
		}

		var bflush bool
		if s.matchLength >= minMatch {
			bflush = s.enc.tallyDist(1, s.matchLength-minMatch)
			s.lookahead -= s.matchLength
			s.strstart += s.matchLength
			s.matchLength = 0
		} else {
			bflush = s.enc.tallyLit(s.window[s.strstart])
			s.lookahead--
			s.strstart++
		}
		if bflush && s.flushBlock(false) {
			return needMore
		}
	}
	return s.finishBlock(flush, 0)
}
