// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// deflateHuff emits every byte as a literal. The position index is not
// maintained.
func (s *Stream) deflateHuff(flush Flush) blockState {
	for {
		if s.lookahead == 0 {
			s.fillWindow()
			if s.lookahead == 0 {
				if flush == NoFlush {
					return needMore
				}
				break
			}
		}

		s.matchLength = 0
		bflush := s.enc.tallyLit(s.window[s.strstart])
		s.lookahead--
		s.strstart++
		if bflush && s.flushBlock(false) {
			return needMore
		}
	}
	return s.finishBlock(flush, 0)
}
