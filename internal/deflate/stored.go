// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// deflateStored copies input into stored blocks without looking for
// matches. It is used for level 0.
func (s *Stream) deflateStored(flush Flush) blockState {
	// Stored blocks are limited to 0xffff bytes and each one has a 5 byte
	// header in the pending buffer.
	maxBlockSize := min(maxStored, s.pendingBufSize-5)

	for {
		if s.lookahead <= 1 {
			invariant(s.strstart < s.wSize+s.maxDist() || s.blockStart >= s.wSize, "slide too late")
			s.fillWindow()
			if s.lookahead == 0 && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}
		invariant(s.blockStart >= 0, "block gone")

		s.strstart += s.lookahead
		s.lookahead = 0

		maxStart := s.blockStart + maxBlockSize
		if s.strstart >= maxStart {
			s.lookahead = s.strstart - maxStart
			s.strstart = maxStart
			if s.flushBlock(false) {
				return needMore
			}
		}
		// Flush before the window slides the block's bytes away.
		if s.strstart-s.blockStart >= s.maxDist() {
			if s.flushBlock(false) {
				return needMore
			}
		}
	}
	s.insert = 0
	if flush == FinishFlush {
		if s.flushBlock(true) {
			return finishStarted
		}
		return finishDone
	}
	if s.strstart > s.blockStart {
		if s.flushBlock(false) {
			return needMore
		}
	}
	return blockDone
}
