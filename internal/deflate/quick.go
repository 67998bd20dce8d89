// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// quickSlack is the room a single quick step may need in the pending
// buffer: a 31 bit match plus a block header and end code.
const quickSlack = 8

// deflateQuick probes a single hash bucket per position, without chains,
// and writes static Huffman codes straight away instead of tallying
// tokens. One static block stays open across calls until a flush.
func (s *Stream) deflateQuick(flush Flush) blockState {
	last := flush == FinishFlush
	for {
		if s.pendingLen()+quickSlack >= s.pendingBufSize {
			s.flushPending()
			if len(s.Out) == 0 {
				return needMore
			}
		}

		if s.lookahead < minLookahead {
			s.fillWindow()
			if s.lookahead < minLookahead && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		if !s.blockOpen {
			// final only once every remaining byte is in the window
			final := last && len(s.In) == 0
			s.enc.staticHeader(final)
			s.blockOpen = true
			s.blockLast = final
		}

		if s.lookahead >= actualMinMatch {
			h := s.hashAt(s.strstart)
			hashHead := int(s.head[h])
			s.head[h] = uint16(s.strstart)
			dist := s.strstart - hashHead
			if hashHead != nilPos && dist <= s.maxDist() {
				n := min(maxMatch, s.lookahead)
				matchLen := s.impl.matchLen(s.window[s.strstart:s.strstart+n], s.window[hashHead:hashHead+n])
				if matchLen >= actualMinMatch {
					s.enc.staticMatch(dist, matchLen-minMatch)
					s.lookahead -= matchLen
					s.strstart += matchLen
					continue
				}
			}
		}

		s.enc.staticLit(s.window[s.strstart])
		s.strstart++
		s.lookahead--
	}

	s.insert = min(s.strstart, actualMinMatch-1)
	if last {
		if s.blockOpen && !s.blockLast {
			s.quickEndBlock(false)
		}
		if !s.blockOpen {
			s.enc.staticHeader(true)
		}
		s.quickEndBlock(true)
		if s.pendingLen() != 0 || len(s.Out) == 0 {
			return finishStarted
		}
		return finishDone
	}
	if s.blockOpen {
		s.quickEndBlock(false)
		if len(s.Out) == 0 {
			return needMore
		}
	}
	return blockDone
}

func (s *Stream) quickEndBlock(last bool) {
	s.enc.staticEnd(last)
	s.blockStart = s.strstart
	s.blockOpen = false
	s.flushPending()
}
