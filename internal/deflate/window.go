// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// nilPos marks an empty head or prev entry. Position 0 can never be
// matched against: candidates must lie strictly above the search limit.
const nilPos = 0

func (s *Stream) maxDist() int {
	return s.wSize - minLookahead
}

// hashAt returns the index bucket of the four bytes at pos.
func (s *Stream) hashAt(pos int) uint32 {
	return s.impl.hash(load32(s.window, pos), s.hashBits)
}

// insertString links pos into its hash chain and returns the previous
// head of the chain. Four bytes at pos must be valid.
func (s *Stream) insertString(pos int) int {
	h := s.hashAt(pos)
	head := s.head[h]
	s.prev[pos&s.wMask] = head
	s.head[h] = uint16(pos)
	return int(head)
}

// bulkInsert inserts count consecutive positions starting at start.
func (s *Stream) bulkInsert(start, count int) {
	for pos := start; pos < start+count; pos++ {
		s.insertString(pos)
	}
}

func (s *Stream) clearHash() {
	for i := range s.head {
		s.head[i] = nilPos
	}
}

// slideHash rebases both index tables after the window moved down by
// wSize.
func (s *Stream) slideHash() {
	s.impl.slide(s.head, uint16(s.wSize))
	s.impl.slide(s.prev, uint16(s.wSize))
}

// readBuf moves input into dst, updating the running checksum unless a
// dictionary is being seeded.
func (s *Stream) readBuf(dst []byte) int {
	n := copy(dst, s.In)
	if n == 0 {
		return 0
	}
	if !s.seeding {
		if s.format != Raw {
			s.check.Write(dst[:n])
		}
		s.TotalIn += uint64(n)
	}
	s.In = s.In[n:]
	return n
}

// fillWindow reads input until lookahead reaches minLookahead or input
// runs out, sliding the window down first when strstart gets too close
// to its end.
func (s *Stream) fillWindow() {
	for {
		more := s.windowSize - s.lookahead - s.strstart

		if s.strstart >= s.wSize+s.maxDist() {
			invariant(s.matchLength < actualMinMatch || s.matchStart >= s.wSize, "slide during an open match")
			copy(s.window, s.window[s.wSize:s.wSize+s.wSize-more])
			s.matchStart -= s.wSize
			s.strstart -= s.wSize
			s.blockStart -= s.wSize
			if s.insert > s.strstart {
				s.insert = s.strstart
			}
			s.slideHash()
			more += s.wSize
		}
		if len(s.In) == 0 {
			break
		}

		pos := s.strstart + s.lookahead
		s.lookahead += s.readBuf(s.window[pos : pos+more])

		// insert the strings left over at the end of the previous input
		if s.lookahead+s.insert >= actualMinMatch {
			str := s.strstart - s.insert
			for s.insert > 0 {
				s.insertString(str)
				str++
				s.insert--
				if s.lookahead+s.insert < actualMinMatch {
					break
				}
			}
		}
		if s.lookahead >= minLookahead || len(s.In) == 0 {
			break
		}
	}

	// Zero the bytes past the data so that the quick reject test of the
	// match finder only ever sees initialized memory.
	if s.highWater < s.windowSize {
		curr := s.strstart + s.lookahead
		if s.highWater < curr {
			n := min(s.windowSize-curr, winInit)
			clear(s.window[curr : curr+n])
			s.highWater = curr + n
		} else if s.highWater < curr+winInit {
			n := min(curr+winInit-s.highWater, s.windowSize-s.highWater)
			clear(s.window[s.highWater : s.highWater+n])
			s.highWater += n
		}
	}
}
