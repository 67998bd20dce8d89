// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import "hash/crc32"

// stream states
const (
	stateEnded = iota
	stateInit
	stateExtra
	stateName
	stateComment
	stateHCRC
	stateBusy
	stateFinish
)

const (
	zlibDeflated  = 8
	zlibPresetDic = 0x20

	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	gzipFlagText    = 0x01
	gzipFlagHCRC    = 0x02
	gzipFlagExtra   = 0x04
	gzipFlagName    = 0x08
	gzipFlagComment = 0x10

	// OSUnix is the gzip OS byte written when no header is set.
	OSUnix = 3
)

// levelFlags is the two bit level hint of the zlib header.
func (s *Stream) levelFlags() uint16 {
	switch {
	case s.strategy >= HuffmanOnly || s.level < 2:
		return 0
	case s.level < 6:
		return 1
	case s.level == 6:
		return 2
	}
	return 3
}

// xfl is the extra flags byte of the gzip header.
func (s *Stream) xfl() byte {
	switch {
	case s.level == BestCompression:
		return 2
	case s.strategy >= HuffmanOnly || s.level < 2:
		return 4
	}
	return 0
}

func (s *Stream) writeZlibHeader() {
	header := uint16(zlibDeflated+((s.wBits-8)<<4)) << 8
	header |= s.levelFlags() << 6
	if s.strstart != 0 {
		header |= zlibPresetDic
	}
	header += 31 - header%31
	s.enc.bb.putShortMSB(header)
	if s.strstart != 0 {
		s.enc.bb.putShortMSB(uint16(s.dictID >> 16))
		s.enc.bb.putShortMSB(uint16(s.dictID))
	}
}

func (s *Stream) writeGzipHeader() {
	bb := &s.enc.bb
	beg := len(bb.output)
	bb.putByte(gzipID1)
	bb.putByte(gzipID2)
	bb.putByte(gzipDeflate)
	h := s.header
	if h == nil {
		bb.putByte(0)
		bb.putUint32LSB(0)
		bb.putByte(s.xfl())
		bb.putByte(OSUnix)
		return
	}
	var flags byte
	if h.Text {
		flags |= gzipFlagText
	}
	if h.HeaderCRC {
		flags |= gzipFlagHCRC
	}
	if h.Extra != nil {
		flags |= gzipFlagExtra
	}
	if h.Name != "" {
		flags |= gzipFlagName
	}
	if h.Comment != "" {
		flags |= gzipFlagComment
	}
	bb.putByte(flags)
	bb.putUint32LSB(h.ModTime)
	bb.putByte(s.xfl())
	bb.putByte(h.OS)
	if h.Extra != nil {
		bb.putShortLSB(uint16(len(h.Extra)))
	}
	s.hcrcUpdate(beg)
}

// hcrcUpdate adds the pending bytes from beg on to the header crc.
func (s *Stream) hcrcUpdate(beg int) {
	s.headCRC = crc32.Update(s.headCRC, crc32.IEEETable, s.enc.bb.output[beg:])
}

// writeHeader runs the header states. It returns false when the output
// buffer filled up; the next call resumes at the same byte.
func (s *Stream) writeHeader() bool {
	bb := &s.enc.bb
	if s.status == stateInit {
		if s.format == Zlib {
			s.writeZlibHeader()
			s.check.Reset()
			s.status = stateBusy
			// compression must start with an empty pending buffer
			s.flushPending()
			return s.pendingLen() == 0
		}
		s.headCRC = 0
		s.check.Reset()
		s.writeGzipHeader()
		if s.header == nil {
			s.status = stateBusy
			s.flushPending()
			return s.pendingLen() == 0
		}
		s.status = stateExtra
	}
	h := s.header
	if s.status == stateExtra {
		if h.Extra != nil {
			beg := len(bb.output)
			left := len(h.Extra) - s.gzIndex
			for s.pendingLen()+left > s.pendingBufSize {
				n := max(s.pendingBufSize-s.pendingLen(), 0)
				bb.output = append(bb.output, h.Extra[s.gzIndex:s.gzIndex+n]...)
				s.gzIndex += n
				s.hcrcUpdate(beg)
				s.flushPending()
				if s.pendingLen() != 0 {
					return false
				}
				beg = len(bb.output)
				left -= n
			}
			bb.output = append(bb.output, h.Extra[s.gzIndex:]...)
			s.hcrcUpdate(beg)
			s.gzIndex = 0
		}
		s.status = stateName
	}
	if s.status == stateName {
		if h.Name != "" {
			if !s.writeString(h.Name) {
				return false
			}
		}
		s.status = stateComment
	}
	if s.status == stateComment {
		if h.Comment != "" {
			if !s.writeString(h.Comment) {
				return false
			}
		}
		s.status = stateHCRC
	}
	if s.status == stateHCRC {
		if h.HeaderCRC {
			if s.pendingLen()+2 > s.pendingBufSize {
				s.flushPending()
				if s.pendingLen() != 0 {
					return false
				}
			}
			bb.putShortLSB(uint16(s.headCRC))
			s.check.Reset()
		}
		s.status = stateBusy
		s.flushPending()
		return s.pendingLen() == 0
	}
	return true
}

// writeString writes str and its terminating zero, resuming at gzIndex.
func (s *Stream) writeString(str string) bool {
	bb := &s.enc.bb
	beg := len(bb.output)
	for {
		if s.pendingLen() >= s.pendingBufSize {
			s.hcrcUpdate(beg)
			s.flushPending()
			if s.pendingLen() != 0 {
				return false
			}
			beg = len(bb.output)
		}
		var val byte
		if s.gzIndex < len(str) {
			val = str[s.gzIndex]
		}
		s.gzIndex++
		bb.putByte(val)
		if val == 0 {
			break
		}
	}
	s.hcrcUpdate(beg)
	s.gzIndex = 0
	return true
}

// writeTrailer appends the checksum trailer of the container.
func (s *Stream) writeTrailer() {
	bb := &s.enc.bb
	sum := s.check.Sum32()
	if s.format == Gzip {
		bb.putUint32LSB(sum)
		bb.putUint32LSB(uint32(s.TotalIn))
		return
	}
	bb.putShortMSB(uint16(sum >> 16))
	bb.putShortMSB(uint16(sum))
}

// wrapLen is the size of the container's header and trailer.
func (s *Stream) wrapLen() uint64 {
	switch s.format {
	case Zlib:
		n := uint64(6)
		if s.strstart != 0 {
			n += 4
		}
		return n
	case Gzip:
		n := uint64(18)
		if h := s.header; h != nil {
			if h.Extra != nil {
				n += 2 + uint64(len(h.Extra))
			}
			if h.Name != "" {
				n += uint64(len(h.Name)) + 1
			}
			if h.Comment != "" {
				n += uint64(len(h.Comment)) + 1
			}
			if h.HeaderCRC {
				n += 2
			}
		}
		return n
	}
	return 0
}
