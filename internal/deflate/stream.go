// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package deflate implements a streaming DEFLATE compressor with zlib and
// gzip containers.
//
// A Stream is driven like zlib's z_stream: the caller points In at input
// and Out at free space, calls Deflate with a flush mode, and looks at
// how far both slices advanced. No call blocks; a Stream must not be used
// from more than one goroutine at a time.
package deflate

import (
	"encoding"
	"hash"
	"hash/adler32"
	"hash/crc32"

	"github.com/containerd/log"
	"github.com/pkg/errors"

	"github.com/intel/fastzlib/internal/cpu"
)

type blockState int

const (
	needMore      blockState = iota // block not completed, need more input or more output
	blockDone                       // block flush performed
	finishStarted                   // finish started, need only more output at next deflate
	finishDone                      // finish done, accept no more input or output
)

// Stream is a compression context.
type Stream struct {
	// In is the unread input. Deflate advances it.
	In []byte
	// Out is the free output space. Deflate fills it from the front and
	// advances it.
	Out []byte
	// TotalIn and TotalOut count the bytes consumed and produced so far.
	TotalIn  uint64
	TotalOut uint64

	status      int
	format      Format
	header      *Header
	gzIndex     int
	headCRC     uint32
	lastFlush   Flush
	trailerDone bool
	check       hash.Hash32
	dictID      uint32
	dict        []byte
	seeding     bool

	level    int
	strategy Strategy
	memLevel int

	wBits      int
	wSize      int
	wMask      int
	windowSize int
	window     []byte
	highWater  int

	hashBits uint
	prev     []uint16
	head     []uint16

	blockStart     int
	strstart       int
	lookahead      int
	insert         int
	matchLength    int
	matchStart     int
	prevLength     int
	prevMatch      int
	matchAvailable bool
	blockOpen      bool
	blockLast      bool

	goodMatch int
	maxLazy   int
	niceMatch int
	maxChain  int

	enc            encoder
	pendingOut     int
	pendingBufSize int

	impl *impl
}

// NewStream creates a compression context.
func NewStream(opts ...Option) (*Stream, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.memLimit > 0 && o.footprint() > o.memLimit {
		return nil, errors.Wrapf(ErrMemory, "stream needs %d bytes, limit is %d", o.footprint(), o.memLimit)
	}

	s := &Stream{
		format:   o.format,
		header:   o.header,
		level:    o.level,
		strategy: o.strategy,
		memLevel: o.memLevel,
		wBits:    o.windowBits,
		hashBits: uint(o.memLevel + 7),
		impl:     selectImpl(cpu.ArchLevel),
	}
	s.wSize = 1 << s.wBits
	s.wMask = s.wSize - 1
	s.windowSize = 2 * s.wSize
	s.window = make([]byte, s.windowSize)
	s.prev = make([]uint16, s.wSize)
	s.head = make([]uint16, 1<<s.hashBits)

	litBufSize := 1 << (o.memLevel + 6)
	s.pendingBufSize = 4 * litBufSize
	s.enc.init(litBufSize)

	if s.format == Gzip {
		s.check = crc32.NewIEEE()
	} else {
		s.check = adler32.New()
	}

	log.L.WithFields(log.Fields{
		"format":     s.format,
		"level":      s.level,
		"strategy":   s.strategy,
		"windowBits": s.wBits,
		"hashBits":   s.hashBits,
		"impl":       s.impl.name,
	}).Debug("deflate: stream created")

	if o.dict != nil {
		s.dict = append([]byte(nil), o.dict...)
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) usable() error {
	if s == nil || s.status == stateEnded {
		return errors.Wrap(ErrStream, "stream is not initialized")
	}
	return nil
}

// Reset discards all state and makes the stream equivalent to a new one
// created with the same options, header and dictionary included.
func (s *Stream) Reset() error {
	if err := s.ResetKeep(); err != nil {
		return err
	}
	if s.dict != nil {
		return s.SetDictionary(s.dict)
	}
	return nil
}

// ResetKeep restores the initial state without the preset dictionary,
// keeping every buffer allocated.
func (s *Stream) ResetKeep() error {
	if s == nil || s.window == nil {
		return errors.Wrap(ErrStream, "stream is not initialized")
	}
	s.resetKeep()
	s.lmInit()
	return nil
}

func (s *Stream) resetKeep() {
	s.TotalIn, s.TotalOut = 0, 0
	s.enc.reset()
	s.pendingOut = 0
	s.status = stateInit
	if s.format == Raw {
		s.status = stateBusy
	}
	s.gzIndex = 0
	s.headCRC = 0
	s.trailerDone = false
	s.check.Reset()
	s.lastFlush = -2
	s.blockOpen = false
	s.blockLast = false
}

func (s *Stream) lmInit() {
	clear(s.prev)
	s.clearHash()

	s.applyConfig()
	s.strstart = 0
	s.blockStart = 0
	s.lookahead = 0
	s.insert = 0
	s.matchLength = actualMinMatch - 1
	s.prevLength = actualMinMatch - 1
	s.matchAvailable = false
	s.matchStart = 0
	s.prevMatch = 0
	s.highWater = 0
}

func (s *Stream) applyConfig() {
	c := configTable[s.level]
	s.goodMatch = c.good
	s.maxLazy = c.lazy
	s.niceMatch = c.nice
	s.maxChain = c.chain
}

// End releases the buffers. Every later call fails with ErrStream.
func (s *Stream) End() error {
	if err := s.usable(); err != nil {
		return err
	}
	busy := s.status == stateBusy
	s.status = stateEnded
	s.window, s.prev, s.head = nil, nil, nil
	s.enc = encoder{}
	s.In, s.Out = nil, nil
	if busy {
		log.L.WithField("totalIn", s.TotalIn).Debug("deflate: stream ended before finish")
	}
	return nil
}

// compress runs the tokenizer selected by level and strategy.
func (s *Stream) compress(flush Flush) blockState {
	switch {
	case s.level == 0:
		return s.deflateStored(flush)
	case s.strategy == HuffmanOnly:
		return s.deflateHuff(flush)
	case s.strategy == RLE:
		return s.deflateRLE(flush)
	case s.strategy == Quick:
		return s.deflateQuick(flush)
	case configTable[s.level].fn == funcFast:
		return s.deflateFast(flush)
	}
	return s.deflateSlow(flush)
}

func (s *Stream) pendingLen() int {
	return len(s.enc.bb.output) - s.pendingOut
}

// flushPending copies as many pending bytes as fit into Out.
func (s *Stream) flushPending() {
	s.enc.bb.sync()
	n := copy(s.Out, s.enc.bb.output[s.pendingOut:])
	if n == 0 {
		return
	}
	s.Out = s.Out[n:]
	s.TotalOut += uint64(n)
	s.pendingOut += n
	if s.pendingOut == len(s.enc.bb.output) {
		s.enc.bb.output = s.enc.bb.output[:0]
		s.pendingOut = 0
	}
}

func (s *Stream) flushBlockOnly(last bool) {
	var buf []byte
	if s.blockStart >= 0 {
		buf = s.window[s.blockStart:s.strstart]
	}
	s.enc.flushBlock(buf, s.strstart-s.blockStart, last, s.level, s.strategy)
	s.blockStart = s.strstart
	s.flushPending()
}

// flushBlock closes the current block and reports whether Out is full,
// in which case the tokenizer must return.
func (s *Stream) flushBlock(last bool) bool {
	s.flushBlockOnly(last)
	return len(s.Out) == 0
}

// Deflate compresses as much of In as possible and writes as much as fits
// into Out. It returns StatusStreamEnd once flush is FinishFlush, all input
// is consumed and all output is written.
//
// Once a call with FinishFlush has been made, later calls must also pass
// FinishFlush until StatusStreamEnd is returned.
//
// ErrBuffer means no progress was possible: Out is empty, or the call
// repeats a flush with no new input. ErrStream means the call is invalid.
func (s *Stream) Deflate(flush Flush) (Status, error) {
	if err := s.usable(); err != nil {
		return StatusOK, err
	}
	if flush < NoFlush || flush > BlockFlush {
		return StatusOK, errors.Wrapf(ErrStream, "invalid flush %d", flush)
	}
	if s.status == stateFinish && (flush != FinishFlush || len(s.In) != 0) {
		return StatusOK, errors.Wrap(ErrStream, "input after finish")
	}
	if s.blockOpen && s.blockLast && flush != FinishFlush {
		return StatusOK, errors.Wrapf(ErrStream, "flush %d while the final block is open", flush)
	}
	if len(s.Out) == 0 {
		return StatusOK, errors.Wrap(ErrBuffer, "no output space")
	}

	oldFlush := s.lastFlush
	s.lastFlush = flush

	// Flush as much pending output as possible.
	s.enc.bb.sync()
	if s.pendingLen() != 0 {
		s.flushPending()
		if len(s.Out) == 0 {
			// Avoid a buffer error on the next call made with more
			// output space and the same flush.
			s.lastFlush = -1
			return StatusOK, nil
		}
	} else if len(s.In) == 0 && rank(flush) <= rank(oldFlush) && flush != FinishFlush {
		// Repeated flushes with nothing to do.
		return StatusOK, errors.Wrap(ErrBuffer, "nothing to flush")
	}

	if s.status < stateBusy {
		if !s.writeHeader() {
			s.lastFlush = -1
			return StatusOK, nil
		}
	}

	if len(s.In) != 0 || s.lookahead != 0 || (flush != NoFlush && s.status != stateFinish) {
		bstate := s.compress(flush)
		if bstate == finishStarted || bstate == finishDone {
			s.status = stateFinish
		}
		if bstate == needMore || bstate == finishStarted {
			if len(s.Out) == 0 {
				s.lastFlush = -1
			}
			return StatusOK, nil
		}
		if bstate == blockDone {
			switch flush {
			case PartialFlush:
				s.enc.align()
			case BlockFlush:
			default:
				// An empty stored block marks a byte aligned boundary.
				s.enc.storedBlock(nil, false)
				if flush == FullFlush {
					s.clearHash()
					if s.lookahead == 0 {
						s.strstart = 0
						s.blockStart = 0
						s.insert = 0
					}
				}
			}
			s.flushPending()
			if len(s.Out) == 0 {
				s.lastFlush = -1
				return StatusOK, nil
			}
		}
	}

	if flush != FinishFlush {
		return StatusOK, nil
	}
	if s.format == Raw || s.trailerDone {
		return StatusStreamEnd, nil
	}
	s.writeTrailer()
	s.flushPending()
	s.trailerDone = true
	if s.pendingLen() != 0 {
		return StatusOK, nil
	}
	return StatusStreamEnd, nil
}

// SetDictionary presets the window with dict, as if it had just been
// compressed, without writing anything. With Zlib it must come before the
// first call to Deflate; with Raw, whenever the lookahead is empty. Gzip
// streams have no dictionary.
func (s *Stream) SetDictionary(dict []byte) error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.format == Gzip || (s.format == Zlib && s.status != stateInit) || s.lookahead != 0 {
		return errors.Wrap(ErrStream, "dictionary not allowed now")
	}
	if s.format == Zlib {
		s.dictID = adler32.Checksum(dict)
	}

	if len(dict) >= s.wSize {
		if s.format == Raw {
			s.clearHash()
			s.strstart = 0
			s.blockStart = 0
			s.insert = 0
		}
		dict = dict[len(dict)-s.wSize:]
	}

	in := s.In
	s.In = dict
	s.seeding = true
	s.fillWindow()
	for s.lookahead >= actualMinMatch {
		str := s.strstart
		n := s.lookahead - (actualMinMatch - 1)
		s.bulkInsert(str, n)
		s.strstart = str + n
		s.lookahead = actualMinMatch - 1
		s.fillWindow()
	}
	s.strstart += s.lookahead
	s.blockStart = s.strstart
	s.insert = s.lookahead
	s.lookahead = 0
	s.matchLength = actualMinMatch - 1
	s.prevLength = actualMinMatch - 1
	s.matchAvailable = false
	s.seeding = false
	s.In = in
	return nil
}

// GetDictionary returns a copy of the last window-size bytes of history.
func (s *Stream) GetDictionary() ([]byte, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	n := min(s.strstart+s.lookahead, s.wSize)
	end := s.strstart + s.lookahead
	return append([]byte(nil), s.window[end-n:end]...), nil
}

// SetParams changes the level and strategy mid-stream. When the change
// selects another tokenizer, the input so far is compressed and closed
// with a BlockFlush first, which needs room in Out. ErrBuffer means that
// flush could not complete: drain Out and call again.
func (s *Stream) SetParams(level int, strategy Strategy) error {
	if err := s.usable(); err != nil {
		return err
	}
	if level == DefaultCompression {
		level = defaultLevel
	}
	if level < NoCompression || level > BestCompression || strategy < DefaultStrategy || strategy > Quick {
		return errors.Wrapf(ErrStream, "invalid parameters level %d strategy %d", level, strategy)
	}

	if (strategy != s.strategy || configTable[s.level].fn != configTable[level].fn) && s.lastFlush != -2 {
		_, err := s.Deflate(BlockFlush)
		if errors.Is(err, ErrStream) {
			return err
		}
		if len(s.In) != 0 || s.strstart-s.blockStart+s.lookahead != 0 || s.blockOpen {
			return errors.Wrap(ErrBuffer, "pending block before parameter change")
		}
	}
	if s.level != level {
		s.level = level
		s.applyConfig()
	}
	if s.strategy != strategy {
		log.L.WithFields(log.Fields{
			"from": s.strategy,
			"to":   strategy,
		}).Debug("deflate: strategy changed")
	}
	s.strategy = strategy
	return nil
}

// Tune overrides the level table's search parameters.
func (s *Stream) Tune(goodLength, maxLazy, niceLength, maxChain int) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.goodMatch = goodLength
	s.maxLazy = maxLazy
	s.niceMatch = niceLength
	s.maxChain = maxChain
	return nil
}

// SetHeader replaces the gzip header. It must come before the first call
// to Deflate.
func (s *Stream) SetHeader(h *Header) error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.format != Gzip || s.status != stateInit {
		return errors.Wrap(ErrStream, "header not allowed now")
	}
	if err := h.validate(); err != nil {
		return err
	}
	s.header = h
	return nil
}

// Pending returns the number of bytes and bits of output not yet
// written to Out.
func (s *Stream) Pending() (bytes int, bits int, err error) {
	if err := s.usable(); err != nil {
		return 0, 0, err
	}
	s.enc.bb.sync()
	return s.pendingLen(), int(s.enc.bb.bitLen), nil
}

// Prime inserts bits, at most 16, ahead of the next compressed data.
func (s *Stream) Prime(bits int, value int) error {
	if err := s.usable(); err != nil {
		return err
	}
	if bits < 0 || bits > 16 {
		return errors.Wrapf(ErrStream, "cannot prime %d bits", bits)
	}
	s.enc.bb.writeBits(uint32(value)&(1<<bits-1), uint(bits))
	return nil
}

// Checksum returns the running adler32 (Zlib) or crc32 (Gzip) of the input.
func (s *Stream) Checksum() uint32 {
	return s.check.Sum32()
}

// Copy returns an independent deep copy of the stream.
func (s *Stream) Copy() (*Stream, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	d := *s
	d.window = append([]byte(nil), s.window...)
	d.prev = append([]uint16(nil), s.prev...)
	d.head = append([]uint16(nil), s.head...)
	d.enc = s.enc.clone()
	if s.header != nil {
		h := *s.header
		d.header = &h
	}

	if s.format == Gzip {
		d.check = crc32.NewIEEE()
	} else {
		d.check = adler32.New()
	}
	state, err := s.check.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "copy checksum state")
	}
	if err := d.check.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		return nil, errors.Wrap(err, "copy checksum state")
	}
	return &d, nil
}

// Bound returns an upper bound on the compressed size of sourceLen bytes
// compressed in one go. A nil Stream gives a bound valid for any
// parameters of the zlib format, preset dictionary id included.
func (s *Stream) Bound(sourceLen uint64) uint64 {
	complen := sourceLen + (sourceLen+7)>>3 + (sourceLen+63)>>6 + 5
	if s == nil || s.window == nil {
		return complen + 6 + 4
	}
	wrapLen := s.wrapLen()
	if s.wBits != maxWindowBits || s.hashBits != maxWindowBits || s.strategy == Quick {
		return complen + wrapLen
	}
	return sourceLen + sourceLen>>12 + sourceLen>>14 + sourceLen>>25 + 13 - 6 + wrapLen
}

// Bound returns a compressed size bound valid for any stream parameters,
// zlib container included.
func Bound(sourceLen uint64) uint64 {
	return (*Stream)(nil).Bound(sourceLen)
}
