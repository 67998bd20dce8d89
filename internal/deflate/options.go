// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"bytes"

	"github.com/pkg/errors"
)

// Header holds the optional fields of a gzip header.
type Header struct {
	Text      bool   // FTEXT flag
	ModTime   uint32 // seconds since the Unix epoch, 0 if unknown
	OS        byte
	Extra     []byte // at most 65535 bytes
	Name      string // must not contain a zero byte
	Comment   string // must not contain a zero byte
	HeaderCRC bool   // append a crc16 of the header
}

func (h *Header) validate() error {
	if h == nil {
		return nil
	}
	if len(h.Extra) > 0xffff {
		return errors.Wrapf(ErrStream, "gzip extra field is %d bytes", len(h.Extra))
	}
	if bytes.IndexByte([]byte(h.Name), 0) >= 0 || bytes.IndexByte([]byte(h.Comment), 0) >= 0 {
		return errors.Wrap(ErrStream, "gzip name and comment must not contain a zero byte")
	}
	return nil
}

type options struct {
	level      int
	strategy   Strategy
	windowBits int
	memLevel   int
	format     Format
	header     *Header
	dict       []byte
	memLimit   int
}

func defaultOptions() options {
	return options{
		level:      DefaultCompression,
		strategy:   DefaultStrategy,
		windowBits: maxWindowBits,
		memLevel:   defMemLevel,
		format:     Raw,
	}
}

// Option configures a Stream.
type Option func(*options)

// WithLevel sets the compression level, 0 to 9 or DefaultCompression.
func WithLevel(level int) Option {
	return func(o *options) { o.level = level }
}

// HuffmanOnlyLevel is the compress/flate level that asks for Huffman
// coding without matches.
const HuffmanOnlyLevel = -2

// WithStdLevel takes a compress/flate level: 0 to 9, DefaultCompression
// or HuffmanOnlyLevel, which selects the HuffmanOnly strategy at the
// default level.
func WithStdLevel(level int) Option {
	return func(o *options) {
		if level == HuffmanOnlyLevel {
			o.level = DefaultCompression
			o.strategy = HuffmanOnly
			return
		}
		o.level = level
	}
}

// WithStrategy sets the tokenizer strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithWindowBits sets the base two logarithm of the window size, 8 to 15.
// 8 is raised to 9.
func WithWindowBits(bits int) Option {
	return func(o *options) { o.windowBits = bits }
}

// WithMemLevel sets how much memory the position index and the token
// buffer get, 1 to 9.
func WithMemLevel(level int) Option {
	return func(o *options) { o.memLevel = level }
}

// WithFormat selects the container format.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithHeader sets the gzip header fields. It implies the Gzip format.
func WithHeader(h *Header) Option {
	return func(o *options) {
		o.header = h
		o.format = Gzip
	}
}

// WithDictionary presets the window with dict. Not allowed with Gzip.
func WithDictionary(dict []byte) Option {
	return func(o *options) { o.dict = dict }
}

// WithMemoryLimit makes NewStream fail with ErrMemory when the stream
// would need more than limit bytes. Zero means no limit.
func WithMemoryLimit(limit int) Option {
	return func(o *options) { o.memLimit = limit }
}

func (o *options) validate() error {
	if o.level == DefaultCompression {
		o.level = defaultLevel
	}
	if o.windowBits == 8 {
		o.windowBits = minWindowBits
	}
	switch {
	case o.level < NoCompression || o.level > BestCompression:
		return errors.Wrapf(ErrStream, "invalid compression level %d", o.level)
	case o.strategy < DefaultStrategy || o.strategy > Quick:
		return errors.Wrapf(ErrStream, "invalid strategy %d", o.strategy)
	case o.windowBits < minWindowBits || o.windowBits > maxWindowBits:
		return errors.Wrapf(ErrStream, "invalid window bits %d", o.windowBits)
	case o.memLevel < minMemLevel || o.memLevel > maxMemLevel:
		return errors.Wrapf(ErrStream, "invalid memory level %d", o.memLevel)
	case o.format < Raw || o.format > Gzip:
		return errors.Wrapf(ErrStream, "invalid format %d", o.format)
	case o.format == Gzip && o.dict != nil:
		return errors.Wrap(ErrStream, "gzip does not support a preset dictionary")
	}
	return o.header.validate()
}

// footprint is the number of bytes a stream with these options allocates.
func (o *options) footprint() int {
	wSize := 1 << o.windowBits
	hashSize := 1 << (o.memLevel + 7)
	litBufSize := 1 << (o.memLevel + 6)
	return 2*wSize + // window
		2*wSize + // prev
		2*hashSize + // head
		4*litBufSize + // pending
		4*litBufSize // tokens
}
