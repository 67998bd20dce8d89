// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package flate implements a raw DEFLATE (RFC 1951) compressor with the
// API of the standard library's compress/flate.
package flate

import (
	"io"

	"github.com/intel/fastzlib/internal/deflate"
)

// Compression level constants compatible with standard library
const (
	NoCompression      = deflate.NoCompression      // No compression, just store
	BestSpeed          = deflate.BestSpeed          // Level 1: fastest compression
	BestCompression    = deflate.BestCompression    // Level 9: best compression ratio
	DefaultCompression = deflate.DefaultCompression // Default compression level (6)
	HuffmanOnly        = deflate.HuffmanOnlyLevel   // Huffman coding only, no matches
)

// Strategy tunes the match finder for a kind of input.
type Strategy = deflate.Strategy

// Strategies.
const (
	DefaultStrategy     = deflate.DefaultStrategy
	Filtered            = deflate.Filtered
	HuffmanOnlyStrategy = deflate.HuffmanOnly
	RLE                 = deflate.RLE
	Fixed               = deflate.Fixed
	Quick               = deflate.Quick
)

// Writer compresses into an underlying writer. It is the compressor
// shared by the flate, zlib and gzip packages.
type Writer = deflate.Writer

// Option configures a Writer created with NewWriterOptions.
type Option = deflate.Option

// Options for NewWriterOptions.
var (
	WithLevel       = deflate.WithStdLevel
	WithStrategy    = deflate.WithStrategy
	WithWindowBits  = deflate.WithWindowBits
	WithMemLevel    = deflate.WithMemLevel
	WithDictionary  = deflate.WithDictionary
	WithMemoryLimit = deflate.WithMemoryLimit
)

// Errors returned by the compressor.
var (
	ErrStream = deflate.ErrStream
	ErrBuffer = deflate.ErrBuffer
	ErrMemory = deflate.ErrMemory
)

// NewWriter returns a new Writer compressing data at the given level.
// The level is NoCompression, BestSpeed to BestCompression,
// DefaultCompression or HuffmanOnly.
func NewWriter(under io.Writer, level int) (w *Writer, err error) {
	return NewWriterOptions(under, WithLevel(level))
}

// NewWriterDict is like NewWriter but initializes the new Writer with a
// preset dictionary. The compressed data can only be read by a reader
// initialized with the same dictionary.
func NewWriterDict(under io.Writer, level int, dict []byte) (w *Writer, err error) {
	return NewWriterOptions(under, WithLevel(level), WithDictionary(dict))
}

// NewWriterOptions returns a Writer configured by opts.
func NewWriterOptions(under io.Writer, opts ...Option) (w *Writer, err error) {
	opts = append(opts, deflate.WithFormat(deflate.Raw))
	return deflate.NewWriter(under, opts...)
}

// Bound returns an upper bound on the compressed size of n bytes.
func Bound(n uint64) uint64 {
	return deflate.Bound(n)
}
