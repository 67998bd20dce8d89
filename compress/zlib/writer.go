// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package zlib writes zlib format (RFC 1950) compressed data with the API
// of the standard library's compress/zlib.
package zlib

import (
	"io"

	"github.com/intel/fastzlib/internal/deflate"
)

// Compression level constants compatible with standard library
const (
	NoCompression      = deflate.NoCompression
	BestSpeed          = deflate.BestSpeed
	BestCompression    = deflate.BestCompression
	DefaultCompression = deflate.DefaultCompression
	HuffmanOnly        = deflate.HuffmanOnlyLevel
)

// Writer compresses into an underlying writer, adding the zlib header
// and adler32 trailer.
type Writer = deflate.Writer

// NewWriter creates a new Writer at the default level.
func NewWriter(w io.Writer) *Writer {
	z, _ := NewWriterLevelDict(w, DefaultCompression, nil)
	return z
}

// NewWriterLevel is like NewWriter but specifies the compression level
// instead of assuming DefaultCompression.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	return NewWriterLevelDict(w, level, nil)
}

// NewWriterLevelDict is like NewWriterLevel but specifies a dictionary to
// compress with. The dictionary's adler32 goes into the header.
func NewWriterLevelDict(w io.Writer, level int, dict []byte) (*Writer, error) {
	opts := []deflate.Option{deflate.WithFormat(deflate.Zlib), deflate.WithStdLevel(level)}
	if dict != nil {
		opts = append(opts, deflate.WithDictionary(dict))
	}
	return deflate.NewWriter(w, opts...)
}

// Bound returns an upper bound on the size of a zlib stream holding n
// bytes, with or without a preset dictionary.
func Bound(n uint64) uint64 {
	return deflate.Bound(n)
}
