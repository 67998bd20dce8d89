// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package gzip writes gzip format (RFC 1952) compressed files with the
// API of the standard library's compress/gzip.
package gzip

import (
	"io"
	"time"

	"github.com/pkg/errors"

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

// osUnknown is what the standard library writes when OS is not set.
const osUnknown = 255

// Header holds the gzip header fields written before the first byte of
// compressed data.
type Header struct {
	Comment   string    // comment
	Extra     []byte    // "extra data"
	ModTime   time.Time // modification time
	Name      string    // file name
	OS        byte      // operating system type
	HeaderCRC bool      // protect the header with a crc16
	Text      bool      // the content is probably text
}

// A Writer is an io.WriteCloser. Writes to a Writer are compressed and
// written to w. The Header fields are written with the first Write,
// Flush or Close.
type Writer struct {
	Header
	w     io.Writer
	level int
	dw    *deflate.Writer
	ready bool
	err   error
}

// NewWriter returns a new Writer at the default level.
func NewWriter(w io.Writer) *Writer {
	z, _ := NewWriterLevel(w, DefaultCompression)
	return z
}

// NewWriterLevel is like NewWriter but specifies the compression level
// instead of assuming DefaultCompression.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	if level < HuffmanOnly || level > BestCompression {
		return nil, errors.Wrapf(deflate.ErrStream, "gzip: invalid compression level: %d", level)
	}
	z := &Writer{level: level}
	z.init(w)
	return z, nil
}

func (z *Writer) init(w io.Writer) {
	z.Header = Header{OS: osUnknown}
	z.w = w
	z.ready = false
	z.err = nil
}

// header converts the public fields to the compressor's header.
func (z *Writer) header() *deflate.Header {
	h := &deflate.Header{
		Text:      z.Text,
		OS:        z.OS,
		Extra:     z.Extra,
		Name:      z.Name,
		Comment:   z.Comment,
		HeaderCRC: z.HeaderCRC,
	}
	if z.ModTime.After(time.Unix(0, 0)) {
		h.ModTime = uint32(z.ModTime.Unix())
	}
	return h
}

// start creates or resets the compressor with the current header.
func (z *Writer) start() error {
	if z.ready {
		return z.err
	}
	z.ready = true
	if z.dw == nil {
		z.dw, z.err = deflate.NewWriter(z.w, deflate.WithHeader(z.header()), deflate.WithStdLevel(z.level))
		return z.err
	}
	z.dw.Reset(z.w)
	z.err = z.dw.Stream().SetHeader(z.header())
	return z.err
}

// Reset discards the Writer's state and makes it equivalent to the result
// of NewWriter or NewWriterLevel, but writing to w instead. The header is
// cleared too.
func (z *Writer) Reset(w io.Writer) {
	z.init(w)
}

// Write writes a compressed form of p to the underlying io.Writer.
func (z *Writer) Write(p []byte) (int, error) {
	if err := z.start(); err != nil {
		return 0, err
	}
	return z.dw.Write(p)
}

// Flush flushes any pending compressed data to the underlying writer,
// ending on a byte boundary.
func (z *Writer) Flush() error {
	if err := z.start(); err != nil {
		return err
	}
	return z.dw.Flush()
}

// Close writes the trailer. It does not close the underlying writer.
func (z *Writer) Close() error {
	if err := z.start(); err != nil {
		return err
	}
	return z.dw.Close()
}
