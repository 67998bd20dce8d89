// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"io"

	"github.com/pkg/errors"
)

const writerBufSize = 32 * 1024

// Writer adapts a Stream to io.WriteCloser.
type Writer struct {
	err    error  // Last error encountered
	s      *Stream
	under  io.Writer
	buf    []byte // output staging handed to the Stream
	closed bool
}

// NewWriter creates a Writer compressing into under.
func NewWriter(under io.Writer, opts ...Option) (*Writer, error) {
	s, err := NewStream(opts...)
	if err != nil {
		return nil, err
	}
	return &Writer{
		s:     s,
		under: under,
		buf:   make([]byte, writerBufSize),
	}, nil
}

// Stream returns the underlying compression context.
func (w *Writer) Stream() *Stream {
	return w.s
}

// deflate runs one Deflate call and forwards its output. Buffer errors
// are returned but do not poison the Writer.
func (w *Writer) deflate(flush Flush) (Status, error) {
	w.s.Out = w.buf
	st, err := w.s.Deflate(flush)
	if n := len(w.buf) - len(w.s.Out); n > 0 {
		if _, werr := w.under.Write(w.buf[:n]); werr != nil {
			w.err = werr
			return st, werr
		}
	}
	if err != nil && !errors.Is(err, ErrBuffer) {
		w.err = err
	}
	return st, err
}

// Write compresses data and writes the full output blocks produced so
// far to the underlying writer.
func (w *Writer) Write(data []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errors.Wrap(ErrStream, "write after close")
	}
	w.s.In = data
	defer func() { w.s.In = nil }()
	for len(w.s.In) > 0 {
		if _, err = w.deflate(NoFlush); err != nil {
			return len(data) - len(w.s.In), err
		}
	}
	return len(data), nil
}

// Flush writes out all pending data, ending on a byte boundary with an
// empty stored block, as Sync flush does.
func (w *Writer) Flush() error {
	return w.flush(SyncFlush)
}

// FullFlush is Flush that also forgets the history, so that output
// after it can be decompressed without what came before.
func (w *Writer) FullFlush() error {
	return w.flush(FullFlush)
}

func (w *Writer) flush(mode Flush) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	for {
		_, err := w.deflate(mode)
		if errors.Is(err, ErrBuffer) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(w.s.Out) != 0 {
			return nil
		}
	}
}

// Close finishes the stream and writes the trailer. It does not close
// the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	for {
		st, err := w.deflate(FinishFlush)
		if err != nil {
			return err
		}
		if st == StatusStreamEnd {
			w.closed = true
			return nil
		}
	}
}

// Reset discards the state and starts over writing to under, keeping
// the options.
func (w *Writer) Reset(under io.Writer) {
	w.err = w.s.Reset()
	w.under = under
	w.closed = false
}
