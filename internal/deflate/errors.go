// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import "github.com/pkg/errors"

var (
	// ErrStream reports an invalid argument, an unusable Stream or a
	// call made out of order. The stream cannot continue.
	ErrStream = errors.New("deflate: stream error")
	// ErrBuffer reports that no progress was possible. It is not fatal:
	// retry with more output space or more input.
	ErrBuffer = errors.New("deflate: buffer error")
	// ErrMemory reports that the requested parameters exceed the memory
	// limit. Nothing is allocated.
	ErrMemory = errors.New("deflate: insufficient memory")
)

// Status is the outcome of a successful call to Deflate.
type Status int

const (
	// StatusOK means progress was made; call again.
	StatusOK Status = iota
	// StatusStreamEnd means all input is compressed and the trailer is
	// written out.
	StatusStreamEnd
)

func (s Status) String() string {
	if s == StatusStreamEnd {
		return "stream end"
	}
	return "ok"
}
