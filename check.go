// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package fastzlib provides a zlib-compatible streaming DEFLATE compressor
// for Go applications. The compress/flate, compress/zlib and compress/gzip
// packages mirror the standard library writers, and the underlying stream
// picks its match finder and hash for the running CPU.
package fastzlib

import (
	"github.com/intel/fastzlib/internal/cpu"
	"github.com/intel/fastzlib/internal/deflate"
)

// Optimized reports whether an accelerated match finder is in use.
// It returns false when the CPU only supports the generic byte-wise
// implementation.
func Optimized() bool {
	return cpu.ArchLevel > cpu.LevelGeneric
}

// Implementation names the match/hash implementation selected for this
// machine: "generic", "word" or "crc".
func Implementation() string {
	return deflate.Implementation()
}
