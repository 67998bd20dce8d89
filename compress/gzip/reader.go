// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"github.com/klauspost/compress/gzip"
)

// Decompression is provided by github.com/klauspost/compress.
type Reader = gzip.Reader

var (
	NewReader = gzip.NewReader

	ErrChecksum = gzip.ErrChecksum
	ErrHeader   = gzip.ErrHeader
)
