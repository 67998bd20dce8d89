// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"github.com/klauspost/compress/zlib"
)

// Decompression is provided by github.com/klauspost/compress.
var (
	NewReader     = zlib.NewReader
	NewReaderDict = zlib.NewReaderDict

	ErrChecksum   = zlib.ErrChecksum
	ErrDictionary = zlib.ErrDictionary
	ErrHeader     = zlib.ErrHeader
)

// Resetter resets a reader returned by NewReader or NewReaderDict.
type Resetter = zlib.Resetter
