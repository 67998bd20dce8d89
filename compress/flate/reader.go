// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"github.com/klauspost/compress/flate"
)

// Decompression is provided by github.com/klauspost/compress.
type (
	Reader            = flate.Reader
	Resetter          = flate.Resetter
	CorruptInputError = flate.CorruptInputError
)

var (
	NewReader     = flate.NewReader
	NewReaderDict = flate.NewReaderDict
)
