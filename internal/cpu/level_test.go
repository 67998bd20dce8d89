// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestArchLevel(t *testing.T) {
	assert.Check(t, ArchLevel >= LevelGeneric && ArchLevel <= LevelCRC, "level %d", ArchLevel)
	assert.Check(t, is.Equal(ArchLevel, cpuArchLevel()))
}

func TestString(t *testing.T) {
	for level, want := range map[int]string{
		LevelGeneric: "generic",
		LevelWord:    "word",
		LevelCRC:     "crc",
		-1:           "generic",
	} {
		assert.Check(t, is.Equal(String(level), want))
	}
}
