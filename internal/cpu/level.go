// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package cpu provides CPU capability detection used to pick the match
// finder, hash and window slide implementations of the compressor.
package cpu

// Architecture levels, ordered by capability.
const (
	// LevelGeneric uses byte-wise comparison and a multiplicative hash.
	LevelGeneric = iota
	// LevelWord compares eight bytes at a time using unaligned loads.
	LevelWord
	// LevelCRC additionally hashes with the hardware CRC-32C instruction.
	LevelCRC
)

// ArchLevel represents the detected CPU architecture level.
// The value is determined at package initialization time.
var (
	ArchLevel = cpuArchLevel()
)

// String returns the name of an architecture level.
func String(level int) string {
	switch level {
	case LevelWord:
		return "word"
	case LevelCRC:
		return "crc"
	default:
		return "generic"
	}
}
