// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

//go:build !noasmtest
// +build !noasmtest

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// cpuArchLevel probes the running CPU once.
func cpuArchLevel() int {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasSSE42 {
			return LevelCRC
		}
		return LevelWord
	case "arm64":
		if cpu.ARM64.HasCRC32 {
			return LevelCRC
		}
		return LevelWord
	case "386", "ppc64le", "s390x", "riscv64", "loong64":
		return LevelWord
	}
	return LevelGeneric
}
