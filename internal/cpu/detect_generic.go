// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

//go:build noasmtest
// +build noasmtest

package cpu

// cpuArchLevel returns LevelGeneric when the noasmtest tag is set so that
// the portable code paths can be tested on any machine.
func cpuArchLevel() int {
	return LevelGeneric
}
