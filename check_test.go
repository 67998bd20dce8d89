// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package fastzlib

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/intel/fastzlib/internal/cpu"
)

func TestImplementation(t *testing.T) {
	impl := Implementation()
	assert.Check(t, is.Contains([]string{"generic", "word", "crc"}, impl))
	assert.Check(t, is.Equal(impl, cpu.String(cpu.ArchLevel)))
	assert.Check(t, is.Equal(Optimized(), impl != "generic"))
}
