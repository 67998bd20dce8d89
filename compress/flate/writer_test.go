// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"bytes"
	stdflate "compress/flate"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func testData(t *testing.T) []byte {
	data, _ := os.ReadFile(filepath.Join(runtime.GOROOT(), "src", "testdata", "Isaac.Newton-Opticks.txt"))
	if data == nil {
		data = []byte(strings.Repeat("The rays which make the colours are refracted more or less. ", 3000))
	}
	return data
}

func TestLevels(t *testing.T) {
	data := testData(t)
	for _, level := range []int{HuffmanOnly, DefaultCompression, NoCompression, BestSpeed, 5, BestCompression} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, level)
		assert.NilError(t, err)
		_, err = io.Copy(w, bytes.NewReader(data))
		assert.NilError(t, err)
		assert.NilError(t, w.Close())
		assert.Check(t, uint64(buf.Len()) <= Bound(uint64(len(data))))

		// both our reader and the standard library's
		got, err := io.ReadAll(NewReader(bytes.NewReader(buf.Bytes())))
		assert.NilError(t, err)
		assert.Check(t, bytes.Equal(got, data), "level %d", level)
		got, err = io.ReadAll(stdflate.NewReader(bytes.NewReader(buf.Bytes())))
		assert.NilError(t, err)
		assert.Check(t, bytes.Equal(got, data), "level %d", level)
	}

	_, err := NewWriter(io.Discard, 10)
	assert.Check(t, is.ErrorIs(err, ErrStream))
}

func TestWriterDict(t *testing.T) {
	data := testData(t)
	dict, input := data[:20000], data[20000:40000]
	var buf bytes.Buffer
	w, err := NewWriterDict(&buf, BestCompression, dict)
	assert.NilError(t, err)
	_, err = w.Write(input)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())

	got, err := io.ReadAll(NewReaderDict(&buf, dict))
	assert.NilError(t, err)
	assert.Check(t, bytes.Equal(got, input))
}

func TestWriterOptions(t *testing.T) {
	data := testData(t)
	for _, strategy := range []Strategy{DefaultStrategy, Filtered, HuffmanOnlyStrategy, RLE, Fixed, Quick} {
		var buf bytes.Buffer
		w, err := NewWriterOptions(&buf, WithStrategy(strategy), WithWindowBits(10), WithMemLevel(2))
		assert.NilError(t, err)
		_, err = w.Write(data)
		assert.NilError(t, err)
		assert.NilError(t, w.Close())

		got, err := io.ReadAll(NewReader(&buf))
		assert.NilError(t, err)
		assert.Check(t, bytes.Equal(got, data), strategy)
	}

	_, err := NewWriterOptions(io.Discard, WithMemoryLimit(1024))
	assert.Check(t, is.ErrorIs(err, ErrMemory))
}
