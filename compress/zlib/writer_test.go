// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	stdzlib "compress/zlib"
	"io"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var text = []byte(strings.Repeat("Of the Refractions and Reflexions of Light. ", 2000))

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write(text)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.Check(t, uint64(buf.Len()) <= Bound(uint64(len(text))))
	// default level hint
	assert.Check(t, is.DeepEqual(buf.Bytes()[:2], []byte{0x78, 0x9c}))

	r, err := stdzlib.NewReader(&buf)
	assert.NilError(t, err)
	got, err := io.ReadAll(r)
	assert.NilError(t, err)
	assert.Check(t, bytes.Equal(got, text))
}

func TestWriterLevel(t *testing.T) {
	for _, level := range []int{HuffmanOnly, NoCompression, BestSpeed, BestCompression} {
		var buf bytes.Buffer
		w, err := NewWriterLevel(&buf, level)
		assert.NilError(t, err)
		_, err = w.Write(text)
		assert.NilError(t, err)
		assert.NilError(t, w.Close())

		r, err := NewReader(&buf)
		assert.NilError(t, err)
		got, err := io.ReadAll(r)
		assert.NilError(t, err)
		assert.Check(t, bytes.Equal(got, text), "level %d", level)
	}
	_, err := NewWriterLevel(io.Discard, 12)
	assert.Check(t, err != nil)
}

func TestWriterDict(t *testing.T) {
	dict := []byte("Reflexions of Light")
	var buf bytes.Buffer
	w, err := NewWriterLevelDict(&buf, BestCompression, dict)
	assert.NilError(t, err)
	_, err = w.Write(text)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())

	_, err = stdzlib.NewReader(bytes.NewReader(buf.Bytes()))
	assert.Check(t, is.ErrorIs(err, stdzlib.ErrDictionary))

	r, err := NewReaderDict(bytes.NewReader(buf.Bytes()), dict)
	assert.NilError(t, err)
	got, err := io.ReadAll(r)
	assert.NilError(t, err)
	assert.Check(t, bytes.Equal(got, text))
}

func TestBoundDict(t *testing.T) {
	dict := []byte("Reflexions of Light")
	for _, data := range [][]byte{nil, []byte("x"), text} {
		var buf bytes.Buffer
		w, err := NewWriterLevelDict(&buf, NoCompression, dict)
		assert.NilError(t, err)
		_, err = w.Write(data)
		assert.NilError(t, err)
		assert.NilError(t, w.Close())
		assert.Check(t, uint64(buf.Len()) <= Bound(uint64(len(data))), "%d bytes in", len(data))
	}
}

func TestWriterReset(t *testing.T) {
	var a, b bytes.Buffer
	w := NewWriter(&a)
	_, err := w.Write(text)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())

	w.Reset(&b)
	_, err = w.Write(text)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.Check(t, bytes.Equal(a.Bytes(), b.Bytes()))
}
