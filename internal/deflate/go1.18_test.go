// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"
)

func FuzzDeflate(f *testing.F) {
	data := opticks(f)
	f.Add(data[:4096], uint8(0), uint16(1000))
	f.Add([]byte("aaaaaaaaaa"), uint8(3), uint16(1))
	f.Add([]byte{}, uint8(5), uint16(7))
	f.Fuzz(func(t *testing.T, source []byte, strategy uint8, chunk uint16) {
		st := Strategy(int(strategy) % (int(Quick) + 1))
		for _, lvl := range testLevels {
			buf := bytes.NewBuffer(nil)
			w, err := NewWriter(buf, WithLevel(lvl), WithStrategy(st))
			if err != nil {
				t.Fatal(err)
			}
			step := int(chunk) + 1
			for i := 0; i < len(source); i += step {
				if _, err = w.Write(source[i:min(i+step, len(source))]); err != nil {
					t.Fatal(err)
				}
			}
			if err = w.Close(); err != nil {
				t.Fatal(err)
			}
			if uint64(buf.Len()) > w.Stream().Bound(uint64(len(source))) {
				t.Fatalf("%d bytes exceed the bound for %d", buf.Len(), len(source))
			}
			data, err := io.ReadAll(flate.NewReader(buf))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, source) {
				t.Fatalf("level %d %s: round trip mismatch", lvl, st)
			}
		}
	})
}
