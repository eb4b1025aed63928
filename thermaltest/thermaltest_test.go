// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermaltest

import (
	"testing"

	"github.com/quagsire/go-cwsi/thermal"
)

func TestNextDeterministic(t *testing.T) {
	a := New(32, 24).Next()
	b := New(32, 24).Next()
	if ab, bb := a.Bounds(), b.Bounds(); ab != bb {
		t.Fatal(ab, bb)
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			if a.RawAt(x, y) != b.RawAt(x, y) {
				t.Fatalf("(%d, %d): %d != %d", x, y, a.RawAt(x, y), b.RawAt(x, y))
			}
		}
	}
}

func TestNextInBand(t *testing.T) {
	f := New(thermal.DefaultWidth, thermal.DefaultHeight).Next()
	if f.Source != thermal.SourceSynthetic {
		t.Fatal(f.Source)
	}
	for y := 0; y < thermal.DefaultHeight; y++ {
		for x := 0; x < thermal.DefaultWidth; x++ {
			v := f.RawAt(x, y)
			if v < 32768-8192 || v > 32768+8192 {
				t.Fatalf("(%d, %d): %d out of band", x, y, v)
			}
		}
	}
}

func TestNextAnalyzable(t *testing.T) {
	a, err := thermal.NewAnalyzer(thermal.Default())
	if err != nil {
		t.Fatal(err)
	}
	an := a.Analyze(New(16, 16).Next())
	if an.Hottest.Raw < an.Coldest.Raw {
		t.Fatal(an.Hottest, an.Coldest)
	}
	if len(an.Samples) != 16*16 {
		t.Fatal(len(an.Samples))
	}
}
