// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/quagsire/go-cwsi/thermal"
)

func TestMarkClips(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// A marker at the corner must not panic, and the in-bounds pixels of
	// the crosshair must land.
	Mark(img, 0, 0, "x", color.NRGBA{0xff, 0, 0, 0xff})
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0xff, 0, 0, 0xff}) {
		t.Fatal(got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{0xff, 0, 0, 0xff}) {
		t.Fatal(got)
	}
}

func TestExtrema(t *testing.T) {
	f := thermal.NewFrame(32, 32)
	f.SetGray16(20, 10, color.Gray16{Y: 65535})
	a, err := thermal.NewAnalyzer(thermal.Default())
	if err != nil {
		t.Fatal(err)
	}
	img := Extrema(a.Analyze(f))
	if img.Bounds() != f.Bounds() {
		t.Fatal(img.Bounds())
	}
	if got := img.NRGBAAt(20, 10); got != hotMarker {
		t.Fatal(got)
	}
	if got := img.NRGBAAt(0, 0); got != coldMarker {
		t.Fatal(got)
	}
}
