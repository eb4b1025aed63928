// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package annotate draws extremum markers onto rendered frames.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/quagsire/go-cwsi/gray8"
	"github.com/quagsire/go-cwsi/thermal"
)

var (
	hotMarker  = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	coldMarker = color.NRGBA{0x00, 0xff, 0xff, 0xff}
)

// Extrema renders the frame in pseudocolor with the hottest and coldest
// samples marked and captioned.
func Extrema(a *thermal.Analysis) *image.NRGBA {
	img := gray8.PseudoColor(gray8.Normalize(a.Frame.Gray16))
	Mark(img, a.Hottest.X, a.Hottest.Y, caption(a.Hottest, a.Cal), hotMarker)
	Mark(img, a.Coldest.X, a.Coldest.Y, caption(a.Coldest, a.Cal), coldMarker)
	return img
}

func caption(s thermal.PixelSample, c thermal.Calibration) string {
	return fmt.Sprintf("%.1f C CWSI %.2f", s.TempC(c), s.CWSI(c))
}

// Mark draws a crosshair at (x, y) with a caption to its right. Pixels
// falling outside the image are dropped; drawing never fails.
func Mark(dst *image.NRGBA, x, y int, caption string, c color.NRGBA) {
	const arm = 4
	for d := -arm; d <= arm; d++ {
		set(dst, x+d, y, c)
		set(dst, x, y+d, c)
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+arm+2, y+4),
	}
	d.DrawString(caption)
}

func set(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, c)
	}
}
