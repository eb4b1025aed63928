// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ingest decodes radiometric imagery into analysis frames.
package ingest

import (
	"image"
	"image/color"
	"os"

	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/quagsire/go-cwsi/thermal"
)

// ReadFile decodes a 16 bit PNG or TIFF into a Frame.
//
// Decoding failures are not fatal: a zero-filled 160x120 fallback frame is
// returned together with the error, so a batch run still completes and emits
// a report for every input. The returned frame is never nil and never
// partially filled; check Frame.Source to tell a real capture from the
// placeholder.
func ReadFile(path string) (*thermal.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return thermal.Fallback(path), err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return thermal.Fallback(path), err
	}
	return frameOf(path, img), nil
}

// frameOf widens whatever the codec produced to 16 bit counts.
func frameOf(path string, img image.Image) *thermal.Frame {
	b := img.Bounds()
	out := thermal.NewFrame(b.Dx(), b.Dy())
	out.Path = path
	if g, ok := img.(*image.Gray16); ok && b.Min == (image.Point{}) {
		copy(out.Pix, g.Pix)
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out.SetGray16(x, y, c)
		}
	}
	return out
}
