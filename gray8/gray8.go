// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gray8 reduces 16 bit radiometric frames to 8 bits for display.
//
// The 8 bit rendition is only for human eyes; analysis always runs on the
// 16 bit source.
package gray8

import (
	"image"
	"image/color"
)

// Min returns the smallest pixel value in the image.
func Min(i *image.Gray16) uint16 {
	out := uint16(0xffff)
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := i.Gray16At(x, y).Y; v < out {
				out = v
			}
		}
	}
	return out
}

// Max returns the largest pixel value in the image.
func Max(i *image.Gray16) uint16 {
	out := uint16(0)
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := i.Gray16At(x, y).Y; v > out {
				out = v
			}
		}
	}
	return out
}

// Normalize rescales the frame's observed dynamic range linearly into
// [0, 255], rounding to nearest. A constant frame comes out all zero instead
// of dividing by zero.
func Normalize(src *image.Gray16) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	floor := Min(src)
	delta := int(Max(src)) - int(floor)
	if delta == 0 {
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := int(src.Gray16At(x, y).Y) - int(floor)
			dst.SetGray(x, y, color.Gray{Y: uint8((v*255 + delta/2) / delta)})
		}
	}
	return dst
}

// Iron-style gradient anchors, dark to hot, evenly spaced over [0, 255].
var ironAnchors = []color.NRGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x20, 0x00, 0x60, 0xff},
	{0x90, 0x10, 0x80, 0xff},
	{0xe0, 0x40, 0x00, 0xff},
	{0xff, 0xa0, 0x00, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// PseudoColor maps a display frame through the iron palette.
func PseudoColor(src *image.Gray) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetNRGBA(x, y, ironColor(src.GrayAt(x, y).Y))
		}
	}
	return dst
}

func ironColor(v uint8) color.NRGBA {
	span := 255 / (len(ironAnchors) - 1)
	i := int(v) / span
	if i >= len(ironAnchors)-1 {
		return ironAnchors[len(ironAnchors)-1]
	}
	f := int(v) - i*span
	lo := ironAnchors[i]
	hi := ironAnchors[i+1]
	return color.NRGBA{
		R: uint8(int(lo.R) + (int(hi.R)-int(lo.R))*f/span),
		G: uint8(int(lo.G) + (int(hi.G)-int(lo.G))*f/span),
		B: uint8(int(lo.B) + (int(hi.B)-int(lo.B))*f/span),
		A: 0xff,
	}
}
