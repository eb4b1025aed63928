// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermaltest generates synthetic canopy frames for testing and for
// demoing the viewer without flight imagery.
package thermaltest

import (
	"image/color"
	"math/rand"

	"github.com/quagsire/go-cwsi/thermal"
)

type vector struct {
	intensity float64
	x         float64
	y         float64
}

// Canopy produces frames with a handful of warm and cool patches drifting
// over a uniform background. Deterministic: two generators with the same size
// emit the same sequence.
type Canopy struct {
	rand    *rand.Rand
	vectors []vector
	w       int
	h       int
}

// New returns a generator for frames of the given size.
func New(w, h int) *Canopy {
	c := &Canopy{rand: rand.New(rand.NewSource(0)), w: w, h: h}
	c.vectors = make([]vector, 10)
	for i := range c.vectors {
		c.vectors[i].intensity = c.rand.NormFloat64() * 40
		c.vectors[i].x = c.rand.NormFloat64()*float64(w)/6 + float64(w)/2
		c.vectors[i].y = c.rand.NormFloat64()*float64(h)/6 + float64(h)/2
	}
	return c
}

func (c *Canopy) update() {
	for i := range c.vectors {
		c.vectors[i].intensity += c.rand.NormFloat64() * 0.5
		c.vectors[i].x += c.rand.NormFloat64() * 0.2
		c.vectors[i].y += c.rand.NormFloat64() * 0.2
	}
}

// Next renders the next frame of the sequence.
func (c *Canopy) Next() *thermal.Frame {
	const (
		base         = 32768
		dynamicRange = 8192
	)
	c.update()
	f := thermal.NewFrame(c.w, c.h)
	f.Source = thermal.SourceSynthetic
	for y := 0; y < c.h; y++ {
		fy := float64(y)
		for x := 0; x < c.w; x++ {
			fx := float64(x)
			value := float64(base)
			for _, vect := range c.vectors {
				distance := (vect.x-fx)*(vect.x-fx) + (vect.y-fy)*(vect.y-fy)
				value += vect.intensity * 256 / (distance + 1)
			}
			if value > base+dynamicRange {
				value = base + dynamicRange
			}
			if value < base-dynamicRange {
				value = base - dynamicRange
			}
			f.SetGray16(x, y, color.Gray16{Y: uint16(value)})
		}
	}
	return f
}
