// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermal turns raw radiometric canopy frames into surface
// temperature estimates and crop water stress indices.
package thermal

// PixelSample is one grid cell and its raw sensor reading. Temperature and
// CWSI are derived on demand, never stored.
type PixelSample struct {
	X   int
	Y   int
	Raw uint16
}

// TempC returns the estimated surface temperature of the sample in Celsius.
func (p PixelSample) TempC(c Calibration) float64 {
	return c.TempC(p.Raw)
}

// CWSI returns the crop water stress index of the sample.
func (p PixelSample) CWSI(c Calibration) float64 {
	return c.CWSI(c.TempC(p.Raw))
}

// Analysis is the outcome of analyzing one frame. It is constructed once,
// never mutated, and discarded after reporting.
//
// Hottest and Coldest are labeled by raw counts (hottest = highest count) the
// way the rig's previous script labeled them, even though the provisional
// temperature map runs the other way. TODO: revisit the labels once the
// radiometric map is verified.
type Analysis struct {
	Frame   *Frame
	Samples []PixelSample // row-major, one per grid cell
	Hottest PixelSample
	Coldest PixelSample
	Cal     Calibration
}

// Analyzer applies one validated calibration to frames. It holds no mutable
// state so a single Analyzer is safe for concurrent use across frames.
type Analyzer struct {
	cal Calibration
}

// NewAnalyzer validates the calibration up front and returns an Analyzer
// bound to it.
func NewAnalyzer(cal Calibration) (*Analyzer, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cal: cal}, nil
}

// Calibration returns the calibration the Analyzer was built with.
func (a *Analyzer) Calibration() Calibration {
	return a.cal
}

// Analyze walks the frame in row-major order, collecting every sample and the
// extrema of the raw counts. Extrema are tracked on raw counts, not derived
// temperature; the count-to-temperature map is affine so both orderings carry
// the same information and counts avoid float comparisons.
func (a *Analyzer) Analyze(f *Frame) *Analysis {
	b := f.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Analysis{
		Frame:   f,
		Samples: make([]PixelSample, 0, w*h),
		Cal:     a.cal,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := PixelSample{X: x, Y: y, Raw: f.RawAt(x, y)}
			out.Samples = append(out.Samples, s)
			if x == 0 && y == 0 {
				out.Hottest = s
				out.Coldest = s
				continue
			}
			// Strict comparisons so the first occurrence wins on ties.
			if s.Raw > out.Hottest.Raw {
				out.Hottest = s
			}
			if s.Raw < out.Coldest.Raw {
				out.Coldest = s
			}
		}
	}
	return out
}
