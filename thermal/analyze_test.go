// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"image/color"
	"math"
	"testing"
)

func frameOf(t *testing.T, rows [][]uint16) *Frame {
	t.Helper()
	f := NewFrame(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			f.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return f
}

func mustAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(Default())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAnalyzeExtrema(t *testing.T) {
	a := mustAnalyzer(t)
	an := a.Analyze(frameOf(t, [][]uint16{
		{0, 65535},
		{30000, 10000},
	}))
	if an.Hottest != (PixelSample{X: 1, Y: 0, Raw: 65535}) {
		t.Fatal(an.Hottest)
	}
	if an.Coldest != (PixelSample{X: 0, Y: 0, Raw: 0}) {
		t.Fatal(an.Coldest)
	}
	if got := an.Coldest.TempC(an.Cal); got != 38.0 {
		t.Fatal(got)
	}
	if got := an.Hottest.TempC(an.Cal); math.Abs(got-21.111111) > 1e-6 {
		t.Fatal(got)
	}
	if got := an.Coldest.CWSI(an.Cal); math.Abs(got-1.0) > 1e-9 {
		t.Fatal(got)
	}
	if got := an.Hottest.CWSI(an.Cal); math.Abs(got) > 1e-9 {
		t.Fatal(got)
	}
}

func TestAnalyzeTieBreak(t *testing.T) {
	// First occurrence in row-major order wins; later ties must not
	// overwrite it.
	a := mustAnalyzer(t)
	an := a.Analyze(frameOf(t, [][]uint16{
		{5, 9, 1},
		{9, 1, 5},
	}))
	if an.Hottest != (PixelSample{X: 1, Y: 0, Raw: 9}) {
		t.Fatal(an.Hottest)
	}
	if an.Coldest != (PixelSample{X: 2, Y: 0, Raw: 1}) {
		t.Fatal(an.Coldest)
	}
}

func TestAnalyzeZeroFrame(t *testing.T) {
	// A fallback frame still yields a well-formed analysis.
	a := mustAnalyzer(t)
	an := a.Analyze(Fallback("missing.tif"))
	want := PixelSample{X: 0, Y: 0, Raw: 0}
	if an.Hottest != want || an.Coldest != want {
		t.Fatal(an.Hottest, an.Coldest)
	}
	if len(an.Samples) != DefaultWidth*DefaultHeight {
		t.Fatal(len(an.Samples))
	}
	if an.Frame.Source != SourceFallback {
		t.Fatal(an.Frame.Source)
	}
}

func TestAnalyzeSamplesRowMajor(t *testing.T) {
	a := mustAnalyzer(t)
	an := a.Analyze(frameOf(t, [][]uint16{
		{1, 2},
		{3, 4},
	}))
	want := []PixelSample{
		{0, 0, 1}, {1, 0, 2},
		{0, 1, 3}, {1, 1, 4},
	}
	if len(an.Samples) != len(want) {
		t.Fatal(len(an.Samples))
	}
	for i, s := range want {
		if an.Samples[i] != s {
			t.Fatalf("sample %d: %v != %v", i, an.Samples[i], s)
		}
	}
}

func TestNewAnalyzerRejectsBadCalibration(t *testing.T) {
	c := Default()
	c.DryBaselineC = c.WetBaselineC
	if _, err := NewAnalyzer(c); err == nil {
		t.Fatal("expected configuration error")
	}
}
