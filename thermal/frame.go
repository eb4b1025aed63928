// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"image"
)

// Default flight rig resolution. The radiometric TIFFs come out of the rig at
// 160x120; nothing in the analysis assumes it.
const (
	DefaultWidth  = 160
	DefaultHeight = 120
)

// Source records how a frame came to exist.
type Source int

const (
	// SourceDecoded means the frame holds real sensor counts.
	SourceDecoded Source = iota
	// SourceFallback means decoding failed and the frame is zero-filled.
	// Analysis proceeds on it anyway so a batch run always completes and
	// always emits a report.
	SourceFallback
	// SourceSynthetic means the frame was generated, e.g. by thermaltest.
	SourceSynthetic
)

func (s Source) String() string {
	switch s {
	case SourceDecoded:
		return "decoded"
	case SourceFallback:
		return "fallback"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Frame is a single radiometric capture, 16 bits of intensity per pixel.
//
// A Frame is immutable once handed to an Analyzer and owned by the call that
// produced it, so independent frames can be analyzed concurrently without
// locking.
type Frame struct {
	*image.Gray16
	Source Source
	Path   string // originating file, if any
}

// NewFrame returns a zeroed frame of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{Gray16: image.NewGray16(image.Rect(0, 0, w, h))}
}

// Fallback returns the zero-filled frame substituted when ingestion fails.
func Fallback(path string) *Frame {
	f := NewFrame(DefaultWidth, DefaultHeight)
	f.Source = SourceFallback
	f.Path = path
	return f
}

// RawAt returns the sensor counts at (x, y).
func (f *Frame) RawAt(x, y int) uint16 {
	return f.Gray16At(x, y).Y
}
