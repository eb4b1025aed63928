// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ingest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/quagsire/go-cwsi/thermal"
)

func sensorImage() *image.Gray16 {
	i := image.NewGray16(image.Rect(0, 0, 4, 3))
	i.SetGray16(0, 0, color.Gray16{Y: 1234})
	i.SetGray16(3, 2, color.Gray16{Y: 65535})
	return i
}

func TestReadFilePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "flight.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, sensorImage()); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	frame, err := ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Source != thermal.SourceDecoded {
		t.Fatal(frame.Source)
	}
	if b := frame.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatal(b)
	}
	if v := frame.RawAt(0, 0); v != 1234 {
		t.Fatal(v)
	}
	if v := frame.RawAt(3, 2); v != 65535 {
		t.Fatal(v)
	}
}

func TestReadFileTIFF(t *testing.T) {
	p := filepath.Join(t.TempDir(), "flight.tif")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, sensorImage(), nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	frame, err := ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Source != thermal.SourceDecoded {
		t.Fatal(frame.Source)
	}
	if v := frame.RawAt(0, 0); v != 1234 {
		t.Fatal(v)
	}
}

func TestReadFileMissing(t *testing.T) {
	frame, err := ReadFile(filepath.Join(t.TempDir(), "nope.tif"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if frame == nil {
		t.Fatal("fallback frame must not be nil")
	}
	if frame.Source != thermal.SourceFallback {
		t.Fatal(frame.Source)
	}
	if b := frame.Bounds(); b.Dx() != thermal.DefaultWidth || b.Dy() != thermal.DefaultHeight {
		t.Fatal(b)
	}
	if v := frame.RawAt(10, 10); v != 0 {
		t.Fatal(v)
	}
}

func TestReadFileCorrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(p, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	frame, err := ReadFile(p)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if frame.Source != thermal.SourceFallback {
		t.Fatal(frame.Source)
	}
}
