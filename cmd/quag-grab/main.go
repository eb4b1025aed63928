// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// quag-grab captures a single frame from a FLIR Lepton on the capture rig
// and runs the water stress analysis on it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"

	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/devices/lepton"
	"periph.io/x/periph/devices/lepton/image14bit"
	"periph.io/x/periph/host"

	"github.com/quagsire/go-cwsi/annotate"
	"github.com/quagsire/go-cwsi/report"
	"github.com/quagsire/go-cwsi/thermal"
)

func mainImpl() error {
	i2cName := flag.String("i2c", "", "I²C bus to use")
	spiName := flag.String("spi", "", "SPI bus to use")
	i2cHz := flag.Int("i2chz", 0, "I²C bus speed")
	spiHz := flag.Int("spihz", 0, "SPI bus speed")
	output := flag.String("output", "reports/grab.md", "markdown report destination")
	meta := flag.Bool("meta", false, "print frame metadata")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("supply path to the annotated PNG to save")
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	spiBus, err := spireg.Open(*spiName)
	if err != nil {
		return err
	}
	defer spiBus.Close()
	if *spiHz != 0 {
		if err := spiBus.LimitSpeed(physic.Frequency(*spiHz) * physic.Hertz); err != nil {
			return err
		}
	}

	i2cBus, err := i2creg.Open(*i2cName)
	if err != nil {
		return err
	}
	defer i2cBus.Close()
	if *i2cHz != 0 {
		if err := i2cBus.SetSpeed(physic.Frequency(*i2cHz) * physic.Hertz); err != nil {
			return err
		}
	}

	dev, err := lepton.New(spiBus, i2cBus)
	if err != nil {
		return fmt.Errorf("%s\nIf testing without hardware, use quag-serve -demo", err)
	}
	raw := lepton.Frame{Gray14: image14bit.NewGray14(dev.Bounds())}
	if err := dev.NextFrame(&raw); err != nil {
		return err
	}
	if *meta {
		fmt.Printf("SinceStartup: %s\n", raw.Metadata.SinceStartup)
		fmt.Printf("FrameCount:   %d\n", raw.Metadata.FrameCount)
		fmt.Printf("Temp:         %s\n", raw.Metadata.Temp)
		fmt.Printf("TempHousing:  %s\n", raw.Metadata.TempHousing)
		fmt.Printf("FFCDesired:   %t\n", raw.Metadata.FFCDesired)
		fmt.Printf("Overtemp:     %t\n", raw.Metadata.Overtemp)
	}

	a, err := thermal.NewAnalyzer(thermal.Default())
	if err != nil {
		return err
	}
	an := a.Analyze(widen(&raw))
	fmt.Printf("hottest (%d, %d): %.2f C, CWSI %.3f\n",
		an.Hottest.X, an.Hottest.Y, an.Hottest.TempC(an.Cal), an.Hottest.CWSI(an.Cal))
	fmt.Printf("coldest (%d, %d): %.2f C, CWSI %.3f\n",
		an.Coldest.X, an.Coldest.Y, an.Coldest.TempC(an.Cal), an.Coldest.CWSI(an.Cal))

	if err := report.Write(*output, an); err != nil {
		return err
	}
	f, err := os.Create(flag.Args()[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, annotate.Extrema(an))
}

// widen promotes 14 bit sensor counts to the 16 bit analysis scale. The
// analysis is resolution independent so the Lepton's 80x60 goes through the
// same pipeline as the rig's 160x120 TIFFs.
func widen(src *lepton.Frame) *thermal.Frame {
	b := src.Bounds()
	out := thermal.NewFrame(b.Dx(), b.Dy())
	out.Path = "(live capture)"
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := uint16(src.Intensity14At(x, y)) << 2
			out.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return out
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nquag-grab: %s.\n", err)
		os.Exit(1)
	}
}
