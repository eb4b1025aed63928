// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// quag-query checks the capture rig's camera over I²C before a flight. The
// housing temperature is a useful sanity anchor for the ambient baseline
// used by the stress index.
package main

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/devices/lepton/cci"
	"periph.io/x/periph/host"

	"github.com/quagsire/go-cwsi/thermal"
)

func mainImpl() error {
	i2cName := flag.String("i2c", "", "I²C bus to use")
	i2cHz := flag.Int("hz", 0, "I²C bus speed")
	ffc := flag.Bool("ffc", false, "trigger a flat-field correction before reading")
	flag.Parse()

	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	if _, err := host.Init(); err != nil {
		return err
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
	dev, err := cci.New(i2cBus)
	if err != nil {
		return err
	}
	if *ffc {
		if err := dev.RunFFC(); err != nil {
			return err
		}
	}

	status, err := dev.GetStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Status:       %s\n", status.CameraStatus)
	serial, err := dev.GetSerial()
	if err != nil {
		return err
	}
	fmt.Printf("Serial:       0x%x\n", serial)
	uptime, err := dev.GetUptime()
	if err != nil {
		return err
	}
	fmt.Printf("Uptime:       %s\n", uptime)
	temp, err := dev.GetTemp()
	if err != nil {
		return err
	}
	fmt.Printf("Temp:         %s\n", temp)
	housing, err := dev.GetTempHousing()
	if err != nil {
		return err
	}
	fmt.Printf("Temp housing: %s\n", housing)

	cal := thermal.Default()
	housingC := float64(housing-physic.ZeroCelsius) / float64(physic.Kelvin)
	fmt.Printf("\nConfigured air baseline is %.1f C; housing reads %.1f C.\n", cal.TempAirC, housingC)
	if diff := housingC - cal.TempAirC; diff > 5 || diff < -5 {
		fmt.Printf("Baseline is %.1f C off the housing reading, consider recalibrating.\n", diff)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nquag-query: %s.\n", err)
		os.Exit(1)
	}
}
