// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import "errors"

// Calibration maps raw sensor counts to surface temperature and anchors the
// CWSI baselines. It is a value type fixed at construction; NewAnalyzer
// validates it once so a bad configuration is rejected before any frame is
// touched rather than blowing up in a per-pixel loop.
//
// The count-to-temperature relation is linear and inverted: 0 counts maps to
// TempMaxC and RawMax counts to TempAirC. It was carried over from the flight
// rig's previous processing script and has not been checked against a
// blackbody reference. TODO: verify against a calibrated source before
// trusting absolute temperatures.
type Calibration struct {
	RawMax       uint16  // full-scale sensor count
	TempMaxC     float64 // dry, dead-canopy ceiling
	TempAirC     float64 // ambient air reference
	WetBaselineC float64 // well-watered canopy temperature
	DryBaselineC float64 // fully stressed canopy temperature
}

// Default returns the calibration in use on the flight rig.
//
// The baselines are provisional placeholders: wet is pinned to the air
// reference and dry to the ceiling, not to measured references.
func Default() Calibration {
	return Calibration{
		RawMax:       65535,
		TempMaxC:     38.0,
		TempAirC:     21.111111,
		WetBaselineC: 21.111111,
		DryBaselineC: 38.0,
	}
}

// Validate rejects configurations that would make per-pixel math undefined.
func (c Calibration) Validate() error {
	if c.RawMax == 0 {
		return errors.New("calibration: RawMax is zero")
	}
	if c.DryBaselineC == c.WetBaselineC {
		return errors.New("calibration: wet and dry baselines are equal, CWSI denominator is zero")
	}
	return nil
}

// TempC converts raw counts to an estimated surface temperature in Celsius.
// Strictly decreasing in v over [0, RawMax].
func (c Calibration) TempC(v uint16) float64 {
	return c.TempAirC + (float64(c.RawMax)-float64(v))/float64(c.RawMax)*(c.TempMaxC-c.TempAirC)
}

// CWSI computes the crop water stress index for a surface temperature.
//
// Kept in the full four-term form so distinct wet/dry baselines keep working
// once the provisional defaults are replaced; with the defaults it reduces to
// (T - air) / (dry - air). Not clamped: values outside [0, 1] flag
// out-of-calibration readings and are returned as-is.
func (c Calibration) CWSI(tempC float64) float64 {
	num := (tempC - c.TempAirC) - (c.WetBaselineC - c.TempAirC)
	den := (c.DryBaselineC - c.TempAirC) - (c.WetBaselineC - c.TempAirC)
	return num / den
}
