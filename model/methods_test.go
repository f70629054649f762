/*
DESCRIPTION
  methods_test.go exercises the tagged-variant Validate methods and their
  InvalidParam rules.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package model

import (
	"math"
	"testing"
)

func TestFilterMethodValidateMedianWindowBound(t *testing.T) {
	f := FilterMethod{Kind: FilterMedian, WindowSize: 11}
	if err := f.Validate(100); err == nil {
		t.Fatal("Validate() accepted a window size above nframes/10")
	}
	f.WindowSize = 10
	if err := f.Validate(100); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestFilterMethodValidateWaveletThresholdRange(t *testing.T) {
	f := FilterMethod{Kind: FilterWavelet, ThresholdRatio: 1}
	if err := f.Validate(100); err == nil {
		t.Fatal("Validate() accepted a threshold ratio of 1 (must be < 1)")
	}
	f.ThresholdRatio = 0.5
	if err := f.Validate(100); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestInterpMethodValidateOnlyChecksBilinear(t *testing.T) {
	m := InterpMethod{Kind: InterpHorizontal, Ty: 99, Tx: 99}
	if err := m.Validate(3); err != nil {
		t.Fatalf("Validate() error = %v, want nil for non-bilinear kind", err)
	}
}

func TestInterpMethodValidateBilinearProduct(t *testing.T) {
	m := InterpMethod{Kind: InterpBilinearExtra, Ty: 2, Tx: 3}
	if err := m.Validate(6); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if err := m.Validate(5); err == nil {
		t.Fatal("Validate() accepted ty*tx != thermocouple count")
	}
}

func TestIterMethodValidateRejectsNonFiniteH0(t *testing.T) {
	m := IterMethod{Kind: IterNewtonTangent, H0: math.NaN(), MaxIterNum: 10}
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() accepted NaN h0")
	}
}

func TestIterMethodValidateRejectsNonPositiveMaxIter(t *testing.T) {
	m := IterMethod{Kind: IterNewtonDown, H0: 10, MaxIterNum: 0}
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() accepted max_iter_num = 0")
	}
}

func TestPhysicalParamValidateRejectsNaNAnyField(t *testing.T) {
	p := PhysicalParam{
		PeakTemperature:          100,
		SolidThermalConductivity: 1,
		SolidThermalDiffusivity:  1,
		CharacteristicLength:     1,
		AirThermalConductivity:   math.NaN(),
	}
	if err := p.Validate(); err == nil {
		t.Fatal("Validate() accepted NaN air_thermal_conductivity")
	}
}
