/*
DESCRIPTION
  methods.go declares the tagged-variant method types (FilterMethod,
  InterpMethod, IterMethod) and PhysicalParam/Thermocouple, following the
  enum-and-struct convention revid/config.Config uses for its own tagged
  options (InputFile/InputRaspivid/..., H264/H265/MJPEG/...).

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
	"fmt"
	"math"
)

// FilterKind tags which temporal filter a FilterMethod represents.
type FilterKind int

const (
	FilterNo FilterKind = iota
	FilterMedian
	FilterWavelet
)

// FilterMethod is the tagged variant describing which temporal filter to
// apply before peak detection.
type FilterMethod struct {
	Kind FilterKind `json:"kind"`

	// WindowSize applies to FilterMedian: 1 <= WindowSize <= nframes/10.
	WindowSize int `json:"window_size,omitempty"`

	// ThresholdRatio applies to FilterWavelet: in [0, 1).
	ThresholdRatio float64 `json:"threshold_ratio,omitempty"`
}

// Validate checks the invariants for whichever Kind is set, given the
// total number of frames being filtered (needed to bound WindowSize).
func (f FilterMethod) Validate(nframes int) error {
	switch f.Kind {
	case FilterNo:
		return nil
	case FilterMedian:
		if f.WindowSize < 1 || f.WindowSize > nframes/10 {
			return fmt.Errorf("median window size %d out of range [1, %d]", f.WindowSize, nframes/10)
		}
		return nil
	case FilterWavelet:
		if math.IsNaN(f.ThresholdRatio) || f.ThresholdRatio < 0 || f.ThresholdRatio >= 1 {
			return fmt.Errorf("wavelet threshold ratio %v out of range [0, 1)", f.ThresholdRatio)
		}
		return nil
	default:
		return fmt.Errorf("unknown filter kind %d", f.Kind)
	}
}

// InterpKind tags which interpolation shape an InterpMethod represents.
type InterpKind int

const (
	InterpHorizontal InterpKind = iota
	InterpHorizontalExtra
	InterpVertical
	InterpVerticalExtra
	InterpBilinear
	InterpBilinearExtra
)

// IsBilinear reports whether k is one of the two bilinear variants.
func (k InterpKind) IsBilinear() bool {
	return k == InterpBilinear || k == InterpBilinearExtra
}

// IsExtra reports whether k is one of the extrapolating variants.
func (k InterpKind) IsExtra() bool {
	return k == InterpHorizontalExtra || k == InterpVerticalExtra || k == InterpBilinearExtra
}

// InterpMethod is the tagged variant describing how the sparse
// thermocouple readings are interpolated over the analyzed area. Ty/Tx
// only apply to the bilinear variants, where Ty*Tx must equal
// len(thermocouples).
type InterpMethod struct {
	Kind InterpKind `json:"kind"`
	Ty   int        `json:"ty,omitempty"`
	Tx   int        `json:"tx,omitempty"`
}

// Validate checks Ty*Tx == thermocoupleCount for bilinear variants.
func (m InterpMethod) Validate(thermocoupleCount int) error {
	if !m.Kind.IsBilinear() {
		return nil
	}
	if m.Ty <= 0 || m.Tx <= 0 || m.Ty*m.Tx != thermocoupleCount {
		return fmt.Errorf("bilinear grid %dx%d does not match thermocouple count %d", m.Ty, m.Tx, thermocoupleCount)
	}
	return nil
}

// IterKind tags which Newton iteration variant an IterMethod represents.
type IterKind int

const (
	IterNewtonTangent IterKind = iota
	IterNewtonDown
)

// IterMethod is the tagged variant selecting a Newton iteration for the
// inverse solve.
type IterMethod struct {
	Kind       IterKind `json:"kind"`
	H0         float64  `json:"h0"`
	MaxIterNum int      `json:"max_iter_num"`
}

// Validate checks H0 is finite and MaxIterNum is positive.
func (m IterMethod) Validate() error {
	if math.IsNaN(m.H0) || math.IsInf(m.H0, 0) {
		return fmt.Errorf("h0 %v is not finite", m.H0)
	}
	if m.MaxIterNum <= 0 {
		return fmt.Errorf("max iter num %d must be positive", m.MaxIterNum)
	}
	return nil
}

// PhysicalParam holds the user-supplied physical constants driving the
// inverse solve.
type PhysicalParam struct {
	PeakTemperature          float64 `json:"peak_temperature"`
	SolidThermalConductivity float64 `json:"solid_thermal_conductivity"`
	SolidThermalDiffusivity  float64 `json:"solid_thermal_diffusivity"`
	CharacteristicLength     float64 `json:"characteristic_length"`
	AirThermalConductivity   float64 `json:"air_thermal_conductivity"`
}

// Validate checks every field is finite.
func (p PhysicalParam) Validate() error {
	fields := map[string]float64{
		"peak_temperature":           p.PeakTemperature,
		"solid_thermal_conductivity": p.SolidThermalConductivity,
		"solid_thermal_diffusivity":  p.SolidThermalDiffusivity,
		"characteristic_length":      p.CharacteristicLength,
		"air_thermal_conductivity":   p.AirThermalConductivity,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("physical param %s = %v is not finite", name, v)
		}
	}
	return nil
}

// Position is a full-video-coordinate pixel position, which may fall
// outside the analyzed area once translated.
type Position struct {
	Y int `json:"y"`
	X int `json:"x"`
}

// Thermocouple is a sparse (position, DAQ column) pair.
type Thermocouple struct {
	ColumnIndex int      `json:"column_index"`
	Position    Position `json:"position"`
}
