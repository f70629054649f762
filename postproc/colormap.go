/*
DESCRIPTION
  colormap.go implements the jet-256 palette and the value-to-index
  color mapping. The palette is exposed as a
  gonum.org/v1/plot/palette.Palette for a collaborator renderer to
  consume directly; this package does not draw or encode an image.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package postproc

import (
	"image/color"
	"math"
)

// jetEntryCount is the size of the standard Matlab "jet" colormap.
const jetEntryCount = 256

// JetPalette implements gonum.org/v1/plot/palette.Palette over the
// standard Matlab jet colormap.
type JetPalette struct{}

// Colors returns the 256 jet colors, dark blue to dark red.
func (JetPalette) Colors() []color.Color {
	out := make([]color.Color, jetEntryCount)
	for i := range out {
		out[i] = jetColor(i)
	}
	return out
}

// jetColor computes jet-colormap entry i (0..255) via the standard
// piecewise-linear red/green/blue ramps.
func jetColor(i int) color.RGBA {
	x := float64(i) / float64(jetEntryCount-1)
	return color.RGBA{
		R: channelByte(jetRed(x)),
		G: channelByte(jetGreen(x)),
		B: channelByte(jetBlue(x)),
		A: 255,
	}
}

func channelByte(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255))
}

func jetRed(x float64) float64   { return jetRamp(2*x - 1.5) }
func jetGreen(x float64) float64 { return jetRamp(2*x - 1) }
func jetBlue(x float64) float64  { return jetRamp(2*x - 0.5) }

// jetRamp is the trapezoid ramp shared by the three jet channels,
// shifted per-channel by the caller.
func jetRamp(x float64) float64 {
	switch {
	case x < -0.75 || x > 0.75:
		return 0
	case x < -0.25:
		return (x + 0.75) * 2
	case x < 0.25:
		return 1
	case x <= 0.75:
		return (0.75 - x) * 2
	default:
		return 0
	}
}

// ColorIndex maps v, clamped to [lo, hi], linearly onto [0, 255]:
// idx = floor((v-lo)/(hi-lo) * 255). NaN maps to -1, signaling the caller
// to render white.
func ColorIndex(v, lo, hi float64) int {
	if math.IsNaN(v) {
		return -1
	}
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	if hi == lo {
		return 0
	}
	idx := int(math.Floor((v - lo) / (hi - lo) * float64(jetEntryCount-1)))
	if idx < 0 {
		idx = 0
	} else if idx > jetEntryCount-1 {
		idx = jetEntryCount - 1
	}
	return idx
}
