// File: internal/pptx/emu.go
package pptx

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// inch converts inches to EMU, clamped to the safe range.
func inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// point converts points to EMU.
func point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// angle60k converts degrees to DrawingML 60000ths-of-a-degree units.
func angle60k(deg float64) int64 {
	return clampEMU(deg * 60000)
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
