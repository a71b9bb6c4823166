// Package motion converts normalized stick deflection into relative cursor
// displacement. Shaping is a pure function of the sample and config: an
// inclusive deadzone, a linear rescale of the remaining range so output is
// continuous at the deadzone edge, and a power acceleration curve.
package motion

import "math"

// AxisSample is one poll cycle's stick deflection, each axis in [-1, 1].
type AxisSample struct {
	X float64
	Y float64
}

// Displacement is the relative cursor move for one cycle, in pixels.
type Displacement struct {
	DX int
	DY int
}

// IsZero reports whether the displacement moves the cursor at all.
func (d Displacement) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Add returns the component-wise sum of two displacements.
func (d Displacement) Add(o Displacement) Displacement {
	return Displacement{DX: d.DX + o.DX, DY: d.DY + o.DY}
}

// StickConfig holds the shaping parameters for one stick.
type StickConfig struct {
	// Deadzone is the magnitude below which an axis reads as centered, in [0, 1).
	Deadzone float64
	// MaxSpeed is the displacement in pixels per tick at full deflection.
	MaxSpeed float64
	// Exponent is the acceleration power curve, >= 1. 1 is linear.
	Exponent float64
}

// Shape maps a stick sample to a pixel displacement. Samples outside [-1, 1]
// are clamped and NaN reads as centered; shaping never fails.
func Shape(s AxisSample, cfg StickConfig) Displacement {
	return Displacement{
		DX: shapeAxis(s.X, cfg),
		DY: shapeAxis(s.Y, cfg),
	}
}

func shapeAxis(v float64, cfg StickConfig) int {
	v = Clamp(v)
	mag := math.Abs(v)
	if mag <= cfg.Deadzone {
		return 0
	}
	// Rescale [deadzone, 1] to [0, 1] so the deadzone edge maps to zero
	// output instead of jumping.
	mag = (mag - cfg.Deadzone) / (1.0 - cfg.Deadzone)
	mag = math.Pow(mag, cfg.Exponent)
	return roundAwayFromZero(math.Copysign(mag*cfg.MaxSpeed, v))
}

// Clamp forces a raw axis value into [-1, 1]. NaN reads as 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1.0:
		return -1.0
	case v > 1.0:
		return 1.0
	}
	return v
}

// roundAwayFromZero rounds half away from zero, so +0.5 -> 1 and -0.5 -> -1.
// Fractional pixels are not actionable; symmetric rounding keeps left/right
// and up/down motion identical in magnitude.
func roundAwayFromZero(v float64) int {
	return int(math.Copysign(math.Floor(math.Abs(v)+0.5), v))
}
