// Package hull generates the parametric hull shell mesh: cross-section
// profiles, longitudinal sequencing, and the closure geometry that makes
// the shell watertight. All dimensions are millimetres, masses grams.
package hull

import (
	"encoding/json"
	"math"
)

// BowStyle selects the shape of the tapering bow section.
type BowStyle int

const (
	// BowPlumb is a vertical stem: the taper narrows the beam but every
	// point keeps its longitudinal station.
	BowPlumb BowStyle = iota
	// BowRaked leans the stem forward: taller points shift further toward
	// the bow, controlled by the rake angle.
	BowRaked
	// BowDeepV flattens the bilge radius toward the tip, producing a
	// V-shaped underwater entry, controlled by the entry angle.
	BowDeepV
)

// String returns the style name used in persisted records and the UI.
func (s BowStyle) String() string {
	switch s {
	case BowPlumb:
		return "plumb"
	case BowRaked:
		return "raked"
	case BowDeepV:
		return "deep-v"
	}
	return "unknown"
}

// ParseBowStyle maps a persisted style name back to a BowStyle.
// Unknown names fall back to plumb.
func ParseBowStyle(name string) BowStyle {
	switch name {
	case "raked":
		return BowRaked
	case "deep-v":
		return BowDeepV
	}
	return BowPlumb
}

// MarshalJSON encodes the style by name so saved designs stay readable
// and stable if the enum order ever changes.
func (s BowStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BowStyle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = ParseBowStyle(name)
	return nil
}

// Params is the immutable input record describing one hull. It is the
// only configuration the core consumes; the surrounding application owns
// editing and persistence.
type Params struct {
	Length        float64  `json:"length"`        // overall length, mm
	Beam          float64  `json:"beam"`          // maximum width, mm
	Height        float64  `json:"height"`        // hull height keel to gunwale, mm
	WallThickness float64  `json:"wallThickness"` // shell wall thickness, mm
	BilgeRadius   float64  `json:"bilgeRadius"`   // bottom corner fillet radius, mm
	BowStyle      BowStyle `json:"bowStyle"`
	BowAngle      float64  `json:"bowAngle"`      // rake or deep-v entry angle, degrees
	BowLengthFrac float64  `json:"bowLengthFrac"` // fraction of length used by the bow taper

	// Motor mount accessory geometry.
	MountShaftDiameter float64 `json:"mountShaftDiameter"` // mm
	MountHeight        float64 `json:"mountHeight"`        // mm
	MountNeckWidth     float64 `json:"mountNeckWidth"`     // mm

	// Payload masses, grams.
	MotorMass   float64 `json:"motorMass"`
	BatteryMass float64 `json:"batteryMass"`
	BallastMass float64 `json:"ballastMass"`

	// Shell material density, g/cm3. Defaults to PLA.
	MaterialDensity float64 `json:"materialDensity"`
}

// DefaultParams returns the canonical starting hull: a 150mm bench-test
// hull that floats with a small motor and battery aboard.
func DefaultParams() Params {
	return Params{
		Length:             150,
		Beam:               40,
		Height:             25,
		WallThickness:      1.2,
		BilgeRadius:        5,
		BowStyle:           BowPlumb,
		BowAngle:           30,
		BowLengthFrac:      0.4,
		MountShaftDiameter: 4,
		MountHeight:        12,
		MountNeckWidth:     8,
		MotorMass:          10,
		BatteryMass:        23,
		BallastMass:        0,
		MaterialDensity:    1.24,
	}
}

// minDim is the smallest positive dimension the clamping step will
// produce. Degenerate inputs are pulled up to this rather than rejected.
const minDim = 1e-3

// Clamped returns a geometrically safe copy of p. Wall thickness is held
// far enough below half the beam and the hull height that a full-scale
// section always keeps a cavity, the bilge radius is held inside the
// half beam and the height, and the bow fraction is kept away from 0
// and 1 so both the stern run and the taper exist. The mesher and the
// buoyancy solver always consume the clamped form, so neither has a
// failure path for degenerate input.
func (p Params) Clamped() Params {
	c := p
	c.Length = math.Max(c.Length, minDim)
	c.Beam = math.Max(c.Beam, minDim)
	c.Height = math.Max(c.Height, minDim)

	maxWall := math.Min(c.Beam/2, c.Height) - 2*minDim
	c.WallThickness = clamp(c.WallThickness, minDim, math.Max(maxWall, minDim))

	maxRadius := math.Min(c.Beam/2, c.Height) - minDim
	c.BilgeRadius = clamp(c.BilgeRadius, 0, math.Max(maxRadius, 0))

	c.BowLengthFrac = clamp(c.BowLengthFrac, 0.05, 0.95)
	c.BowAngle = clamp(c.BowAngle, 0, 75)

	c.MountShaftDiameter = math.Max(c.MountShaftDiameter, minDim)
	c.MountHeight = math.Max(c.MountHeight, minDim)
	c.MountNeckWidth = math.Max(c.MountNeckWidth, minDim)

	c.MotorMass = math.Max(c.MotorMass, 0)
	c.BatteryMass = math.Max(c.BatteryMass, 0)
	c.BallastMass = math.Max(c.BallastMass, 0)
	if c.MaterialDensity <= 0 {
		c.MaterialDensity = DefaultParams().MaterialDensity
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
