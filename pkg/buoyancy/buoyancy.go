// Package buoyancy computes the hydrostatic equilibrium of a hull: the
// closed-form cross-section area model, displaced volume as a function of
// waterline height, and the bisection search for the height at which
// displaced water mass equals total mass. It works on the same analytic
// section model the profile generator uses, not on the mesh.
package buoyancy

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/wmppaul/bow-wow/pkg/hull"
)

const (
	// waterDensity is fresh water in g/mm3.
	waterDensity = 0.001

	// bowStations is the number of trapezoid-rule stations along the
	// linear bow taper.
	bowStations = 32

	maxIterations = 50
	// relVolumeTol ends the search when displaced volume is within 0.1%
	// of the target.
	relVolumeTol = 1e-3
	// bracketTol ends the search when the height bracket is below 0.1mm.
	bracketTol = 0.1

	// sinkFraction flags the boat as sinking when the waterline reaches
	// this share of the hull height. A usability warning, not an error.
	sinkFraction = 0.95
)

// Result bundles the solved waterline and the derived display
// quantities the UI reads out.
type Result struct {
	Waterline       float64 `json:"waterline"`       // mm above the keel
	DisplacedVolume float64 `json:"displacedVolume"` // mm3 at the waterline
	ShellVolume     float64 `json:"shellVolume"`     // mm3 of printed material
	ShellMass       float64 `json:"shellMass"`       // g
	TotalMass       float64 `json:"totalMass"`       // g, shell + payloads
	WouldSink       bool    `json:"wouldSink"`
}

// sectionArea is the closed-form area of the U-shaped outer profile up
// to height h. Three regimes: waterline inside the bilge arcs (center
// strip plus two circular-segment corners), waterline above the arcs
// (full rectangle minus the square corners plus the quarter circles),
// and a radius-free plain rectangle.
func sectionArea(beam, radius, h float64) float64 {
	if h <= 0 || beam <= 0 {
		return 0
	}
	if radius <= 0 {
		return beam * h
	}
	if h <= radius {
		// The two corner pieces together form one circular segment cut
		// at distance radius-h from the arc center.
		d := radius - h
		segment := radius*radius*math.Acos(d/radius) - d*math.Sqrt(radius*radius-d*d)
		return (beam-2*radius)*h + segment
	}
	return beam*h - (2-math.Pi/2)*radius*radius
}

// submergedArea returns the outer section area up to height h at the
// given taper position.
func submergedArea(p hull.Params, scale, bowProgress, h float64) float64 {
	halfBeam, radius := hull.SectionShape(p, scale, bowProgress)
	if halfBeam <= 0 {
		return 0
	}
	return sectionArea(2*halfBeam, radius, math.Min(h, p.Height))
}

// shellSectionArea returns the solid material area of a full-height
// section at the given taper position: outer area minus the cavity.
func shellSectionArea(p hull.Params, scale, bowProgress float64) float64 {
	halfBeam, radius := hull.SectionShape(p, scale, bowProgress)
	if halfBeam <= 0 {
		return 0
	}
	outer := sectionArea(2*halfBeam, radius, p.Height)

	innerHalfBeam := halfBeam - p.WallThickness
	if innerHalfBeam <= 0 {
		return outer
	}
	innerRadius := math.Min(radius, innerHalfBeam)
	cavity := sectionArea(2*innerHalfBeam, innerRadius, p.Height-p.WallThickness)
	return outer - cavity
}

// integrateBow runs the trapezoid rule over the linear taper, evaluating
// area at each station through f.
func integrateBow(p hull.Params, f func(scale, progress float64) float64) float64 {
	bowLength := p.Length * p.BowLengthFrac
	xs := make([]float64, bowStations+1)
	ys := make([]float64, bowStations+1)
	for i := 0; i <= bowStations; i++ {
		t := float64(i) / bowStations
		xs[i] = bowLength * t
		ys[i] = f(1-t, t)
	}
	return integrate.Trapezoidal(xs, ys)
}

// DisplacedVolume returns the water volume (mm3) the hull displaces when
// submerged to height h. The constant-section stern contributes exactly;
// the taper is integrated numerically.
func DisplacedVolume(params hull.Params, h float64) float64 {
	p := params.Clamped()
	h = math.Max(math.Min(h, p.Height), 0)
	if h == 0 {
		return 0
	}
	sternLength := p.Length * (1 - p.BowLengthFrac)
	stern := submergedArea(p, 1, 0, h) * sternLength
	bow := integrateBow(p, func(scale, progress float64) float64 {
		return submergedArea(p, scale, progress, h)
	})
	return stern + bow
}

// ShellVolume returns the printed material volume (mm3) of the hollow
// shell, integrated the same way as displacement but on the
// outer-minus-inner section area.
func ShellVolume(params hull.Params) float64 {
	p := params.Clamped()
	sternLength := p.Length * (1 - p.BowLengthFrac)
	stern := shellSectionArea(p, 1, 0) * sternLength
	bow := integrateBow(p, func(scale, progress float64) float64 {
		return shellSectionArea(p, scale, progress)
	})
	return stern + bow
}

// Solve finds the waterline height at which displaced mass equals total
// mass by bisection over [0, height]. Displaced volume is monotonically
// non-decreasing in height for every section the profile generator can
// produce, so the bracket is always valid; on iteration exhaustion the
// midpoint is returned as a best effort rather than an error.
func Solve(params hull.Params) Result {
	p := params.Clamped()

	shellVolume := ShellVolume(p)
	shellMass := shellVolume / 1000 * p.MaterialDensity // mm3 -> cm3
	totalMass := shellMass + p.MotorMass + p.BatteryMass + p.BallastMass

	r := Result{
		ShellVolume: shellVolume,
		ShellMass:   shellMass,
		TotalMass:   totalMass,
	}

	targetVolume := totalMass / waterDensity

	if DisplacedVolume(p, p.Height) < targetVolume {
		// Fully submerged and still too heavy.
		r.Waterline = p.Height
		r.DisplacedVolume = DisplacedVolume(p, p.Height)
		r.WouldSink = true
		return r
	}

	lo, hi := 0.0, p.Height
	mid := p.Height / 2
	for i := 0; i < maxIterations; i++ {
		mid = (lo + hi) / 2
		v := DisplacedVolume(p, mid)
		if math.Abs(v-targetVolume) <= relVolumeTol*targetVolume || hi-lo < bracketTol {
			break
		}
		if v < targetVolume {
			lo = mid
		} else {
			hi = mid
		}
	}

	r.Waterline = mid
	r.DisplacedVolume = DisplacedVolume(p, mid)
	r.WouldSink = mid >= sinkFraction*p.Height
	return r
}

// BallastForWaterline returns the ballast mass (g) needed to bring the
// hull down to the requested waterline, given the other masses. Negative
// results mean the hull already floats deeper than requested.
func BallastForWaterline(params hull.Params, waterline float64) float64 {
	p := params.Clamped()
	displaced := DisplacedVolume(p, waterline) * waterDensity
	shellMass := ShellVolume(p) / 1000 * p.MaterialDensity
	return displaced - shellMass - p.MotorMass - p.BatteryMass
}
