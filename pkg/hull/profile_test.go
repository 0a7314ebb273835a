package hull_test

import (
	"math"
	"testing"

	"github.com/wmppaul/bow-wow/pkg/hull"
)

func TestProfileRingShape(t *testing.T) {
	p := hull.DefaultParams()
	prof := hull.NewProfile(p, 0, 1, 0, false)

	if prof.Collapsed() {
		t.Fatal("full-scale profile must not collapse")
	}
	if len(prof.Outer) != hull.RingPoints {
		t.Fatalf("outer ring has %d points, want %d", len(prof.Outer), hull.RingPoints)
	}
	if len(prof.Inner) != hull.RingPoints {
		t.Fatalf("inner ring has %d points, want %d", len(prof.Inner), hull.RingPoints)
	}

	// First and last outer points are the repeated bottom center.
	first, last := prof.Outer[0], prof.Outer[len(prof.Outer)-1]
	if first.X != 0 || first.Y != 0 {
		t.Errorf("outer ring starts at (%v,%v), want bottom center", first.X, first.Y)
	}
	if last.X != first.X || last.Y != first.Y {
		t.Errorf("outer ring does not close: first (%v,%v), last (%v,%v)", first.X, first.Y, last.X, last.Y)
	}

	// The ring spans the full beam and height.
	var minX, maxX, maxY float64
	for _, v := range prof.Outer {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	if math.Abs(minX+p.Beam/2) > 1e-9 || math.Abs(maxX-p.Beam/2) > 1e-9 {
		t.Errorf("outer ring spans [%v, %v], want +/- %v", minX, maxX, p.Beam/2)
	}
	if math.Abs(maxY-p.Height) > 1e-9 {
		t.Errorf("outer ring tops out at %v, want %v", maxY, p.Height)
	}

	// Inner ring is inset by the wall, bottom held at the wall thickness.
	var innerMinY = math.Inf(1)
	var innerMaxX float64
	for _, v := range prof.Inner {
		innerMinY = math.Min(innerMinY, v.Y)
		innerMaxX = math.Max(innerMaxX, v.X)
	}
	if math.Abs(innerMinY-p.WallThickness) > 1e-9 {
		t.Errorf("inner bottom at %v, want wall thickness %v", innerMinY, p.WallThickness)
	}
	if math.Abs(innerMaxX-(p.Beam/2-p.WallThickness)) > 1e-9 {
		t.Errorf("inner half beam %v, want %v", innerMaxX, p.Beam/2-p.WallThickness)
	}
}

// maxAbsX returns the widest transverse coordinate of a profile.
func maxAbsX(prof hull.Profile) float64 {
	if prof.Collapsed() {
		return math.Max(math.Abs(prof.TipOuter.X), math.Abs(prof.TipInner.X))
	}
	var m float64
	for _, v := range prof.Outer {
		m = math.Max(m, math.Abs(v.X))
	}
	for _, v := range prof.Inner {
		m = math.Max(m, math.Abs(v.X))
	}
	return m
}

func TestBowCollapse(t *testing.T) {
	styles := []struct {
		name  string
		style hull.BowStyle
		angle float64
	}{
		{"plumb", hull.BowPlumb, 0},
		{"raked", hull.BowRaked, 30},
		{"deep-v", hull.BowDeepV, 40},
	}
	for _, s := range styles {
		t.Run(s.name, func(t *testing.T) {
			p := hull.DefaultParams()
			p.BowStyle = s.style
			p.BowAngle = s.angle

			prev := math.Inf(1)
			for _, scale := range []float64{1, 0.5, 0.25, 0.1} {
				progress := 1 - scale
				w := maxAbsX(hull.NewProfile(p, 10, scale, progress, false))
				if w > prev {
					t.Errorf("width grew from %v to %v at scale %v", prev, w, scale)
				}
				prev = w
			}

			tip := hull.NewProfile(p, 10, 0, 1, true)
			if !tip.Collapsed() {
				t.Fatal("tip profile must collapse")
			}
			if tip.TipOuter.X != 0 || tip.TipInner.X != 0 {
				t.Errorf("tip not on centerline: outer x=%v inner x=%v", tip.TipOuter.X, tip.TipInner.X)
			}
			if tip.TipInner.Y != p.WallThickness {
				t.Errorf("tip inner at y=%v, want %v", tip.TipInner.Y, p.WallThickness)
			}
		})
	}
}

func TestRakedLean(t *testing.T) {
	p := hull.DefaultParams()
	p.BowStyle = hull.BowRaked
	p.BowAngle = 30

	prof := hull.NewProfile(p, 0, 0.5, 0.5, false)
	if prof.Collapsed() {
		t.Fatal("unexpected collapse")
	}

	// Taller points lean further forward: Z must grow with Y.
	bottom := prof.Outer[0]
	var top hull.Vec3
	for _, v := range prof.Outer {
		if v.Y > top.Y {
			top = v
		}
	}
	if top.Z <= bottom.Z {
		t.Errorf("top z=%v not forward of bottom z=%v", top.Z, bottom.Z)
	}
	want := top.Y * math.Tan(30*math.Pi/180) * 0.5
	if math.Abs((top.Z-bottom.Z)-want) > 1e-9 {
		t.Errorf("rake lean = %v, want %v", top.Z-bottom.Z, want)
	}

	// A plumb profile at the same station does not lean.
	p.BowStyle = hull.BowPlumb
	plumb := hull.NewProfile(p, 0, 0.5, 0.5, false)
	for i, v := range plumb.Outer {
		if v.Z != 0 {
			t.Fatalf("plumb point %d leaned to z=%v", i, v.Z)
		}
	}
}

func TestDeepVFlattensBilge(t *testing.T) {
	p := hull.DefaultParams()
	p.BowStyle = hull.BowDeepV
	p.BowAngle = 45

	_, atStern := hull.SectionShape(p, 0.8, 0)
	_, nearTip := hull.SectionShape(p, 0.8, 0.9)
	if nearTip >= atStern {
		t.Errorf("deep-v radius %v at progress 0.9, want below stern radius %v", nearTip, atStern)
	}

	p.BowStyle = hull.BowPlumb
	_, plumbStern := hull.SectionShape(p, 0.8, 0)
	_, plumbTip := hull.SectionShape(p, 0.8, 0.9)
	if plumbStern != plumbTip {
		t.Errorf("plumb radius changed with progress: %v vs %v", plumbStern, plumbTip)
	}
}

func TestSharpChineRingPointsDistinct(t *testing.T) {
	p := hull.DefaultParams()
	p.BilgeRadius = 0

	prof := hull.NewProfile(p, 0, 1, 0, false)
	if prof.Collapsed() {
		t.Fatal("full-scale profile must not collapse")
	}
	rings := map[string][]hull.Vec3{"outer": prof.Outer, "inner": prof.Inner}
	for name, ring := range rings {
		// The final point legitimately repeats the bottom center; every
		// other consecutive pair must stay apart or wall panels between
		// stations degenerate.
		for i := 1; i < len(ring)-1; i++ {
			a, b := ring[i-1], ring[i]
			if a.X == b.X && a.Y == b.Y {
				t.Fatalf("%s ring points %d and %d coincide at (%v,%v)", name, i-1, i, a.X, a.Y)
			}
		}
	}
}

func TestSectionShapeSnapsTinyRadius(t *testing.T) {
	p := hull.DefaultParams()
	p.BilgeRadius = 1e-6

	// A radius below the minimum feature size behaves as a sharp chine
	// for both the mesher and the solver's rectangular area regime.
	_, radius := hull.SectionShape(p.Clamped(), 1, 0)
	if radius != 0 {
		t.Errorf("radius = %v, want exactly 0", radius)
	}
}

func TestSectionShapeClampsRadius(t *testing.T) {
	p := hull.DefaultParams()
	p.BilgeRadius = 100 // far larger than the hull

	halfBeam, radius := hull.SectionShape(p.Clamped(), 0.2, 0.8)
	if radius >= halfBeam {
		t.Errorf("radius %v not clamped inside half beam %v", radius, halfBeam)
	}
	if radius < 0 {
		t.Errorf("radius %v negative", radius)
	}
}
