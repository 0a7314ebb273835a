package buoyancy

import (
	"math"
	"testing"
)

func TestSectionAreaRegimes(t *testing.T) {
	tests := []struct {
		name            string
		beam, radius, h float64
		want            float64
	}{
		{"zero height", 20, 5, 0, 0},
		{"no radius is a rectangle", 20, 0, 7, 140},
		{"waterline at arc top", 20, 5, 5, (20-10)*5 + 25*math.Pi/2},
		{"above the arcs", 20, 5, 10, 20*10 - (2-math.Pi/2)*25},
		{"arcs meet at center", 10, 5, 5, 25 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sectionArea(tt.beam, tt.radius, tt.h)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("sectionArea(%v, %v, %v) = %v, want %v",
					tt.beam, tt.radius, tt.h, got, tt.want)
			}
		})
	}
}

func TestSectionAreaContinuousAtArcTop(t *testing.T) {
	const eps = 1e-7
	below := sectionArea(20, 5, 5-eps)
	above := sectionArea(20, 5, 5+eps)
	if math.Abs(above-below) > 1e-4 {
		t.Errorf("discontinuity at h=radius: %v vs %v", below, above)
	}
}

func TestSectionAreaHalfSubmergedArc(t *testing.T) {
	// Waterline halfway up the arcs: the segment term must agree with a
	// direct circular-segment evaluation.
	r, h := 5.0, 2.5
	d := r - h
	segment := r*r*math.Acos(d/r) - d*math.Sqrt(r*r-d*d)
	want := (20-2*r)*h + segment

	if got := sectionArea(20, r, h); math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}
