package hull

import "math"

// Vec3 is a 3D point or vector. X runs across the beam, Y runs up from
// the keel, Z runs along the hull toward the bow.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized returns a unit-length copy, or the zero vector unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// bilgeSegments is the tessellation constant for each bilge arc. It fixes
// the ring point count, so every full profile has the same topology.
const bilgeSegments = 8

// Ring point roles, resolved to integer offsets exactly once. All index
// arithmetic across outer, inner and offset rings goes through these
// names; no call site re-derives offsets.
const (
	ringBottomCenter    = 0
	ringBilgeLeftStart  = 1
	ringBilgeLeftEnd    = ringBilgeLeftStart + bilgeSegments
	ringTopLeft         = ringBilgeLeftEnd + 1
	ringTopRight        = ringTopLeft + 1
	ringBilgeRightStart = ringTopRight + 1
	ringBilgeRightEnd   = ringBilgeRightStart + bilgeSegments
	ringClose           = ringBilgeRightEnd + 1 // repeat of bottom center

	// RingPoints is the number of points in one ring, closing repeat
	// included.
	RingPoints = ringClose + 1
)

// Profile is one hull cross-section. It is a tagged variant: either a
// full section with outer and inner rings of RingPoints points each, or a
// section collapsed onto the centerline (the bow tip). Modeling the
// collapse explicitly keeps the mesher free of ring-sized-but-degenerate
// data.
type Profile struct {
	Outer []Vec3 // nil when collapsed
	Inner []Vec3 // nil when collapsed

	TipOuter Vec3 // collapse point on the keel line
	TipInner Vec3 // collapse point lifted by the wall thickness

	collapsed bool
}

// Collapsed reports whether the profile is a bow-tip collapse.
func (p Profile) Collapsed() bool { return p.collapsed }

// collapseScale is the scale below which a section is treated as the tip.
const collapseScale = 1e-4

// NewProfile generates the cross-section at longitudinal position z.
// scale multiplies the half beam (1 = full beam, 0 = tip), bowProgress is
// the normalized position along the taper, and isTip forces the
// collapsed form regardless of scale.
func NewProfile(p Params, z, scale, bowProgress float64, isTip bool) Profile {
	halfBeam := p.Beam / 2 * scale

	if isTip || scale < collapseScale || halfBeam <= p.WallThickness+minDim {
		// Rake is applied at mid height so the tip sits where the middle
		// of a full section would lean to.
		zTip := z + rakeShift(p, p.Height/2, bowProgress)
		return Profile{
			TipOuter:  Vec3{0, 0, zTip},
			TipInner:  Vec3{0, p.WallThickness, zTip},
			collapsed: true,
		}
	}

	_, radius := SectionShape(p, scale, bowProgress)

	outer := buildRing(halfBeam, radius, 0, p.Height)

	innerHalfBeam := halfBeam - p.WallThickness
	innerRadius := math.Max(math.Min(radius, innerHalfBeam-minDim), 0)
	if innerRadius < minDim {
		innerRadius = 0 // sharp inner corner below the minimum feature size
	}
	inner := buildRing(innerHalfBeam, innerRadius, p.WallThickness, p.Height)

	place(outer, p, z, bowProgress)
	place(inner, p, z, bowProgress)

	return Profile{Outer: outer, Inner: inner}
}

// SectionShape returns the half beam and the clamped effective bilge
// radius of the outer ring at the given taper position. The buoyancy
// solver's analytic area model shares this so that it integrates exactly
// the sections the mesher produces.
func SectionShape(p Params, scale, bowProgress float64) (halfBeam, radius float64) {
	halfBeam = p.Beam / 2 * scale
	radius = effectiveBilgeRadius(p, scale, bowProgress)
	radius = math.Min(radius, halfBeam-minDim)
	radius = math.Min(radius, p.Height-minDim)
	radius = math.Max(radius, 0)
	if radius < minDim {
		// Below the minimum feature size the bilge is a sharp corner;
		// the solver's rectangular regime and the mesher's ring agree.
		radius = 0
	}
	return halfBeam, radius
}

// effectiveBilgeRadius scales the configured radius with the taper and,
// for the deep-v style, shrinks it toward the tip. The retention at full
// progress interpolates from 95% down to 50% as the entry angle
// approaches 45 degrees.
func effectiveBilgeRadius(p Params, scale, bowProgress float64) float64 {
	r := p.BilgeRadius * scale
	if p.BowStyle != BowDeepV {
		return r
	}
	k := clamp(p.BowAngle/45, 0, 1)
	tipRetention := 0.95 - 0.45*k
	retention := 1 - (1-tipRetention)*bowProgress
	return r * retention
}

// rakeShift returns the forward displacement for a point at height y.
// Only the raked style leans; the other styles keep their station.
func rakeShift(p Params, y, bowProgress float64) float64 {
	if p.BowStyle != BowRaked || bowProgress <= 0 {
		return 0
	}
	return y * math.Tan(p.BowAngle*math.Pi/180) * bowProgress
}

// buildRing produces one U-shaped ring in the X/Y plane: bottom center,
// the left bilge corner, the open top corners, the mirrored right
// corner, and the repeated closing point. Z is left at zero; place
// fills it in.
func buildRing(halfBeam, radius, bottom, top float64) []Vec3 {
	ring := make([]Vec3, 0, RingPoints)

	ring = append(ring, Vec3{0, bottom, 0})

	left := cornerPoints(halfBeam, radius, bottom, top)
	ring = append(ring, left...)

	// The top is intentionally open between these two points; the mesher
	// caps the exposed wall thickness with a rim strip instead.
	ring = append(ring, Vec3{-halfBeam, top, 0})
	ring = append(ring, Vec3{halfBeam, top, 0})

	// Right bilge, mirrored, swept back down to the bottom.
	for i := len(left) - 1; i >= 0; i-- {
		ring = append(ring, Vec3{-left[i].X, left[i].Y, 0})
	}

	ring = append(ring, Vec3{0, bottom, 0})
	return ring
}

// cornerPoints returns the left bilge run, swept from the flat bottom
// out to the vertical side. A positive radius gives a quarter arc with
// the center at (-(halfBeam-radius), bottom+radius). A zero radius is a
// sharp chine; the segment points then climb the lower quarter of the
// side so that consecutive ring points stay distinct and every wall
// panel keeps its area.
func cornerPoints(halfBeam, radius, bottom, top float64) []Vec3 {
	pts := make([]Vec3, 0, bilgeSegments+1)
	if radius > 0 {
		cx := -(halfBeam - radius)
		for i := 0; i <= bilgeSegments; i++ {
			a := float64(i) / bilgeSegments * math.Pi / 2
			pts = append(pts, Vec3{
				cx - radius*math.Sin(a),
				bottom + radius - radius*math.Cos(a),
				0,
			})
		}
		return pts
	}
	rise := (top - bottom) / 4
	for i := 0; i <= bilgeSegments; i++ {
		f := float64(i) / bilgeSegments
		pts = append(pts, Vec3{-halfBeam, bottom + rise*f, 0})
	}
	return pts
}

// place assigns the longitudinal coordinate, applying the per-point rake
// lean. The lean is a function of each point's height, so it cannot be a
// rigid transform of the whole ring.
func place(ring []Vec3, p Params, z, bowProgress float64) {
	for i := range ring {
		ring[i].Z = z + rakeShift(p, ring[i].Y, bowProgress)
	}
}
