package hull

import "github.com/wmppaul/bow-wow/pkg/kernel"

// Longitudinal tessellation constants. The stern run keeps a constant
// cross-section; the bow run tapers linearly down to the tip.
const (
	sternSections = 4
	bowSections   = 24
)

// shellBuilder accumulates vertices and triangles while the closure
// pieces are stitched on. Positions are kept in float64 until the final
// mesh conversion.
type shellBuilder struct {
	verts []Vec3
	tris  []uint32
}

func (sb *shellBuilder) addVert(v Vec3) uint32 {
	sb.verts = append(sb.verts, v)
	return uint32(len(sb.verts) - 1)
}

func (sb *shellBuilder) tri(a, b, c uint32) {
	sb.tris = append(sb.tris, a, b, c)
}

// quad emits the two triangles (a,b,c) and (a,c,d). Callers order the
// corners so the right-hand winding faces outward.
func (sb *shellBuilder) quad(a, b, c, d uint32) {
	sb.tri(a, b, c)
	sb.tri(a, c, d)
}

// BuildShell generates the watertight hollow shell for the given
// parameters. The mesh is fully owned by the caller; the builder keeps no
// state between calls. Parameters are clamped first, so there is no
// failure path: degenerate input degrades to a degenerate but consistent
// mesh.
func BuildShell(params Params) *kernel.Mesh {
	p := params.Clamped()

	bowLength := p.Length * p.BowLengthFrac
	sternLength := p.Length - bowLength
	center := p.Length / 2

	// Station list: stern run at full scale, then the linear taper with
	// the last station forced to the tip. Z is re-centered so the hull is
	// symmetric about the origin, stern aft at -length/2.
	var full []Profile
	var tip Profile
	haveTip := false

	appendStation := func(z, scale, progress float64, isTip bool) {
		if haveTip {
			return
		}
		prof := NewProfile(p, z-center, scale, progress, isTip)
		if prof.Collapsed() {
			// The stem reaches the full nominal length even when the taper
			// collapses a station early.
			tip = NewProfile(p, p.Length-center, 0, 1, true)
			haveTip = true
			return
		}
		full = append(full, prof)
	}

	for i := 0; i <= sternSections; i++ {
		appendStation(sternLength*float64(i)/sternSections, 1, 0, false)
	}
	for j := 1; j <= bowSections; j++ {
		t := float64(j) / bowSections
		appendStation(sternLength+bowLength*t, 1-t, t, j == bowSections)
	}

	b := &shellBuilder{}
	if len(full) < 2 || !haveTip {
		// Nothing meshable survived clamping; hand back an empty mesh
		// rather than a broken one.
		return b.finish()
	}

	// Vertex layout: per full section, the outer ring then the inner
	// ring, each RingPoints long. Closure vertices follow.
	for _, prof := range full {
		for _, v := range prof.Outer {
			b.addVert(v)
		}
		for _, v := range prof.Inner {
			b.addVert(v)
		}
	}
	outerAt := func(s, i int) uint32 { return uint32(s*2*RingPoints + i) }
	innerAt := func(s, i int) uint32 { return uint32(s*2*RingPoints + RingPoints + i) }

	sections := len(full)
	last := sections - 1

	// Walls and top rims between adjacent sections.
	for s := 0; s < last; s++ {
		for i := 0; i < RingPoints-1; i++ {
			if i == ringTopLeft {
				continue // open top
			}
			// Outer surface, outward winding.
			b.quad(outerAt(s, i), outerAt(s+1, i), outerAt(s+1, i+1), outerAt(s, i+1))
			// Inner surface, reversed so normals face the cavity.
			b.quad(innerAt(s, i), innerAt(s, i+1), innerAt(s+1, i+1), innerAt(s+1, i))
		}
		// Rim strips capping the exposed wall thickness along the open
		// top, port and starboard.
		b.quad(outerAt(s, ringTopLeft), outerAt(s+1, ringTopLeft), innerAt(s+1, ringTopLeft), innerAt(s, ringTopLeft))
		b.quad(outerAt(s, ringTopRight), innerAt(s, ringTopRight), innerAt(s+1, ringTopRight), outerAt(s+1, ringTopRight))
	}

	b.closeStern(full[0], outerAt, innerAt)
	b.closeBow(tip, last, outerAt, innerAt)

	return b.finish()
}

// closeStern builds the transom: the aft face fanned over the outer
// ring, the cavity-facing forward face fanned over an inner ring offset
// forward by one wall thickness, the stitch band joining the offset ring
// back to the true inner ring, the gunwale strip across the transom top,
// and the two corner triangles that seal the strip's ends. Together these
// give the transom real, connected wall thickness.
func (sb *shellBuilder) closeStern(stern Profile, outerAt, innerAt func(int, int) uint32) {
	wall := stern.Inner[ringBottomCenter].Y // inner bottom sits at the wall thickness

	// Offset copy of the inner ring, shifted forward one wall thickness.
	offset := make([]uint32, RingPoints)
	for i, v := range stern.Inner {
		offset[i] = sb.addVert(Vec3{v.X, v.Y, v.Z + wall})
	}

	// Aft face: fan from the bottom center, normal facing aft. The first
	// and last ring edges meet at the (repeated) bottom center point, so
	// the fan walks the interior edges only.
	for i := 1; i < RingPoints-2; i++ {
		sb.tri(outerAt(0, ringBottomCenter), outerAt(0, i), outerAt(0, i+1))
	}

	// Forward face: reversed fan over the offset ring, normal facing the
	// cavity.
	for i := 1; i < RingPoints-2; i++ {
		sb.tri(offset[ringBottomCenter], offset[i+1], offset[i])
	}

	// Stitch band between the true inner ring and the offset ring,
	// skipping the open top edge, wound like the inner surface.
	for i := 0; i < RingPoints-1; i++ {
		if i == ringTopLeft {
			continue
		}
		sb.quad(innerAt(0, i), innerAt(0, i+1), offset[i+1], offset[i])
	}

	// Gunwale strip across the transom top, from the outer top edge aft
	// to the offset top edge forward.
	sb.quad(outerAt(0, ringTopRight), outerAt(0, ringTopLeft), offset[ringTopLeft], offset[ringTopRight])

	// Corner seals where the strip, the rim ends and the stitch band
	// meet.
	sb.tri(outerAt(0, ringTopLeft), offset[ringTopLeft], innerAt(0, ringTopLeft))
	sb.tri(outerAt(0, ringTopRight), innerAt(0, ringTopRight), offset[ringTopRight])
}

// closeBow connects the last full section to the collapsed tip: fans
// converging on the tip point for both surfaces, plus the four seal
// triangles at the open-top gap. The seal routes through the tip's inner
// point, continuing the rim strips to zero width at the stem.
func (sb *shellBuilder) closeBow(tip Profile, last int, outerAt, innerAt func(int, int) uint32) {
	tipOuter := sb.addVert(tip.TipOuter)
	tipInner := sb.addVert(tip.TipInner)

	for i := 0; i < RingPoints-1; i++ {
		if i == ringTopLeft {
			continue
		}
		sb.tri(outerAt(last, i), tipOuter, outerAt(last, i+1))
		sb.tri(innerAt(last, i), innerAt(last, i+1), tipInner)
	}

	// Port rim continuation.
	sb.tri(outerAt(last, ringTopLeft), tipOuter, tipInner)
	sb.tri(outerAt(last, ringTopLeft), tipInner, innerAt(last, ringTopLeft))
	// Starboard rim continuation.
	sb.tri(outerAt(last, ringTopRight), innerAt(last, ringTopRight), tipInner)
	sb.tri(outerAt(last, ringTopRight), tipInner, tipOuter)
}

// finish converts the accumulated geometry to the shared mesh format and
// derives vertex normals by averaging adjacent face normals.
func (sb *shellBuilder) finish() *kernel.Mesh {
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(sb.verts)*3),
		Normals:  make([]float32, len(sb.verts)*3),
		Indices:  sb.tris,
		PartName: "hull",
	}
	for _, v := range sb.verts {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}

	acc := make([]Vec3, len(sb.verts))
	for t := 0; t < len(sb.tris); t += 3 {
		a, c, d := sb.tris[t], sb.tris[t+1], sb.tris[t+2]
		va, vc, vd := sb.verts[a], sb.verts[c], sb.verts[d]
		n := vc.Sub(va).Cross(vd.Sub(va))
		if n.Length() == 0 {
			continue // degenerate triangle from a clamped ring
		}
		n = n.Normalized()
		acc[a] = acc[a].Add(n)
		acc[c] = acc[c].Add(n)
		acc[d] = acc[d].Add(n)
	}
	for i, n := range acc {
		n = n.Normalized()
		m.Normals[3*i] = float32(n.X)
		m.Normals[3*i+1] = float32(n.Y)
		m.Normals[3*i+2] = float32(n.Z)
	}
	return m
}
