package section

import "math"

// point2 is a projected loop point that remembers its index into the
// flat 3D vertex list, so triangulation output needs no remapping pass.
type point2 struct {
	u, v float64
	idx  int
}

// signedArea is the shoelace area of a projected loop. Positive means
// counter-clockwise in the projection.
func signedArea(poly []point2) float64 {
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].u*poly[j].v - poly[j].u*poly[i].v
	}
	return sum / 2
}

func reversed(poly []point2) []point2 {
	out := make([]point2, len(poly))
	for i := range poly {
		out[i] = poly[len(poly)-1-i]
	}
	return out
}

// triangulateWithHoles ear-clips the outer polygon after bridging every
// hole into it, returning triangles as triples of 3D vertex indices.
// The outer loop is normalized counter-clockwise and holes clockwise
// before bridging.
func triangulateWithHoles(outer []point2, holes [][]point2) [][3]int {
	poly := append([]point2(nil), outer...)
	if signedArea(poly) < 0 {
		poly = reversed(poly)
	}
	oriented := make([][]point2, 0, len(holes))
	for _, h := range holes {
		hh := append([]point2(nil), h...)
		if signedArea(hh) > 0 {
			hh = reversed(hh)
		}
		oriented = append(oriented, hh)
	}

	// Bridge holes rightmost-first so earlier bridges cannot occlude
	// later ones.
	for len(oriented) > 0 {
		best, bestU := 0, math.Inf(-1)
		for hi, h := range oriented {
			for _, p := range h {
				if p.u > bestU {
					bestU = p.u
					best = hi
				}
			}
		}
		poly = spliceHole(poly, oriented[best])
		oriented = append(oriented[:best], oriented[best+1:]...)
	}

	return earClip(poly)
}

// spliceHole joins a hole into the polygon through a bridge from the
// hole's rightmost vertex to a visible polygon vertex, duplicating both
// bridge endpoints so the result is a single simple-ish polygon.
func spliceHole(poly, hole []point2) []point2 {
	// Rightmost hole vertex.
	m := 0
	for i := range hole {
		if hole[i].u > hole[m].u {
			m = i
		}
	}
	mp := hole[m]

	// Closest visible polygon vertex: cast a ray toward +u from mp and
	// take the polygon vertex of the nearest crossed edge; if the edge's
	// own endpoints do not qualify, fall back to the overall closest
	// vertex to the right.
	bridge := -1
	bestDist := math.Inf(1)
	for i := range poly {
		j := (i + 1) % len(poly)
		a, b := poly[i], poly[j]
		// Edge must straddle the horizontal line through mp.
		if (a.v > mp.v) == (b.v > mp.v) {
			continue
		}
		t := (mp.v - a.v) / (b.v - a.v)
		x := a.u + t*(b.u-a.u)
		if x < mp.u {
			continue
		}
		if x-mp.u < bestDist {
			bestDist = x - mp.u
			// Prefer the edge endpoint to the right of mp.
			if a.u > b.u {
				bridge = i
			} else {
				bridge = j
			}
		}
	}
	if bridge < 0 {
		// No edge to the right; take the nearest polygon vertex.
		for i := range poly {
			d := math.Hypot(poly[i].u-mp.u, poly[i].v-mp.v)
			if d < bestDist {
				bestDist = d
				bridge = i
			}
		}
	}

	// poly[0..bridge] + hole[m..] + hole[..m] + hole[m] + poly[bridge..]
	out := make([]point2, 0, len(poly)+len(hole)+2)
	out = append(out, poly[:bridge+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(m+k)%len(hole)])
	}
	out = append(out, poly[bridge:]...)
	return out
}

// earClip triangulates a counter-clockwise polygon by repeatedly
// clipping convex vertices whose triangle contains no other polygon
// point. Degenerate remainders that offer no ear are fanned out rather
// than looping forever; the inputs here are stitched mesh sections, and
// a best-effort cap beats no cap.
func earClip(poly []point2) [][3]int {
	var tris [][3]int
	work := append([]point2(nil), poly...)

	for len(work) > 3 {
		clipped := false
		for i := range work {
			p := work[(i+len(work)-1)%len(work)]
			c := work[i]
			n := work[(i+1)%len(work)]
			if cross2(p, c, n) <= 0 {
				continue // reflex or collinear
			}
			if containsOther(work, p, c, n) {
				continue
			}
			tris = append(tris, [3]int{p.idx, c.idx, n.idx})
			work = append(work[:i], work[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			for i := 1; i < len(work)-1; i++ {
				tris = append(tris, [3]int{work[0].idx, work[i].idx, work[i+1].idx})
			}
			return tris
		}
	}
	if len(work) == 3 {
		tris = append(tris, [3]int{work[0].idx, work[1].idx, work[2].idx})
	}
	return tris
}

// cross2 is the 2D cross product of (b-a) and (c-a).
func cross2(a, b, c point2) float64 {
	return (b.u-a.u)*(c.v-a.v) - (c.u-a.u)*(b.v-a.v)
}

// containsOther reports whether any polygon point other than the ear's
// corners lies inside triangle (a,b,c).
func containsOther(poly []point2, a, b, c point2) bool {
	for _, p := range poly {
		if p.idx == a.idx || p.idx == b.idx || p.idx == c.idx {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c point2) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
