// Package section extracts the cross-section of a triangle mesh at an
// arbitrary cutting plane: the crossing segments are stitched into
// closed loops, the largest loop becomes the outer boundary with the
// rest as holes, and the region is triangulated and re-embedded in 3D.
// Every call is independent; the extractor keeps no state between
// invocations.
package section

import (
	"math"

	"github.com/wmppaul/bow-wow/pkg/hull"
	"github.com/wmppaul/bow-wow/pkg/kernel"
)

// Plane is a cutting plane in Hessian form: points p with
// dot(Normal, p) == Offset lie on the plane.
type Plane struct {
	Normal hull.Vec3 `json:"normal"`
	Offset float64   `json:"offset"`
}

// Transverse returns the athwartships plane at longitudinal position z.
func Transverse(z float64) Plane {
	return Plane{Normal: hull.Vec3{Z: 1}, Offset: z}
}

// Horizontal returns the waterline-style plane at height y.
func Horizontal(y float64) Plane {
	return Plane{Normal: hull.Vec3{Y: 1}, Offset: y}
}

// Longitudinal returns the fore-and-aft plane at beam position x.
func Longitudinal(x float64) Plane {
	return Plane{Normal: hull.Vec3{X: 1}, Offset: x}
}

// distance is the signed distance of p from the plane, in units of the
// normal's length.
func (pl Plane) distance(p hull.Vec3) float64 {
	return pl.Normal.X*p.X + pl.Normal.Y*p.Y + pl.Normal.Z*p.Z - pl.Offset
}

// DefaultStitchTolerance matches segment endpoints produced by adjacent
// triangles. It is absolute (model units are mm); callers working at
// unusual scales should pass their own tolerance to ExtractTol.
const DefaultStitchTolerance = 1e-4

// segment is one plane crossing through a single triangle.
type segment struct {
	a, b hull.Vec3
	used bool
}

// Extract cuts the mesh with the plane and returns the triangulated
// section region, or nil when the plane misses the solid entirely or too
// few boundary points survive stitching.
func Extract(mesh *kernel.Mesh, plane Plane) *kernel.Mesh {
	return ExtractTol(mesh, plane, DefaultStitchTolerance)
}

// ExtractTol is Extract with an explicit endpoint stitch tolerance.
func ExtractTol(mesh *kernel.Mesh, plane Plane, tol float64) *kernel.Mesh {
	if mesh == nil || mesh.IsEmpty() || tol <= 0 {
		return nil
	}

	segs := crossings(mesh, plane)
	if len(segs) == 0 {
		return nil
	}

	loops := stitch(segs, tol)
	if len(loops) == 0 {
		return nil
	}

	return triangulateLoops(loops, plane)
}

// crossings collects one segment per triangle that the plane cuts. An
// edge contributes an intersection point where its endpoints' signed
// distances differ in sign; a vertex exactly on the plane counts as a
// point itself.
func crossings(mesh *kernel.Mesh, plane Plane) []segment {
	var segs []segment
	for t := 0; t < mesh.TriangleCount(); t++ {
		ia, ib, ic := mesh.Triangle(t)
		var v [3]hull.Vec3
		var d [3]float64
		for j, idx := range [3]uint32{ia, ib, ic} {
			x, y, z := mesh.Vertex(int(idx))
			v[j] = hull.Vec3{X: x, Y: y, Z: z}
			d[j] = plane.distance(v[j])
		}

		var pts []hull.Vec3
		for j := 0; j < 3; j++ {
			if d[j] == 0 {
				pts = append(pts, v[j])
			}
		}
		for j := 0; j < 3; j++ {
			k := (j + 1) % 3
			if (d[j] > 0 && d[k] < 0) || (d[j] < 0 && d[k] > 0) {
				f := d[j] / (d[j] - d[k])
				pts = append(pts, hull.Vec3{
					X: v[j].X + f*(v[k].X-v[j].X),
					Y: v[j].Y + f*(v[k].Y-v[j].Y),
					Z: v[j].Z + f*(v[k].Z-v[j].Z),
				})
			}
		}

		if len(pts) == 2 && pts[0].Sub(pts[1]).Length() > 0 {
			segs = append(segs, segment{a: pts[0], b: pts[1]})
		}
	}
	return segs
}

// endpointKey quantizes a point onto the tolerance grid so matching
// endpoints can be found by map lookup instead of scanning every
// remaining segment.
type endpointKey [3]int64

func keyFor(p hull.Vec3, tol float64) endpointKey {
	return endpointKey{
		int64(math.Round(p.X / tol)),
		int64(math.Round(p.Y / tol)),
		int64(math.Round(p.Z / tol)),
	}
}

// endpointIndex maps quantized endpoints to the segments that touch
// them.
type endpointIndex map[endpointKey][]int

func (ix endpointIndex) add(p hull.Vec3, seg int, tol float64) {
	k := keyFor(p, tol)
	ix[k] = append(ix[k], seg)
}

// lookup returns an unused segment touching p, searching the cell of p
// and its neighbors so points straddling a grid boundary still match.
func (ix endpointIndex) lookup(p hull.Vec3, segs []segment, tol float64) int {
	base := keyFor(p, tol)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				k := endpointKey{base[0] + dx, base[1] + dy, base[2] + dz}
				for _, si := range ix[k] {
					if segs[si].used {
						continue
					}
					if p.Sub(segs[si].a).Length() <= tol || p.Sub(segs[si].b).Length() <= tol {
						return si
					}
				}
			}
		}
	}
	return -1
}

// stitch chains segments into closed loops by repeatedly extending a
// loop's trailing endpoint with a matching unused segment, reversing the
// candidate when it matches tail-to-tail. Loops shorter than 3 points
// are discarded.
func stitch(segs []segment, tol float64) [][]hull.Vec3 {
	ix := make(endpointIndex)
	for i, s := range segs {
		ix.add(s.a, i, tol)
		ix.add(s.b, i, tol)
	}

	var loops [][]hull.Vec3
	for i := range segs {
		if segs[i].used {
			continue
		}
		segs[i].used = true
		loop := []hull.Vec3{segs[i].a, segs[i].b}

		for {
			tail := loop[len(loop)-1]
			if len(loop) > 2 && tail.Sub(loop[0]).Length() <= tol {
				// Closed; drop the duplicated closing point.
				loop = loop[:len(loop)-1]
				break
			}
			next := ix.lookup(tail, segs, tol)
			if next < 0 {
				loop = nil // open chain, cannot close
				break
			}
			segs[next].used = true
			if tail.Sub(segs[next].a).Length() <= tol {
				loop = append(loop, segs[next].b)
			} else {
				loop = append(loop, segs[next].a)
			}
		}

		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// dropAxis returns the index (0,1,2) of the plane normal's dominant
// axis, the one projected away when flattening loops to 2D.
func dropAxis(n hull.Vec3) int {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= ax && ay >= az:
		return 1
	}
	return 2
}

// project flattens p by dropping the given axis.
func project(p hull.Vec3, axis int) (u, v float64) {
	switch axis {
	case 0:
		return p.Y, p.Z
	case 1:
		return p.Z, p.X
	}
	return p.X, p.Y
}

// triangulateLoops classifies the loops (largest projected area is the
// outer boundary, the rest are holes), triangulates the region, and maps
// the 2D triangles back onto the 3D loop points.
func triangulateLoops(loops [][]hull.Vec3, plane Plane) *kernel.Mesh {
	axis := dropAxis(plane.Normal)

	// Flatten all loops into one vertex list; polygon points remember
	// their index into it so triangulation output lands directly in the
	// final index buffer.
	var verts []hull.Vec3
	polys := make([][]point2, len(loops))
	areas := make([]float64, len(loops))
	for li, loop := range loops {
		poly := make([]point2, len(loop))
		for pi, p := range loop {
			u, v := project(p, axis)
			poly[pi] = point2{u: u, v: v, idx: len(verts)}
			verts = append(verts, p)
		}
		polys[li] = poly
		areas[li] = signedArea(poly)
	}

	// Outer boundary: largest absolute area.
	outer := 0
	for li := range polys {
		if math.Abs(areas[li]) > math.Abs(areas[outer]) {
			outer = li
		}
	}
	if len(polys[outer]) < 3 {
		return nil
	}

	var holes [][]point2
	for li := range polys {
		if li != outer && len(polys[li]) >= 3 {
			holes = append(holes, polys[li])
		}
	}

	tris := triangulateWithHoles(polys[outer], holes)
	if len(tris) == 0 {
		return nil
	}

	n := plane.Normal.Normalized()
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(verts)*3),
		Normals:  make([]float32, 0, len(verts)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
		PartName: "cross-section",
	}
	for _, p := range verts {
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, t := range tris {
		m.Indices = append(m.Indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return m
}
