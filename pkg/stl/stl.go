// Package stl serializes a triangle mesh to the binary STL format used
// by slicers and mesh viewers: an 80-byte header, a uint32 triangle
// count, then 50 bytes per triangle (normal, three vertices, attribute
// word), all little-endian.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wmppaul/bow-wow/pkg/kernel"
)

// Write serializes the mesh to w. Triangle normals are recomputed from
// the winding rather than taken from the mesh's per-vertex normals,
// since STL stores one facet normal per triangle.
func Write(w io.Writer, mesh *kernel.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("stl: nil mesh")
	}

	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "bow-wow hull export")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(mesh.TriangleCount())); err != nil {
		return fmt.Errorf("stl: write count: %w", err)
	}

	var rec [50]byte
	for t := 0; t < mesh.TriangleCount(); t++ {
		ia, ib, ic := mesh.Triangle(t)
		ax, ay, az := mesh.Vertex(int(ia))
		bx, by, bz := mesh.Vertex(int(ib))
		cx, cy, cz := mesh.Vertex(int(ic))

		nx, ny, nz := faceNormal(ax, ay, az, bx, by, bz, cx, cy, cz)

		put := func(off int, v float64) {
			binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(float32(v)))
		}
		put(0, nx)
		put(4, ny)
		put(8, nz)
		put(12, ax)
		put(16, ay)
		put(20, az)
		put(24, bx)
		put(28, by)
		put(32, bz)
		put(36, cx)
		put(40, cy)
		put(44, cz)
		rec[48], rec[49] = 0, 0

		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("stl: write triangle %d: %w", t, err)
		}
	}

	return bw.Flush()
}

// Save writes the mesh to a file, creating or truncating it.
func Save(path string, mesh *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	if err := Write(f, mesh); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func faceNormal(ax, ay, az, bx, by, bz, cx, cy, cz float64) (nx, ny, nz float64) {
	ux, uy, uz := bx-ax, by-ay, bz-az
	vx, vy, vz := cx-ax, cy-ay, cz-az
	nx = uy*vz - uz*vy
	ny = uz*vx - ux*vz
	nz = ux*vy - uy*vx
	l := nx*nx + ny*ny + nz*nz
	if l == 0 {
		return 0, 0, 0
	}
	inv := 1 / math.Sqrt(l)
	return nx * inv, ny * inv, nz * inv
}
