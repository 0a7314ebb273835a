package kernel_test

import (
	"testing"

	"github.com/wmppaul/bow-wow/pkg/kernel"
)

func TestMeshCounts(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}
	if m.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.TriangleCount())
	}
	if m.IsEmpty() {
		t.Error("mesh with geometry reported empty")
	}

	x, y, z := m.Vertex(1)
	if x != 1 || y != 0 || z != 0 {
		t.Errorf("Vertex(1) = (%v, %v, %v), want (1, 0, 0)", x, y, z)
	}
	a, b, c := m.Triangle(0)
	if a != 0 || b != 1 || c != 2 {
		t.Errorf("Triangle(0) = (%d, %d, %d), want (0, 1, 2)", a, b, c)
	}
}

func TestMeshBoundingBox(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []float32{-2, 5, 1, 3, -1, 0, 0, 0, 7},
	}
	min, max := m.BoundingBox()
	if min != [3]float64{-2, -1, 0} {
		t.Errorf("min = %v", min)
	}
	if max != [3]float64{3, 5, 7} {
		t.Errorf("max = %v", max)
	}

	empty := &kernel.Mesh{}
	min, max = empty.BoundingBox()
	if min != max || min != [3]float64{} {
		t.Errorf("empty mesh bounds %v, %v, want zeros", min, max)
	}
	if !empty.IsEmpty() {
		t.Error("empty mesh not reported empty")
	}
}
