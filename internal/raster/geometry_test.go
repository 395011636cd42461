package raster

import (
	"math"
	"testing"

	"github.com/arnemq/litho/pkg/math3d"
)

func TestComputeSmoothNormalsUnitLength(t *testing.T) {
	// A simple quad (two triangles) in the XY plane.
	positions := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	normals := ComputeSmoothNormals(positions, indices)
	n := len(normals) / 3
	for i := 0; i < n; i++ {
		v := math3d.V3(normals[i*3], normals[i*3+1], normals[i*3+2])
		if math.Abs(v.Len()-1) > 1e-5 {
			t.Errorf("vertex %d normal length = %f, want ~1", i, v.Len())
		}
	}
}

func TestComputeSmoothNormalsIsolatedVertexDefaultsToUnitZ(t *testing.T) {
	// Vertex 3 belongs to no triangle.
	positions := []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		5, 5, 5,
	}
	indices := []uint32{0, 1, 2}

	normals := ComputeSmoothNormals(positions, indices)
	got := math3d.V3(normals[9], normals[10], normals[11])
	if got != math3d.V3(0, 0, 1) {
		t.Errorf("isolated vertex normal = %v, want (0,0,1)", got)
	}
}

func TestComputeWorldAABBContainsTransformedPositions(t *testing.T) {
	d := &DrawCall{
		Positions: []float64{-1, -1, -1, 1, 1, 1},
		Model:     math3d.Translate(math3d.V3(10, 0, 0)),
		Mode:      ModeTriangles,
	}
	aabb := ComputeWorldAABB([]*DrawCall{d})

	if aabb.Min.X > 9 || aabb.Max.X < 11 {
		t.Errorf("aabb = %v, want to contain x in [9,11]", aabb)
	}
	diag := aabb.Max.Sub(aabb.Min)
	if diag.X < 0 || diag.Y < 0 || diag.Z < 0 {
		t.Errorf("aabb diagonal has a negative component: %v", diag)
	}
}

func TestComputeWorldAABBEmptyFallsBackToDefault(t *testing.T) {
	aabb := ComputeWorldAABB(nil)
	if aabb.Min != math3d.V3(-1, -1, -1) || aabb.Max != math3d.V3(1, 1, 1) {
		t.Errorf("empty aabb = %v, want the default unit box", aabb)
	}
}
