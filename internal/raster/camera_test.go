package raster

import (
	"math"
	"testing"

	"github.com/arnemq/litho/pkg/math3d"
)

func TestBuildCameraAutoFrameEyeOffset(t *testing.T) {
	d := &DrawCall{
		Positions: []float64{-1, -1, -1, 1, 1, 1},
		Model:     math3d.Identity(),
		Mode:      ModeTriangles,
	}
	cam := BuildCamera([]*DrawCall{d}, 800, 600, 60, nil, nil)

	// Invert the view to recover the eye, then check it against the
	// documented auto-frame formula: center + (dist, 0.3*dist, dist).
	eye := cam.View.Inverse().MulVec3(math3d.Zero3())

	radius := math3d.V3(2, 2, 2).Len() * 0.5
	dist := radius/math.Tan(60*math.Pi/180/2) + 0.5*radius
	want := math3d.V3(dist, 0.3*dist, dist)

	if eye.Distance(want) > 1e-6 {
		t.Errorf("auto-framed eye = %v, want %v", eye, want)
	}
}

func TestBuildCameraExplicitEyeAndTarget(t *testing.T) {
	eye := math3d.V3(8, 6, 8)
	look := math3d.V3(0, 0, 0)
	cam := BuildCamera(nil, 320, 240, 60, &eye, &look)

	if got := cam.View.MulVec3(eye); got.Len() > 1e-9 {
		t.Errorf("view * eye = %v, want origin", got)
	}
	target := cam.View.MulVec3(look)
	if target.Z >= 0 {
		t.Errorf("look target in view space = %v, want negative Z", target)
	}
}

func TestBuildCameraExplicitEyeDefaultsTargetToAABBCenter(t *testing.T) {
	d := &DrawCall{
		Positions: []float64{9, 9, 9, 11, 11, 11},
		Model:     math3d.Identity(),
		Mode:      ModeTriangles,
	}
	eye := math3d.V3(0, 0, 0)
	cam := BuildCamera([]*DrawCall{d}, 320, 240, 60, &eye, nil)

	center := cam.View.MulVec3(math3d.V3(10, 10, 10))
	if math.Abs(center.X) > 1e-9 || math.Abs(center.Y) > 1e-9 || center.Z >= 0 {
		t.Errorf("AABB center in view space = %v, want on the -Z axis", center)
	}
}
