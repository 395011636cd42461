package raster

import (
	"math"

	"github.com/arnemq/litho/pkg/math3d"
)

// Camera is the (view, proj) pair a render is shot through. A
// headless render builds its camera once, so there is no mutable
// camera state to track between frames.
type Camera struct {
	View, Proj math3d.Mat4
}

const (
	cameraNear = 0.01
	cameraFar  = 1000.0
)

// BuildCamera produces a (view, proj) pair from either an explicit
// eye/target or, when camPos is nil, an auto-frame derived from the
// scene AABB: the eye backs away far enough for the bounding sphere
// to fit the vertical field of view, offset to a three-quarter view.
func BuildCamera(calls []*DrawCall, width, height int, fovDeg float64, camPos, lookAt *math3d.Vec3) Camera {
	aspect := float64(width) / float64(height)
	proj := math3d.Perspective(fovDeg*math.Pi/180, aspect, cameraNear, cameraFar)

	aabb := ComputeWorldAABB(calls)

	var eye, center math3d.Vec3
	switch {
	case camPos != nil:
		eye = *camPos
		if lookAt != nil {
			center = *lookAt
		} else {
			center = aabb.Center()
		}
	default:
		center = aabb.Center()
		radius := aabb.Radius()
		dist := radius/math.Tan(fovDeg*math.Pi/180/2) + 0.5*radius
		eye = center.Add(math3d.V3(dist, 0.3*dist, dist))
	}

	view := math3d.LookAt(eye, center, math3d.Up())
	return Camera{View: view, Proj: proj}
}
