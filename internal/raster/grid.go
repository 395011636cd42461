package raster

import (
	"math"

	"github.com/arnemq/litho/pkg/math3d"
)

// buildGridDrawCall synthesizes the grid overlay as one line-mode draw
// call: unit-spaced lines on the XZ plane, sized from the scene AABB
// (axis-extent x1.2, rounded up to even) unless size overrides it,
// centered on the AABB center in XZ and placed at the AABB's minimum Y
// so the grid sits under the scene.
func buildGridDrawCall(aabb AABB, size float64) *DrawCall {
	extent := size
	if extent <= 0 {
		bounds := aabb.Max.Sub(aabb.Min)
		extent = roundUpToEven(math.Max(bounds.X, bounds.Z) * 1.2)
	}
	if extent <= 0 {
		extent = 8
	}

	center := aabb.Center()
	y := aabb.Min.Y
	half := extent / 2

	var positions []float64
	appendLine := func(a, b math3d.Vec3) {
		positions = append(positions, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}

	for x := -half; x <= half+1e-9; x++ {
		appendLine(
			math3d.V3(center.X+x, y, center.Z-half),
			math3d.V3(center.X+x, y, center.Z+half),
		)
	}
	for z := -half; z <= half+1e-9; z++ {
		appendLine(
			math3d.V3(center.X-half, y, center.Z+z),
			math3d.V3(center.X+half, y, center.Z+z),
		)
	}

	n := len(positions) / 3
	colors := make([]float64, n*4)
	for i := 0; i < n; i++ {
		colors[i*4], colors[i*4+1], colors[i*4+2], colors[i*4+3] = 0.5, 0.5, 0.5, 1
	}

	return &DrawCall{
		Positions: positions,
		Colors:    colors,
		Model:     math3d.Identity(),
		Material:  DefaultMaterial(),
		Mode:      ModeLines,
	}
}

func roundUpToEven(v float64) float64 {
	i := int(math.Ceil(v))
	if i%2 != 0 {
		i++
	}
	return float64(i)
}
