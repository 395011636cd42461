package raster

import "github.com/arnemq/litho/pkg/math3d"

// AABB is an axis-aligned bounding box in world space, used for
// camera auto-framing and grid sizing.
type AABB struct {
	Min, Max math3d.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns half the diagonal length, used by auto-framing.
func (b AABB) Radius() float64 {
	return b.Max.Sub(b.Min).Len() * 0.5
}

// defaultAABB is the fallback bounds for an empty draw-call set, so
// auto-framing still produces a valid camera.
func defaultAABB() AABB {
	return AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}
}

// ComputeSmoothNormals sums the un-normalized face normal
// cross(p1-p0, p2-p0) into each of the three vertices of every
// triangle named by indices, then normalizes each per-vertex
// accumulator. Degenerate triangles contribute zero area and drop out.
//
// A zero-length accumulator (an isolated vertex, or one touched only
// by degenerate triangles) is returned as unit-length (0,0,1) rather
// than the zero vector, avoiding downstream NaN from a zero-length
// normalize in the shader.
func ComputeSmoothNormals(positions []float64, indices []uint32) []float64 {
	n := len(positions) / 3
	acc := make([]math3d.Vec3, n)

	pos := func(i uint32) math3d.Vec3 {
		o := int(i) * 3
		return math3d.V3(positions[o], positions[o+1], positions[o+2])
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0, p1, p2 := pos(i0), pos(i1), pos(i2)
		faceNormal := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[i0] = acc[i0].Add(faceNormal)
		acc[i1] = acc[i1].Add(faceNormal)
		acc[i2] = acc[i2].Add(faceNormal)
	}

	out := make([]float64, n*3)
	for i, a := range acc {
		nv := a.Normalize()
		if nv == math3d.Zero3() {
			nv = math3d.V3(0, 0, 1)
		}
		out[i*3], out[i*3+1], out[i*3+2] = nv.X, nv.Y, nv.Z
	}
	return out
}

// ComputeWorldAABB transforms every position of every draw call by
// its model matrix and reduces to axis-aligned min/max.
func ComputeWorldAABB(calls []*DrawCall) AABB {
	first := true
	var minV, maxV math3d.Vec3

	for _, d := range calls {
		for i := 0; i < d.VertexCount(); i++ {
			p := d.Model.MulVec3(d.position(i))
			if first {
				minV, maxV = p, p
				first = false
				continue
			}
			minV = minV.Min(p)
			maxV = maxV.Max(p)
		}
	}

	if first {
		return defaultAABB()
	}
	return AABB{Min: minV, Max: maxV}
}
