package math3d

// Vec4 is a homogeneous 3D point or direction: the w component
// distinguishes points (w=1) from directions (w=0) and carries the
// perspective divisor through a projective transform.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 lifts v into homogeneous coordinates with the given w.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// XYZ returns the spatial part, dropping w.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
