package math3d

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row, col) is
// stored at index col*4+row, so an affine transform keeps its basis
// vectors in the first three columns and its translation at
// m[12..14]. Vectors multiply on the right, m * v.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate builds a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale builds a matrix that scales each axis by the matching
// component of v.
func Scale(v Vec3) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = v.X, v.Y, v.Z, 1
	return m
}

// RotateX builds a rotation of angle radians around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY builds a rotation of angle radians around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Rotate builds a rotation of angle radians around an arbitrary axis
// (Rodrigues form). The axis need not be unit length.
func Rotate(axis Vec3, angle float64) Mat4 {
	a := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	return Mat4{
		t*a.X*a.X + c, t*a.X*a.Y + s*a.Z, t*a.X*a.Z - s*a.Y, 0,
		t*a.X*a.Y - s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z + s*a.X, 0,
		t*a.X*a.Z + s*a.Y, t*a.Y*a.Z - s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
}

// FromRotationTranslationScale composes T*R*S into a single matrix,
// the order glTF defines for a node transform given as separate
// translation, rotation, and scale fields.
func FromRotationTranslationScale(t Vec3, r Quat, s Vec3) Mat4 {
	m := Mat4FromQuat(r)
	sc := [3]float64{s.X, s.Y, s.Z}
	for c := 0; c < 3; c++ {
		m[c*4] *= sc[c]
		m[c*4+1] *= sc[c]
		m[c*4+2] *= sc[c]
	}
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// LookAt builds a right-handed view matrix with the eye at the
// origin and center down the -Z axis.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	right := fwd.Cross(up).Normalize()
	upv := right.Cross(fwd)

	return Mat4{
		right.X, upv.X, -fwd.X, 0,
		right.Y, upv.Y, -fwd.Y, 0,
		right.Z, upv.Z, -fwd.Z, 0,
		-right.Dot(eye), -upv.Dot(eye), fwd.Dot(eye), 1,
	}
}

// Perspective builds a symmetric perspective projection. fovy is the
// vertical field of view in radians, aspect is width/height. Depth
// maps to [-1,1] between the near and far planes.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	d := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / d
	m[11] = -1
	m[14] = 2 * far * near / d
	return m
}

// Mul returns the matrix product a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		bc := b[c*4 : c*4+4]
		for r := 0; r < 4; r++ {
			out[c*4+r] = a[r]*bc[0] + a[r+4]*bc[1] + a[r+8]*bc[2] + a[r+12]*bc[3]
		}
	}
	return out
}

// MulVec3 transforms v as a point (w=1), dividing by the resulting w
// when the matrix is projective.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		(m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		(m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// MulVec3Dir transforms v as a direction (w=0): rotation and scale
// apply, translation does not.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a homogeneous vector, keeping w.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// pairProducts returns the twelve 2x2 sub-determinants the
// determinant and inverse share, split between the top and bottom
// halves of the matrix.
func (m Mat4) pairProducts() (b [12]float64) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b[0] = a00*a11 - a01*a10
	b[1] = a00*a12 - a02*a10
	b[2] = a00*a13 - a03*a10
	b[3] = a01*a12 - a02*a11
	b[4] = a01*a13 - a03*a11
	b[5] = a02*a13 - a03*a12
	b[6] = a20*a31 - a21*a30
	b[7] = a20*a32 - a22*a30
	b[8] = a20*a33 - a23*a30
	b[9] = a21*a32 - a22*a31
	b[10] = a21*a33 - a23*a31
	b[11] = a22*a33 - a23*a32
	return
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	b := m.pairProducts()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse of the matrix, or identity if the
// matrix is singular.
func (m Mat4) Inverse() Mat4 {
	b := m.pairProducts()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return Mat4{
		(a11*b[11] - a12*b[10] + a13*b[9]) * inv,
		(a02*b[10] - a01*b[11] - a03*b[9]) * inv,
		(a31*b[5] - a32*b[4] + a33*b[3]) * inv,
		(a22*b[4] - a21*b[5] - a23*b[3]) * inv,
		(a12*b[8] - a10*b[11] - a13*b[7]) * inv,
		(a00*b[11] - a02*b[8] + a03*b[7]) * inv,
		(a32*b[2] - a30*b[5] - a33*b[1]) * inv,
		(a20*b[5] - a22*b[2] + a23*b[1]) * inv,
		(a10*b[10] - a11*b[8] + a13*b[6]) * inv,
		(a01*b[8] - a00*b[10] - a03*b[6]) * inv,
		(a30*b[4] - a31*b[2] + a33*b[0]) * inv,
		(a21*b[2] - a20*b[4] - a23*b[0]) * inv,
		(a11*b[7] - a10*b[9] - a12*b[6]) * inv,
		(a00*b[9] - a01*b[7] + a02*b[6]) * inv,
		(a31*b[1] - a30*b[3] - a32*b[0]) * inv,
		(a20*b[3] - a21*b[1] + a22*b[0]) * inv,
	}
}

// NormalFromMat4 returns the matrix that transforms surface normals
// under m: the transpose of the inverse, whose upper-left 3x3 is the
// inverse-transpose of m's linear part. Under non-uniform scale a
// normal must divide by the scale its surface multiplies by.
func NormalFromMat4(m Mat4) Mat4 {
	return m.Inverse().Transpose()
}
