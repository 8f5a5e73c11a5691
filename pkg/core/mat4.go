package core

import "math"

// Mat4 is a 4x4 matrix stored row-major
type Mat4 [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that moves points by v
func Translation(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scaling returns a matrix that scales each axis by the matching component of v
func Scaling(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotationX returns a rotation of theta radians about the x axis
func RotationX(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a rotation of theta radians about the y axis
func RotationY(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a rotation of theta radians about the z axis
func RotationZ(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m × other
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return r
}

// MulPoint transforms v as a homogeneous point (w=1) and drops the resulting w
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[j][i] = m[i][j]
		}
	}
	return r
}

// Determinant returns the determinant computed by cofactor expansion along the first row
func (m Mat4) Determinant() float64 {
	c := m.minors()
	return m[0][0]*(m[1][1]*c.a2323-m[1][2]*c.a1323+m[1][3]*c.a1223) -
		m[0][1]*(m[1][0]*c.a2323-m[1][2]*c.a0323+m[1][3]*c.a0223) +
		m[0][2]*(m[1][0]*c.a1323-m[1][1]*c.a0323+m[1][3]*c.a0123) -
		m[0][3]*(m[1][0]*c.a1223-m[1][1]*c.a0223+m[1][2]*c.a0123)
}

// Inverse returns the adjugate divided by the determinant.
// A singular matrix is not detected: its inverse holds ±Inf or NaN entries.
func (m Mat4) Inverse() Mat4 {
	c := m.minors()
	det := 1 / m.Determinant()

	return Mat4{
		{
			det * (m[1][1]*c.a2323 - m[1][2]*c.a1323 + m[1][3]*c.a1223),
			det * -(m[0][1]*c.a2323 - m[0][2]*c.a1323 + m[0][3]*c.a1223),
			det * (m[0][1]*c.a2313 - m[0][2]*c.a1313 + m[0][3]*c.a1213),
			det * -(m[0][1]*c.a2312 - m[0][2]*c.a1312 + m[0][3]*c.a1212),
		},
		{
			det * -(m[1][0]*c.a2323 - m[1][2]*c.a0323 + m[1][3]*c.a0223),
			det * (m[0][0]*c.a2323 - m[0][2]*c.a0323 + m[0][3]*c.a0223),
			det * -(m[0][0]*c.a2313 - m[0][2]*c.a0313 + m[0][3]*c.a0213),
			det * (m[0][0]*c.a2312 - m[0][2]*c.a0312 + m[0][3]*c.a0212),
		},
		{
			det * (m[1][0]*c.a1323 - m[1][1]*c.a0323 + m[1][3]*c.a0123),
			det * -(m[0][0]*c.a1323 - m[0][1]*c.a0323 + m[0][3]*c.a0123),
			det * (m[0][0]*c.a1313 - m[0][1]*c.a0313 + m[0][3]*c.a0113),
			det * -(m[0][0]*c.a1312 - m[0][1]*c.a0312 + m[0][3]*c.a0112),
		},
		{
			det * -(m[1][0]*c.a1223 - m[1][1]*c.a0223 + m[1][2]*c.a0123),
			det * (m[0][0]*c.a1223 - m[0][1]*c.a0223 + m[0][2]*c.a0123),
			det * -(m[0][0]*c.a1213 - m[0][1]*c.a0213 + m[0][2]*c.a0113),
			det * (m[0][0]*c.a1212 - m[0][1]*c.a0212 + m[0][2]*c.a0112),
		},
	}
}

// minors2x2 holds the 2x2 sub-determinants shared by Determinant and Inverse.
// aIJKL is the minor built from columns I,J and rows K,L.
type minors2x2 struct {
	a2323, a1323, a1223, a0323, a0223, a0123 float64
	a2313, a1313, a1213, a2312, a1312, a1212 float64
	a0313, a0213, a0312, a0212, a0113, a0112 float64
}

func (m Mat4) minors() minors2x2 {
	return minors2x2{
		a2323: m[2][2]*m[3][3] - m[2][3]*m[3][2],
		a1323: m[2][1]*m[3][3] - m[2][3]*m[3][1],
		a1223: m[2][1]*m[3][2] - m[2][2]*m[3][1],
		a0323: m[2][0]*m[3][3] - m[2][3]*m[3][0],
		a0223: m[2][0]*m[3][2] - m[2][2]*m[3][0],
		a0123: m[2][0]*m[3][1] - m[2][1]*m[3][0],
		a2313: m[1][2]*m[3][3] - m[1][3]*m[3][2],
		a1313: m[1][1]*m[3][3] - m[1][3]*m[3][1],
		a1213: m[1][1]*m[3][2] - m[1][2]*m[3][1],
		a2312: m[1][2]*m[2][3] - m[1][3]*m[2][2],
		a1312: m[1][1]*m[2][3] - m[1][3]*m[2][1],
		a1212: m[1][1]*m[2][2] - m[1][2]*m[2][1],
		a0313: m[1][0]*m[3][3] - m[1][3]*m[3][0],
		a0213: m[1][0]*m[3][2] - m[1][2]*m[3][0],
		a0312: m[1][0]*m[2][3] - m[1][3]*m[2][0],
		a0212: m[1][0]*m[2][2] - m[1][2]*m[2][0],
		a0113: m[1][0]*m[3][1] - m[1][1]*m[3][0],
		a0112: m[1][0]*m[2][1] - m[1][1]*m[2][0],
	}
}
