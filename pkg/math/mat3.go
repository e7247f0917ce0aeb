package math

import "github.com/go-gl/mathgl/mgl64"

// Mat3 is a 3x3 matrix in column-major order.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 mgl64.Mat3

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3(mgl64.Ident3())
}

// RotationX returns a rotation around the X axis.
// deg is in degrees, positive angles turn Y towards Z.
func RotationX(deg float64) Mat3 {
	return Mat3(mgl64.Rotate3DX(DegToRad(deg)))
}

// RotationY returns a rotation around the Y axis.
// deg is in degrees, positive angles turn Z towards X.
func RotationY(deg float64) Mat3 {
	return Mat3(mgl64.Rotate3DY(DegToRad(deg)))
}

// RotationZ returns a rotation around the Z axis.
// deg is in degrees, positive angles turn X towards Y.
func RotationZ(deg float64) Mat3 {
	return Mat3(mgl64.Rotate3DZ(DegToRad(deg)))
}

// ScaleMat3 returns a non-uniform scale matrix.
func ScaleMat3(x, y, z float64) Mat3 {
	return Mat3(mgl64.Diag3(mgl64.Vec3{x, y, z}))
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	return Mat3(mgl64.Mat3(m).Mul3(mgl64.Mat3(other)))
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	r := mgl64.Mat3(m).Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{r[0], r[1], r[2]}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3(mgl64.Mat3(m).Transpose())
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return mgl64.Mat3(m).Det()
}

// Inverse returns the inverse of the matrix.
// ok is false when the matrix is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	if m.Det() == 0 {
		return Mat3{}, false
	}
	return Mat3(mgl64.Mat3(m).Inv()), true
}

// At returns the element at the given row and column.
func (m Mat3) At(row, col int) float64 {
	return mgl64.Mat3(m).At(row, col)
}
