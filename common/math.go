package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMatrix returns a new 4x4 identity matrix.
//
// Returns:
//   - [16]float32: the identity matrix (column-major)
func IdentityMatrix() [16]float32 {
	return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// MulVec4 transforms a homogeneous 4-component vector by a column-major 4x4 matrix.
//
// Parameters:
//   - m: the matrix (column-major)
//   - v: the vector to transform
//
// Returns:
//   - [4]float32: m * v
func MulVec4(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

// Scale writes a non-uniform scale matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: scale factors along each axis
func Scale(out []float32, x, y, z float32) {
	Identity(out)
	out[0], out[5], out[10] = x, y, z
}

// Translation writes a translation matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation along each axis
func Translation(out []float32, x, y, z float32) {
	Identity(out)
	out[12], out[13], out[14] = x, y, z
}

// Rotation writes the rotation matrix of a unit quaternion (x, y, z, w) into out.
// The quaternion is expected to be normalized; no renormalization is applied.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - qx, qy, qz, qw: quaternion components
func Rotation(out []float32, qx, qy, qz, qw float32) {
	x2, y2, z2 := qx+qx, qy+qy, qz+qz
	xx, xy, xz := qx*x2, qx*y2, qx*z2
	yy, yz, zz := qy*y2, qy*z2, qz*z2
	wx, wy, wz := qw*x2, qw*y2, qw*z2

	out[0], out[1], out[2], out[3] = 1-(yy+zz), xy+wz, xz-wy, 0
	out[4], out[5], out[6], out[7] = xy-wz, 1-(xx+zz), yz+wx, 0
	out[8], out[9], out[10], out[11] = xz+wy, yz-wx, 1-(xx+yy), 0
	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
}

// AxisAngle returns the unit quaternion (x, y, z, w) rotating by angle radians around the given axis.
// The axis is normalized before use; a zero axis yields the identity rotation.
//
// Parameters:
//   - ax, ay, az: rotation axis
//   - angle: rotation angle in radians
//
// Returns:
//   - [4]float32: the quaternion as (x, y, z, w)
func AxisAngle(ax, ay, az, angle float32) [4]float32 {
	l := math32.Sqrt(ax*ax + ay*ay + az*az)
	if l == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	s, c := math32.Sincos(angle / 2)
	s /= l
	return [4]float32{ax * s, ay * s, az * s, c}
}

// PerspectiveLH creates a left-handed perspective projection matrix with depth mapped to [0, 1],
// the WebGPU clip space convention.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func PerspectiveLH(out []float32, fovY, aspect, near, far float32) {
	sin, cos := math32.Sincos(0.5 * fovY)
	h := cos / sin
	w := h / aspect
	r := far / (far - near)

	for i := range out[:16] {
		out[i] = 0
	}
	out[0] = w
	out[5] = h
	out[10] = r
	out[11] = 1
	out[14] = -r * near
}

// OrthographicLH creates a left-handed orthographic projection matrix with depth mapped to [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, bottom, top: the view volume's side planes
//   - near, far: the view volume's depth planes
func OrthographicLH(out []float32, left, right, bottom, top, near, far float32) {
	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	r := 1 / (far - near)

	Identity(out)
	out[0] = rw + rw
	out[5] = rh + rh
	out[10] = r
	out[12] = -(left + right) * rw
	out[13] = -(top + bottom) * rh
	out[14] = -r * near
}

// LookAtLH creates a left-handed view matrix that positions and orients the camera.
// The camera looks down +Z in view space toward the center point.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAtLH(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	f0, f1, f2 := normalize3(centerX-eyeX, centerY-eyeY, centerZ-eyeZ)

	// s = normalize(up x f)
	s0, s1, s2 := normalize3(upY*f2-upZ*f1, upZ*f0-upX*f2, upX*f1-upY*f0)

	// u = f x s
	u0 := f1*s2 - f2*s1
	u1 := f2*s0 - f0*s2
	u2 := f0*s1 - f1*s0

	out[0], out[4], out[8], out[12] = s0, s1, s2, -(s0*eyeX + s1*eyeY + s2*eyeZ)
	out[1], out[5], out[9], out[13] = u0, u1, u2, -(u0*eyeX + u1*eyeY + u2*eyeZ)
	out[2], out[6], out[10], out[14] = f0, f1, f2, -(f0*eyeX + f1*eyeY + f2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// normalize3 returns the unit vector of (x, y, z). A zero vector is returned unchanged.
func normalize3(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return x, y, z
	}
	inv := 1 / l
	return x * inv, y * inv, z * inv
}
