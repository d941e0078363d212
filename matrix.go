package infinityrunner

import (
	"github.com/go-gl/mathgl/mgl64"
)

var YAxis = mgl64.Vec3{0, 1, 0}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// TransformObj writes m applied to every point of src into dest.
// dest must be at least as long as src.
func TransformObj(m mgl64.Mat4, src, dest []mgl64.Vec3) {
	for i, p := range src {
		dest[i] = m.Mul4x1(p.Vec4(1)).Vec3()
	}
}

// TransformNormals rotates every normal of src into dest. The translation
// part of m is ignored.
func TransformNormals(m mgl64.Mat4, src, dest []mgl64.Vec3) {
	rot := m.Mat3()
	for i, n := range src {
		dest[i] = rot.Mul3x1(n)
	}
}

// RotateVector3 rotates v by the 3x3 rotation part of m.
func RotateVector3(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mat3().Mul3x1(v)
}
