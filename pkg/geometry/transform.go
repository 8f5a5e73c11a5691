package geometry

import (
	"fmt"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Axis selects one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Transform places a shape in the world: points are scaled, then rotated, then translated.
//
// A Transform is an immutable value. The With* methods return a new Transform
// with every cached matrix rebuilt, so the forward and inverse pair always agree.
type Transform struct {
	translation core.Vec3
	rotation    core.Vec3 // angles in radians about x, y and z
	scaling     core.Vec3

	t, r, s          core.Mat4
	invT, invR, invS core.Mat4

	toLocalDir   core.Mat4 // S⁻¹·R⁻¹
	toLocalPoint core.Mat4 // S⁻¹·R⁻¹·T⁻¹
	toWorld      core.Mat4 // T·R·S
	normalMatrix core.Mat4 // (S⁻¹·R⁻¹)ᵀ
}

// IdentityTransform returns a transform that leaves points where they are
func IdentityTransform() Transform {
	return NewTransform(core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1))
}

// NewTransform builds a transform from a translation, per-axis rotation angles in
// radians, and per-axis scale factors
func NewTransform(translation, rotation, scaling core.Vec3) Transform {
	tr := Transform{
		translation: translation,
		rotation:    rotation,
		scaling:     scaling,
	}
	tr.t, tr.invT = translationPair(translation)
	tr.r, tr.invR = rotationPair(rotation)
	tr.s, tr.invS = scalingPair(scaling)
	tr.compose()
	return tr
}

// WithTranslation returns a copy moved to v
func (tr Transform) WithTranslation(v core.Vec3) Transform {
	tr.translation = v
	tr.t, tr.invT = translationPair(v)
	tr.compose()
	return tr
}

// WithRotation returns a copy whose rotation about axis is theta radians.
// The other two axis angles are kept.
func (tr Transform) WithRotation(axis Axis, theta float64) Transform {
	switch axis {
	case AxisX:
		tr.rotation.X = theta
	case AxisY:
		tr.rotation.Y = theta
	case AxisZ:
		tr.rotation.Z = theta
	}
	tr.r, tr.invR = rotationPair(tr.rotation)
	tr.compose()
	return tr
}

// WithScaling returns a copy scaled by v along each axis
func (tr Transform) WithScaling(v core.Vec3) Transform {
	tr.scaling = v
	tr.s, tr.invS = scalingPair(v)
	tr.compose()
	return tr
}

// Translation returns the translation vector
func (tr Transform) Translation() core.Vec3 { return tr.translation }

// Rotation returns the rotation angles about x, y and z in radians
func (tr Transform) Rotation() core.Vec3 { return tr.rotation }

// Scaling returns the per-axis scale factors
func (tr Transform) Scaling() core.Vec3 { return tr.scaling }

// Forward returns the composed local-to-world matrix T·R·S
func (tr Transform) Forward() core.Mat4 { return tr.toWorld }

// Inverse returns the composed world-to-local matrix S⁻¹·R⁻¹·T⁻¹
func (tr Transform) Inverse() core.Mat4 { return tr.toLocalPoint }

// RayToLocal maps a world-space ray into object space.
// The direction only sees rotation and scaling.
func (tr Transform) RayToLocal(ray core.Ray) core.Ray {
	return core.Ray{
		Origin:    tr.toLocalPoint.MulPoint(ray.Origin),
		Direction: tr.toLocalDir.MulPoint(ray.Direction),
	}
}

// PointToLocal maps a world-space point into object space
func (tr Transform) PointToLocal(p core.Vec3) core.Vec3 {
	return tr.toLocalPoint.MulPoint(p)
}

// PointToWorld maps an object-space point into world space
func (tr Transform) PointToWorld(p core.Vec3) core.Vec3 {
	return tr.toWorld.MulPoint(p)
}

// NormalToWorld maps an object-space normal into world space through the
// inverse transpose of the linear part, and normalizes it
func (tr Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	return tr.normalMatrix.MulPoint(n).Normalize()
}

func (tr *Transform) compose() {
	tr.toLocalDir = tr.invS.Mul(tr.invR)
	tr.toLocalPoint = tr.toLocalDir.Mul(tr.invT)
	tr.toWorld = tr.t.Mul(tr.r).Mul(tr.s)
	tr.normalMatrix = tr.toLocalDir.Transpose()
}

func translationPair(v core.Vec3) (core.Mat4, core.Mat4) {
	return core.Translation(v), core.Translation(v.Negate())
}

// rotationPair composes Ry·Rx·Rz; each axis inverse is its transpose
func rotationPair(angles core.Vec3) (core.Mat4, core.Mat4) {
	rx, ry, rz := core.RotationX(angles.X), core.RotationY(angles.Y), core.RotationZ(angles.Z)
	forward := ry.Mul(rx).Mul(rz)
	inverse := rz.Transpose().Mul(rx.Transpose()).Mul(ry.Transpose())
	return forward, inverse
}

func scalingPair(v core.Vec3) (core.Mat4, core.Mat4) {
	return core.Scaling(v), core.Scaling(core.NewVec3(1/v.X, 1/v.Y, 1/v.Z))
}
