package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// Entity is a shape instance placed in the scene with its own material and transform
type Entity struct {
	Name      string
	Shape     Shape
	Material  material.Phong
	Transform Transform
}

// NewEntity creates an untransformed entity
func NewEntity(name string, shape Shape, mat material.Phong) *Entity {
	return &Entity{
		Name:      name,
		Shape:     shape,
		Material:  mat,
		Transform: IdentityTransform(),
	}
}

// WithTransform returns a copy of the entity placed by t
func (e *Entity) WithTransform(t Transform) *Entity {
	copied := *e
	copied.Transform = t
	return &copied
}

// IntersectionParam returns the object-space ray parameter of the nearest hit, or +Inf.
// The parameter is not a world-space distance when the transform scales.
func (e *Entity) IntersectionParam(ray core.Ray) float64 {
	local := e.Transform.RayToLocal(ray)
	return e.Shape.IntersectionParam(local.Origin, local.Direction)
}

// IntersectionPoint maps the object-space parameter t back to the world-space point it names
func (e *Entity) IntersectionPoint(ray core.Ray, t float64) core.Vec3 {
	local := e.Transform.RayToLocal(ray)
	return e.Transform.PointToWorld(local.At(t))
}

// Normal returns the unit world-space surface normal at a world-space point on the entity
func (e *Entity) Normal(point core.Vec3) core.Vec3 {
	local := e.Transform.PointToLocal(point)
	return e.Transform.NormalToWorld(e.Shape.LocalNormal(local))
}
