package geometry

import "github.com/df07/go-implicit-raytracer/pkg/core"

// Shape is an implicit surface described in its own object space
type Shape interface {
	// IntersectionParam returns the smallest positive t at which origin + t·direction
	// lies on the surface, or +Inf when there is none
	IntersectionParam(origin, direction core.Vec3) float64
	// LocalNormal returns the outward surface normal at an object-space point.
	// The result does not have to be unit length.
	LocalNormal(point core.Vec3) core.Vec3
	// Kind names the shape variant
	Kind() string
	// Properties lists the shape dimensions for inspection
	Properties() map[string]float64
}
