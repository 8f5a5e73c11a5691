package integrator

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Integrator defines the interface the renderer drives to turn camera rays into colors
type Integrator interface {
	// CastPrimaryRay returns the shaded color seen along a camera ray
	CastPrimaryRay(origin, direction core.Vec3) core.Vec3
	// Trace casts a camera ray and returns it with both its hit record and shaded color
	Trace(origin, direction core.Vec3) (*Ray, core.Vec3)
	// Stats returns the ray counts accumulated so far
	Stats() RayCounts
}
