package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Sphere is a sphere of the given radius centered on the object-space origin
type Sphere struct {
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// IntersectionParam solves |o + t·d|² = r² and returns the smallest non-negative root
func (s *Sphere) IntersectionParam(origin, direction core.Vec3) float64 {
	// Quadratic equation coefficients: k0·t² + k1·t + k2 = 0
	k0 := direction.Dot(direction)
	k1 := 2 * origin.Dot(direction)
	k2 := origin.Dot(origin) - s.Radius*s.Radius

	discriminant := k1*k1 - 4*k0*k2
	if discriminant < 0 {
		return math.Inf(1)
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-k1 + sqrtD) / (2 * k0)
	t2 := (-k1 - sqrtD) / (2 * k0)

	// Roots behind the origin do not count
	if t1 < 0 {
		t1 = math.Inf(1)
	}
	if t2 < 0 {
		t2 = math.Inf(1)
	}
	return math.Min(t1, t2)
}

// LocalNormal returns the point itself, which points away from the center
func (s *Sphere) LocalNormal(point core.Vec3) core.Vec3 {
	return point
}

// Kind returns "sphere"
func (s *Sphere) Kind() string { return "sphere" }

// Properties returns the radius
func (s *Sphere) Properties() map[string]float64 {
	return map[string]float64{"radius": s.Radius}
}
