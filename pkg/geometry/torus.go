package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/roots"
)

// Torus is a ring around the object-space y axis. The tube of radius MinorRadius
// sweeps a circle of radius MajorRadius in the xz plane.
type Torus struct {
	MajorRadius float64
	MinorRadius float64

	solver  roots.Solver
	epsilon float64 // roots at or below this are treated as self-intersections
}

// NewTorus creates a torus that solves its quartic with the given tolerances
func NewTorus(majorRadius, minorRadius float64, tolerances core.Tolerances) *Torus {
	return &Torus{
		MajorRadius: majorRadius,
		MinorRadius: minorRadius,
		solver:      roots.NewSolver(tolerances.Solver),
		epsilon:     tolerances.Surface,
	}
}

// IntersectionParam substitutes the ray into (|p|² - R² - r²)² = 4R²(r² - p.y²)
// and returns the smallest quartic root above epsilon, or +Inf
func (t *Torus) IntersectionParam(origin, direction core.Vec3) float64 {
	r2 := t.MajorRadius * t.MajorRadius
	rr2 := t.MinorRadius * t.MinorRadius

	dd := direction.Dot(direction)
	do := direction.Dot(origin)
	oo := origin.Dot(origin)

	p := oo - r2 - rr2

	c0 := dd * dd
	c1 := 4 * dd * do
	c2 := 2*dd*p + 4*do*do + 4*r2*direction.Y*direction.Y
	c3 := 4*do*p + 8*r2*origin.Y*direction.Y
	c4 := p*p - 4*r2*(rr2-origin.Y*origin.Y)

	nearest := math.Inf(1)
	for _, root := range t.solver.Quartic(c0, c1, c2, c3, c4) {
		if root > t.epsilon && root < nearest {
			nearest = root
		}
	}
	return nearest
}

// LocalNormal points from the nearest point on the central circle toward point
func (t *Torus) LocalNormal(point core.Vec3) core.Vec3 {
	a := t.MajorRadius / math.Sqrt(point.X*point.X+point.Z*point.Z)
	return core.NewVec3((1-a)*point.X, point.Y, (1-a)*point.Z)
}

// Kind returns "torus"
func (t *Torus) Kind() string { return "torus" }

// Properties returns the major and minor radii
func (t *Torus) Properties() map[string]float64 {
	return map[string]float64{
		"majorRadius": t.MajorRadius,
		"minorRadius": t.MinorRadius,
	}
}
