package integrator

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// Ray is a single cast from an origin along a direction. The direction need not be
// unit length. After Cast it records the nearest entity, the world-space hit point and
// the true distance from the origin to that point. A Ray is not reused for another cast.
type Ray struct {
	Origin    core.Vec3
	Direction core.Vec3
	Bounces   int // Number of reflections that led to this ray

	cast     bool
	entity   *geometry.Entity
	point    core.Vec3
	distance float64
}

// NewRay creates an uncast ray
func NewRay(origin, direction core.Vec3, bounces int) *Ray {
	return &Ray{
		Origin:    origin,
		Direction: direction,
		Bounces:   bounces,
		distance:  math.Inf(1),
	}
}

// Hit reports whether the cast found an entity
func (r *Ray) Hit() bool { return r.entity != nil }

// Entity returns the nearest entity hit, or nil on a miss
func (r *Ray) Entity() *geometry.Entity { return r.entity }

// Point returns the world-space hit point. Only meaningful when Hit is true.
func (r *Ray) Point() core.Vec3 { return r.point }

// Distance returns the world-space distance from the origin to the hit point, +Inf on a miss
func (r *Ray) Distance() float64 { return r.distance }

// Whitted shades rays with ambient, Phong diffuse and specular terms from unoccluded
// point lights, plus recursive mirror reflection bounded by the scene's max bounces.
// The scene must not change while a Whitted is in use.
type Whitted struct {
	scene      *scene.Scene
	tolerances core.Tolerances
	stats      RayStats
}

// NewWhitted creates a shading engine for a scene
func NewWhitted(s *scene.Scene, tolerances core.Tolerances) *Whitted {
	return &Whitted{
		scene:      s,
		tolerances: tolerances,
	}
}

// Cast scans every entity in scene order and records the nearest hit on the ray.
// A candidate replaces the current winner only when strictly closer.
func (w *Whitted) Cast(r *Ray) {
	ray := core.NewRay(r.Origin, r.Direction)
	r.entity = nil
	r.distance = math.Inf(1)

	for _, e := range w.scene.Entities {
		t := e.IntersectionParam(ray)
		if math.IsInf(t, 1) || math.IsNaN(t) {
			continue
		}
		point := e.IntersectionPoint(ray, t)
		distance := point.Distance(r.Origin)
		// NaN distances fail this comparison
		if distance < r.distance {
			r.entity = e
			r.point = point
			r.distance = distance
		}
	}
	r.cast = true
}

// Shade returns the color seen along the ray, casting it first if needed
func (w *Whitted) Shade(r *Ray) core.Vec3 {
	if !r.cast {
		w.Cast(r)
	}
	if r.entity == nil {
		return w.scene.Background
	}

	mat := r.entity.Material
	color := w.scene.AmbientLight.MultiplyVec(mat.Ambient)

	normal := r.entity.Normal(r.point)
	view := r.Origin.Subtract(r.point).Normalize()
	eps := w.tolerances.Surface

	for _, light := range w.scene.Lights {
		toLight := light.Location.Subtract(r.point)
		l := toLight.Normalize()
		reflected := normal.Multiply(2 * normal.Dot(l)).Subtract(l).Normalize()

		// Shadow rays keep the bounce count and are never shaded
		shadow := NewRay(r.point.Add(l.Multiply(eps)), l, r.Bounces)
		w.Cast(shadow)
		w.stats.addShadow()
		if shadow.Hit() && shadow.Distance() <= toLight.Length() {
			continue
		}

		diffuse := math.Max(normal.Dot(l), 0)
		specular := math.Pow(math.Max(reflected.Dot(view), 0), mat.Shininess)

		color = color.Add(light.Color.MultiplyVec(mat.Diffuse).Multiply(diffuse))
		color = color.Add(light.Color.MultiplyVec(mat.Specular).Multiply(specular))
	}

	if mat.Reflectivity > 0 && r.Bounces < w.scene.MaxBounces {
		color = color.Multiply(1 - mat.Reflectivity)

		direction := r.Direction.Subtract(normal.Multiply(2 * normal.Dot(r.Direction))).Normalize()
		reflection := NewRay(r.point.Add(direction.Multiply(eps)), direction, r.Bounces+1)
		w.stats.addReflection(reflection.Bounces)

		color = color.Add(w.Shade(reflection).Multiply(mat.Reflectivity))
	}

	return color
}

// Trace casts a camera ray and returns it with its shaded color
func (w *Whitted) Trace(origin, direction core.Vec3) (*Ray, core.Vec3) {
	r := NewRay(origin, direction, 0)
	w.stats.addPrimary()
	return r, w.Shade(r)
}

// CastPrimaryRay returns the color seen along a camera ray
func (w *Whitted) CastPrimaryRay(origin, direction core.Vec3) core.Vec3 {
	_, color := w.Trace(origin, direction)
	return color
}

// IntersectionDistance returns the distance to the nearest hit along a ray, +Inf on a miss
func (w *Whitted) IntersectionDistance(origin, direction core.Vec3) float64 {
	r := NewRay(origin, direction, 0)
	w.Cast(r)
	return r.Distance()
}

// Stats returns the ray counts accumulated so far
func (w *Whitted) Stats() RayCounts {
	return w.stats.Snapshot()
}

// ResetStats zeroes the ray counters
func (w *Whitted) ResetStats() {
	w.stats.Reset()
}
