package scene

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a torus and a squashed-sphere ground
func NewDefaultScene(samplingOverrides ...SamplingConfig) *Scene {
	s := NewScene("default")
	s.AmbientLight = core.NewVec3(0.25, 0.25, 0.25)
	s.Background = core.NewVec3(0.05, 0.07, 0.12)
	s.MaxBounces = 4
	if len(samplingOverrides) > 0 {
		s.SamplingConfig = MergeSamplingConfig(s.SamplingConfig, samplingOverrides[0])
	}

	// Create materials
	matteGround := material.NewMatte(core.NewVec3(0.45, 0.5, 0.4))
	matteRed := material.NewMatte(core.NewVec3(0.75, 0.2, 0.15))
	mirror := material.NewMirror(core.NewVec3(0.8, 0.8, 0.85), 0.7)
	gold := material.NewPhong(
		core.NewVec3(0.2, 0.15, 0.05),
		core.NewVec3(0.8, 0.6, 0.2),
		core.NewVec3(0.9, 0.8, 0.5),
		60,
	).WithReflectivity(0.25)

	// Ground is a unit sphere flattened into a wide disc-like ellipsoid
	s.AddSphere("ground", 1, matteGround, geometry.NewTransform(
		core.NewVec3(0, -3, 14),
		core.Vec3{},
		core.NewVec3(30, 1, 30),
	))

	s.AddSphere("red", 1, matteRed, geometry.NewTransform(
		core.NewVec3(-2.2, -1, 10),
		core.Vec3{},
		core.NewVec3(1, 1, 1),
	))
	s.AddSphere("mirror", 1.25, mirror, geometry.NewTransform(
		core.NewVec3(1.8, -0.75, 12),
		core.Vec3{},
		core.NewVec3(1, 1, 1),
	))

	// Tilt the ring towards the camera so the hole is visible
	s.AddTorus("ring", 1.4, 0.35, gold, geometry.NewTransform(
		core.NewVec3(0, 1.6, 11),
		core.NewVec3(-60*math.Pi/180, 20*math.Pi/180, 0),
		core.NewVec3(1, 1, 1),
	))

	s.AddPointLight(core.NewVec3(-10, 10, 0), core.NewVec3(0.8, 0.8, 0.8))
	s.AddPointLight(core.NewVec3(10, 6, 4), core.NewVec3(0.4, 0.4, 0.45))

	return s
}
