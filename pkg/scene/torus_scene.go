package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// NewTorusChainScene creates a chain of interlocking tori in front of a mirror sphere.
// Alternate links are turned a quarter turn about the chain axis.
func NewTorusChainScene(links int, samplingOverrides ...SamplingConfig) *Scene {
	s := NewScene("torus-chain")
	s.AmbientLight = core.NewVec3(0.2, 0.2, 0.2)
	s.Background = core.NewVec3(0.1, 0.1, 0.1)
	s.MaxBounces = 5
	if len(samplingOverrides) > 0 {
		s.SamplingConfig = MergeSamplingConfig(s.SamplingConfig, samplingOverrides[0])
	}

	if links < 1 {
		links = 1
	}

	majorRadius, minorRadius := 1.0, 0.22
	pitch := 2 * (majorRadius - minorRadius) // Distance between link centers
	start := -pitch * float64(links-1) / 2

	for i := 0; i < links; i++ {
		hue := 360.0 * float64(i) / float64(links)
		color := oklchToRGB(0.7, 0.15, hue)
		mat := material.NewPhong(
			color.Multiply(0.2),
			color,
			core.NewVec3(0.9, 0.9, 0.9),
			80,
		).WithReflectivity(0.2)

		// Links lie in the xy plane; odd ones are turned into the xz plane
		rotation := core.NewVec3(math.Pi/2, 0, 0)
		if i%2 == 1 {
			rotation = core.Vec3{}
		}

		s.AddTorus(fmt.Sprintf("link-%d", i), majorRadius, minorRadius, mat, geometry.NewTransform(
			core.NewVec3(start+float64(i)*pitch, 0.5, 9),
			rotation,
			core.NewVec3(1, 1, 1),
		))
	}

	s.AddSphere("backdrop", 2.5, material.NewMirror(core.NewVec3(0.7, 0.7, 0.75), 0.8), geometry.NewTransform(
		core.NewVec3(0, 0, 16),
		core.Vec3{},
		core.NewVec3(1, 1, 1),
	))

	s.AddPointLight(core.NewVec3(-6, 8, 0), core.NewVec3(0.9, 0.9, 0.9))
	s.AddPointLight(core.NewVec3(6, -4, 2), core.NewVec3(0.3, 0.3, 0.35))

	return s
}
