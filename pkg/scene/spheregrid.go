package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a gridSize x gridSize grid of spheres
// resting on a flattened ground. Hue varies across the grid, reflectivity varies
// along the depth axis.
func NewSphereGridScene(gridSize int, samplingOverrides ...SamplingConfig) *Scene {
	s := NewScene("sphere-grid")
	s.AmbientLight = core.NewVec3(0.2, 0.2, 0.2)
	s.Background = core.NewVec3(0.5, 0.7, 1.0)
	s.MaxBounces = 3
	if len(samplingOverrides) > 0 {
		s.SamplingConfig = MergeSamplingConfig(s.SamplingConfig, samplingOverrides[0])
	}

	s.AddSphere("ground", 1, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)), geometry.NewTransform(
		core.NewVec3(0, -3, 14),
		core.Vec3{},
		core.NewVec3(40, 1, 40),
	))

	if gridSize < 1 {
		gridSize = 1
	}

	// Fit the grid into a fixed footprint in front of the camera
	targetArea := 8.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}
	sphereRadius := math.Max(0.05, math.Min(0.6, spacing*0.35))

	baseLightness := 0.65
	chroma := 0.2

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0
			z := float64(j)*spacing + 8.0
			y := -2 + sphereRadius // Sphere sits on top of the ground

			t := 0.0
			if gridSize > 1 {
				t = float64(j) / float64(gridSize-1)
			}
			hue := 360.0 * float64(i) / float64(gridSize)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			mat := material.NewPhong(
				color.Multiply(0.2),
				color,
				core.NewVec3(0.6, 0.6, 0.6),
				40,
			).WithReflectivity(0.6 * t)

			s.AddSphere(fmt.Sprintf("sphere-%d-%d", i, j), sphereRadius, mat, geometry.NewTransform(
				core.NewVec3(x, y, z),
				core.Vec3{},
				core.NewVec3(1, 1, 1),
			))
		}
	}

	s.AddPointLight(core.NewVec3(-8, 12, 2), core.NewVec3(0.9, 0.9, 0.85))

	return s
}
