package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// PointLight is an infinitely small light source
type PointLight struct {
	Location core.Vec3
	Color    core.Vec3
}

// Scene contains all the elements needed for rendering.
// It must not be modified while a render is running.
type Scene struct {
	Name           string
	Entities       []*geometry.Entity // Objects in the scene, in intersection scan order
	Lights         []PointLight       // Lights in the scene
	AmbientLight   core.Vec3          // Color of the light reaching every surface
	Background     core.Vec3          // Color of rays that hit nothing
	MaxBounces     int                // Maximum mirror reflection depth
	SamplingConfig SamplingConfig
	Tolerances     core.Tolerances // Thresholds the scene's tori were built with
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Rays per block; rounded down to a square number
	BlockSize       int // Width in pixels of the square painted by one traced block
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 1,
		BlockSize:       1,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.BlockSize != 0 {
		result.BlockSize = override.BlockSize
	}
	return result
}

// NewScene creates an empty scene with default sampling and tolerances
func NewScene(name string) *Scene {
	return &Scene{
		Name:           name,
		MaxBounces:     3,
		SamplingConfig: DefaultSamplingConfig(),
		Tolerances:     core.DefaultTolerances(),
	}
}

// AddEntity appends an entity to the scan order and returns it
func (s *Scene) AddEntity(e *geometry.Entity) *geometry.Entity {
	s.Entities = append(s.Entities, e)
	return e
}

// AddSphere adds a sphere placed by transform
func (s *Scene) AddSphere(name string, radius float64, mat material.Phong, transform geometry.Transform) *geometry.Entity {
	return s.AddEntity(geometry.NewEntity(name, geometry.NewSphere(radius), mat).WithTransform(transform))
}

// AddTorus adds a torus placed by transform, solved with the scene tolerances
func (s *Scene) AddTorus(name string, majorRadius, minorRadius float64, mat material.Phong, transform geometry.Transform) *geometry.Entity {
	torus := geometry.NewTorus(majorRadius, minorRadius, s.Tolerances)
	return s.AddEntity(geometry.NewEntity(name, torus, mat).WithTransform(transform))
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(location, color core.Vec3) {
	s.Lights = append(s.Lights, PointLight{Location: location, Color: color})
}

// Validate reports every field that would make the scene unrenderable
func (s *Scene) Validate() error {
	var errs []error
	if s.MaxBounces < 0 {
		errs = append(errs, fmt.Errorf("max bounces must not be negative, got %d", s.MaxBounces))
	}
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height))
	}
	if s.SamplingConfig.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples per pixel must be at least 1, got %d", s.SamplingConfig.SamplesPerPixel))
	}
	if s.SamplingConfig.BlockSize < 1 {
		errs = append(errs, fmt.Errorf("block size must be at least 1, got %d", s.SamplingConfig.BlockSize))
	}
	for i, e := range s.Entities {
		if e == nil || e.Shape == nil {
			errs = append(errs, fmt.Errorf("entity %d has no shape", i))
		}
	}
	return errors.Join(errs...)
}
