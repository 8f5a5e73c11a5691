package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// Vec3Cfg is a vector or color written as a JSON array of three numbers
type Vec3Cfg [3]float64

// Vec3 converts the array to a core.Vec3
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// RotDeg holds rotations about each axis in degrees
type RotDeg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Radians converts the rotation to radians
func (r RotDeg) Radians() core.Vec3 {
	const k = math.Pi / 180
	return core.NewVec3(r.X*k, r.Y*k, r.Z*k)
}

// MaterialCfg describes a Phong material. A preset of "matte" or "mirror" derives
// the coefficients from color; otherwise they are given explicitly.
type MaterialCfg struct {
	Preset       string  `json:"preset,omitempty"`
	Color        Vec3Cfg `json:"color,omitempty"`
	Ambient      Vec3Cfg `json:"ambient,omitempty"`
	Diffuse      Vec3Cfg `json:"diffuse,omitempty"`
	Specular     Vec3Cfg `json:"specular,omitempty"`
	Shininess    float64 `json:"shininess,omitempty"`
	Reflectivity float64 `json:"reflectivity,omitempty"`
}

// EntityCfg describes one sphere or torus and its placement
type EntityCfg struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`                  // "sphere" or "torus"
	Radius      float64     `json:"radius,omitempty"`      // sphere
	MajorRadius float64     `json:"majorRadius,omitempty"` // torus
	MinorRadius float64     `json:"minorRadius,omitempty"` // torus
	Translation Vec3Cfg     `json:"translation"`
	RotDeg      RotDeg      `json:"rotDeg"`
	Scale       Vec3Cfg     `json:"scale,omitempty"` // zero components default to 1
	Material    MaterialCfg `json:"material"`
}

// LightCfg describes a point light
type LightCfg struct {
	Location Vec3Cfg `json:"location"`
	Color    Vec3Cfg `json:"color"`
}

// TolerancesCfg overrides the numeric thresholds
type TolerancesCfg struct {
	Solver  float64 `json:"solver,omitempty"`
	Surface float64 `json:"surface,omitempty"`
}

// SceneCfg is the on-disk form of a scene
type SceneCfg struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Width       int            `json:"width,omitempty"`
	Height      int            `json:"height,omitempty"`
	Samples     int            `json:"samples,omitempty"`
	BlockSize   int            `json:"blockSize,omitempty"`
	MaxBounces  *int           `json:"maxBounces,omitempty"`
	Ambient     Vec3Cfg        `json:"ambient"`
	Background  Vec3Cfg        `json:"background"`
	Tolerances  *TolerancesCfg `json:"tolerances,omitempty"`
	Lights      []LightCfg     `json:"lights"`
	Entities    []EntityCfg    `json:"entities"`
}

// Build converts the material description into a Phong material
func (mc MaterialCfg) Build() (material.Phong, error) {
	var mat material.Phong
	switch mc.Preset {
	case "matte":
		mat = material.NewMatte(mc.Color.Vec3())
	case "mirror":
		if mc.Reflectivity <= 0 {
			return mat, fmt.Errorf("mirror preset needs a positive reflectivity")
		}
		return material.NewMirror(mc.Color.Vec3(), mc.Reflectivity), nil
	case "":
		mat = material.NewPhong(mc.Ambient.Vec3(), mc.Diffuse.Vec3(), mc.Specular.Vec3(), mc.Shininess)
	default:
		return mat, fmt.Errorf("unknown material preset %q", mc.Preset)
	}
	if mc.Reflectivity < 0 || mc.Reflectivity > 1 {
		return mat, fmt.Errorf("reflectivity must be within [0, 1], got %v", mc.Reflectivity)
	}
	return mat.WithReflectivity(mc.Reflectivity), nil
}

// Transform builds the entity's placement
func (ec EntityCfg) Transform() geometry.Transform {
	sc := ec.Scale
	for i := range sc {
		if sc[i] == 0 {
			sc[i] = 1
		}
	}
	return geometry.NewTransform(ec.Translation.Vec3(), ec.RotDeg.Radians(), sc.Vec3())
}

// Build validates the description and adds the entity to s
func (ec EntityCfg) Build(s *scene.Scene) error {
	mat, err := ec.Material.Build()
	if err != nil {
		return fmt.Errorf("entity %q: %w", ec.Name, err)
	}

	switch ec.Type {
	case "sphere":
		if ec.Radius <= 0 {
			return fmt.Errorf("entity %q: sphere radius must be > 0, got %v", ec.Name, ec.Radius)
		}
		s.AddSphere(ec.Name, ec.Radius, mat, ec.Transform())
	case "torus":
		if ec.MajorRadius <= 0 || ec.MinorRadius <= 0 {
			return fmt.Errorf("entity %q: torus radii must be > 0, got %v and %v", ec.Name, ec.MajorRadius, ec.MinorRadius)
		}
		s.AddTorus(ec.Name, ec.MajorRadius, ec.MinorRadius, mat, ec.Transform())
	default:
		return fmt.Errorf("entity %q: unknown type %q", ec.Name, ec.Type)
	}
	return nil
}

// ParseScene decodes a JSON scene description. Unknown keys are rejected.
// fallbackName names the scene when the file does not.
func ParseScene(data []byte, fallbackName string) (*scene.Scene, error) {
	var cfg SceneCfg
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return cfg.Build(fallbackName)
}

// Build constructs a validated scene from the configuration
func (cfg SceneCfg) Build(fallbackName string) (*scene.Scene, error) {
	name := cfg.Name
	if name == "" {
		name = fallbackName
	}
	s := scene.NewScene(name)
	s.AmbientLight = cfg.Ambient.Vec3()
	s.Background = cfg.Background.Vec3()
	if cfg.MaxBounces != nil {
		s.MaxBounces = *cfg.MaxBounces
	}
	s.SamplingConfig = scene.MergeSamplingConfig(s.SamplingConfig, scene.SamplingConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.Samples,
		BlockSize:       cfg.BlockSize,
	})
	if cfg.Tolerances != nil {
		if cfg.Tolerances.Solver > 0 {
			s.Tolerances.Solver = cfg.Tolerances.Solver
		}
		if cfg.Tolerances.Surface > 0 {
			s.Tolerances.Surface = cfg.Tolerances.Surface
		}
	}

	for _, lc := range cfg.Lights {
		s.AddPointLight(lc.Location.Vec3(), lc.Color.Vec3())
	}
	for i, ec := range cfg.Entities {
		if ec.Name == "" {
			ec.Name = fmt.Sprintf("%s-%d", ec.Type, i)
		}
		if err := ec.Build(s); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return s, nil
}

// LoadSceneFile reads and parses a JSON scene file, applying non-zero sampling overrides
func LoadSceneFile(path string, samplingOverrides ...scene.SamplingConfig) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := ParseScene(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(samplingOverrides) > 0 {
		s.SamplingConfig = scene.MergeSamplingConfig(s.SamplingConfig, samplingOverrides[0])
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ResolveScene creates a scene from a built-in id, a "json:<name>" id from scene
// discovery, or a path to a .json file. scenesDir is searched for "json:" ids and
// defaults to the usual scenes directory.
func ResolveScene(id, scenesDir string, samplingOverrides ...scene.SamplingConfig) (*scene.Scene, error) {
	switch {
	case strings.HasPrefix(id, "json:"):
		if scenesDir == "" {
			scenesDir = scene.FindScenesDir()
		}
		if scenesDir == "" {
			return nil, fmt.Errorf("no scenes directory found for %q", id)
		}
		name := strings.TrimPrefix(id, "json:")
		if name != filepath.Base(name) {
			return nil, fmt.Errorf("invalid scene id %q", id)
		}
		return LoadSceneFile(filepath.Join(scenesDir, name+".json"), samplingOverrides...)
	case strings.HasSuffix(strings.ToLower(id), ".json"):
		return LoadSceneFile(id, samplingOverrides...)
	default:
		return scene.NewBuiltinScene(id, samplingOverrides...)
	}
}
