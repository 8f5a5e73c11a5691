package material

import (
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestPhong_Constructors(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.25, 1)

	tests := []struct {
		name       string
		material   Phong
		ambient    core.Vec3
		diffuse    core.Vec3
		reflective bool
	}{
		{
			name:     "phong",
			material: NewPhong(core.NewVec3(0.1, 0.1, 0.1), albedo, core.NewVec3(1, 1, 1), 32),
			ambient:  core.NewVec3(0.1, 0.1, 0.1),
			diffuse:  albedo,
		},
		{
			name:     "matte",
			material: NewMatte(albedo),
			ambient:  core.NewVec3(0.1, 0.05, 0.2),
			diffuse:  albedo,
		},
		{
			name:       "mirror",
			material:   NewMirror(albedo, 0.8),
			ambient:    core.NewVec3(0.05, 0.025, 0.1),
			diffuse:    core.NewVec3(0.25, 0.125, 0.5),
			reflective: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.material.Ambient.Distance(tt.ambient) > 1e-12 {
				t.Errorf("Expected ambient %v, got %v", tt.ambient, tt.material.Ambient)
			}
			if tt.material.Diffuse.Distance(tt.diffuse) > 1e-12 {
				t.Errorf("Expected diffuse %v, got %v", tt.diffuse, tt.material.Diffuse)
			}
			if tt.material.IsReflective() != tt.reflective {
				t.Errorf("Expected reflective %v, got %v", tt.reflective, tt.material.IsReflective())
			}
		})
	}
}

func TestPhong_WithReflectivity(t *testing.T) {
	base := NewMatte(core.NewVec3(1, 0, 0))
	shiny := base.WithReflectivity(0.3)

	if shiny.Reflectivity != 0.3 {
		t.Errorf("Expected reflectivity 0.3, got %f", shiny.Reflectivity)
	}
	if base.Reflectivity != 0 {
		t.Errorf("Original material changed: reflectivity %f", base.Reflectivity)
	}
	if shiny.Diffuse != base.Diffuse || shiny.Shininess != base.Shininess {
		t.Error("Expected other properties to be kept")
	}
}
