package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestTorus_IntersectionParam(t *testing.T) {
	torus := NewTorus(1.0, 0.25, core.DefaultTolerances())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{"along z into the ring", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 3.75},
		{"along x into the ring", core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 3.75},
		{"non-unit direction", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 2), 1.875},
		{"from the hole", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 0.75},
		{"down through the hole", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), math.Inf(1)},
		{"above the ring", core.NewVec3(0, 1, -5), core.NewVec3(0, 0, 1), math.Inf(1)},
		{"pointing away", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := torus.IntersectionParam(tt.origin, tt.direction)
			if math.IsInf(tt.expectedT, 1) {
				if !math.IsInf(got, 1) {
					t.Errorf("Expected miss, got t=%f", got)
				}
				return
			}
			if math.Abs(got-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, got)
			}
		})
	}
}

func TestTorus_RejectsRootsAtOrigin(t *testing.T) {
	torus := NewTorus(1.0, 0.25, core.DefaultTolerances())

	// Start exactly on the outer surface, heading inward through the tube
	got := torus.IntersectionParam(core.NewVec3(0, 0, -1.25), core.NewVec3(0, 0, 1))
	if math.Abs(got-0.5) > 1e-6 {
		t.Errorf("Expected the far side of the tube at t=0.5, got t=%f", got)
	}
}

func TestTorus_LocalNormal(t *testing.T) {
	torus := NewTorus(1.0, 0.25, core.DefaultTolerances())

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"outer equator", core.NewVec3(0, 0, -1.25), core.NewVec3(0, 0, -1)},
		{"inner equator", core.NewVec3(0.75, 0, 0), core.NewVec3(-1, 0, 0)},
		{"top of tube", core.NewVec3(1, 0.25, 0), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := torus.LocalNormal(tt.point).Normalize()
			if !vecClose(got, tt.expected, 1e-12) {
				t.Errorf("Expected normal %v, got %v", tt.expected, got)
			}
		})
	}
}
