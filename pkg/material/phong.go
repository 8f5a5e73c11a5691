package material

import "github.com/df07/go-implicit-raytracer/pkg/core"

// Phong describes how a surface responds to local lighting and mirror reflection.
// The renderer only reads it.
type Phong struct {
	Ambient      core.Vec3 // ka: per-channel ambient reflectance
	Diffuse      core.Vec3 // kd: per-channel diffuse reflectance
	Specular     core.Vec3 // ks: per-channel specular reflectance
	Shininess    float64   // specular exponent
	Reflectivity float64   // fraction of the final color taken from the mirror bounce, 0..1
}

// NewPhong creates a non-reflective material with the given reflectances
func NewPhong(ambient, diffuse, specular core.Vec3, shininess float64) Phong {
	return Phong{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewMatte creates a material whose ambient and diffuse reflectance share one color
func NewMatte(albedo core.Vec3) Phong {
	return NewPhong(albedo.Multiply(0.2), albedo, core.NewVec3(0.2, 0.2, 0.2), 10)
}

// NewMirror creates a mostly reflective material tinted by albedo
func NewMirror(albedo core.Vec3, reflectivity float64) Phong {
	m := NewPhong(albedo.Multiply(0.1), albedo.Multiply(0.5), core.NewVec3(0.8, 0.8, 0.8), 100)
	m.Reflectivity = reflectivity
	return m
}

// WithReflectivity returns a copy of the material with the given reflectivity
func (m Phong) WithReflectivity(reflectivity float64) Phong {
	m.Reflectivity = reflectivity
	return m
}

// IsReflective reports whether the material spawns mirror bounces
func (m Phong) IsReflective() bool {
	return m.Reflectivity > 0
}
