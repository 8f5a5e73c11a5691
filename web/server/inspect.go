package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	X            int                    `json:"x"`
	Y            int                    `json:"y"`
	Hit          bool                   `json:"hit"`
	Entity       string                 `json:"entity,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     *float64               `json:"distance"` // null on a miss
	Color        string                 `json:"color"`    // Traced block color as #rrggbb
	Properties   map[string]interface{} `json:"properties,omitempty"`
	Samples      []renderer.SampleHit   `json:"samples"`
}

// handleInspect traces the block under a pixel and reports what its rays hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, renderer.DefaultRenderConfig(), core.NopLogger{})
	info, ok := raytracer.Inspect(pixelX, pixelY)
	if !ok {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, newInspectResponse(sceneObj, pixelX, pixelY, info))
}

// newInspectResponse describes the first sample of the block that hit an entity
func newInspectResponse(sceneObj *scene.Scene, x, y int, info renderer.PixelInfo) InspectResponse {
	response := InspectResponse{
		X:       x,
		Y:       y,
		Color:   hexColor(info.Color),
		Samples: info.Samples,
	}

	for _, sample := range info.Samples {
		if !sample.Hit {
			continue
		}
		entity := findEntity(sceneObj, sample.Entity)
		if entity == nil {
			continue
		}
		distance := sample.Distance
		normal := entity.Normal(sample.Point)

		response.Hit = true
		response.Entity = entity.Name
		response.GeometryType = entity.Shape.Kind()
		response.Point = vecArray(sample.Point)
		response.Normal = vecArray(normal)
		response.Distance = &distance
		response.Properties = map[string]interface{}{
			"geometry": entity.Shape.Properties(),
			"material": map[string]interface{}{
				"ambient":      vecArray(entity.Material.Ambient),
				"diffuse":      vecArray(entity.Material.Diffuse),
				"specular":     vecArray(entity.Material.Specular),
				"shininess":    entity.Material.Shininess,
				"reflectivity": entity.Material.Reflectivity,
				"color":        hexColor(entity.Material.Diffuse),
			},
			"transform": map[string][3]float64{
				"translation": vecArray(entity.Transform.Translation()),
				"rotation":    vecArray(entity.Transform.Rotation()),
				"scaling":     vecArray(entity.Transform.Scaling()),
			},
		}
		break
	}
	return response
}

func findEntity(sceneObj *scene.Scene, name string) *geometry.Entity {
	for _, entity := range sceneObj.Entities {
		if entity.Name == name {
			return entity
		}
	}
	return nil
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255+0.5), int(c.Y*255+0.5), int(c.Z*255+0.5))
}
