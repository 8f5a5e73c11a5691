package renderer

import (
	"encoding/json"
	"math"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int                  // Total number of pixels covered
	TotalBlocks     int                  // Number of blocks traced
	TotalSamples    int                  // Total number of primary rays
	SamplesPerBlock int                  // Primary rays per block after rounding to a square
	Rays            integrator.RayCounts // Rays of every kind cast by the integrator
	Elapsed         time.Duration        // Wall time of the render
}

// add merges the counts of a tile into the totals
func (rs *RenderStats) add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalBlocks += other.TotalBlocks
	rs.TotalSamples += other.TotalSamples
}

// SampleHit records what one primary ray of a block hit
type SampleHit struct {
	Hit      bool      `json:"hit"`
	Entity   string    `json:"entity,omitempty"` // Name of the entity hit
	Point    core.Vec3 `json:"point"`            // World-space hit point
	Distance float64   `json:"distance"`         // Distance from the eye, +Inf on a miss
}

// MarshalJSON encodes the distance of a miss as null
func (sh SampleHit) MarshalJSON() ([]byte, error) {
	type sampleHit SampleHit
	var distance *float64
	if !math.IsInf(sh.Distance, 0) && !math.IsNaN(sh.Distance) {
		distance = &sh.Distance
	}
	return json.Marshal(struct {
		sampleHit
		Distance *float64 `json:"distance"`
	}{sampleHit(sh), distance})
}

// PixelInfo holds the traced color of the block covering a pixel and every sample of that block
type PixelInfo struct {
	Color   core.Vec3   `json:"color"`
	Samples []SampleHit `json:"samples"`
}

// Traced reports whether the pixel has been rendered
func (pi *PixelInfo) Traced() bool {
	return pi.Samples != nil
}
