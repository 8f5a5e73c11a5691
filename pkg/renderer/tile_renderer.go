package renderer

import (
	"image"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// Block is one traced color covering a square of pixels, positioned in trace coordinates
type Block struct {
	X, Y  int // Lower left corner
	Size  int
	Color core.Vec3
}

// Tile represents a rectangular region of the image to be rendered, in trace coordinates
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer traces the blocks of a tile through an integrator
type TileRenderer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     scene.SamplingConfig
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *Camera, integratorInst integrator.Integrator, config scene.SamplingConfig) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderTileBounds traces every block whose lower left corner lies within bounds and
// records each covered pixel in grid. Bounds must start on block boundaries.
// Callers must give concurrent calls non-overlapping bounds.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, grid [][]PixelInfo) ([]Block, RenderStats) {
	blockSize := tr.config.BlockSize
	var blocks []Block
	var stats RenderStats

	for y := bounds.Min.Y; y < bounds.Max.Y; y += blockSize {
		for x := bounds.Min.X; x < bounds.Max.X; x += blockSize {
			color, samples := tr.traceBlock(x, y)
			pixels := tr.recordBlock(grid, x, y, color, samples)

			blocks = append(blocks, Block{X: x, Y: y, Size: blockSize, Color: color})
			tr.updateStats(&stats, pixels, len(samples))
		}
	}

	return blocks, stats
}

// traceBlock casts the supersampled primary rays of one block and averages their colors
func (tr *TileRenderer) traceBlock(x, y int) (core.Vec3, []SampleHit) {
	directions := tr.camera.BlockDirections(x, y, tr.config.BlockSize, tr.config.SamplesPerPixel)
	samples := make([]SampleHit, 0, len(directions))
	colorAccum := core.Vec3{}

	for _, direction := range directions {
		ray, color := tr.integrator.Trace(tr.camera.Origin(), direction)
		colorAccum = colorAccum.Add(color)

		hit := SampleHit{Hit: ray.Hit(), Point: ray.Point(), Distance: ray.Distance()}
		if e := ray.Entity(); e != nil {
			hit.Entity = e.Name
		}
		samples = append(samples, hit)
	}

	return colorAccum.Multiply(1.0 / float64(len(directions))), samples
}

// recordBlock stores the block result for every pixel it covers inside the image and
// returns how many pixels that was. Grid rows run top to bottom.
func (tr *TileRenderer) recordBlock(grid [][]PixelInfo, x, y int, color core.Vec3, samples []SampleHit) int {
	height := len(grid)
	pixels := 0
	for j := 0; j < tr.config.BlockSize; j++ {
		row := height - (y + j) - 1
		if row < 0 || row >= height {
			continue
		}
		for i := 0; i < tr.config.BlockSize; i++ {
			col := x + i
			if col >= len(grid[row]) {
				continue
			}
			grid[row][col] = PixelInfo{Color: color, Samples: samples}
			pixels++
		}
	}
	return pixels
}

// updateStats adds one traced block to the statistics
func (tr *TileRenderer) updateStats(stats *RenderStats, pixels, samples int) {
	stats.TotalPixels += pixels
	stats.TotalBlocks++
	stats.TotalSamples += samples
}
