package renderer

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each tile, rounded up to a whole number of blocks
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a scene onto a canvas and keeps per-pixel hit information for inspection
type Raytracer struct {
	mu            sync.Mutex
	scene         *scene.Scene
	width, height int
	config        RenderConfig
	camera        *Camera
	integrator    *integrator.Whitted
	tileRenderer  *TileRenderer
	tiles         []*Tile
	canvas        *Canvas
	grid          [][]PixelInfo // Inspection grid indexed [row][column], rows top to bottom
	logger        core.Logger
}

// NewRaytracer creates a raytracer for a validated scene
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	sampling := s.SamplingConfig
	width, height := sampling.Width, sampling.Height

	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	// Tiles hold whole blocks
	config.TileSize = (config.TileSize + sampling.BlockSize - 1) / sampling.BlockSize * sampling.BlockSize

	camera := NewCamera(width, height)
	whitted := integrator.NewWhitted(s, s.Tolerances)

	grid := make([][]PixelInfo, height)
	for row := range grid {
		grid[row] = make([]PixelInfo, width)
	}

	return &Raytracer{
		scene:        s,
		width:        width,
		height:       height,
		config:       config,
		camera:       camera,
		integrator:   whitted,
		tileRenderer: NewTileRenderer(camera, whitted, sampling),
		tiles:        NewTileGrid(width, height, config.TileSize),
		canvas:       NewCanvas(width, height, s.Background),
		grid:         grid,
		logger:       logger,
	}
}

// Render traces every block of the image in parallel tiles and paints the canvas
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	startTime := time.Now()
	rt.integrator.ResetStats()

	workerPool := NewWorkerPool(rt.tileRenderer, len(rt.tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		rt.width, rt.height, len(rt.tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for taskID, tile := range rt.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Grid:   rt.grid,
		})
	}

	side := SupersampleSide(rt.scene.SamplingConfig.SamplesPerPixel)
	stats := RenderStats{SamplesPerBlock: side * side}
	var renderErr error

	// Only this goroutine paints the canvas
	for i := 0; i < len(rt.tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
			}
			continue
		}
		for _, block := range result.Blocks {
			rt.canvas.FillBlock(block.X, block.Y, block.Size, block.Color)
		}
		stats.add(result.Stats)
	}
	workerPool.Stop()

	stats.Rays = rt.integrator.Stats()
	stats.Elapsed = time.Since(startTime)

	if renderErr != nil {
		rt.logger.Printf("Render stopped after %v: %v\n", stats.Elapsed, renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%d primary, %d shadow, %d reflection rays)\n",
		stats.Elapsed, stats.Rays.Primary, stats.Rays.Shadow, stats.Rays.Reflection)

	return rt.canvas.Image(), stats, nil
}

// Inspect returns the traced color and sample hits of the pixel at image coordinates
// (x, y), with y counting down from the top row. Pixels not yet rendered are traced
// on demand. Reports false for coordinates outside the image.
func (rt *Raytracer) Inspect(x, y int) (PixelInfo, bool) {
	if x < 0 || y < 0 || x >= rt.width || y >= rt.height {
		return PixelInfo{}, false
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !rt.grid[y][x].Traced() {
		blockSize := rt.scene.SamplingConfig.BlockSize
		traceY := rt.height - 1 - y
		bx := x / blockSize * blockSize
		by := traceY / blockSize * blockSize
		rt.tileRenderer.RenderTileBounds(image.Rect(bx, by, bx+1, by+1), rt.grid)
	}

	return rt.grid[y][x], true
}

// Canvas returns the canvas the raytracer paints onto
func (rt *Raytracer) Canvas() *Canvas {
	return rt.canvas
}

// Integrator returns the shading engine used for primary rays
func (rt *Raytracer) Integrator() *integrator.Whitted {
	return rt.integrator
}
