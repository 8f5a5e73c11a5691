package renderer

import (
	"context"
	"image"
	"sync/atomic"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// MockIntegrator returns a fixed color and never hits anything
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   atomic.Int64
}

func (m *MockIntegrator) CastPrimaryRay(origin, direction core.Vec3) core.Vec3 {
	_, color := m.Trace(origin, direction)
	return color
}

func (m *MockIntegrator) Trace(origin, direction core.Vec3) (*integrator.Ray, core.Vec3) {
	m.callCount.Add(1)
	return integrator.NewRay(origin, direction, 0), m.returnColor
}

func (m *MockIntegrator) Stats() integrator.RayCounts {
	return integrator.RayCounts{Primary: m.callCount.Load()}
}

func newGrid(width, height int) [][]PixelInfo {
	grid := make([][]PixelInfo, height)
	for row := range grid {
		grid[row] = make([]PixelInfo, width)
	}
	return grid
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(100, 70, 32)

	if len(tiles) != 12 {
		t.Fatalf("Expected 12 tiles, got %d", len(tiles))
	}
	last := tiles[len(tiles)-1]
	if last.Bounds != image.Rect(96, 64, 100, 70) {
		t.Errorf("Expected last tile clipped to image, got %v", last.Bounds)
	}

	covered := 0
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Tile %d has ID %d", i, tile.ID)
		}
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	if covered != 100*70 {
		t.Errorf("Expected tiles to cover 7000 pixels, got %d", covered)
	}
}

func TestTileRenderer_RenderTileBounds(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(0.5, 0.25, 1)}
	config := scene.SamplingConfig{Width: 5, Height: 5, SamplesPerPixel: 4, BlockSize: 2}
	tr := NewTileRenderer(NewCamera(5, 5), mock, config)
	grid := newGrid(5, 5)

	blocks, stats := tr.RenderTileBounds(image.Rect(0, 0, 5, 5), grid)

	if len(blocks) != 9 {
		t.Errorf("Expected 9 blocks, got %d", len(blocks))
	}
	if stats.TotalBlocks != 9 || stats.TotalPixels != 25 || stats.TotalSamples != 36 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if got := mock.callCount.Load(); got != 36 {
		t.Errorf("Expected 36 integrator calls, got %d", got)
	}

	for row := range grid {
		for col := range grid[row] {
			pixel := grid[row][col]
			if !pixel.Traced() {
				t.Fatalf("Pixel (%d,%d) not traced", col, row)
			}
			if !vecClose(pixel.Color, mock.returnColor) {
				t.Errorf("Pixel (%d,%d) color %v", col, row, pixel.Color)
			}
			if len(pixel.Samples) != 4 || pixel.Samples[0].Hit {
				t.Errorf("Pixel (%d,%d) unexpected samples %+v", col, row, pixel.Samples)
			}
		}
	}
}

func TestTileRenderer_RecordBlockFlipsRows(t *testing.T) {
	mock := &MockIntegrator{}
	config := scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, BlockSize: 2}
	tr := NewTileRenderer(NewCamera(4, 4), mock, config)
	grid := newGrid(4, 4)

	// Only the lower left block
	tr.RenderTileBounds(image.Rect(0, 0, 1, 1), grid)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := row >= 2 && col < 2
			if grid[row][col].Traced() != want {
				t.Errorf("Pixel (%d,%d) traced = %v, want %v", col, row, grid[row][col].Traced(), want)
			}
		}
	}
}

func TestWorkerPool(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	config := scene.SamplingConfig{Width: 8, Height: 8, SamplesPerPixel: 1, BlockSize: 1}
	tr := NewTileRenderer(NewCamera(8, 8), mock, config)
	tiles := NewTileGrid(8, 8, 4)
	grid := newGrid(8, 8)

	pool := NewWorkerPool(tr, len(tiles), 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start(context.Background())
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Grid: grid})
	}

	seen := make(map[int]bool)
	pixels := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Error != nil {
			t.Errorf("Task %d failed: %v", result.TaskID, result.Error)
		}
		seen[result.TaskID] = true
		pixels += result.Stats.TotalPixels
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("Expected results for %d tiles, got %d", len(tiles), len(seen))
	}
	if pixels != 64 {
		t.Errorf("Expected 64 pixels, got %d", pixels)
	}
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	mock := &MockIntegrator{}
	config := scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, BlockSize: 1}
	tr := NewTileRenderer(NewCamera(4, 4), mock, config)
	tiles := NewTileGrid(4, 4, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(tr, len(tiles), 2)
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Grid: newGrid(4, 4)})
	}
	for range tiles {
		result, _ := pool.GetResult()
		if result.Error == nil {
			t.Errorf("Expected error for task %d", result.TaskID)
		}
	}
	pool.Stop()

	if mock.callCount.Load() != 0 {
		t.Errorf("Expected no rays after cancellation, got %d", mock.callCount.Load())
	}
}
