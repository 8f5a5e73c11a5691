package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func rgbClose(got color.RGBA, want color.RGBA) bool {
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return diff(got.R, want.R) <= 1 && diff(got.G, want.G) <= 1 && diff(got.B, want.B) <= 1 && got.A == want.A
}

func TestCanvas_FillBlock(t *testing.T) {
	canvas := NewCanvas(4, 4, core.NewVec3(0, 0, 1))
	blue := color.RGBA{0, 0, 255, 255}
	red := color.RGBA{255, 0, 0, 255}

	// Lower left block in trace coordinates is the bottom left of the image
	canvas.FillBlock(0, 0, 2, core.NewVec3(1, 0, 0))
	img := canvas.Image()

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 3, red},
		{1, 2, red},
		{0, 1, blue},
		{2, 3, blue},
		{3, 0, blue},
	}

	for _, tt := range tests {
		got := img.RGBAAt(tt.x, tt.y)
		if !rgbClose(got, tt.expected) {
			t.Errorf("Pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestCanvas_ClampsColors(t *testing.T) {
	canvas := NewCanvas(2, 2, core.Vec3{})
	canvas.FillBlock(0, 0, 2, core.NewVec3(2, -1, 0.5))

	got := canvas.Image().RGBAAt(1, 1)
	if !rgbClose(got, color.RGBA{255, 0, 127, 255}) {
		t.Errorf("Expected clamped color, got %v", got)
	}
}

func TestCanvas_BlockPastEdge(t *testing.T) {
	canvas := NewCanvas(3, 3, core.Vec3{})
	canvas.FillBlock(2, 2, 2, core.NewVec3(1, 1, 1))
	img := canvas.Image()

	if got := img.RGBAAt(2, 0); !rgbClose(got, color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected top right pixel painted, got %v", got)
	}
	if got := img.RGBAAt(1, 0); !rgbClose(got, color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected neighbour untouched, got %v", got)
	}
	if canvas.Bounds().Dx() != 3 || canvas.Bounds().Dy() != 3 {
		t.Errorf("Unexpected bounds %v", canvas.Bounds())
	}
}
