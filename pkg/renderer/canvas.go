package renderer

import (
	"image"
	"sync"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Canvas is the drawing surface blocks are painted onto. It takes trace coordinates
// with y pointing up and flips them into image rows.
type Canvas struct {
	mu     sync.Mutex
	ctx    *gg.Context
	width  int
	height int
}

// NewCanvas creates a canvas filled with the background color
func NewCanvas(width, height int, background core.Vec3) *Canvas {
	c := &Canvas{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
	}
	bg := background.Clamp(0, 1)
	c.ctx.SetRGB(bg.X, bg.Y, bg.Z)
	c.ctx.Clear()
	return c
}

// FillBlock paints a size x size square whose lower left corner is at trace coordinates (x, y).
// Channels are clamped to [0, 1].
func (c *Canvas) FillBlock(x, y, size int, color core.Vec3) {
	color = color.Clamp(0, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx.SetRGB(color.X, color.Y, color.Z)
	c.ctx.DrawRectangle(float64(x), float64(c.height-y-size), float64(size), float64(size))
	c.ctx.Fill()
}

// Image returns a snapshot of the painted pixels
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.ctx.Image()
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

// Bounds returns the canvas size in pixels
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}
