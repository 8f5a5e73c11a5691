package renderer

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Camera generates primary ray directions for an eye at the origin looking down +z.
// Trace coordinates have y pointing up. The viewport is one unit wide at z=1 and
// keeps square pixels, so its height is height/width.
type Camera struct {
	origin core.Vec3
	width  int
	height int
}

// NewCamera creates a camera for an image of the given size
func NewCamera(width, height int) *Camera {
	return &Camera{
		origin: core.NewVec3(0, 0, 0),
		width:  width,
		height: height,
	}
}

// Origin returns the eye position shared by every primary ray
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Direction returns the unnormalized direction through trace coordinates (x, y)
func (c *Camera) Direction(x, y float64) core.Vec3 {
	w := float64(c.width)
	h := float64(c.height)
	return core.NewVec3((x-w/2)/w, (y-h/2)/w, 1)
}

// SupersampleSide returns how many samples a block takes along each axis.
// Sample counts that are not perfect squares round down.
func SupersampleSide(samples int) int {
	return max(1, int(math.Floor(math.Sqrt(float64(samples)))))
}

// BlockDirections returns the primary ray directions of the block whose lower left
// corner is at trace coordinates (x, y), sampled on an evenly spaced side x side lattice
func (c *Camera) BlockDirections(x, y, blockSize, samples int) []core.Vec3 {
	side := SupersampleSide(samples)
	directions := make([]core.Vec3, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			sx := float64(x) + float64(blockSize*i)/float64(side)
			sy := float64(y) + float64(blockSize*j)/float64(side)
			directions = append(directions, c.Direction(sx, sy))
		}
	}
	return directions
}
