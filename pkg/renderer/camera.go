package renderer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CameraConfig describes the image a camera projects onto
type CameraConfig struct {
	Width, Height int
	Margin        float64 // fraction of the image kept empty around the framed region
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{Width: 800, Height: 600, Margin: 0.05}
}

// Camera maps world coordinates to pixels with a uniform scale. The optical
// axis (+Y) points up in the image.
type Camera struct {
	config CameraConfig
	center r2.Vec  // world point at the image centre
	scale  float64 // pixels per world unit
}

// NewCamera frames the rectangle [min, max] in the image, preserving aspect ratio
func NewCamera(config CameraConfig, min, max r2.Vec) *Camera {
	size := r2.Sub(max, min)
	usable := 1 - 2*config.Margin
	sx := usable * float64(config.Width) / math.Max(size.X, 1e-9)
	sy := usable * float64(config.Height) / math.Max(size.Y, 1e-9)

	return &Camera{
		config: config,
		center: r2.Scale(0.5, r2.Add(min, max)),
		scale:  math.Min(sx, sy),
	}
}

// Project returns the pixel coordinates of a world point
func (c *Camera) Project(p r2.Vec) (x, y float64) {
	d := r2.Sub(p, c.center)
	return float64(c.config.Width)/2 + d.X*c.scale, float64(c.config.Height)/2 - d.Y*c.scale
}

// Scale returns the number of pixels per world unit
func (c *Camera) Scale() float64 {
	return c.scale
}
