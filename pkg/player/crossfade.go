package player

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"
)

// crossfader implements the two-buffer presentation scheme: each new
// frame is faded in over the previous one instead of swapped hard, so
// discrete sprite playback reads as continuous motion.
type crossfader struct {
	bounds    image.Rectangle
	fade      time.Duration
	prev      *image.RGBA
	next      *image.RGBA
	fadeStart time.Time
}

func newCrossfader(bounds image.Rectangle, fade time.Duration) *crossfader {
	return &crossfader{bounds: bounds, fade: fade}
}

// Set installs a new frame as the fade-in target. The previously
// visible composite becomes the fade-out source.
func (c *crossfader) Set(img image.Image, now time.Time) {
	c.prev = c.Render(now)
	c.next = c.normalize(img)
	c.fadeStart = now
}

// Render returns the composite visible at now: the new frame drawn over
// the old one with opacity ramping linearly across the fade window.
func (c *crossfader) Render(now time.Time) *image.RGBA {
	out := image.NewRGBA(c.bounds)
	if c.next == nil {
		return out
	}
	elapsed := now.Sub(c.fadeStart)
	if c.prev == nil || c.fade <= 0 || elapsed >= c.fade {
		draw.Draw(out, c.bounds, c.next, c.bounds.Min, draw.Src)
		return out
	}
	alpha := uint8(255 * elapsed / c.fade)
	draw.Draw(out, c.bounds, c.prev, c.bounds.Min, draw.Src)
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(out, c.bounds, c.next, c.bounds.Min, mask, image.Point{}, draw.Over)
	return out
}

// fading reports whether a crossfade is still ramping at now.
func (c *crossfader) fading(now time.Time) bool {
	return c.next != nil && c.prev != nil && now.Sub(c.fadeStart) < c.fade
}

// normalize scales an incoming frame onto the presenter's canvas.
func (c *crossfader) normalize(img image.Image) *image.RGBA {
	out := image.NewRGBA(c.bounds)
	if img.Bounds() == c.bounds {
		draw.Draw(out, c.bounds, img, img.Bounds().Min, draw.Src)
		return out
	}
	xdraw.ApproxBiLinear.Scale(out, c.bounds, img, img.Bounds(), xdraw.Src, nil)
	return out
}
