package ports

import "image"

// FrameSink receives composited frames from the presentation side. The host
// (a window, an encoder, a test recorder) implements this interface.
type FrameSink interface {
	Present(img image.Image)
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(img image.Image)

// Present calls f.
func (f FrameSinkFunc) Present(img image.Image) {
	f(img)
}
