package cubecap

import "github.com/gogpu/cubecap/pixbuf"

// Renderer produces frames into an offscreen framebuffer and reads them back.
//
// The pipeline calls the methods in this order:
//
//	Initialize -> ConfigureViewport -> (RenderFrame -> ReadPixels)* -> Close
//
// Initialize and ConfigureViewport are the caller's responsibility; the
// Pipeline assumes a ready renderer and only calls RenderFrame and
// ReadPixels. A Renderer is used from a single goroutine.
type Renderer interface {
	// Initialize acquires whatever the renderer needs to draw offscreen.
	Initialize() error

	// ConfigureViewport sizes the framebuffer and the projection.
	ConfigureViewport(width, height int) error

	// RenderFrame draws frame index into the framebuffer. The image must be
	// a deterministic function of index.
	RenderFrame(index int) error

	// ReadPixels copies the framebuffer into buf in buf's format and row
	// origin. buf has the viewport's dimensions.
	ReadPixels(buf *pixbuf.Buffer) error

	// DescribeCapabilities returns a human-readable summary of the
	// rendering backend for verbose diagnostics.
	DescribeCapabilities() string

	// Close releases resources acquired by Initialize. It is safe to call
	// more than once.
	Close() error
}
