package cubecap

import (
	"errors"
	"fmt"

	"github.com/gogpu/cubecap/imagefile"
	"github.com/gogpu/cubecap/pixbuf"
)

// Default capture settings.
const (
	DefaultFrameCount = 2
	DefaultWidth      = 800
	DefaultHeight     = 800
	DefaultPrefix     = "frame"
	DefaultFormat     = "tga"

	// MaxDimension is the largest width or height any output format can
	// describe (the TGA header stores 16-bit sizes).
	MaxDimension = 0xFFFF
)

// Errors returned by Config.Validate and New.
var (
	// ErrInvalidFrameCount is returned when FrameCount is less than 1.
	ErrInvalidFrameCount = errors.New("cubecap: frame count must be at least 1")

	// ErrInvalidDimensions is returned when Width or Height is outside
	// 1..MaxDimension.
	ErrInvalidDimensions = errors.New("cubecap: invalid dimensions")

	// ErrNilRenderer is returned by New when no renderer is given.
	ErrNilRenderer = errors.New("cubecap: nil renderer")
)

// Config describes one capture run. It is fixed for the lifetime of a
// Pipeline.
type Config struct {
	// FrameCount is the number of frames to capture, indexed 1..FrameCount.
	FrameCount int

	// Width and Height are the framebuffer and output image size in pixels.
	Width  int
	Height int

	// OutputDir is the directory files are written to. Empty means the
	// current directory.
	OutputDir string

	// Prefix is prepended to the four-digit frame index.
	Prefix string

	// Format names the imagefile encoder, e.g. "tga" or "png".
	Format string

	// Origin is the row order of captured buffers. OriginBottomLeft matches
	// GL-style readback and produces TGA files with a clear origin bit.
	Origin pixbuf.Origin
}

// DefaultConfig returns the settings used when nothing is overridden:
// two 800x800 frames written as frame0001.tga and frame0002.tga in the
// current directory.
func DefaultConfig() Config {
	return Config{
		FrameCount: DefaultFrameCount,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		OutputDir:  ".",
		Prefix:     DefaultPrefix,
		Format:     DefaultFormat,
		Origin:     pixbuf.OriginBottomLeft,
	}
}

// Validate checks that the configuration describes a run that can start.
// It does not touch the file system.
func (c Config) Validate() error {
	if c.FrameCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrameCount, c.FrameCount)
	}
	if c.Width < 1 || c.Height < 1 || c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d (each side must be 1..%d)",
			ErrInvalidDimensions, c.Width, c.Height, MaxDimension)
	}
	if c.Origin != pixbuf.OriginBottomLeft && c.Origin != pixbuf.OriginTopLeft {
		return fmt.Errorf("cubecap: invalid origin %d", c.Origin)
	}
	if _, err := imagefile.Lookup(c.Format); err != nil {
		return fmt.Errorf("cubecap: %w", err)
	}
	return nil
}
