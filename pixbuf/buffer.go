// Package pixbuf provides the CPU pixel buffers frames are read back into.
//
// A Buffer is a tightly packed, row-major block of pixels with a known
// format and row origin. The capture pipeline owns one Buffer per frame:
// it is acquired right before readback and released right after encoding.
package pixbuf

import (
	"errors"
	"image"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("pixbuf: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("pixbuf: data buffer too small")
)

// Buffer is an owned pixel buffer of width*height*BytesPerPixel bytes.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data   []byte
	width  int
	height int
	format Format
	origin Origin
}

// New creates a zeroed buffer with the given dimensions, format and origin.
func New(width, height int, format Format, origin Origin) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &Buffer{
		data:   make([]byte, format.RowBytes(width)*height),
		width:  width,
		height: height,
		format: format,
		origin: origin,
	}, nil
}

// FromRaw wraps existing data without copying.
// The caller must ensure data remains valid for the lifetime of the Buffer.
func FromRaw(data []byte, width, height int, format Format, origin Origin) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	required := format.RowBytes(width) * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &Buffer{
		data:   data[:required],
		width:  width,
		height: height,
		format: format,
		origin: origin,
	}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row. Buffers are tightly packed.
func (b *Buffer) Stride() int {
	return b.format.RowBytes(b.width)
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Origin returns which image edge row 0 holds.
func (b *Buffer) Origin() Origin {
	return b.origin
}

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// Row returns the bytes of stored row y (not image row; see Origin).
// Returns nil if y is out of bounds.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	return b.data[y*stride : (y+1)*stride]
}

// ImageRow returns the bytes of image row y, counted from the top edge,
// regardless of how the buffer stores its rows.
func (b *Buffer) ImageRow(y int) []byte {
	if b.origin == OriginBottomLeft {
		return b.Row(b.height - 1 - y)
	}
	return b.Row(y)
}

// Clear sets all bytes to zero.
func (b *Buffer) Clear() {
	clear(b.data)
}

// ToNRGBA converts the buffer to a top-left *image.NRGBA copy.
// RGB8 pixels are expanded with opaque alpha.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))

	for y := range b.height {
		src := b.ImageRow(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+b.width*4]
		switch b.format {
		case FormatRGBA8:
			copy(dst, src)
		case FormatRGB8:
			for x := range b.width {
				dst[x*4] = src[x*3]
				dst[x*4+1] = src[x*3+1]
				dst[x*4+2] = src[x*3+2]
				dst[x*4+3] = 255
			}
		}
	}

	return img
}
