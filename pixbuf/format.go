package pixbuf

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8 Format = iota

	// FormatRGBA8 is 32-bit RGBA (4 bytes per pixel).
	// This is the readback format of every renderer in this module.
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGB8: {
		BytesPerPixel: 3,
		Channels:      3,
		HasAlpha:      false,
	},
	FormatRGBA8: {
		BytesPerPixel: 4,
		Channels:      4,
		HasAlpha:      true,
	},
}

// Info returns the FormatInfo for this format.
// Returns a zero FormatInfo for invalid formats.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// BitsPerPixel returns the pixel depth in bits, as stored in image headers.
func (f Format) BitsPerPixel() int {
	return f.Info().BytesPerPixel * 8
}

// RowBytes returns the number of bytes for a tightly packed row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// Origin describes which image edge row 0 of a buffer holds.
type Origin uint8

const (
	// OriginBottomLeft stores the bottom row first. This is the order
	// GL-style framebuffer readback produces, and what a TGA file with a
	// clear origin bit describes.
	OriginBottomLeft Origin = iota

	// OriginTopLeft stores the top row first, like image.RGBA.
	OriginTopLeft
)

// String returns a human-readable name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginBottomLeft:
		return "bottom-left"
	case OriginTopLeft:
		return "top-left"
	default:
		return "unknown"
	}
}
