package tga

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of a TGA file header in bytes.
const HeaderSize = 18

const (
	// imageTypeTrueColor is the uncompressed true-color image type code.
	imageTypeTrueColor = 2

	// originBit is the image-descriptor bit marking an upside-down
	// (top-left origin) payload.
	originBit = 0x20

	maxDimension = 0xFFFF
)

// Header is the subset of the TGA header this package reads and writes:
// no image ID, no color map, uncompressed true-color pixels.
type Header struct {
	Width        int
	Height       int
	BitsPerPixel int
	UpsideDown   bool
}

// NewHeader validates the parameters and returns the matching header.
//
// Only 24- and 32-bit pixels are supported.
func NewHeader(width, height, bitsPerPixel int, upsideDown bool) (Header, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return Header{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if bitsPerPixel != 24 && bitsPerPixel != 32 {
		return Header{}, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, bitsPerPixel)
	}
	return Header{
		Width:        width,
		Height:       height,
		BitsPerPixel: bitsPerPixel,
		UpsideDown:   upsideDown,
	}, nil
}

// BytesPerPixel returns the pixel size in bytes.
func (h Header) BytesPerPixel() int {
	return h.BitsPerPixel / 8
}

// PayloadSize returns the number of pixel bytes following the header.
func (h Header) PayloadSize() int {
	return h.Width * h.Height * h.BytesPerPixel()
}

// MarshalBinary encodes the 18-byte header.
//
//	byte 2      image type (2)
//	bytes 12-13 width, little endian
//	bytes 14-15 height, little endian
//	byte 16     bits per pixel
//	byte 17     0x20 when UpsideDown
//
// Every other byte is zero.
func (h Header) MarshalBinary() ([]byte, error) {
	if _, err := NewHeader(h.Width, h.Height, h.BitsPerPixel, h.UpsideDown); err != nil {
		return nil, err
	}

	b := make([]byte, HeaderSize)
	b[2] = imageTypeTrueColor
	binary.LittleEndian.PutUint16(b[12:14], uint16(h.Width))
	binary.LittleEndian.PutUint16(b[14:16], uint16(h.Height))
	b[16] = byte(h.BitsPerPixel)
	if h.UpsideDown {
		b[17] = originBit
	}
	return b, nil
}

// UnmarshalBinary decodes an 18-byte header written by MarshalBinary.
// Files with an image ID, a color map or a compressed payload are rejected.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes", ErrShortBuffer, len(b))
	}
	if b[0] != 0 || b[1] != 0 || b[2] != imageTypeTrueColor {
		return fmt.Errorf("%w: id length %d, color map %d, type %d",
			ErrUnsupportedImageType, b[0], b[1], b[2])
	}

	decoded, err := NewHeader(
		int(binary.LittleEndian.Uint16(b[12:14])),
		int(binary.LittleEndian.Uint16(b[14:16])),
		int(b[16]),
		b[17]&originBit != 0,
	)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
