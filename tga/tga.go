// Package tga writes and reads uncompressed true-color TGA images.
//
// The encoder produces the minimal container: an 18-byte header followed
// by the raw pixel payload, with no image ID, color map, compression or
// extension area. Payload pixels are stored blue-green-red(-alpha), so the
// encoder swaps the red and blue bytes of every pixel before writing.
//
// WriteFile and Encode perform that swap in place on the caller's slice.
// Callers that still need the original channel order afterwards must pass
// a copy, or use EncodeImage, which never touches its input.
package tga

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
)

// Errors returned by the encoder and decoder.
var (
	// ErrUnsupportedDepth is returned for pixel depths other than 24 and 32 bits.
	ErrUnsupportedDepth = errors.New("tga: unsupported pixel depth")

	// ErrInvalidDimensions is returned when width or height is outside 1..65535.
	ErrInvalidDimensions = errors.New("tga: invalid dimensions")

	// ErrShortBuffer is returned when the pixel data is smaller than the image.
	ErrShortBuffer = errors.New("tga: pixel data too short")

	// ErrUnsupportedImageType is returned when decoding anything but an
	// uncompressed true-color image without ID or color map.
	ErrUnsupportedImageType = errors.New("tga: unsupported image type")
)

// SwapRedBlue exchanges byte 0 and byte 2 of each of the first count pixels
// in pix, stepping bytesPerPixel bytes at a time. Applying it twice restores
// the original data.
func SwapRedBlue(pix []byte, bytesPerPixel, count int) {
	size := count * bytesPerPixel
	for i := 0; i < size; i += bytesPerPixel {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// Encode writes the header and the pixel payload described by h to w.
//
// pix must hold at least h.PayloadSize() bytes of red-first pixels. Its
// red and blue bytes are swapped in place before writing; on return pix
// holds the payload exactly as written.
func Encode(w io.Writer, pix []byte, h Header) error {
	header, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	size := h.PayloadSize()
	if len(pix) < size {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(pix), size)
	}

	SwapRedBlue(pix, h.BytesPerPixel(), h.Width*h.Height)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("tga: write header: %w", err)
	}
	if _, err := w.Write(pix[:size]); err != nil {
		return fmt.Errorf("tga: write pixels: %w", err)
	}
	return nil
}

// WriteFile writes pix as a TGA image to path and returns the number of
// bytes written.
//
// Parameters are validated before the file is opened, and pix is not
// modified unless the file could be created. Once opened, pix has its red
// and blue bytes swapped in place, exactly once per pixel. If writing fails
// part-way, the partial file is removed: path then holds either a complete
// image or nothing.
func WriteFile(path string, pix []byte, width, height, bitsPerPixel int, upsideDown bool) (int64, error) {
	h, err := NewHeader(width, height, bitsPerPixel, upsideDown)
	if err != nil {
		return 0, err
	}
	if len(pix) < h.PayloadSize() {
		return 0, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(pix), h.PayloadSize())
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("tga: %w", err)
	}

	if err := Encode(f, pix, h); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("tga: close: %w", err)
	}

	return int64(HeaderSize + h.PayloadSize()), nil
}

// EncodeImage writes img as a 32-bit, top-left TGA image.
// img is converted into a private copy, so it is never modified.
func EncodeImage(w io.Writer, img image.Image) error {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	h, err := NewHeader(b.Dx(), b.Dy(), 32, true)
	if err != nil {
		return err
	}
	return Encode(w, nrgba.Pix, h)
}
