package tga

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/cubecap/pixbuf"
)

func init() {
	image.RegisterFormat("tga", "\x00\x00\x02", DecodeImage, DecodeConfig)
}

// Decode reads an image written by Encode and returns its header and the
// pixel payload with red and blue restored to red-first order.
func Decode(r io.Reader) (Header, []byte, error) {
	raw := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, nil, fmt.Errorf("tga: read header: %w", err)
	}

	var h Header
	if err := h.UnmarshalBinary(raw); err != nil {
		return Header{}, nil, err
	}

	// The header alone must not size the allocation.
	size := h.PayloadSize()
	pix, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return Header{}, nil, fmt.Errorf("tga: read pixels: %w", err)
	}
	if len(pix) < size {
		return Header{}, nil, fmt.Errorf("tga: read pixels: %w", io.ErrUnexpectedEOF)
	}
	SwapRedBlue(pix, h.BytesPerPixel(), h.Width*h.Height)

	return h, pix, nil
}

// DecodeImage reads a TGA image as a top-left *image.NRGBA.
func DecodeImage(r io.Reader) (image.Image, error) {
	h, pix, err := Decode(r)
	if err != nil {
		return nil, err
	}

	buf, err := pixbuf.FromRaw(pix, h.Width, h.Height, bufferFormat(h), bufferOrigin(h))
	if err != nil {
		return nil, fmt.Errorf("tga: %w", err)
	}
	return buf.ToNRGBA(), nil
}

// DecodeConfig returns the dimensions and color model without reading pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	raw := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return image.Config{}, fmt.Errorf("tga: read header: %w", err)
	}

	var h Header
	if err := h.UnmarshalBinary(raw); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

func bufferFormat(h Header) pixbuf.Format {
	if h.BitsPerPixel == 24 {
		return pixbuf.FormatRGB8
	}
	return pixbuf.FormatRGBA8
}

func bufferOrigin(h Header) pixbuf.Origin {
	if h.UpsideDown {
		return pixbuf.OriginTopLeft
	}
	return pixbuf.OriginBottomLeft
}
