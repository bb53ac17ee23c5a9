// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imagefile writes captured frames to disk in a selectable
// container format.
//
// TGA is the default and the only format with a bit-exact contract; PNG,
// BMP and TIFF are provided for convenience. Every encoder leaves either a
// complete file or no file at all.
package imagefile

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/cubecap/pixbuf"
	"github.com/gogpu/cubecap/tga"
)

// Encoder writes a pixel buffer to a file.
type Encoder interface {
	// Name is the registry key, e.g. "tga".
	Name() string

	// Extension is the file extension without the leading dot.
	Extension() string

	// WriteFile writes buf to path and returns the number of bytes written.
	// Encoders may modify buf (TGA swaps red and blue in place).
	WriteFile(path string, buf *pixbuf.Buffer) (int64, error)
}

// TGA writes uncompressed true-color TGA files.
//
// The buffer is written in its stored row order and the header origin bit
// is set only for top-left buffers. Red and blue are swapped in buf itself.
type TGA struct{}

// Name implements Encoder.
func (TGA) Name() string { return "tga" }

// Extension implements Encoder.
func (TGA) Extension() string { return "tga" }

// WriteFile implements Encoder.
func (TGA) WriteFile(path string, buf *pixbuf.Buffer) (int64, error) {
	return tga.WriteFile(path, buf.Data(), buf.Width(), buf.Height(),
		buf.Format().BitsPerPixel(), buf.Origin() == pixbuf.OriginTopLeft)
}

// PNG writes PNG files.
type PNG struct{}

// Name implements Encoder.
func (PNG) Name() string { return "png" }

// Extension implements Encoder.
func (PNG) Extension() string { return "png" }

// WriteFile implements Encoder.
func (PNG) WriteFile(path string, buf *pixbuf.Buffer) (int64, error) {
	return writeFile(path, func(w io.Writer) error {
		return png.Encode(w, buf.ToNRGBA())
	})
}

// BMP writes 32-bit BMP files.
type BMP struct{}

// Name implements Encoder.
func (BMP) Name() string { return "bmp" }

// Extension implements Encoder.
func (BMP) Extension() string { return "bmp" }

// WriteFile implements Encoder.
func (BMP) WriteFile(path string, buf *pixbuf.Buffer) (int64, error) {
	return writeFile(path, func(w io.Writer) error {
		return bmp.Encode(w, buf.ToNRGBA())
	})
}

// TIFF writes Deflate-compressed TIFF files.
type TIFF struct{}

// Name implements Encoder.
func (TIFF) Name() string { return "tiff" }

// Extension implements Encoder.
func (TIFF) Extension() string { return "tiff" }

// WriteFile implements Encoder.
func (TIFF) WriteFile(path string, buf *pixbuf.Buffer) (int64, error) {
	return writeFile(path, func(w io.Writer) error {
		return tiff.Encode(w, buf.ToNRGBA(), &tiff.Options{Compression: tiff.Deflate})
	})
}

// countingWriter counts bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeFile creates path, runs encode against it and removes the file if
// anything after creation fails.
func writeFile(path string, encode func(io.Writer) error) (int64, error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("imagefile: %w", err)
	}

	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := encode(bw); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("imagefile: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("imagefile: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("imagefile: close %s: %w", path, err)
	}
	return cw.n, nil
}
