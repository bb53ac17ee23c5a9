// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imagefile

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/cubecap/pixbuf"
)

// testBuffer returns a 3x2 opaque buffer stored bottom row first.
func testBuffer(t *testing.T) *pixbuf.Buffer {
	t.Helper()
	data := []byte{
		// bottom row
		0, 0, 255, 255, 0, 255, 0, 255, 255, 0, 0, 255,
		// top row
		10, 20, 30, 255, 40, 50, 60, 255, 70, 80, 90, 255,
	}
	buf, err := pixbuf.FromRaw(data, 3, 2, pixbuf.FormatRGBA8, pixbuf.OriginBottomLeft)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestBuiltinFormats(t *testing.T) {
	want := []string{"bmp", "png", "tga", "tiff"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		enc, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if enc.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, enc.Name())
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("jpeg2000")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup() error = %v, want ErrUnknownFormat", err)
	}
	var ufe *UnknownFormatError
	if !errors.As(err, &ufe) || ufe.Name != "jpeg2000" {
		t.Errorf("error = %#v, want UnknownFormatError{jpeg2000}", err)
	}
}

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(PNG{})

	if _, err := r.Lookup("png"); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	r.Unregister("png")
	if _, err := r.Lookup("png"); err == nil {
		t.Error("format should not exist after Unregister")
	}
	if names := r.Names(); len(names) != 0 {
		t.Errorf("Names() = %v, want empty", names)
	}
}

// TestEncoders_DecodeToSamePixels checks that every container stores the
// image the right way up.
func TestEncoders_DecodeToSamePixels(t *testing.T) {
	want := testBuffer(t).ToNRGBA()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			enc, _ := Lookup(name)
			path := filepath.Join(t.TempDir(), "frame0001."+enc.Extension())

			n, err := enc.WriteFile(path, testBuffer(t))
			if err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			fi, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if fi.Size() != n {
				t.Errorf("WriteFile() reported %d bytes, file has %d", n, fi.Size())
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = f.Close() }()

			img, format, err := image.Decode(f)
			if err != nil {
				t.Fatalf("image.Decode() error = %v", err)
			}
			if format != name {
				t.Errorf("decoded format = %q, want %q", format, name)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Fatalf("bounds = %v, want 3x2", img.Bounds())
			}
			for y := range 2 {
				for x := range 3 {
					got := color.NRGBAModel.Convert(img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y))
					if got != want.NRGBAAt(x, y) {
						t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want.NRGBAAt(x, y))
					}
				}
			}
		})
	}
}

func TestEncoders_MissingDirectory(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			enc, _ := Lookup(name)
			path := filepath.Join(t.TempDir(), "nope", "frame0001."+enc.Extension())

			if _, err := enc.WriteFile(path, testBuffer(t)); err == nil {
				t.Fatal("WriteFile() into a missing directory should fail")
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("no file should exist at %s", path)
			}
		})
	}
}

func TestTGA_OriginFlag(t *testing.T) {
	tests := []struct {
		origin pixbuf.Origin
		want   byte
	}{
		{pixbuf.OriginBottomLeft, 0},
		{pixbuf.OriginTopLeft, 0x20},
	}

	for _, tt := range tests {
		t.Run(tt.origin.String(), func(t *testing.T) {
			buf, _ := pixbuf.New(2, 2, pixbuf.FormatRGBA8, tt.origin)
			path := filepath.Join(t.TempDir(), "f.tga")
			if _, err := (TGA{}).WriteFile(path, buf); err != nil {
				t.Fatal(err)
			}
			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if b[17] != tt.want {
				t.Errorf("byte 17 = %#x, want %#x", b[17], tt.want)
			}
			if b[16] != 32 {
				t.Errorf("byte 16 = %d, want 32", b[16])
			}
		})
	}
}
