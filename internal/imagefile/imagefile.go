// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagefile persists rendered page bitmaps as raster image files.
// The encoder is chosen from the format name; the file extension is the
// caller's business.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is zero.
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned for a format name with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options tunes encoders that take parameters.
type Options struct {
	// JPEGQuality ranges 1-100; zero selects DefaultJPEGQuality.
	JPEGQuality int
}

type encodeFunc func(w io.Writer, img image.Image, opts Options) error

var encoders = map[string]encodeFunc{
	"png": func(w io.Writer, img image.Image, _ Options) error {
		return png.Encode(w, img)
	},
	"jpg":  encodeJPEG,
	"jpeg": encodeJPEG,
	"gif": func(w io.Writer, img image.Image, _ Options) error {
		return gif.Encode(w, img, nil)
	},
	"bmp": func(w io.Writer, img image.Image, _ Options) error {
		return bmp.Encode(w, img)
	},
	"tif":  encodeTIFF,
	"tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image, opts Options) error {
	q := opts.JPEGQuality
	if q == 0 {
		q = DefaultJPEGQuality
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
}

func encodeTIFF(w io.Writer, img image.Image, _ Options) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Supported reports whether format names a known encoder. Matching ignores case.
func Supported(format string) bool {
	_, ok := encoders[strings.ToLower(format)]
	return ok
}

// Formats returns the recognized format names.
func Formats() []string {
	return []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff"}
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string, opts Options) error {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := enc(w, img, opts); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

// Save encodes img and writes it to path, replacing any existing file. The
// image is encoded in memory first so an encoder failure never creates the
// file; a failed write removes what was partially written.
func Save(path string, img image.Image, format string, opts Options) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
