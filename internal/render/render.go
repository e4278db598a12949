// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render is the boundary to the PDF rasterization libraries. A
// Renderer opens documents; a Document reports its page count and rasterizes
// single pages under a uniform scale transform, where scale 1 is 72 DPI.
package render

import (
	"fmt"
	"image"

	"github.com/pdiddy/pdf2img/internal/container"
	"github.com/pdiddy/pdf2img/pkg/types"
)

// BaseDPI is the resolution of PDF user space: one point is 1/72 inch.
const BaseDPI = 72.0

// Renderer opens PDF documents for rasterization.
type Renderer interface {
	// Name identifies the backend in logs and summaries.
	Name() types.Backend

	// Open parses the PDF at path. The caller must Close the document.
	Open(path string) (Document, error)
}

// Document is an open PDF. Rendering a page does not change document state.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// RenderPage rasterizes the zero-based page index with both axes scaled
	// by scale, so the image is the page size in points times scale.
	RenderPage(index int, scale float64) (image.Image, error)

	Close() error
}

// PageRangeError reports a page index outside the document.
type PageRangeError struct {
	Index int
	Count int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.Count)
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return &PageRangeError{Index: index, Count: count}
	}
	return nil
}

// New builds the renderer selected by cfg.Backend. An empty backend selects mupdf.
func New(cfg types.ConversionConfig) (Renderer, error) {
	switch cfg.Backend {
	case types.BackendMuPDF, "":
		return NewMuPDF(), nil
	case types.BackendPoppler:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		ref := cfg.PopplerImage
		if ref == "" {
			ref = DefaultPopplerImage
		}
		if err := container.EnsureImage(rt, ref); err != nil {
			return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
		}
		return NewPoppler(rt, ref), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, types.BackendMuPDF, types.BackendPoppler)
	}
}
