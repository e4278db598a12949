// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdf2img/pkg/types"
)

// MuPDF renders through MuPDF via go-fitz (cgo).
type MuPDF struct{}

// NewMuPDF creates a MuPDF renderer.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

func (*MuPDF) Name() types.Backend { return types.BackendMuPDF }

// Open parses the document with MuPDF. Missing, corrupt, and encrypted files
// fail here rather than on first render.
func (*MuPDF) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s with mupdf: %w", path, err)
	}
	return &mupdfDocument{doc: doc, pages: doc.NumPage()}, nil
}

type mupdfDocument struct {
	doc   *fitz.Document
	pages int
}

func (d *mupdfDocument) PageCount() int { return d.pages }

// RenderPage converts scale back to a DPI because go-fitz takes DPI and
// applies the same dpi/72 matrix internally.
func (d *mupdfDocument) RenderPage(index int, scale float64) (image.Image, error) {
	if err := checkIndex(index, d.pages); err != nil {
		return nil, err
	}
	img, err := d.doc.ImageDPI(index, scale*BaseDPI)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d with mupdf: %w", index+1, err)
	}
	return img, nil
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}
