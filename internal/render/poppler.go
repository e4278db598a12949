// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdf2img/internal/container"
	"github.com/pdiddy/pdf2img/pkg/types"
)

// DefaultPopplerImage provides pdftoppm.
const DefaultPopplerImage = "minidocks/poppler:latest"

// Poppler opens documents with pdfcpu and rasterizes pages with pdftoppm
// running in a container. It needs no cgo.
type Poppler struct {
	runtime container.Runtime
	image   string

	// pageCount parses the document and counts pages. Replaced in tests.
	pageCount func(path string) (int, error)
}

// NewPoppler creates a poppler renderer that runs the ref image on rt.
func NewPoppler(rt container.Runtime, ref string) *Poppler {
	api.DisableConfigDir()
	return &Poppler{
		runtime:   rt,
		image:     ref,
		pageCount: api.PageCountFile,
	}
}

func (*Poppler) Name() types.Backend { return types.BackendPoppler }

// Open validates the document with pdfcpu and loads it into memory so each
// page render can stream it to the container.
func (p *Poppler) Open(path string) (Document, error) {
	n, err := p.pageCount(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s with pdfcpu: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &popplerDocument{poppler: p, data: data, pages: n}, nil
}

type popplerDocument struct {
	poppler *Poppler
	data    []byte
	pages   int
}

func (d *popplerDocument) PageCount() int { return d.pages }

func (d *popplerDocument) RenderPage(index int, scale float64) (image.Image, error) {
	if err := checkIndex(index, d.pages); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	cmd := pdftoppmCommand(index+1, scale*BaseDPI)
	if err := d.poppler.runtime.Exec(d.poppler.image, cmd, bytes.NewReader(d.data), &out); err != nil {
		return nil, fmt.Errorf("rendering page %d with poppler: %w", index+1, err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding pdftoppm output for page %d: %w", index+1, err)
	}
	return img, nil
}

func (d *popplerDocument) Close() error {
	d.data = nil
	return nil
}

// pdftoppmCommand renders the 1-based page at dpi from stdin to a single PNG
// on stdout. pdftoppm writes to stdout only when no output root is given; a
// root of "-" would produce a file named -.png.
func pdftoppmCommand(page int, dpi float64) []string {
	n := strconv.Itoa(page)
	return []string{
		"pdftoppm",
		"-r", strconv.FormatFloat(dpi, 'f', -1, 64),
		"-f", n, "-l", n,
		"-png", "-singlefile",
		"-",
	}
}
