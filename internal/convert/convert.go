// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rasterizes every page of one PDF into image files named
// master_page_<n>.<format>. Invalid input and unreadable documents stop the
// run; a page that fails to render or save is reported and skipped.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf2img/internal/imagefile"
	"github.com/pdiddy/pdf2img/internal/render"
	"github.com/pdiddy/pdf2img/pkg/types"
)

const (
	// DefaultDPI is the resolution used when none is given.
	DefaultDPI = 300
	// DefaultFormat is the output format used when none is given.
	DefaultFormat = "png"

	pageFilePrefix = "master_page_"
)

// Scale converts a DPI to the factor applied to 72 DPI page geometry.
func Scale(dpi int) float64 {
	return float64(dpi) / render.BaseDPI
}

// PageFileName returns the output name for the zero-based page index. The
// number is 1-based and the extension is format verbatim.
func PageFileName(index int, format string) string {
	return fmt.Sprintf("%s%d.%s", pageFilePrefix, index+1, format)
}

// Validate checks req without touching the filesystem beyond a stat of the
// source. It never creates the output directory.
func Validate(req types.ConversionRequest) error {
	if req.SourcePath == "" {
		return &InvalidInputError{Reason: "no PDF path given"}
	}
	info, err := os.Stat(req.SourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &InvalidInputError{Path: req.SourcePath, Reason: "file does not exist"}
		}
		return &InvalidInputError{Path: req.SourcePath, Reason: err.Error()}
	}
	if !info.Mode().IsRegular() {
		return &InvalidInputError{Path: req.SourcePath, Reason: "not a regular file"}
	}
	if !strings.EqualFold(filepath.Ext(req.SourcePath), ".pdf") {
		return &InvalidInputError{Path: req.SourcePath, Reason: "not a .pdf file"}
	}
	if req.OutputDir == "" {
		return &InvalidInputError{Reason: "no output directory given"}
	}
	if req.DPI <= 0 {
		return &InvalidInputError{Reason: fmt.Sprintf("dpi must be positive, got %d", req.DPI)}
	}
	if req.Format == "" {
		return &InvalidInputError{Reason: "no image format given"}
	}
	return nil
}

// EnsureOutputDir creates dir and any missing parents. An existing directory
// is fine.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Converter runs conversions against one rendering backend.
type Converter struct {
	renderer render.Renderer
	opts     imagefile.Options
	report   *Reporter
}

// New creates a Converter. Encoder options apply to every page.
func New(r render.Renderer, opts imagefile.Options, report *Reporter) *Converter {
	return &Converter{renderer: r, opts: opts, report: report}
}

// Run converts every page of req.SourcePath in ascending order. It returns an
// error only for fatal conditions (*InvalidInputError, output directory
// creation, *DocumentOpenError); per-page failures are recorded in the
// summary and the run continues.
func (c *Converter) Run(req types.ConversionRequest, runID string) (types.RunSummary, error) {
	summary := types.RunSummary{
		RunID:     runID,
		Source:    req.SourcePath,
		OutputDir: req.OutputDir,
		DPI:       req.DPI,
		Scale:     Scale(req.DPI),
		Format:    req.Format,
		Backend:   c.renderer.Name(),
	}

	if err := Validate(req); err != nil {
		return summary, err
	}
	if err := EnsureOutputDir(req.OutputDir); err != nil {
		return summary, err
	}

	doc, err := c.renderer.Open(req.SourcePath)
	if err != nil {
		return summary, &DocumentOpenError{Path: req.SourcePath, Err: err}
	}

	summary.Pages = doc.PageCount()
	summary.Results = make([]types.PageResult, 0, summary.Pages)
	c.report.Start(req.SourcePath, summary.Pages, req.DPI, summary.Scale)

	for i := 0; i < summary.Pages; i++ {
		res := c.convertPage(doc, i, summary.Scale, req)
		if res.Status == types.PageSaved {
			summary.Saved++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
	}

	if err := doc.Close(); err != nil {
		c.report.CloseFailed(err)
	}
	c.report.Done(summary)
	return summary, nil
}

// convertPage renders and writes one page. The image is dropped on return.
func (c *Converter) convertPage(doc render.Document, index int, scale float64, req types.ConversionRequest) types.PageResult {
	page := index + 1
	path := filepath.Join(req.OutputDir, PageFileName(index, req.Format))
	res := types.PageResult{Page: page, Path: path}

	img, err := doc.RenderPage(index, scale)
	if err != nil {
		err = &PageRenderError{Page: page, Err: err}
		c.report.PageFailed(page, err)
		res.Status = types.PageRenderFailed
		res.Error = err.Error()
		return res
	}

	if err := imagefile.Save(path, img, req.Format, c.opts); err != nil {
		err = &PageSaveError{Page: page, Path: path, Err: err}
		c.report.PageFailed(page, err)
		res.Status = types.PageSaveFailed
		res.Error = err.Error()
		return res
	}

	c.report.PageSaved(page, path)
	res.Status = types.PageSaved
	return res
}
