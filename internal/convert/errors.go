// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// InvalidInputError reports a request rejected before any side effect: a
// source that is missing, not a regular file, or not named *.pdf, or an
// unusable DPI, output path, or format.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Path == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input %q: %s", e.Path, e.Reason)
}

// DocumentOpenError reports a source file that exists but could not be
// parsed as a PDF.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("could not open PDF %q: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// PageRenderError reports a page the backend could not rasterize. It does not
// stop the run.
type PageRenderError struct {
	Page int // 1-based
	Err  error
}

func (e *PageRenderError) Error() string {
	return fmt.Sprintf("rendering page %d: %v", e.Page, e.Err)
}

func (e *PageRenderError) Unwrap() error { return e.Err }

// PartialFailureError reports a completed run in which some pages failed.
// Run never returns it; callers that treat partial output as failure do.
type PartialFailureError struct {
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d page(s) failed", e.Failed, e.Total)
}

// PageSaveError reports a rendered page that could not be written. It does
// not stop the run.
type PageSaveError struct {
	Page int // 1-based
	Path string
	Err  error
}

func (e *PageSaveError) Error() string {
	return fmt.Sprintf("saving page %d to %s: %v", e.Page, e.Path, e.Err)
}

func (e *PageSaveError) Unwrap() error { return e.Err }
