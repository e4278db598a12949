// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageStatus indicates the outcome of one page of a run.
type PageStatus string

const (
	PageSaved        PageStatus = "saved"
	PageRenderFailed PageStatus = "render_failed"
	PageSaveFailed   PageStatus = "save_failed"
)

// PageResult records what happened to a single page.
type PageResult struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// Path is the destination file, set even when the save failed.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	Status PageStatus `json:"status" yaml:"status"`

	// Error is the failure message for a failed page.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunSummary describes a completed conversion run.
type RunSummary struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Source    string       `json:"source" yaml:"source"`
	OutputDir string       `json:"output_dir" yaml:"output_dir"`
	DPI       int          `json:"dpi" yaml:"dpi"`
	Scale     float64      `json:"scale" yaml:"scale"`
	Format    string       `json:"format" yaml:"format"`
	Backend   Backend      `json:"backend" yaml:"backend"`
	Pages     int          `json:"pages" yaml:"pages"`
	Saved     int          `json:"saved" yaml:"saved"`
	Failed    int          `json:"failed" yaml:"failed"`
	Results   []PageResult `json:"results" yaml:"results"`
}

// HasFailures reports whether any page failed to render or save.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}
