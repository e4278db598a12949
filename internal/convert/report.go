// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf2img/pkg/types"
)

// Reporter logs run progress. It has no effect on control flow.
type Reporter struct {
	log zerolog.Logger
}

// NewReporter reports through logger.
func NewReporter(logger zerolog.Logger) *Reporter {
	return &Reporter{log: logger}
}

// Start records the source document and its page count.
func (r *Reporter) Start(source string, pages, dpi int, scale float64) {
	r.log.Info().
		Str("source", source).
		Int("pages", pages).
		Int("dpi", dpi).
		Float64("scale", scale).
		Msg("starting conversion")
}

// PageSaved records a page written to path.
func (r *Reporter) PageSaved(page int, path string) {
	r.log.Info().Int("page", page).Str("path", path).Msg("saved page")
}

// PageFailed records a page that could not be rendered or saved.
func (r *Reporter) PageFailed(page int, err error) {
	r.log.Error().Int("page", page).Err(err).Msg("page failed")
}

// CloseFailed records an error releasing the document.
func (r *Reporter) CloseFailed(err error) {
	r.log.Warn().Err(err).Msg("closing document")
}

// Done records run completion once the document is closed.
func (r *Reporter) Done(s types.RunSummary) {
	ev := r.log.Info()
	if s.HasFailures() {
		ev = r.log.Warn()
	}
	ev.Str("output", s.OutputDir).
		Int("saved", s.Saved).
		Int("failed", s.Failed).
		Msg("all pages processed")
}
