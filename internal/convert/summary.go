// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2img/pkg/types"
)

// Summary formats accepted by WriteSummary.
const (
	SummaryYAML = "yaml"
	SummaryJSON = "json"
)

// WriteSummary prints s to w as yaml or json.
func WriteSummary(w io.Writer, s types.RunSummary, format string) error {
	switch format {
	case SummaryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding summary as yaml: %w", err)
		}
		return enc.Close()
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding summary as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown summary format %q (want %s or %s)", format, SummaryYAML, SummaryJSON)
	}
}
