package types

// Backend identifies the PDF rendering collaborator.
type Backend string

const (
	BackendMuPDF   Backend = "mupdf"
	BackendPoppler Backend = "poppler"
)

// ConversionRequest is the per-invocation input of a conversion run. It is
// built once from the command line and passed by value.
type ConversionRequest struct {
	// SourcePath is the PDF file to rasterize.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputDir receives one image per page. Created if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DPI is the rendering resolution (default 300). Must be positive.
	DPI int `json:"dpi" yaml:"dpi"`

	// Format is the output file extension, used verbatim in filenames and
	// matched case-insensitively to pick an encoder (default "png").
	Format string `json:"format" yaml:"format"`
}

// LogConfig holds the logging settings shared by all commands.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is "console" for human output or "json" for one object per line.
	Format string `json:"format" yaml:"format"`

	// File, when set, also receives JSON logs through a rotating writer.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// ConversionConfig holds settings for a conversion run that are not part of
// the request itself.
type ConversionConfig struct {
	// Backend selects the rendering collaborator: mupdf or poppler.
	Backend Backend `json:"backend" yaml:"backend"`

	// JPEGQuality is used when the format resolves to JPEG (1-100, default 95).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// Strict makes a run with any failed page exit non-zero.
	Strict bool `json:"strict" yaml:"strict"`

	// PopplerImage is the container image providing pdftoppm.
	PopplerImage string `json:"poppler_image" yaml:"poppler_image"`

	// Summary selects an optional end-of-run summary on stdout: "", yaml or json.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	Log LogConfig `json:"log" yaml:"log"`
}
