// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2img CLI, which renders every
// page of a PDF to an image file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2img/internal/convert"
	"github.com/pdiddy/pdf2img/internal/imagefile"
	"github.com/pdiddy/pdf2img/internal/logging"
	"github.com/pdiddy/pdf2img/internal/render"
	"github.com/pdiddy/pdf2img/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Config keys. They double as flag names; environment variables use the
// PDF2IMG_ prefix with dashes turned into underscores.
const (
	keyDPI          = "dpi"
	keyFormat       = "format"
	keyBackend      = "backend"
	keyJPEGQuality  = "jpeg-quality"
	keyStrict       = "strict"
	keySummary      = "summary"
	keyLogLevel     = "log-level"
	keyLogFormat    = "log-format"
	keyLogFile      = "log-file"
	keyPopplerImage = "poppler-image"
)

// newRootCmd builds the command tree. Output goes to stdout (summary) and
// stderr (logs); configuration lives in v.
func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	var configUsed string

	root := &cobra.Command{
		Use:   "pdf2img --pdf FILE --output DIR [--dpi N] [--format EXT]",
		Short: "Render every page of a PDF to an image file",
		Long: `pdf2img renders each page of a PDF document to a raster image at the
requested resolution and writes it to the output directory as
master_page_<n>.<format>, numbering pages from 1. The output directory is
created when missing and existing files are overwritten.

A page that fails to render or save is reported and skipped; the run still
exits 0 unless --strict is set. An invalid input path or an unreadable PDF
exits 1 before any page is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			used, err := initConfig(v, cfgFile)
			if err != nil {
				return err
			}
			configUsed = used
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfPath, _ := cmd.Flags().GetString("pdf")
			outputDir, _ := cmd.Flags().GetString("output")
			req := types.ConversionRequest{
				SourcePath: pdfPath,
				OutputDir:  outputDir,
				DPI:        v.GetInt(keyDPI),
				Format:     v.GetString(keyFormat),
			}
			return runConvert(req, conversionConfig(v), configUsed, stdout, stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().String("config", "", "config file (default: ./pdf2img.yaml or ~/.config/pdf2img/pdf2img.yaml)")

	f := root.Flags()
	f.String("pdf", "", "source PDF file")
	f.String("output", "", "directory for page images (created if missing)")
	f.Int(keyDPI, convert.DefaultDPI, "rendering resolution in dots per inch")
	f.String(keyFormat, convert.DefaultFormat, "image format and file extension: "+strings.Join(imagefile.Formats(), ", "))
	f.String(keyBackend, string(types.BackendMuPDF), "rendering backend: mupdf or poppler")
	f.Int(keyJPEGQuality, imagefile.DefaultJPEGQuality, "JPEG quality (1-100)")
	f.Bool(keyStrict, false, "exit 2 when any page fails to render or save")
	f.String(keySummary, "", "print a run summary to stdout: yaml or json")
	f.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	f.String(keyLogFormat, logging.FormatConsole, "log format: console or json")
	f.String(keyLogFile, "", "also write JSON logs to this file (rotated)")
	f.String(keyPopplerImage, render.DefaultPopplerImage, "container image providing pdftoppm for the poppler backend")
	_ = root.MarkFlagRequired("pdf")
	_ = root.MarkFlagRequired("output")

	for _, key := range []string{
		keyDPI, keyFormat, keyBackend, keyJPEGQuality, keyStrict, keySummary,
		keyLogLevel, keyLogFormat, keyLogFile, keyPopplerImage,
	} {
		_ = v.BindPFlag(key, f.Lookup(key))
	}

	root.AddCommand(newVersionCmd())
	return root
}

// initConfig loads the config file and environment into v. It returns the
// config file used, if any. A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdf2img")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdf2img"))
		}
	}

	v.SetEnvPrefix("PDF2IMG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func conversionConfig(v *viper.Viper) types.ConversionConfig {
	return types.ConversionConfig{
		Backend:      types.Backend(strings.ToLower(v.GetString(keyBackend))),
		JPEGQuality:  v.GetInt(keyJPEGQuality),
		Strict:       v.GetBool(keyStrict),
		PopplerImage: v.GetString(keyPopplerImage),
		Summary:      strings.ToLower(v.GetString(keySummary)),
		Log: types.LogConfig{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
			File:   v.GetString(keyLogFile),
		},
	}
}

// checkConfig rejects option values that would otherwise fail late.
func checkConfig(cfg types.ConversionConfig) error {
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return fmt.Errorf("jpeg-quality must be between 1 and 100, got %d", cfg.JPEGQuality)
	}
	switch cfg.Summary {
	case "", convert.SummaryYAML, convert.SummaryJSON:
	default:
		return fmt.Errorf("unknown summary format %q (want %s or %s)", cfg.Summary, convert.SummaryYAML, convert.SummaryJSON)
	}
	return nil
}

func runConvert(req types.ConversionRequest, cfg types.ConversionConfig, configUsed string, stdout, stderr io.Writer) error {
	logger, closer, err := logging.New(stderr, cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return &ExitCodeError{Code: ExitFailure, Err: err}
	}
	defer closer.Close()

	runID := logging.NewRunID()
	logger = logging.WithRun(logger, runID)
	if configUsed != "" {
		logger.Debug().Str("config", configUsed).Msg("using config file")
	}

	fail := func(err error) error {
		logger.Error().Err(err).Msg("conversion failed")
		return &ExitCodeError{Code: ExitFailure, Err: err}
	}

	if err := checkConfig(cfg); err != nil {
		return fail(err)
	}
	// Validate before backend setup so bad input never waits on a container runtime.
	if err := convert.Validate(req); err != nil {
		return fail(err)
	}

	renderer, err := render.New(cfg)
	if err != nil {
		return fail(err)
	}
	logger.Debug().Str("backend", string(renderer.Name())).Msg("renderer ready")

	conv := convert.New(renderer, imagefile.Options{JPEGQuality: cfg.JPEGQuality}, convert.NewReporter(logger))
	summary, err := conv.Run(req, runID)
	if err != nil {
		return fail(err)
	}

	if cfg.Summary != "" {
		if err := convert.WriteSummary(stdout, summary, cfg.Summary); err != nil {
			return fail(err)
		}
	}

	if cfg.Strict && summary.HasFailures() {
		err := &convert.PartialFailureError{Failed: summary.Failed, Total: summary.Pages}
		logger.Error().Err(err).Msg("strict mode")
		return &ExitCodeError{Code: ExitPartialFailure, Err: err}
	}
	return nil
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(viper.New(), stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	var exitErr *ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		// Flag and argument errors from cobra have not been reported yet.
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
