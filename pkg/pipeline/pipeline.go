// Package pipeline runs the complete build → compose → write mask flow.
//
// This package implements the full synthesize → place → subtract pipeline
// shared by every entry point, so the CLI and any embedding program produce
// identical artifacts for identical designs.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Synthesize every device and assemble the cell hierarchy
//  2. Compose: Union the negatives and carve them out of the ground plane
//  3. Write: Serialize the finished document in the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Config:  chip.Default(),
//	    Formats: []string{"gds"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stream := result.Artifacts["gds"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/layout"
	"github.com/quantafab/maskgen/pkg/meander"
)

// Format constants for output formats.
const (
	FormatGDS = "gds"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatGDS: true,
	FormatSVG: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: gds, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the mask pipeline.
type Options struct {
	// Config is the validated chip design. Required.
	Config *chip.Config

	// Formats selects the output artifacts. Defaults to gds.
	Formats []string

	// Tolerance is the curve flattening tolerance in µm.
	// Zero selects meander.DefaultTolerance.
	Tolerance float64

	// Runtime options.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the composed cell hierarchy, ground plane included.
	Document *layout.Document

	// Artifacts contains serialized outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Devices     int
	Cells       int
	Negatives   int
	BuildTime   time.Duration
	ComposeTime time.Duration
	WriteTime   time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config is required")
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGDS}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Tolerance == 0 {
		o.Tolerance = meander.DefaultTolerance
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"tolerance must be positive, got %v", o.Tolerance)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
