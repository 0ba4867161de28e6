package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantafab/maskgen/pkg/gds"
	"github.com/quantafab/maskgen/pkg/layout"
	"github.com/quantafab/maskgen/pkg/observability"
	"github.com/quantafab/maskgen/pkg/render"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it does not store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the package default is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete build → compose → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	// The runner's logger has to land before validation fills in the
	// silent default, or stage debug logs would go nowhere.
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Config.Devices())
	doc, negatives, err := Build(ctx, opts)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Config.Devices(), 0, time.Since(buildStart), err)
		return nil, err
	}
	observability.Pipeline().OnBuildComplete(ctx, opts.Config.Devices(), len(doc.Cells()), time.Since(buildStart), nil)
	result.Document = doc
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Devices = opts.Config.Devices()
	result.Stats.Cells = len(doc.Cells())
	result.Stats.Negatives = negatives.Len()

	r.Logger.Info("built cell hierarchy",
		"devices", result.Stats.Devices,
		"cells", result.Stats.Cells,
		"duration", result.Stats.BuildTime)

	// Stage 2: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, negatives.Len())
	if err := Compose(doc, negatives, opts.Config); err != nil {
		observability.Pipeline().OnComposeComplete(ctx, negatives.Len(), time.Since(composeStart), err)
		return nil, err
	}
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, negatives.Len(), result.Stats.ComposeTime, nil)

	r.Logger.Info("composed ground plane",
		"negatives", result.Stats.Negatives,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Write
	writeStart := time.Now()
	observability.Pipeline().OnWriteStart(ctx, opts.Formats)
	artifacts, err := Serialize(doc, opts)
	if err != nil {
		observability.Pipeline().OnWriteComplete(ctx, opts.Formats, 0, time.Since(writeStart), err)
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.WriteTime = time.Since(writeStart)
	var written int
	for _, data := range artifacts {
		written += len(data)
	}
	observability.Pipeline().OnWriteComplete(ctx, opts.Formats, written, result.Stats.WriteTime, nil)

	r.Logger.Info("serialized outputs",
		"formats", opts.Formats,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Serialize writes the composed document in every requested format.
func Serialize(doc *layout.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatGDS:
			var buf bytes.Buffer
			if err := gds.Write(&buf, doc); err != nil {
				return nil, err
			}
			artifacts[format] = buf.Bytes()
		case FormatSVG:
			data, err := render.SVG(doc)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
