package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	config      string  // design file path; empty selects the reference design
	output      string  // output base path, extension per format
	formats     string  // comma-separated output formats
	tolerance   float64 // curve flattening tolerance in µm
	writeConfig bool    // write the effective design next to the artifacts
}

// newGenerateCmd creates the generate command, the main entry point of the
// tool: load a design, run the pipeline, write the artifacts.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{formats: pipeline.FormatGDS}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate mask artifacts from a design file",
		Long: `Generate mask artifacts from a TOML design file.

Without --config the built-in reference design is used: eight quarter-wave
resonators between 6 and 7 GHz on a 10 x 5 mm chip. Artifacts are written
next to the current directory as <name>.<format>, or under the base path
given with --output.

Output is deterministic: the same design file always produces byte-identical
artifacts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML design file (default: built-in reference design)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: design name, lowercased)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): gds (default), svg (comma-separated)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "curve flattening tolerance in µm (default 0.01)")
	cmd.Flags().BoolVar(&opts.writeConfig, "write-config", false, "write the effective design file next to the artifacts")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := pipeline.NewRunner(logger).Execute(ctx, pipeline.Options{
		Config:    cfg,
		Formats:   parseFormats(opts.formats),
		Tolerance: opts.tolerance,
	})
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.ToLower(cfg.Name)
	}
	paths, err := writeArtifacts(base, result.Artifacts, parseFormats(opts.formats))
	if err != nil {
		return err
	}
	if opts.writeConfig {
		path := base + ".toml"
		if err := cfg.WriteFile(path); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Wrote %s", strings.Join(paths, ", ")))
	return nil
}

// loadConfig reads a design file, or falls back to the reference design.
func loadConfig(path string) (*chip.Config, error) {
	if path == "" {
		return chip.Default(), nil
	}
	return chip.Load(path)
}

// parseFormats splits a comma-separated format list, trimming whitespace.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// writeArtifacts writes each artifact to <base>.<format> and returns the
// written paths in format order.
func writeArtifacts(base string, artifacts map[string][]byte, formats []string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
