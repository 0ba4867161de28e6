package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quantafab/maskgen/pkg/pipeline"
)

// newPreviewCmd creates the preview command, a shortcut for generating just
// the SVG rendering of a design.
func newPreviewCmd() *cobra.Command {
	var (
		config string
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a design as an SVG image",
		Long: `Render the flattened mask layers of a design as an SVG image.

The preview shows the ground plane, the dielectric openings, and the
junction metal in distinct colors. It is a visual aid, not fabrication
data; use 'generate' for the GDS stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			result, err := pipeline.NewRunner(logger).Execute(cmd.Context(), pipeline.Options{
				Config:  cfg,
				Formats: []string{pipeline.FormatSVG},
			})
			if err != nil {
				return err
			}

			svg := result.Artifacts[pipeline.FormatSVG]
			if output == "" {
				_, err := cmd.OutOrStdout().Write(svg)
				return err
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return err
			}
			prog.done("Wrote " + output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML design file (default: built-in reference design)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
