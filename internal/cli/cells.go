package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/pipeline"
	"github.com/quantafab/maskgen/pkg/render"
)

// newCellsCmd creates the cells command for inspecting the cell hierarchy.
func newCellsCmd() *cobra.Command {
	var (
		config string
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "cells",
		Short: "Inspect the cell hierarchy of a design",
		Long: `Inspect the cell hierarchy of a design as a graph.

Each cell becomes a node labeled with its polygon counts per layer, and
each cell reference becomes an edge. Use -f dot for raw Graphviz DOT
output, or -f svg for an in-process Graphviz rendering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCells(cmd.Context(), cmd, config, output, format)
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML design file (default: built-in reference design)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg")

	return cmd
}

func runCells(ctx context.Context, cmd *cobra.Command, config, output, format string) error {
	cfg, err := loadConfig(config)
	if err != nil {
		return err
	}
	opts := pipeline.Options{Config: cfg}
	doc, _, err := pipeline.Build(ctx, opts)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "dot":
		data = []byte(render.ToDOT(doc))
	case "svg":
		data, err = render.CellGraphSVG(ctx, doc)
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg)", format)
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
