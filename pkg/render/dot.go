package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/layout"
)

// ToDOT converts the document's cell hierarchy to Graphviz DOT format.
// Each cell is a node labeled with its polygon count per layer; each
// reference is an edge from the referencing cell to the referenced one.
func ToDOT(doc *layout.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cells {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, c := range doc.Cells() {
		attrs := fmt.Sprintf("label=%q", cellLabel(c))
		if c == doc.Top {
			attrs += ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Name, attrs)
	}

	buf.WriteString("\n")
	for _, c := range doc.Cells() {
		for _, r := range c.Refs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.Name, r.To.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cellLabel(c *layout.Cell) string {
	counts := make(map[layout.Layer]int)
	for _, p := range c.Polys {
		counts[p.Layer] += len(p.Shape)
	}
	label := c.Name
	for _, layer := range layerOrder {
		if n := counts[layer]; n > 0 {
			label += fmt.Sprintf("\n%s: %d", layer, n)
		}
	}
	return label
}

// CellGraphSVG renders the cell hierarchy diagram to SVG using Graphviz.
func CellGraphSVG(ctx context.Context, doc *layout.Document) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(doc)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render cell graph")
	}
	return buf.Bytes(), nil
}
