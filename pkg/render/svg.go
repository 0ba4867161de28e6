// Package render produces human-readable views of a mask document: an SVG
// preview of the flattened layers and a Graphviz diagram of the cell
// hierarchy. Neither output is fabrication data; the GDS stream is.
package render

import (
	"bytes"
	"fmt"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
	"github.com/quantafab/maskgen/pkg/layout"
)

// layerOrder fixes the paint order: ground plane first, then the dielectric
// openings, junction metal on top.
var layerOrder = []layout.Layer{
	layout.LayerMetal,
	layout.LayerDielectric,
	layout.LayerJunction,
}

var layerFill = map[layout.Layer]string{
	layout.LayerMetal:      "#aeb6c2",
	layout.LayerDielectric: "#20242c",
	layout.LayerJunction:   "#d95f43",
}

// SVG renders the document's flattened layers as a preview image. Output is
// deterministic for a given document. The y axis is flipped so that the
// chip's +y points up on screen, as it does on the mask.
func SVG(doc *layout.Document) ([]byte, error) {
	if doc.Top == nil {
		return nil, errors.New(errors.ErrCodeInternal, "document has no top cell")
	}

	flat := make(map[layout.Layer]geom.Polygon, len(layerOrder))
	var all geom.Polygon
	for _, layer := range layerOrder {
		p := doc.Top.Flattened(layer, geom.Identity)
		flat[layer] = p
		all = append(all, p...)
	}
	if len(all) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "document has no geometry to render")
	}
	min, max := all.Bounds()

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f">`+"\n",
		min.X, -max.Y, max.X-min.X, max.Y-min.Y)
	fmt.Fprintf(&buf, `<title>%s</title>`+"\n", doc.Name)

	for _, layer := range layerOrder {
		p := flat[layer]
		if len(p) == 0 {
			continue
		}
		// Holes only render as holes if every ring of the layer shares one
		// even-odd path.
		fmt.Fprintf(&buf, `<path fill="%s" fill-rule="evenodd" d="`, layerFill[layer])
		for _, ring := range p {
			writeRing(&buf, ring)
		}
		buf.WriteString(`"/>` + "\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// writeRing emits one closed subpath with the y axis flipped.
func writeRing(buf *bytes.Buffer, ring geom.Ring) {
	for i, p := range ring {
		cmd := byte('L')
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(buf, "%c%.3f %.3f ", cmd, p.X, -p.Y)
	}
	buf.WriteString("Z")
}
