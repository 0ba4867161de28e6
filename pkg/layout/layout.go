// Package layout models the hierarchical mask document: named cells
// holding layer-tagged polygons and transformed references to other cells.
//
// Cells form a DAG: a cell may be referenced from many places but must
// never reach itself through its references. The document is built once
// during composition and is immutable afterwards; nothing here is safe for
// concurrent mutation.
package layout

import (
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// Layer tags a polygon with the fabrication layer it belongs to. The
// numeric values are the layer numbers written to the output file.
type Layer int16

const (
	LayerMetal      Layer = 0  // the etched ground plane and traces
	LayerDielectric Layer = 40 // regions removed from the metal film
	LayerJunction   Layer = 80 // separately deposited junction metal
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerMetal:
		return "metal"
	case LayerDielectric:
		return "dielectric"
	case LayerJunction:
		return "junction"
	default:
		return "unknown"
	}
}

// Poly is one layer-tagged polygon inside a cell.
type Poly struct {
	Layer Layer
	Shape geom.Polygon
}

// Reference places another cell with a transform.
type Reference struct {
	To *Cell
	T  geom.Transform
}

// Cell is a named, reusable group of polygons and references.
type Cell struct {
	Name  string
	Polys []Poly
	Refs  []Reference
}

// AddPoly appends a tagged polygon to the cell.
func (c *Cell) AddPoly(layer Layer, shape geom.Polygon) {
	c.Polys = append(c.Polys, Poly{Layer: layer, Shape: shape})
}

// AddRef appends a transformed reference to another cell.
func (c *Cell) AddRef(to *Cell, t geom.Transform) {
	c.Refs = append(c.Refs, Reference{To: to, T: t})
}

// Flattened returns the cell's polygons on one layer, including referenced
// cells, mapped through t into the caller's coordinates.
func (c *Cell) Flattened(layer Layer, t geom.Transform) geom.Polygon {
	var out geom.Polygon
	for _, p := range c.Polys {
		if p.Layer != layer {
			continue
		}
		out = append(out, t.ApplyPolygon(p.Shape)...)
	}
	for _, r := range c.Refs {
		out = append(out, r.To.Flattened(layer, r.T.Then(t))...)
	}
	return out
}

// Flattened maps the referenced cell's polygons on one layer into the
// reference's parent coordinates.
func (r Reference) Flattened(layer Layer) geom.Polygon {
	return r.To.Flattened(layer, r.T)
}

// Document is the hierarchical layout: an ordered cell list with unique
// names and a designated top cell.
type Document struct {
	Name  string
	Top   *Cell
	cells []*Cell
	index map[string]*Cell
}

// NewDocument creates an empty document with the given library name.
func NewDocument(name string) *Document {
	return &Document{
		Name:  name,
		index: make(map[string]*Cell),
	}
}

// NewCell creates and registers a cell. Cell names must be unique within
// the document.
func (d *Document) NewCell(name string) (*Cell, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInternal, "cell name must not be empty")
	}
	if _, exists := d.index[name]; exists {
		return nil, errors.New(errors.ErrCodeInternal, "duplicate cell name %q", name)
	}
	c := &Cell{Name: name}
	d.cells = append(d.cells, c)
	d.index[name] = c
	return c, nil
}

// Cell returns the registered cell with the given name.
func (d *Document) Cell(name string) (*Cell, bool) {
	c, ok := d.index[name]
	return c, ok
}

// Cells returns the cells in insertion order. The returned slice must not
// be modified.
func (d *Document) Cells() []*Cell { return d.cells }

// Validate checks document integrity: every reference must point to a
// registered cell, and the reference graph must be acyclic.
func (d *Document) Validate() error {
	for _, c := range d.cells {
		for _, r := range c.Refs {
			if r.To == nil {
				return errors.New(errors.ErrCodeComposition,
					"cell %q holds a nil reference", c.Name)
			}
			if got, ok := d.index[r.To.Name]; !ok || got != r.To {
				return errors.New(errors.ErrCodeComposition,
					"cell %q references %q, which is not registered in the document",
					c.Name, r.To.Name)
			}
		}
	}
	return d.detectCycles()
}

// detectCycles runs a white/gray/black depth-first search over the
// reference graph.
func (d *Document) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[*Cell]int, len(d.cells))
	var cyclic *Cell

	var dfs func(c *Cell)
	dfs = func(c *Cell) {
		color[c] = gray
		for _, r := range c.Refs {
			switch color[r.To] {
			case white:
				dfs(r.To)
				if cyclic != nil {
					return
				}
			case gray:
				cyclic = r.To
				return
			}
		}
		color[c] = black
	}

	for _, c := range d.cells {
		if color[c] == white {
			dfs(c)
			if cyclic != nil {
				return errors.New(errors.ErrCodeComposition,
					"cell %q participates in a reference cycle", cyclic.Name)
			}
		}
	}
	return nil
}
