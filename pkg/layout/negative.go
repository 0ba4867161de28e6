package layout

import (
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// NegativeSet is the ordered collection of cell references whose dielectric
// geometry is subtracted from the chip background to produce the metal
// layer. It is assembled incrementally during placement and consumed once
// at the end of composition.
type NegativeSet struct {
	refs []Reference
}

// Add appends references to the set, preserving order.
func (s *NegativeSet) Add(refs ...Reference) {
	s.refs = append(s.refs, refs...)
}

// Merge appends another set's references.
func (s *NegativeSet) Merge(other NegativeSet) {
	s.refs = append(s.refs, other.refs...)
}

// Len returns the number of collected references.
func (s *NegativeSet) Len() int { return len(s.refs) }

// Refs returns the collected references in insertion order.
func (s *NegativeSet) Refs() []Reference { return s.refs }

// Union flattens every reference's dielectric geometry into chip
// coordinates and folds it into a single polygon. Union is associative, so
// the whole set is combined first and subtracted from the background in
// one final difference.
func (s *NegativeSet) Union() (geom.Polygon, error) {
	polys := make([]geom.Polygon, 0, len(s.refs))
	for _, r := range s.refs {
		polys = append(polys, r.Flattened(LayerDielectric))
	}
	u, err := geom.Union(polys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "negative set union")
	}
	return u, nil
}
