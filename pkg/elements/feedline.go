package elements

import (
	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// FeedlineDielectric builds the CPW slot region of the shared transmission
// line: a full-width stroke the length of the feedline, minus the center
// conductor. The result is centered at the origin along the x axis.
func FeedlineDielectric(cfg *chip.Config) (geom.Polygon, error) {
	f := cfg.Feedline
	half := f.Length / 2
	outer := geom.Polygon{geom.Rect(-half, -(f.Width/2 + f.Gap), half, f.Width/2+f.Gap)}
	inner := geom.Polygon{geom.Rect(-half, -f.Width/2, half, f.Width/2)}
	diel, err := geom.Combine(outer, inner, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "feedline slot cut")
	}
	return diel, nil
}
