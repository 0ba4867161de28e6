package elements

import (
	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// ManhattanWidth is the thickness, in micrometers, of the wide arm of the
// overlap junction. The narrow arm uses the configured junction line width;
// the junction area is their product.
const ManhattanWidth = 0.5

// JunctionMetal builds the Manhattan junction for one device: two
// perpendicular narrow lines whose overlap forms the tunnel junction, a
// middle bar, and two square contact pads bridging to the capacitor pads.
// The local frame is centered on the junction gap; the capacitor pads sit
// at y = +gap/2 and y = -gap/2. The result is positive metal for the
// junction layer.
func JunctionMetal(cfg *chip.Config, index int) (geom.Polygon, error) {
	if index < 0 || index >= cfg.Devices() {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"device index %d out of range 0..%d", index, cfg.Devices()-1)
	}
	gap := cfg.Transmon.Gaps[index]
	wj := cfg.Junction.LineWidth
	wm := ManhattanWidth
	pad := gap / 4 // contact pad size

	rects := []geom.Polygon{
		// Top contact pad, straddling the upper capacitor pad edge.
		{geom.RectCentered(geom.Pt(0, gap/2), pad, pad)},
		// Narrow vertical line from the top pad down past the overlap point.
		{geom.Rect(-wj/2, -wm, wj/2, gap/2)},
		// Wide horizontal line crossing beneath it; the overlap is the junction.
		{geom.Rect(-wj/2-wm, -wm/2, gap/4, wm/2)},
		// Middle bar down to the lower contact.
		{geom.Rect(gap/4-wm, -gap/2, gap/4+wm, 0)},
		// Bottom contact pad, straddling the lower capacitor pad edge.
		{geom.RectCentered(geom.Pt(gap/4, -gap/2), pad, pad)},
	}

	metal, err := geom.Union(rects)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err,
			"junction metal union, device %d", index)
	}
	return metal, nil
}
