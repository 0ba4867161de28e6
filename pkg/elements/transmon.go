package elements

import (
	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// TransmonDielectric builds the coupled-element capacitor dielectric for
// one device: a background clearance rectangle minus the two capacitor
// pads. The local frame puts the resonator attachment point at the origin,
// with the pads stacked below it in -y; the per-device junction gap
// separates the two pads.
//
// The second return value is the junction gap center, where the Manhattan
// junction metal is placed.
func TransmonDielectric(cfg *chip.Config, index int) (geom.Polygon, geom.Point, error) {
	if index < 0 || index >= cfg.Devices() {
		return nil, geom.Point{}, errors.New(errors.ErrCodeInvalidConfig,
			"device index %d out of range 0..%d", index, cfg.Devices()-1)
	}
	tm := cfg.Transmon
	gap := tm.Gaps[index]
	couplingGap := chip.PadGap(tm.PadWidth, tm.CouplingRatio)
	deviceGap := chip.PadGap(tm.PadWidth, tm.DeviceRatio)

	padTop := -couplingGap
	padMid := padTop - tm.PadHeight      // bottom of the upper pad
	padLow := padMid - gap               // top of the lower pad
	padEnd := padLow - tm.PadHeight      // bottom of the lower pad
	halfW := tm.PadWidth / 2

	background := geom.Polygon{geom.Rect(
		-halfW-deviceGap, padEnd-deviceGap,
		halfW+deviceGap, 0,
	)}
	upper := geom.Polygon{geom.Rect(-halfW, padMid, halfW, padTop)}
	lower := geom.Polygon{geom.Rect(-halfW, padEnd, halfW, padLow)}

	diel, err := geom.Combine(background, upper, geom.OpDifference)
	if err != nil {
		return nil, geom.Point{}, errors.Wrap(errors.ErrCodeComposition, err,
			"transmon upper pad cut, device %d", index)
	}
	diel, err = geom.Combine(diel, lower, geom.OpDifference)
	if err != nil {
		return nil, geom.Point{}, errors.Wrap(errors.ErrCodeComposition, err,
			"transmon lower pad cut, device %d", index)
	}

	gapCenter := geom.Pt(0, padMid-gap/2)
	return diel, gapCenter, nil
}
