package elements

import (
	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// LauncherDielectric builds the dielectric of one wirebond launcher: a wide
// launch pad with clearance behind it, tapering down to the feedline
// cross-section over the transition length. The geometry is built with its
// feedline interface at the origin, opening toward +x, so translating it to
// the left feedline end (or rotating it a half turn for the right end)
// places it correctly.
func LauncherDielectric(cfg *chip.Config) (geom.Polygon, error) {
	l := cfg.Launcher
	f := cfg.Feedline

	padFrom := -l.Taper - l.Length
	outerHalf := l.Width/2 + l.Gap
	feedHalf := f.Width/2 + f.Gap

	outer := geom.Polygon{geom.Ring{
		{X: padFrom - l.Gap, Y: -outerHalf},
		{X: -l.Taper, Y: -outerHalf},
		{X: 0, Y: -feedHalf},
		{X: 0, Y: feedHalf},
		{X: -l.Taper, Y: outerHalf},
		{X: padFrom - l.Gap, Y: outerHalf},
	}}
	inner := geom.Polygon{geom.Ring{
		{X: padFrom, Y: -l.Width / 2},
		{X: -l.Taper, Y: -l.Width / 2},
		{X: 0, Y: -f.Width / 2},
		{X: 0, Y: f.Width / 2},
		{X: -l.Taper, Y: l.Width / 2},
		{X: padFrom, Y: l.Width / 2},
	}}

	diel, err := geom.Combine(outer, inner, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "launcher taper cut")
	}
	return diel, nil
}
