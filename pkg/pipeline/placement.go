package pipeline

import (
	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/geom"
)

// resonatorTransform places device i along the feedline. Devices alternate
// sides by parity: even indices hang below the feedline, odd indices are
// mirrored about the feedline axis and hang above. The coupling run is
// centered on the device's tap position, at an edge-to-edge clearance of
// resonator.spacing from the feedline dielectric.
func resonatorTransform(cfg *chip.Config, i int) geom.Transform {
	dx := cfg.Resonator.Positions[i] + cfg.Resonator.Coupling/2
	dy := cfg.Feedline.Width/2 + cfg.Feedline.Gap +
		cfg.Resonator.Spacing +
		cfg.Resonator.Gap + cfg.Resonator.Width/2
	t := geom.Translate(dx, -dy)
	if i%2 != 0 {
		t = geom.MirrorX().Then(geom.Translate(dx, dy))
	}
	return t
}

// attach composes a child placement from an attachment point in the parent's
// local frame and the parent's own placement. Mirroring and rotation of the
// parent carry through to the child.
func attach(parent geom.Transform, at geom.Point) geom.Transform {
	return geom.Translate(at.X, at.Y).Then(parent)
}

// launcherTransforms places the two wirebond launchers at the feedline ends,
// each opening inward.
func launcherTransforms(cfg *chip.Config) [2]geom.Transform {
	half := cfg.Feedline.Length / 2
	return [2]geom.Transform{
		geom.Translate(-half, 0),
		geom.Rotate(2).Then(geom.Translate(half, 0)),
	}
}

// labelTransform places the chip label in the upper-left corner of the die.
func labelTransform(cfg *chip.Config, label geom.Polygon) geom.Transform {
	min, max := label.Bounds()
	return geom.Translate(-cfg.Width/2-min.X, cfg.Height/2-max.Y)
}
