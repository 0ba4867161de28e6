package pipeline

import (
	"context"
	"fmt"

	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/elements"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
	"github.com/quantafab/maskgen/pkg/layout"
	"github.com/quantafab/maskgen/pkg/meander"
)

// Build synthesizes every device in the design and assembles the cell
// hierarchy. The returned negative set collects, in placement order, every
// dielectric reference that Compose later carves out of the ground plane;
// junction metal is referenced but never collected.
func Build(ctx context.Context, opts Options) (*layout.Document, *layout.NegativeSet, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	cfg := opts.Config
	doc := layout.NewDocument(cfg.Name)
	top, err := doc.NewCell(cfg.Name)
	if err != nil {
		return nil, nil, err
	}
	doc.Top = top
	negatives := &layout.NegativeSet{}

	place := func(c *layout.Cell, t geom.Transform, negative bool) {
		top.AddRef(c, t)
		if negative {
			negatives.Add(layout.Reference{To: c, T: t})
		}
	}

	// Shared cells: the feedline and one launcher instanced at both ends.
	feedPoly, err := elements.FeedlineDielectric(cfg)
	if err != nil {
		return nil, nil, err
	}
	feed, err := doc.NewCell("FEEDLINE")
	if err != nil {
		return nil, nil, err
	}
	feed.AddPoly(layout.LayerDielectric, feedPoly)
	place(feed, geom.Identity, true)

	launchPoly, err := elements.LauncherDielectric(cfg)
	if err != nil {
		return nil, nil, err
	}
	launch, err := doc.NewCell("LAUNCHER")
	if err != nil {
		return nil, nil, err
	}
	launch.AddPoly(layout.LayerDielectric, launchPoly)
	for _, t := range launcherTransforms(cfg) {
		place(launch, t, true)
	}

	// Per-device cells: resonator, transmon, junction. Each device gets its
	// own cells because lengths and gaps vary across the array.
	for i := 0; i < cfg.Devices(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		res, err := meander.Synthesize(meander.Spec{
			Length:    cfg.Resonator.Lengths[i],
			Lead:      cfg.Resonator.Coupling,
			Radius:    cfg.Resonator.Radius,
			Turns:     cfg.Resonator.Turns,
			Width:     cfg.Resonator.Width,
			Gap:       cfg.Resonator.Gap,
			CapLength: cfg.Resonator.CapLength,
			Tolerance: opts.Tolerance,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.GetCode(err), err, "device %d", i)
		}
		opts.Logger.Debug("synthesized resonator",
			"device", i,
			"length", cfg.Resonator.Lengths[i],
			"segment", res.Segment)

		resCell, err := doc.NewCell(fmt.Sprintf("RES%d", i))
		if err != nil {
			return nil, nil, err
		}
		resCell.AddPoly(layout.LayerDielectric, res.Dielectric)
		tRes := resonatorTransform(cfg, i)
		place(resCell, tRes, true)

		qPoly, gapCenter, err := elements.TransmonDielectric(cfg, i)
		if err != nil {
			return nil, nil, err
		}
		qCell, err := doc.NewCell(fmt.Sprintf("QUBIT%d", i))
		if err != nil {
			return nil, nil, err
		}
		qCell.AddPoly(layout.LayerDielectric, qPoly)
		tQ := attach(tRes, res.Anchor)
		place(qCell, tQ, true)

		jPoly, err := elements.JunctionMetal(cfg, i)
		if err != nil {
			return nil, nil, err
		}
		jCell, err := doc.NewCell(fmt.Sprintf("JJ%d", i))
		if err != nil {
			return nil, nil, err
		}
		jCell.AddPoly(layout.LayerJunction, jPoly)
		place(jCell, attach(tQ, gapCenter), false)
	}

	labelPoly, err := elements.LabelNegative(cfg.Label.Text, cfg.Label.Margin)
	if err != nil {
		return nil, nil, err
	}
	labelCell, err := doc.NewCell("LABEL")
	if err != nil {
		return nil, nil, err
	}
	labelCell.AddPoly(layout.LayerDielectric, labelPoly)
	place(labelCell, labelTransform(cfg, labelPoly), true)

	if err := doc.Validate(); err != nil {
		return nil, nil, err
	}
	return doc, negatives, nil
}

// Compose carves the collected negatives out of the chip-sized ground plane
// and writes the result onto the top cell's Metal layer. The document is
// complete after Compose returns.
func Compose(doc *layout.Document, negatives *layout.NegativeSet, cfg *chip.Config) error {
	background := geom.Polygon{geom.RectCentered(geom.Pt(0, 0), cfg.Width, cfg.Height)}
	cuts, err := negatives.Union()
	if err != nil {
		return errors.Wrap(errors.ErrCodeComposition, err, "unioning negatives")
	}
	metal, err := geom.Combine(background, cuts, geom.OpDifference)
	if err != nil {
		return errors.Wrap(errors.ErrCodeComposition, err, "subtracting negatives from the ground plane")
	}
	doc.Top.AddPoly(layout.LayerMetal, metal)
	return nil
}
