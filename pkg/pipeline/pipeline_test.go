package pipeline

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/quantafab/maskgen/pkg/chip"
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
	"github.com/quantafab/maskgen/pkg/layout"
)

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Config: chip.Default()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatGDS {
		t.Errorf("default formats = %v, want [gds]", opts.Formats)
	}
	if opts.Tolerance <= 0 {
		t.Errorf("default tolerance = %v, want positive", opts.Tolerance)
	}
	if opts.Logger == nil {
		t.Error("default logger not set")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"nil config", Options{}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Config: chip.Default(), Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"negative tolerance", Options{Config: chip.Default(), Tolerance: -1}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestResonatorTransformParity(t *testing.T) {
	cfg := chip.Default()
	for i := range cfg.Resonator.Lengths {
		tr := resonatorTransform(cfg, i)
		wantX := cfg.Resonator.Positions[i] + cfg.Resonator.Coupling/2
		if tr.Dx != wantX {
			t.Errorf("device %d: Dx = %v, want %v", i, tr.Dx, wantX)
		}
		if even := i%2 == 0; tr.Mirror == even {
			t.Errorf("device %d: Mirror = %v, want %v", i, tr.Mirror, !even)
		}
		if i%2 == 0 && tr.Dy >= 0 {
			t.Errorf("even device %d must hang below the feedline, Dy = %v", i, tr.Dy)
		}
		if i%2 != 0 && tr.Dy <= 0 {
			t.Errorf("odd device %d must hang above the feedline, Dy = %v", i, tr.Dy)
		}
	}

	// The feedline edge-to-resonator edge clearance is exactly spacing.
	tr := resonatorTransform(cfg, 0)
	edge := -(cfg.Feedline.Width/2 + cfg.Feedline.Gap)
	resTop := tr.Dy + cfg.Resonator.Width/2 + cfg.Resonator.Gap
	if got := edge - resTop; math.Abs(got-cfg.Resonator.Spacing) > 1e-12 {
		t.Errorf("clearance = %v, want %v", got, cfg.Resonator.Spacing)
	}
}

func TestAttachCarriesParentFrame(t *testing.T) {
	parent := geom.MirrorX().Then(geom.Translate(5, 7))
	at := geom.Pt(1, 2)
	child := attach(parent, at)

	// A point in the child frame must land where the parent frame maps
	// the child origin offset by that point.
	p := geom.Pt(0.5, -0.25)
	got := child.Apply(p)
	want := parent.Apply(geom.Pt(at.X+p.X, at.Y+p.Y))
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("attach mismatch: got %v, want %v", got, want)
	}
}

func TestLauncherTransforms(t *testing.T) {
	cfg := chip.Default()
	ts := launcherTransforms(cfg)
	if ts[0].Dx != -cfg.Feedline.Length/2 || ts[0].Rot != 0 {
		t.Errorf("left launcher = %+v", ts[0])
	}
	if ts[1].Dx != cfg.Feedline.Length/2 || ts[1].Rot != 2 {
		t.Errorf("right launcher = %+v", ts[1])
	}
	// The right launcher opens inward: its +x axis maps to -x.
	if got := ts[1].Apply(geom.Pt(1, 0)); got.X >= ts[1].Dx {
		t.Errorf("right launcher does not open inward: %v", got)
	}
}

func TestBuild(t *testing.T) {
	cfg := chip.Default()
	doc, negatives, err := Build(context.Background(), Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}

	n := cfg.Devices()
	// Top, feedline, launcher, label, plus three cells per device.
	if want := 4 + 3*n; len(doc.Cells()) != want {
		t.Errorf("cell count = %d, want %d", len(doc.Cells()), want)
	}
	// Feedline, two launchers, label, and two negatives per device;
	// junction metal never joins the negative set.
	if want := 4 + 2*n; negatives.Len() != want {
		t.Errorf("negative count = %d, want %d", negatives.Len(), want)
	}
	// The top cell additionally references each junction.
	if want := 4 + 3*n; len(doc.Top.Refs) != want {
		t.Errorf("top reference count = %d, want %d", len(doc.Top.Refs), want)
	}

	for _, name := range []string{"FEEDLINE", "LAUNCHER", "LABEL", "RES0", "QUBIT7", "JJ3"} {
		if _, ok := doc.Cell(name); !ok {
			t.Errorf("missing cell %s", name)
		}
	}

	// Junction cells carry only junction metal.
	jj, _ := doc.Cell("JJ0")
	for _, p := range jj.Polys {
		if p.Layer != layout.LayerJunction {
			t.Errorf("junction cell carries layer %s", p.Layer)
		}
	}
}

func TestBuildCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Build(ctx, Options{Config: chip.Default()}); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestExecute(t *testing.T) {
	cfg := chip.Default()
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Config:  cfg,
		Formats: []string{FormatGDS, FormatSVG},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Artifacts[FormatGDS]) == 0 {
		t.Error("empty GDS artifact")
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("SVG artifact missing root element")
	}
	if result.Stats.Devices != cfg.Devices() {
		t.Errorf("stats devices = %d, want %d", result.Stats.Devices, cfg.Devices())
	}

	// Compose must leave exactly one metal polygon on the top cell.
	metal := result.Document.Top.Flattened(layout.LayerMetal, geom.Identity)
	if len(metal) == 0 {
		t.Fatal("no ground plane metal on the top cell")
	}

	// The ground plane and the dielectric openings must not overlap.
	dielectric := result.Document.Top.Flattened(layout.LayerDielectric, geom.Identity)
	overlap, err := geom.Combine(metal, dielectric, geom.OpIntersection)
	if err != nil {
		t.Fatal(err)
	}
	if a := overlap.Area(); math.Abs(a) > 1e-6 {
		t.Errorf("metal and dielectric overlap with area %v", a)
	}

	// Metal area equals the chip area minus the dielectric cuts inside it.
	chipArea := cfg.Width * cfg.Height
	if metal.Area() >= chipArea || metal.Area() <= 0 {
		t.Errorf("metal area %v outside (0, %v)", metal.Area(), chipArea)
	}
}

func TestExecuteUsesRunnerLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := NewRunner(logger).Execute(context.Background(), Options{Config: chip.Default()})
	if err != nil {
		t.Fatal(err)
	}
	// Per-device debug logs from the build stage must reach the runner's
	// logger, not the silent validation default.
	if !strings.Contains(buf.String(), "synthesized resonator") {
		t.Error("build stage debug logs did not reach the runner's logger")
	}
	if !strings.Contains(buf.String(), "built cell hierarchy") {
		t.Error("runner progress logs missing")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	run := func() *Result {
		t.Helper()
		result, err := NewRunner(nil).Execute(context.Background(), Options{
			Config:  chip.Default(),
			Formats: []string{FormatGDS, FormatSVG},
		})
		if err != nil {
			t.Fatal(err)
		}
		return result
	}
	a, b := run(), run()

	for _, format := range []string{FormatGDS, FormatSVG} {
		if !bytes.Equal(a.Artifacts[format], b.Artifacts[format]) {
			t.Errorf("%s artifact differs between identical runs", format)
		}
	}
	metalA := a.Document.Top.Flattened(layout.LayerMetal, geom.Identity)
	metalB := b.Document.Top.Flattened(layout.LayerMetal, geom.Identity)
	if diff := cmp.Diff(metalA, metalB); diff != "" {
		t.Errorf("ground plane differs between identical runs:\n%s", diff)
	}
}

func TestExecuteInfeasibleDesign(t *testing.T) {
	cfg := chip.Default()
	cfg.Resonator.Lengths[3] = 500 // below the geometric minimum
	_, err := NewRunner(nil).Execute(context.Background(), Options{Config: cfg})
	if err == nil {
		t.Fatal("expected error for infeasible design")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidConfig {
		t.Errorf("code = %s, want %s", code, errors.ErrCodeInvalidConfig)
	}
}
