// Package chip defines the validated chip design record.
//
// A [Config] carries every dimension the geometry builders need, in
// micrometers, with per-device arrays for the parametrically varied fields.
// Configs are decoded from TOML design files and validated eagerly: no
// geometry is built from a config that has not passed [Config.Validate].
package chip

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/meander"
)

// Feedline describes the shared transmission line through the chip center.
type Feedline struct {
	Width  float64 `toml:"width"`  // center conductor width
	Gap    float64 `toml:"gap"`    // gap to ground on each side
	Length float64 `toml:"length"` // end-to-end conductor length
}

// Launcher describes the wirebond launch pads at the feedline ends.
type Launcher struct {
	Width  float64 `toml:"width"`  // launch pad conductor width
	Gap    float64 `toml:"gap"`    // launch pad gap
	Length float64 `toml:"length"` // launch pad length
	Taper  float64 `toml:"taper"`  // transition length down to the feedline cross-section
}

// Resonator describes the CPW resonators. Lengths and Positions are
// per-device arrays of equal cardinality.
type Resonator struct {
	Width     float64 `toml:"width"`      // center conductor width
	Gap       float64 `toml:"gap"`        // gap to ground on each side
	Radius    float64 `toml:"radius"`     // meander bend radius
	Coupling  float64 `toml:"coupling"`   // straight coupling lead-in length
	Spacing   float64 `toml:"spacing"`    // edge-to-edge distance from the feedline
	CapLength float64 `toml:"cap_length"` // open-end capacitor pad length
	Turns     int     `toml:"turns"`      // U-turn count, shared by all devices

	Lengths   []float64 `toml:"lengths"`   // per-device target electrical length
	Positions []float64 `toml:"positions"` // per-device center x along the feedline
}

// Transmon describes the coupled nonlinear elements. Gaps is per-device.
type Transmon struct {
	PadWidth      float64   `toml:"pad_width"`      // capacitor pad width
	PadHeight     float64   `toml:"pad_height"`     // capacitor pad height
	Gaps          []float64 `toml:"gaps"`           // per-device junction gap between the pads
	CouplingRatio float64   `toml:"coupling_ratio"` // pad-length to gap ratio of the coupling capacitor
	DeviceRatio   float64   `toml:"device_ratio"`   // pad-length to gap ratio of the device capacitor
}

// Junction describes the Manhattan-junction metal.
type Junction struct {
	LineWidth float64 `toml:"line_width"` // width of the narrow junction lines
}

// Label describes the chip identification label.
type Label struct {
	Text   string  `toml:"text"`   // glyph text, A-Z, 0-9 and dash
	Margin float64 `toml:"margin"` // clearance on each side of the glyphs
}

// Config is the immutable chip design record. All dimensions are in
// micrometers. A Config is valid only after Validate returns nil.
type Config struct {
	Name   string  `toml:"name"`   // layout library and top cell name
	Width  float64 `toml:"width"`  // chip extent in x
	Height float64 `toml:"height"` // chip extent in y

	Feedline  Feedline  `toml:"feedline"`
	Launcher  Launcher  `toml:"launcher"`
	Resonator Resonator `toml:"resonator"`
	Transmon  Transmon  `toml:"transmon"`
	Junction  Junction  `toml:"junction"`
	Label     Label     `toml:"label"`
}

// Devices returns the device count N.
func (c *Config) Devices() int { return len(c.Resonator.Lengths) }

// Load reads and validates a TOML design file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading design file %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decoding design file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the record once, before any geometry is built. The first
// offending field is reported by name in an INVALID_CONFIG error.
func (c *Config) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"feedline.width", c.Feedline.Width},
		{"feedline.gap", c.Feedline.Gap},
		{"feedline.length", c.Feedline.Length},
		{"launcher.width", c.Launcher.Width},
		{"launcher.gap", c.Launcher.Gap},
		{"launcher.length", c.Launcher.Length},
		{"launcher.taper", c.Launcher.Taper},
		{"resonator.width", c.Resonator.Width},
		{"resonator.gap", c.Resonator.Gap},
		{"resonator.radius", c.Resonator.Radius},
		{"resonator.coupling", c.Resonator.Coupling},
		{"resonator.spacing", c.Resonator.Spacing},
		{"resonator.cap_length", c.Resonator.CapLength},
		{"transmon.pad_width", c.Transmon.PadWidth},
		{"transmon.pad_height", c.Transmon.PadHeight},
		{"transmon.coupling_ratio", c.Transmon.CouplingRatio},
		{"transmon.device_ratio", c.Transmon.DeviceRatio},
		{"junction.line_width", c.Junction.LineWidth},
		{"label.margin", c.Label.Margin},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s must be positive, got %v", p.name, p.value)
		}
	}

	if c.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "name must not be empty")
	}
	if c.Resonator.Turns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"resonator.turns must be at least 1, got %d", c.Resonator.Turns)
	}

	n := c.Devices()
	if n == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "resonator.lengths must not be empty")
	}
	if got := len(c.Resonator.Positions); got != n {
		return errors.New(errors.ErrCodeInvalidConfig,
			"resonator.positions has %d entries, want %d (one per device)", got, n)
	}
	if got := len(c.Transmon.Gaps); got != n {
		return errors.New(errors.ErrCodeInvalidConfig,
			"transmon.gaps has %d entries, want %d (one per device)", got, n)
	}

	min := meander.MinLength(c.Resonator.Coupling, c.Resonator.Radius, c.Resonator.Turns)
	for i, length := range c.Resonator.Lengths {
		if length <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"resonator.lengths[%d] must be positive, got %v", i, length)
		}
		if length <= min {
			return errors.New(errors.ErrCodeInvalidConfig,
				"resonator.lengths[%d] = %v is at or below the minimum %v for radius %v and %d turns",
				i, length, min, c.Resonator.Radius, c.Resonator.Turns)
		}
		if bends := c.Resonator.Radius * float64(2*c.Resonator.Turns); bends > length {
			return errors.New(errors.ErrCodeInvalidConfig,
				"resonator.radius %v cannot fit %d turns into resonator.lengths[%d] = %v",
				c.Resonator.Radius, c.Resonator.Turns, i, length)
		}
	}
	for i, pos := range c.Resonator.Positions {
		if half := c.Feedline.Length / 2; pos < -half || pos > half {
			return errors.New(errors.ErrCodeInvalidConfig,
				"resonator.positions[%d] = %v lies outside the feedline span ±%v", i, pos, half)
		}
	}
	for i, gap := range c.Transmon.Gaps {
		if gap <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"transmon.gaps[%d] must be positive, got %v", i, gap)
		}
	}
	return nil
}

// Default returns the reference eight-device design: quarter-wave
// resonators between 6 and 7 GHz on a 10 x 5 mm chip.
func Default() *Config {
	return &Config{
		Name:   "QF8",
		Width:  10000,
		Height: 5000,
		Feedline: Feedline{
			Width:  10,
			Gap:    6,
			Length: 8000,
		},
		Launcher: Launcher{
			Width:  150,
			Gap:    90,
			Length: 250,
			Taper:  300,
		},
		Resonator: Resonator{
			Width:     10,
			Gap:       6,
			Radius:    64,
			Coupling:  300,
			Spacing:   40,
			CapLength: 100,
			Turns:     10,
			Lengths:   []float64{4246, 4175, 4107, 4040, 3976, 3914, 3854, 3795},
			Positions: []float64{-3150, -2250, -1350, -450, 450, 1350, 2250, 3150},
		},
		Transmon: Transmon{
			PadWidth:      250,
			PadHeight:     120,
			Gaps:          []float64{30, 30, 30, 30, 30, 30, 30, 30},
			CouplingRatio: 5,
			DeviceRatio:   8,
		},
		Junction: Junction{
			LineWidth: 0.2,
		},
		Label: Label{
			Text:   "QF8",
			Margin: 40,
		},
	}
}

// WriteFile serializes the config as TOML, for provenance next to the
// generated artifact.
func (c *Config) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "creating %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "encoding %s", path)
	}
	return nil
}
