package elements

import (
	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
)

// glyphs is a 3x5 pixel font. Each byte is one row, top to bottom, with
// bit 2 as the left column.
var glyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b111, 0b100, 0b100, 0b100, 0b111},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b111, 0b100, 0b111},
	'F': {0b111, 0b100, 0b111, 0b100, 0b100},
	'G': {0b111, 0b100, 0b101, 0b101, 0b111},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b111},
	'K': {0b101, 0b110, 0b100, 0b110, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b111, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b111, 0b101},
	'O': {0b111, 0b101, 0b101, 0b101, 0b111},
	'P': {0b111, 0b101, 0b111, 0b100, 0b100},
	'Q': {0b111, 0b101, 0b101, 0b111, 0b001},
	'R': {0b111, 0b101, 0b110, 0b101, 0b101},
	'S': {0b111, 0b100, 0b111, 0b001, 0b111},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b111, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// glyphUnit is the pixel size of the label font, in micrometers. Glyphs
// are 3x5 pixels with a one-pixel advance gap.
const glyphUnit = 20.0

// LabelNegative renders text as a negative region: a clearance box with
// the glyph pixels cut back out, so that after subtraction from the ground
// plane the glyphs remain as metal. The text baseline box is centered on
// the origin; margin is the clearance added on each side.
//
// Supported characters are A-Z, 0-9, dash, and space; anything else is an
// INVALID_CONFIG error naming the offending rune.
func LabelNegative(text string, margin float64) (geom.Polygon, error) {
	if text == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "label text must not be empty")
	}

	runes := []rune(text)
	textW := float64(len(runes)*4-1) * glyphUnit
	textH := 5 * glyphUnit
	x0 := -textW / 2
	y0 := -textH / 2

	var pixels []geom.Polygon
	for i, r := range runes {
		bitmap, ok := glyphs[r]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"label text contains unsupported character %q", r)
		}
		cx := x0 + float64(i*4)*glyphUnit
		for row, bits := range bitmap {
			for col := 0; col < 3; col++ {
				if bits&(1<<(2-col)) == 0 {
					continue
				}
				px := cx + float64(col)*glyphUnit
				py := y0 + float64(4-row)*glyphUnit
				pixels = append(pixels, geom.Polygon{geom.Rect(px, py, px+glyphUnit, py+glyphUnit)})
			}
		}
	}

	box := geom.Polygon{geom.Rect(x0-margin, y0-margin, x0+textW+margin, y0+textH+margin)}
	metal, err := geom.Union(pixels)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "label glyph union")
	}
	negative, err := geom.Combine(box, metal, geom.OpDifference)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeComposition, err, "label box cut")
	}
	return negative, nil
}
