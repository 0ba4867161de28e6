// Package gds writes layout documents as GDSII stream files.
//
// The writer emits a minimal but conformant subset of the format: a
// library header, one structure per cell, BOUNDARY elements for polygons,
// and SREF elements for cell references, preserving the document hierarchy
// instead of flattening it. Polygons with holes are rewritten into simply
// connected boundaries through keyhole slits, since BOUNDARY elements are
// always filled. Coordinates are written with a user unit of 1 µm and a
// database unit of 1 nm.
//
// Output is byte-deterministic: the library timestamps default to a fixed
// date so that identical documents serialize to identical files.
package gds

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/quantafab/maskgen/pkg/errors"
	"github.com/quantafab/maskgen/pkg/geom"
	"github.com/quantafab/maskgen/pkg/layout"
)

// GDSII record types.
const (
	recHeader   = 0x00
	recBgnLib   = 0x01
	recLibName  = 0x02
	recUnits    = 0x03
	recEndLib   = 0x04
	recBgnStr   = 0x05
	recStrName  = 0x06
	recEndStr   = 0x07
	recBoundary = 0x08
	recSRef     = 0x0A
	recLayer    = 0x0D
	recDataType = 0x0E
	recXY       = 0x10
	recEndEl    = 0x11
	recSName    = 0x12
	recSTrans   = 0x1A
	recAngle    = 0x1C
)

// GDSII record data types.
const (
	dtNone   = 0x00
	dtBit    = 0x01
	dtInt16  = 0x02
	dtInt32  = 0x03
	dtReal8  = 0x05
	dtString = 0x06
)

const (
	gdsVersion = 600
	// Database units: 1 nm grid, 1000 db units per user unit (1 µm).
	userUnitPerDB = 1e-3
	dbUnitMeters  = 1e-9
	// Boundary records are capped at 8191 bytes by the format; with the
	// XY header and closing vertex that caps a ring at 8189 points.
	maxRingPoints = 8189
	// STRANS bit 0: reflect about the x axis before rotation.
	stransReflect = 0x8000
)

// defaultTimestamp keeps output bytes stable across runs.
var defaultTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options tunes serialization.
type Options struct {
	// Timestamp is written as the library modification and access time.
	// The zero value selects a fixed date, keeping output deterministic.
	Timestamp time.Time
}

// Write serializes the document with default options.
func Write(w io.Writer, doc *layout.Document) error {
	return WriteWithOptions(w, doc, Options{})
}

// WriteWithOptions serializes the document as a GDSII stream.
func WriteWithOptions(w io.Writer, doc *layout.Document, opts Options) error {
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = defaultTimestamp
	}

	g := &writer{w: w}
	g.record(recHeader, dtInt16, i16(gdsVersion))
	g.record(recBgnLib, dtInt16, timestamp(ts))
	g.record(recLibName, dtString, str(doc.Name))
	g.record(recUnits, dtReal8, append(real8(userUnitPerDB), real8(dbUnitMeters)...))

	for _, c := range doc.Cells() {
		g.cell(c, ts)
	}

	g.record(recEndLib, dtNone, nil)
	if g.err != nil {
		return errors.Wrap(errors.ErrCodeWrite, g.err, "writing GDS stream")
	}
	return nil
}

type writer struct {
	w   io.Writer
	err error
}

// record frames one GDSII record: big-endian length including the 4-byte
// header, record type, data type, payload.
func (g *writer) record(rt, dt byte, data []byte) {
	if g.err != nil {
		return
	}
	if len(data)%2 != 0 {
		g.err = errors.New(errors.ErrCodeInternal, "odd GDS record payload length %d", len(data))
		return
	}
	hdr := []byte{0, 0, rt, dt}
	binary.BigEndian.PutUint16(hdr, uint16(4+len(data)))
	if _, err := g.w.Write(hdr); err != nil {
		g.err = err
		return
	}
	if len(data) > 0 {
		if _, err := g.w.Write(data); err != nil {
			g.err = err
		}
	}
}

func (g *writer) cell(c *layout.Cell, ts time.Time) {
	g.record(recBgnStr, dtInt16, timestamp(ts))
	g.record(recStrName, dtString, str(c.Name))
	for _, p := range c.Polys {
		// BOUNDARY elements are filled with no fill rule, so polygons
		// with holes are first cut into simply connected rings.
		for _, ring := range geom.Keyhole(p.Shape) {
			g.boundary(c.Name, p.Layer, ring)
		}
	}
	for _, r := range c.Refs {
		g.sref(r)
	}
	g.record(recEndStr, dtNone, nil)
}

func (g *writer) boundary(cell string, layer layout.Layer, ring geom.Ring) {
	if g.err != nil {
		return
	}
	if len(ring) > maxRingPoints {
		g.err = errors.New(errors.ErrCodeWrite,
			"cell %q: ring with %d points exceeds the GDS boundary limit %d",
			cell, len(ring), maxRingPoints)
		return
	}
	g.record(recBoundary, dtNone, nil)
	g.record(recLayer, dtInt16, i16(int16(layer)))
	g.record(recDataType, dtInt16, i16(0))

	// Boundaries repeat their first vertex to close the ring.
	xy := make([]byte, 0, (len(ring)+1)*8)
	for _, p := range ring {
		xy = appendCoord(xy, p)
	}
	xy = appendCoord(xy, ring[0])
	g.record(recXY, dtInt32, xy)
	g.record(recEndEl, dtNone, nil)
}

func (g *writer) sref(r layout.Reference) {
	g.record(recSRef, dtNone, nil)
	g.record(recSName, dtString, str(r.To.Name))
	if r.T.Mirror || r.T.Rot != 0 {
		var bits uint16
		if r.T.Mirror {
			bits = stransReflect
		}
		strans := make([]byte, 2)
		binary.BigEndian.PutUint16(strans, bits)
		g.record(recSTrans, dtBit, strans)
		if r.T.Rot != 0 {
			g.record(recAngle, dtReal8, real8(float64(r.T.Rot)*90))
		}
	}
	g.record(recXY, dtInt32, appendCoord(nil, geom.Pt(r.T.Dx, r.T.Dy)))
	g.record(recEndEl, dtNone, nil)
}

// appendCoord appends a point as two big-endian int32 database units.
func appendCoord(dst []byte, p geom.Point) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(int32(math.Round(p.X/userUnitPerDB))))
	binary.BigEndian.PutUint32(buf[4:8], uint32(int32(math.Round(p.Y/userUnitPerDB))))
	return append(dst, buf[:]...)
}

// i16 encodes int16 values big-endian.
func i16(vals ...int16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// str encodes an ASCII string, NUL-padded to even length.
func str(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// timestamp encodes a time as the twelve int16 fields of BGNLIB/BGNSTR
// (modification and access time).
func timestamp(t time.Time) []byte {
	f := []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
	return i16(append(f, f...)...)
}

// real8 encodes a float64 as the GDSII 8-byte real: a sign bit, a 7-bit
// excess-64 base-16 exponent, and a 56-bit mantissa in [1/16, 1).
func real8(f float64) []byte {
	out := make([]byte, 8)
	if f == 0 {
		return out
	}
	var sign uint64
	if f < 0 {
		sign = 1 << 63
		f = -f
	}
	exp := 64
	for f >= 1 {
		f /= 16
		exp++
	}
	for f < 1.0/16 {
		f *= 16
		exp--
	}
	mant := uint64(math.Round(f * (1 << 56)))
	if mant >= 1<<56 {
		mant >>= 4
		exp++
	}
	if exp < 0 {
		exp = 0
	}
	if exp > 127 {
		exp = 127
	}
	binary.BigEndian.PutUint64(out, sign|uint64(exp)<<56|mant)
	return out
}
