package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"
	"os"

	"github.com/pkg/errors"
)

// Grid format errors.
var (
	ErrInvalidGridMagic       = errors.New("invalid grid magic: expected 'OTGR'")
	ErrUnsupportedGridVersion = errors.New("unsupported grid version")
	ErrTruncatedGridData      = errors.New("truncated grid data")
	ErrInvalidGridDimensions  = errors.New("invalid grid dimensions")
)

// gridMagic opens every binary terrain grid file.
const gridMagic = "OTGR"

// gridHeaderSize covers magic, version, dimensions, cell size and origin.
const gridHeaderSize = 4 + 2 + 8 + 8 + 16

// maxGridSide bounds each grid dimension.
const maxGridSide = 16384

// GridVersion represents the grid file version.
type GridVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GridVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentGridVersion is written by EncodeGrid.
var CurrentGridVersion = GridVersion{Major: 1, Minor: 0}

// Grid is a regular grid of terrain altitudes. Row 0 is the southern edge
// (lowest Y); columns run east along X.
type Grid struct {
	Version   GridVersion
	Width     uint32  // samples along X
	Height    uint32  // samples along Y
	CellX     float32 // sample spacing along X
	CellY     float32 // sample spacing along Y
	OriginX   float64 // world X of sample (0, 0)
	OriginY   float64 // world Y of sample (0, 0)
	Altitudes []float32
}

// At returns the altitude at (col, row).
// Returns NaN if coordinates are out of bounds.
func (g *Grid) At(col, row int) float32 {
	if col < 0 || row < 0 || col >= int(g.Width) || row >= int(g.Height) {
		return float32(gomath.NaN())
	}
	return g.Altitudes[row*int(g.Width)+col]
}

// AltitudeRange returns the minimum and maximum altitude in the grid.
func (g *Grid) AltitudeRange() (lo, hi float32) {
	if len(g.Altitudes) == 0 {
		return 0, 0
	}
	lo, hi = g.Altitudes[0], g.Altitudes[0]
	for _, a := range g.Altitudes {
		lo = min(lo, a)
		hi = max(hi, a)
	}
	return lo, hi
}

// Float64s returns the altitudes widened to float64.
func (g *Grid) Float64s() []float64 {
	out := make([]float64, len(g.Altitudes))
	for i, a := range g.Altitudes {
		out[i] = float64(a)
	}
	return out
}

// ParseGrid parses a binary grid from raw bytes.
func ParseGrid(data []byte) (*Grid, error) {
	if len(data) < gridHeaderSize {
		return nil, ErrTruncatedGridData
	}

	if string(data[0:4]) != gridMagic {
		return nil, ErrInvalidGridMagic
	}

	// Version is stored as [minor, major]
	version := GridVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, errors.Wrapf(ErrUnsupportedGridVersion, "%s", version)
	}

	r := bytes.NewReader(data[6:])

	g := &Grid{Version: version}
	header := []struct {
		name string
		dst  any
	}{
		{"width", &g.Width},
		{"height", &g.Height},
		{"cell x", &g.CellX},
		{"cell y", &g.CellY},
		{"origin x", &g.OriginX},
		{"origin y", &g.OriginY},
	}
	for _, h := range header {
		if err := binary.Read(r, binary.LittleEndian, h.dst); err != nil {
			return nil, errors.Wrapf(ErrTruncatedGridData, "reading %s", h.name)
		}
	}

	if g.Width < 2 || g.Height < 2 || g.Width > maxGridSide || g.Height > maxGridSide {
		return nil, errors.Wrapf(ErrInvalidGridDimensions, "%dx%d", g.Width, g.Height)
	}
	if !(g.CellX > 0) || !(g.CellY > 0) {
		return nil, errors.Wrapf(ErrInvalidGridDimensions, "cell size %vx%v", g.CellX, g.CellY)
	}

	count := int(g.Width) * int(g.Height)
	if r.Len() < count*4 {
		return nil, errors.Wrapf(ErrTruncatedGridData, "need %d altitudes, have %d bytes", count, r.Len())
	}
	g.Altitudes = make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, g.Altitudes); err != nil {
		return nil, errors.Wrap(ErrTruncatedGridData, "reading altitudes")
	}

	return g, nil
}

// ParseGridFile parses a binary grid from disk.
func ParseGridFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading grid file")
	}
	return ParseGrid(data)
}

// EncodeGrid serializes g in the current binary format.
func EncodeGrid(g *Grid) ([]byte, error) {
	if int(g.Width)*int(g.Height) != len(g.Altitudes) {
		return nil, errors.Wrapf(ErrInvalidGridDimensions, "%dx%d with %d altitudes", g.Width, g.Height, len(g.Altitudes))
	}

	buf := new(bytes.Buffer)
	buf.Grow(gridHeaderSize + 4*len(g.Altitudes))
	buf.WriteString(gridMagic)
	buf.WriteByte(CurrentGridVersion.Minor)
	buf.WriteByte(CurrentGridVersion.Major)

	for _, v := range []any{g.Width, g.Height, g.CellX, g.CellY, g.OriginX, g.OriginY, g.Altitudes} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, errors.Wrap(err, "encoding grid")
		}
	}
	return buf.Bytes(), nil
}

// WriteGridFile encodes g and writes it to path.
func WriteGridFile(path string, g *Grid) error {
	data, err := EncodeGrid(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
