package formats

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ASCII grid errors.
var (
	ErrASCIIHeader = errors.New("invalid ASCII grid header")
	ErrASCIIValue  = errors.New("invalid ASCII grid value")
	ErrASCIINoData = errors.New("ASCII grid contains NODATA cells")
)

// ParseASCIIGrid reads an ESRI ASCII raster. The file lists rows from north
// to south; the returned grid has row 0 at the south edge. Samples sit at
// cell centers, so an xllcorner/yllcorner origin is shifted by half a cell.
func ParseASCIIGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64)
	var first string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = key
			break
		}
		if !sc.Scan() {
			return nil, errors.Wrapf(ErrASCIIHeader, "missing value for %q", key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrASCIIHeader, "%s = %q", key, sc.Text())
		}
		header[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning ASCII grid")
	}

	cols, rows := int(header["ncols"]), int(header["nrows"])
	cell := header["cellsize"]
	if cols < 2 || rows < 2 || cols > maxGridSide || rows > maxGridSide {
		return nil, errors.Wrapf(ErrASCIIHeader, "ncols=%d nrows=%d", cols, rows)
	}
	if !(cell > 0) {
		return nil, errors.Wrapf(ErrASCIIHeader, "cellsize=%v", cell)
	}

	g := &Grid{
		Version: CurrentGridVersion,
		Width:   uint32(cols),
		Height:  uint32(rows),
		CellX:   float32(cell),
		CellY:   float32(cell),
	}
	switch {
	case hasKeys(header, "xllcenter", "yllcenter"):
		g.OriginX, g.OriginY = header["xllcenter"], header["yllcenter"]
	case hasKeys(header, "xllcorner", "yllcorner"):
		g.OriginX, g.OriginY = header["xllcorner"]+cell/2, header["yllcorner"]+cell/2
	default:
		return nil, errors.Wrap(ErrASCIIHeader, "missing lower-left corner or center")
	}
	noData, hasNoData := header["nodata_value"]

	g.Altitudes = make([]float32, cols*rows)
	for k := 0; k < cols*rows; k++ {
		var tok string
		if k == 0 && first != "" {
			tok = first
		} else if sc.Scan() {
			tok = sc.Text()
		} else {
			return nil, errors.Wrapf(ErrTruncatedGridData, "got %d of %d values", k, cols*rows)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrASCIIValue, "value %d %q", k, tok)
		}
		if hasNoData && v == noData {
			return nil, errors.Wrapf(ErrASCIINoData, "value %d", k)
		}
		fileRow, col := k/cols, k%cols
		g.Altitudes[(rows-1-fileRow)*cols+col] = float32(v)
	}
	return g, nil
}

// ParseASCIIGridFile reads an ESRI ASCII raster from disk.
func ParseASCIIGridFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening ASCII grid")
	}
	defer f.Close()
	return ParseASCIIGrid(f)
}

// LoadGridFile picks the parser by extension: .asc is ESRI ASCII, anything
// else the binary format.
func LoadGridFile(path string) (*Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".asc") {
		return ParseASCIIGridFile(path)
	}
	return ParseGridFile(path)
}

func hasKeys(m map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
