// Package export writes analysis results to disk in the supported formats.
package export

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/internal/logger"
)

// ErrUnknownFormat is returned for a format without a writer.
var ErrUnknownFormat = errors.New("unknown export format")

// WriteFunc writes one representation of res to path.
type WriteFunc func(path string, res *analysis.Result, opts Options) error

type format struct {
	ext   string
	write WriteFunc
}

var formats = map[string]format{
	"geojson": {".geojson", WriteGeoJSON},
	"dxf":     {".dxf", WriteDXF},
	"stl":     {".stl", WriteSTL},
	"png":     {".png", WritePNG},
	"json":    {".json", WriteSummary},
	"csv":     {".csv", WriteCSV},
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options controls the exporters.
type Options struct {
	Dir     string
	Name    string
	PNGSize int
	Log     *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Log == nil {
		return logger.Nop()
	}
	return o.Log
}

// Export writes res once per requested format into opts.Dir and returns
// the paths written. A failing writer does not stop the others; all
// failures are combined into the returned error.
func Export(res *analysis.Result, names []string, opts Options) ([]string, error) {
	if opts.Name == "" {
		opts.Name = "octoland"
	}
	if opts.PNGSize <= 0 {
		opts.PNGSize = 512
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating output dir %s", opts.Dir)
	}

	log := opts.logger().With(zap.String("run_id", res.RunID))

	var written []string
	var errs error
	for _, name := range names {
		name = strings.ToLower(name)
		f, ok := formats[name]
		if !ok {
			errs = multierr.Append(errs, errors.Wrapf(ErrUnknownFormat, "%q", name))
			continue
		}
		path := filepath.Join(opts.Dir, opts.Name+f.ext)
		if err := f.write(path, res, opts); err != nil {
			log.Error("export failed", zap.String("format", name), zap.Error(err))
			errs = multierr.Append(errs, errors.Wrapf(err, "writing %s", name))
			continue
		}
		log.Debug("exported", zap.String("format", name), zap.String("path", path))
		written = append(written, path)
	}
	return written, errs
}
