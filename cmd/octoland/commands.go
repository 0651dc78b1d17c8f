package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/internal/config"
	"github.com/Faultbox/octoland/internal/export"
	"github.com/Faultbox/octoland/internal/logger"
	"github.com/Faultbox/octoland/internal/server"
	"github.com/Faultbox/octoland/internal/surfaces"
	"github.com/Faultbox/octoland/pkg/formats"
)

// setup parses the common flags, loads the config and initializes the
// global logger.
func setup(name string, args []string, stderr io.Writer) (*config.Config, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, false
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return nil, false
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(logger.Options{
		Level:   cfg.Logging.Level,
		File:    fileCfg,
		Console: true,
		JSON:    cfg.Logging.JSON,
		Output:  stderr,
	}); err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return nil, false
	}
	return cfg, true
}

func cmdAnalyze(args []string, stdout, stderr io.Writer) int {
	cfg, ok := setup("analyze", args, stderr)
	if !ok {
		return 1
	}
	defer logger.Sync()

	surf, err := surfaces.Build(cfg.Surface)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a := analysis.New(
		analysis.WithTolerance(cfg.Analysis.ContourTolerance),
		analysis.WithMaxSamples(cfg.Analysis.MaxSamples),
		analysis.WithLogger(logger.Named("analysis")),
	)
	res, err := a.Analyze(cfg.Analysis.Plane.Plane(), surf, cfg.Analysis.UResolution, cfg.Analysis.VResolution)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", analysis.Diagnostic(err))
		logger.Debug("analysis error", zap.Error(err))
		return 2
	}

	printResult(stdout, res)

	if len(cfg.Output.Formats) == 0 {
		return 0
	}
	written, err := export.Export(res, cfg.Output.Formats, export.Options{
		Dir:     cfg.Output.Dir,
		Name:    cfg.Output.Name,
		PNGSize: cfg.Output.PNGSize,
		Log:     logger.Named("export"),
	})
	for _, path := range written {
		fmt.Fprintf(stdout, "Wrote:      %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Export error: %v\n", err)
		return 1
	}
	return 0
}

func printResult(w io.Writer, res *analysis.Result) {
	lo, hi := res.ElevationRange()
	fmt.Fprintf(w, "Run:        %s\n", res.RunID)
	fmt.Fprintf(w, "Grid:       %d x %d samples, %d faces\n", res.Grid.UCount, res.Grid.VCount, len(res.Mesh.Faces))
	fmt.Fprintf(w, "Datum:      %.4f\n", res.Plane.OriginZ())
	fmt.Fprintf(w, "Elevation:  %.4f .. %.4f\n", lo, hi)
	fmt.Fprintf(w, "Mean:       %.4f\n", res.Mean)
	fmt.Fprintf(w, "Std dev:    %.4f\n", res.StdDev)
	fmt.Fprintf(w, "Contours:   %d (total length %.4f)\n", len(res.Contours), res.ContourLength())
}

func cmdServe(args []string, stderr io.Writer) int {
	cfg, ok := setup("serve", args, stderr)
	if !ok {
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger.Named("server"))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return 1
	}
	return 0
}

func cmdGrid(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("grid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "Write the grid in binary .otg format")

	// Allow the file before or after the flags.
	var path string
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		path, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(stderr, "Usage: octoland grid <file> [-o out.otg]")
		return 1
	}

	g, err := formats.LoadGridFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	lo, hi := g.AltitudeRange()
	fmt.Fprintf(stdout, "Grid:       %s\n", path)
	fmt.Fprintf(stdout, "Version:    %s\n", g.Version)
	fmt.Fprintf(stdout, "Size:       %d x %d\n", g.Width, g.Height)
	fmt.Fprintf(stdout, "Cell:       %g x %g\n", g.CellX, g.CellY)
	fmt.Fprintf(stdout, "Origin:     %g, %g\n", g.OriginX, g.OriginY)
	fmt.Fprintf(stdout, "Extent:     %g x %g\n", float64(g.Width-1)*float64(g.CellX), float64(g.Height-1)*float64(g.CellY))
	fmt.Fprintf(stdout, "Altitude:   %g .. %g\n", lo, hi)

	if *out != "" {
		if err := formats.WriteGridFile(*out, g); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote:      %s\n", *out)
	}
	return 0
}

func cmdInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	out := fs.String("o", "", "Write the config to this path instead of the user config dir")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}

	path := *out
	if path == "" {
		err = cfg.Save()
		path = config.DefaultPath()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote:      %s\n", path)
	return 0
}
