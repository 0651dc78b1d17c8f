// octoland samples a surface, reports its elevation statistics against a
// reference plane and extracts its ground contour.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "analyze", "a":
		return cmdAnalyze(args, stdout, stderr)
	case "serve":
		return cmdServe(args, stderr)
	case "grid":
		return cmdGrid(args, stdout, stderr)
	case "init":
		return cmdInit(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `octoland - surface elevation analysis

Usage:
  octoland <command> [options]

Commands:
  analyze [flags]                 Sample a surface and report elevation statistics
  serve [flags]                   Serve the analysis over HTTP
  grid <file> [-o out.otg]        Show terrain grid information, optionally convert
  init [flags] [-o file]          Write the effective config (default: user config dir)
  help                            Show this help

Common flags:
  -config <file>    Config file (default ./octoland.yaml)
  -debug            Enable debug logging
  -u, -v <res>      U and V resolution
  -surface <kind>   plane, wave, grid, cylinder
  -grid <file>      Terrain grid (.otg or .asc)
  -out <dir>        Output directory
  -formats <list>   geojson,dxf,stl,png,json,csv
  -addr <addr>      HTTP listen address

Examples:
  octoland analyze -grid site.asc -u 2 -v 2 -formats geojson,png
  octoland analyze -surface wave -u 0.5 -v 0.5
  octoland serve -addr :8080
  octoland grid site.asc -o site.otg
  octoland init -grid site.asc -u 2 -v 2 -o octoland.yaml`)
}
