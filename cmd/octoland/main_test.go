package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/octoland/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "octoland.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want usage", stderr.String())
	}

	stdout.Reset()
	if code := run([]string{"help"}, &stdout, &stderr); code != 0 {
		t.Errorf("run(help) = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "analyze") {
		t.Errorf("help output %q missing commands", stdout.String())
	}

	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != 1 {
		t.Errorf("run(frobnicate) = %d, want 1", code)
	}
}

func TestRunAnalyze(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `
surface:
  kind: plane
  width: 4
  depth: 4
  base: 2
output:
  formats: []
logging:
  level: error
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "-config", cfgPath, "-u", "2", "-v", "2"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run(analyze) = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"3 x 3 samples, 4 faces", "Mean:       2.0000", "Std dev:    2.0000", "Contours:   0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunAnalyzeExport(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "results")
	cfgPath := writeConfig(t, dir, `
surface:
  kind: wave
  width: 10
  depth: 10
  amplitude: 2
  wavelength: 5
logging:
  level: error
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "-config", cfgPath, "-out", outDir, "-formats", "json,csv,geojson"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run(analyze) = %d, stderr = %s", code, stderr.String())
	}
	for _, name := range []string{"octoland.json", "octoland.csv", "octoland.geojson"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRunAnalyzeDiagnostic(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `
surface:
  kind: cylinder
  radius: 2
  height: 5
  sweep_deg: 360
logging:
  level: error
`)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"analyze", "-config", cfgPath}, &stdout, &stderr); code != 2 {
		t.Fatalf("run(analyze) = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "The input surface cannot be closed.") {
		t.Errorf("stderr = %q, want closed surface diagnostic", stderr.String())
	}
}

func TestRunGrid(t *testing.T) {
	dir := t.TempDir()
	asc := filepath.Join(dir, "site.asc")
	body := "ncols 3\nnrows 2\nxllcorner 100\nyllcorner 200\ncellsize 10\n1 2 3\n4 5 6\n"
	if err := os.WriteFile(asc, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	otg := filepath.Join(dir, "site.otg")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"grid", asc, "-o", otg}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(grid) = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Size:       3 x 2", "Altitude:   1 .. 6", "Wrote:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	stdout.Reset()
	if code := run([]string{"grid", otg}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(grid otg) = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Size:       3 x 2") {
		t.Errorf("converted grid output:\n%s", stdout.String())
	}

	if code := run([]string{"grid"}, &stdout, &stderr); code != 1 {
		t.Errorf("run(grid) without file = %d, want 1", code)
	}
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "octoland.yaml")

	var stdout, stderr bytes.Buffer
	args := []string{"init", "-surface", "plane", "-u", "0.5", "-formats", "png", "-o", path}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("run(init) = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), path) {
		t.Errorf("stdout = %q, want %s", stdout.String(), path)
	}

	cfg, err := config.Load(&config.Flags{Config: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Surface.Kind != "plane" {
		t.Errorf("Surface.Kind = %q, want plane", cfg.Surface.Kind)
	}
	if cfg.Analysis.UResolution != 0.5 {
		t.Errorf("UResolution = %v, want 0.5", cfg.Analysis.UResolution)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "png" {
		t.Errorf("Formats = %v, want [png]", cfg.Output.Formats)
	}

	if code := run([]string{"init", "-formats", "bogus", "-o", path}, &stdout, &stderr); code != 1 {
		t.Errorf("run(init bogus format) = %d, want 1", code)
	}
}
