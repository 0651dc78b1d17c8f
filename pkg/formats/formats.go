// Package formats provides readers and writers for terrain grid files.
package formats

// Binary OTGR grids are implemented in grid.go, ESRI ASCII grids in asciigrid.go.
