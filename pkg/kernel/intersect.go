package kernel

import (
	gomath "math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Faultbox/octoland/pkg/math"
)

// onPlaneEps is the signed distance below which a vertex counts as lying
// on the plane. Crossings between vertices are interpolated from exact
// distances.
const onPlaneEps = 1e-12

// IntersectBrepPlane intersects every face of b with plane and chains the
// resulting segments into polylines. Segment endpoints closer than tol are
// welded together. Faces lying entirely on the plane are skipped, so a brep
// coplanar with the plane yields no curves. Vertices that only touch the
// plane come back as points.
func IntersectBrepPlane(b *Brep, plane math.Plane, tol float64) ([]Polyline, []math.Vec3, error) {
	if !(tol > 0) {
		return nil, nil, errors.Wrapf(ErrInvalidTolerance, "got %v", tol)
	}
	if !plane.IsValid() {
		return nil, nil, ErrDegeneratePlane
	}
	if b == nil || len(b.faces) == 0 {
		return nil, nil, ErrEmptyBrep
	}

	w := newWelder(tol)
	segs := make(map[[2]int]bool)
	var order [][2]int
	var touches []int

	addSeg := func(p, q math.Vec3) {
		a, c := w.node(p), w.node(q)
		if a == c {
			touches = append(touches, a)
			return
		}
		key := [2]int{min(a, c), max(a, c)}
		if segs[key] {
			return
		}
		segs[key] = true
		order = append(order, key)
	}

	for _, t := range b.faces {
		pts, n := triangleCut(t, plane)
		switch n {
		case 1:
			touches = append(touches, w.node(pts[0]))
		case 2:
			addSeg(pts[0], pts[1])
		}
	}

	curves := chain(w.points, order)

	onCurve := make(map[int]bool)
	for _, s := range order {
		onCurve[s[0]] = true
		onCurve[s[1]] = true
	}
	var points []math.Vec3
	for _, idx := range touches {
		if onCurve[idx] {
			continue
		}
		onCurve[idx] = true
		points = append(points, w.points[idx])
	}
	return curves, points, nil
}

// triangleCut returns the part of t on the plane: nothing, a touching
// vertex, or a segment.
func triangleCut(t *model3d.Triangle, plane math.Plane) ([2]math.Vec3, int) {
	var v [3]math.Vec3
	var d [3]float64
	zero := 0
	for i, c := range t {
		v[i] = fromCoord(c)
		d[i] = plane.DistanceTo(v[i])
		if gomath.Abs(d[i]) <= onPlaneEps {
			d[i] = 0
			zero++
		}
	}

	var out [2]math.Vec3
	switch zero {
	case 3:
		return out, 0
	case 2:
		n := 0
		for i := 0; i < 3; i++ {
			if d[i] == 0 {
				out[n] = v[i]
				n++
			}
		}
		return out, 2
	}

	n := 0
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		switch {
		case d[i] == 0:
			out[n] = v[i]
			n++
		case d[j] != 0 && (d[i] < 0) != (d[j] < 0):
			out[n] = v[i].Lerp(v[j], d[i]/(d[i]-d[j]))
			n++
		}
		if n == 2 {
			break
		}
	}
	return out, n
}

// welder merges points closer than tol into shared nodes.
type welder struct {
	tol    float64
	cells  map[[3]int64][]int
	points []math.Vec3
}

func newWelder(tol float64) *welder {
	return &welder{tol: tol, cells: make(map[[3]int64][]int)}
}

func (w *welder) cell(p math.Vec3) [3]int64 {
	return [3]int64{
		int64(gomath.Floor(p.X / w.tol)),
		int64(gomath.Floor(p.Y / w.tol)),
		int64(gomath.Floor(p.Z / w.tol)),
	}
}

func (w *welder) node(p math.Vec3) int {
	c := w.cell(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, idx := range w.cells[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if w.points[idx].Distance(p) <= w.tol {
						return idx
					}
				}
			}
		}
	}
	idx := len(w.points)
	w.points = append(w.points, p)
	w.cells[c] = append(w.cells[c], idx)
	return idx
}

// chain links segments into polylines. Walks start at nodes that do not
// have exactly two neighbours; whatever is left afterwards forms loops.
func chain(points []math.Vec3, segs [][2]int) []Polyline {
	adj := make(map[int][]int)
	for _, s := range segs {
		adj[s[0]] = append(adj[s[0]], s[1])
		adj[s[1]] = append(adj[s[1]], s[0])
	}
	used := make(map[[2]int]bool, len(segs))
	take := func(a, b int) bool {
		key := [2]int{min(a, b), max(a, b)}
		if used[key] {
			return false
		}
		used[key] = true
		return true
	}

	walk := func(start int) []int {
		path := []int{start}
		cur := start
		for {
			next := -1
			for _, n := range adj[cur] {
				if take(cur, n) {
					next = n
					break
				}
			}
			if next < 0 {
				return path
			}
			path = append(path, next)
			if len(adj[next]) != 2 {
				return path
			}
			cur = next
		}
	}

	var curves []Polyline
	for idx := range points {
		if n := len(adj[idx]); n == 0 || n == 2 {
			continue
		}
		for {
			path := walk(idx)
			if len(path) < 2 {
				break
			}
			curves = append(curves, toPolyline(points, path, false))
		}
	}
	for idx := range points {
		if len(adj[idx]) != 2 {
			continue
		}
		path := walk(idx)
		if len(path) < 2 {
			continue
		}
		closed := path[len(path)-1] == path[0]
		if closed {
			path = path[:len(path)-1]
		}
		curves = append(curves, toPolyline(points, path, closed))
	}
	return curves
}

func toPolyline(points []math.Vec3, path []int, closed bool) Polyline {
	pts := make([]math.Vec3, len(path))
	for i, idx := range path {
		pts[i] = points[idx]
	}
	return Polyline{Points: pts, Closed: closed}
}
