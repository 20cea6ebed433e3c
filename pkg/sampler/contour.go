package sampler

import (
	"github.com/wesen/graphplot/pkg/series"
	"github.com/wesen/graphplot/pkg/viewport"
)

// edge names a cell side by its two corner indices. Corners run
// 0 = (x, y), 1 = (x+dx, y), 2 = (x+dx, y+dy), 3 = (x, y+dy).
type edge [2]int

// cellEdges lists, per 4-bit sign pattern, the two cell sides the contour
// crosses. Patterns 0 and 15 have none. Saddles 5 and 10 resolve to a
// single fixed segment.
var cellEdges = [16][]edge{
	0:  nil,
	1:  {{0, 3}, {0, 1}},
	2:  {{0, 1}, {1, 2}},
	3:  {{0, 3}, {1, 2}},
	4:  {{1, 2}, {2, 3}},
	5:  {{0, 1}, {2, 3}},
	6:  {{0, 1}, {3, 0}},
	7:  {{2, 3}, {3, 0}},
	8:  {{2, 3}, {3, 0}},
	9:  {{0, 1}, {3, 0}},
	10: {{0, 3}, {1, 2}},
	11: {{1, 2}, {2, 3}},
	12: {{0, 3}, {1, 2}},
	13: {{0, 1}, {1, 2}},
	14: {{0, 3}, {0, 1}},
	15: nil,
}

// Contour approximates F(x, y) = 0 over win with marching squares on a
// cols×rows grid. Each crossing cell yields an unstitched two-point
// segment. Cells with a failed corner are skipped.
func Contour(f series.Func2, win viewport.Window, cols, rows int) []series.Polyline {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	dx := win.XSpan() / float64(cols)
	dy := win.YSpan() / float64(rows)

	// Corner values are shared between neighbouring cells.
	vals := make([]float64, (cols+1)*(rows+1))
	okv := make([]bool, len(vals))
	at := func(i, j int) int { return j*(cols+1) + i }
	for j := 0; j <= rows; j++ {
		y := win.YMin + float64(j)*dy
		for i := 0; i <= cols; i++ {
			x := win.XMin + float64(i)*dx
			k := at(i, j)
			vals[k], okv[k] = series.Eval2(f, x, y)
		}
	}

	var out []series.Polyline
	for j := 0; j < rows; j++ {
		y := win.YMin + float64(j)*dy
		for i := 0; i < cols; i++ {
			x := win.XMin + float64(i)*dx
			idx := [4]int{at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)}
			var v [4]float64
			skip := false
			for c, k := range idx {
				if !okv[k] {
					skip = true
					break
				}
				v[c] = vals[k]
			}
			if skip {
				continue
			}
			pat := 0
			for c := 0; c < 4; c++ {
				if v[c] > 0 {
					pat |= 1 << c
				}
			}
			edges := cellEdges[pat]
			if len(edges) == 0 {
				continue
			}
			corners := [4]series.Point{
				{X: x, Y: y},
				{X: x + dx, Y: y},
				{X: x + dx, Y: y + dy},
				{X: x, Y: y + dy},
			}
			seg := make(series.Polyline, 0, 2)
			for _, e := range edges {
				seg = append(seg, interpolate(corners[e[0]], corners[e[1]], v[e[0]], v[e[1]]))
			}
			out = append(out, seg)
		}
	}
	return out
}

// interpolate finds the zero of the linear model between two corners.
func interpolate(p1, p2 series.Point, v1, v2 float64) series.Point {
	t := 0.5
	if v1 != v2 {
		t = (0 - v1) / (v2 - v1)
	}
	return series.Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}
}
