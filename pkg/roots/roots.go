// Package roots finds axis intercepts and pairwise intersections of
// cartesian series inside the current view.
package roots

import (
	"math"

	"github.com/wesen/graphplot/pkg/series"
	"github.com/wesen/graphplot/pkg/viewport"
)

const (
	// BisectIters bounds refinement of a bracketed intersection.
	BisectIters = 20
	// BisectTol ends refinement early once |g(mid)| drops below it.
	BisectTol = 1e-9
	// DedupePx merges markers closer than this on screen.
	DedupePx = 6
)

// InterceptKind says which axis an intercept lies on.
type InterceptKind int

const (
	XIntercept InterceptKind = iota
	YIntercept
)

func (k InterceptKind) String() string {
	if k == YIntercept {
		return "y-intercept"
	}
	return "x-intercept"
}

// Intercept is a point where a series meets an axis.
type Intercept struct {
	SeriesIndex int
	Kind        InterceptKind
	X, Y        float64
	Color       string
}

// Intersection is a point shared by two cartesian series.
type Intersection struct {
	SeriesA, SeriesB int
	X, Y             float64
	LabelA, LabelB   string
	Color            string
}

// InterceptScanCount is the number of sub-intervals scanned for
// x-intercepts.
func InterceptScanCount(budget int) int {
	return max(120, budget/5)
}

// IntersectionScanCount is the number of sub-intervals scanned for sign
// changes of f1 - f2.
func IntersectionScanCount(budget int) int {
	return min(400, max(120, budget/3))
}

type cartesian struct {
	index int
	def   series.Cartesian
}

func visibleCartesian(defs []series.Definition) []cartesian {
	var out []cartesian
	for i, d := range defs {
		c, ok := d.(series.Cartesian)
		if !ok || !c.Visible || c.F == nil {
			continue
		}
		out = append(out, cartesian{index: i, def: c})
	}
	return out
}

// Intercepts scans every visible cartesian series for x-intercepts and,
// when x = 0 is inside the window, its y-intercept. Results are grouped
// by series in definition order.
func Intercepts(defs []series.Definition, v *viewport.View, budget int) []Intercept {
	win := v.Window()
	n := InterceptScanCount(budget)
	var out []Intercept
	for _, c := range visibleCartesian(defs) {
		var xs []Intercept
		add := func(x float64) {
			xs = append(xs, Intercept{SeriesIndex: c.index, Kind: XIntercept, X: x, Color: c.def.Color})
		}

		prevX := win.XMin
		prevY, prevOK := series.Eval1(c.def.F, prevX)
		if prevOK && prevY == 0 {
			add(prevX)
		}
		for j := 1; j <= n; j++ {
			x := win.XMin + float64(j)/float64(n)*win.XSpan()
			y, ok := series.Eval1(c.def.F, x)
			if prevOK && ok {
				switch {
				case prevY == 0 && y == 0:
					add(prevX + 0.5*(x-prevX))
				case prevY*y < 0:
					t := (0 - prevY) / (y - prevY)
					add(prevX + t*(x-prevX))
				case y == 0:
					add(x)
				}
			}
			prevX, prevY, prevOK = x, y, ok
		}
		out = append(out, Dedupe(xs, v, DedupePx, interceptPos)...)

		if win.ContainsX(0) {
			if y, ok := series.Eval1(c.def.F, 0); ok && win.ContainsY(y) {
				out = append(out, Intercept{SeriesIndex: c.index, Kind: YIntercept, X: 0, Y: y, Color: c.def.Color})
			}
		}
	}
	return out
}

// Intersections finds crossings of every unordered pair of visible
// cartesian series. Candidates are bracketed by a sign change of f1 - f2,
// refined by bisection and kept only if they land inside the window.
func Intersections(defs []series.Definition, v *viewport.View, budget int) []Intersection {
	win := v.Window()
	n := IntersectionScanCount(budget)
	step := win.XSpan() / float64(n)
	vis := visibleCartesian(defs)

	var out []Intersection
	for a := 0; a < len(vis); a++ {
		for b := a + 1; b < len(vis); b++ {
			s1, s2 := vis[a], vis[b]
			g := difference(s1.def.F, s2.def.F)
			prevX := win.XMin
			prevG, prevOK := series.Eval1(g, prevX)
			for i := 1; i <= n; i++ {
				x := win.XMin + float64(i)*step
				gx, ok := series.Eval1(g, x)
				if prevOK && ok && prevG*gx <= 0 {
					if xr, found := Bisect(g, prevX, x, BisectIters); found && win.ContainsX(xr) {
						if y, yok := series.Eval1(s1.def.F, xr); yok && win.ContainsY(y) {
							out = append(out, Intersection{
								SeriesA: s1.index,
								SeriesB: s2.index,
								X:       xr,
								Y:       y,
								LabelA:  label(s1.def.Meta),
								LabelB:  label(s2.def.Meta),
								Color:   s1.def.Color,
							})
						}
					}
				}
				prevX, prevG, prevOK = x, gx, ok
			}
		}
	}
	return Dedupe(out, v, DedupePx, intersectionPos)
}

func label(m series.Meta) string {
	if m.Expr != "" {
		return m.Expr
	}
	return m.Label
}

func difference(f1, f2 series.Func1) series.Func1 {
	return func(x float64) (float64, error) {
		a, ok := series.Eval1(f1, x)
		if !ok {
			return math.NaN(), nil
		}
		b, ok := series.Eval1(f2, x)
		if !ok {
			return math.NaN(), nil
		}
		return a - b, nil
	}
}

// Bisect refines a root of g bracketed by [a, b]. Exact-zero endpoints
// are returned as is. It reports false when an endpoint or midpoint fails
// to evaluate or the interval does not bracket a sign change.
func Bisect(g series.Func1, a, b float64, iters int) (float64, bool) {
	fa, ok := series.Eval1(g, a)
	if !ok {
		return 0, false
	}
	fb, ok := series.Eval1(g, b)
	if !ok {
		return 0, false
	}
	if fa == 0 {
		return a, true
	}
	if fb == 0 {
		return b, true
	}
	if fa*fb > 0 {
		return 0, false
	}
	lo, hi, flo := a, b, fa
	for k := 0; k < iters; k++ {
		mid := 0.5 * (lo + hi)
		fm, ok := series.Eval1(g, mid)
		if !ok {
			return 0, false
		}
		if math.Abs(fm) < BisectTol {
			return mid, true
		}
		if flo*fm <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return 0.5 * (lo + hi), true
}

func interceptPos(p Intercept) (float64, float64)       { return p.X, p.Y }
func intersectionPos(p Intersection) (float64, float64) { return p.X, p.Y }

// Dedupe drops items whose screen position is closer than threshPx to an
// item already kept. The first of a cluster wins.
func Dedupe[T any](items []T, v *viewport.View, threshPx float64, pos func(T) (float64, float64)) []T {
	if len(items) < 2 {
		return items
	}
	type kept struct{ sx, sy float64 }
	var seen []kept
	out := items[:0:0]
	for _, it := range items {
		x, y := pos(it)
		sx, sy := v.WorldToScreen(x, y)
		dup := false
		for _, k := range seen {
			if math.Hypot(sx-k.sx, sy-k.sy) < threshPx {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, kept{sx, sy})
		out = append(out, it)
	}
	return out
}
