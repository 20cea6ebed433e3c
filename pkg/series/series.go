// Package series defines the plottable series variants and the safe
// evaluation helpers every numeric consumer goes through.
package series

import (
	"fmt"
	"math"
)

// Kind discriminates the Definition variants.
type Kind int

const (
	KindCartesian Kind = iota
	KindPolar
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindCartesian:
		return "cartesian"
	case KindPolar:
		return "polar"
	case KindRelation:
		return "relation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the config spelling of a kind back to the constant.
// Unknown names report false.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "cartesian", "":
		return KindCartesian, true
	case "polar":
		return KindPolar, true
	case "relation", "implicit":
		return KindRelation, true
	}
	return KindCartesian, false
}

// Meta is the presentation data shared by all variants.
type Meta struct {
	Label   string
	Expr    string // source text, shown in tooltips
	Color   string // "#rrggbb"
	Visible bool
}

// Func1 is a one-argument function that may fail per point.
type Func1 func(float64) (float64, error)

// Func2 is a two-argument function that may fail per point.
type Func2 func(x, y float64) (float64, error)

// Definition is a sealed union over Cartesian, Polar and Relation.
type Definition interface {
	Kind() Kind
	Info() Meta
	sealed()
}

// Cartesian is y = F(x).
type Cartesian struct {
	Meta
	F Func1
}

// Polar is r = R(theta).
type Polar struct {
	Meta
	R Func1
}

// Relation is the zero set F(x, y) = 0.
type Relation struct {
	Meta
	F Func2
}

func (Cartesian) Kind() Kind { return KindCartesian }
func (Polar) Kind() Kind     { return KindPolar }
func (Relation) Kind() Kind  { return KindRelation }

func (c Cartesian) Info() Meta { return c.Meta }
func (p Polar) Info() Meta     { return p.Meta }
func (r Relation) Info() Meta  { return r.Meta }

func (Cartesian) sealed() {}
func (Polar) sealed()     {}
func (Relation) sealed()  {}

// Point is a world-space coordinate.
type Point struct{ X, Y float64 }

// Polyline is one continuous traced curve.
type Polyline []Point

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Eval1 evaluates f at x. Errors, panics and non-finite results all
// collapse to (NaN, false).
func Eval1(f Func1, x float64) (v float64, ok bool) {
	if f == nil {
		return math.NaN(), false
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = math.NaN(), false
		}
	}()
	y, err := f(x)
	if err != nil || !Finite(y) {
		return math.NaN(), false
	}
	return y, true
}

// Eval2 is Eval1 for two-argument functions.
func Eval2(f Func2, x, y float64) (v float64, ok bool) {
	if f == nil {
		return math.NaN(), false
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = math.NaN(), false
		}
	}()
	z, err := f(x, y)
	if err != nil || !Finite(z) {
		return math.NaN(), false
	}
	return z, true
}

// Derivative returns the central difference of f with step h.
func Derivative(f Func1, h float64) Func1 {
	return func(x float64) (float64, error) {
		a, ok := Eval1(f, x+h)
		if !ok {
			return math.NaN(), nil
		}
		b, ok := Eval1(f, x-h)
		if !ok {
			return math.NaN(), nil
		}
		return (a - b) / (2 * h), nil
	}
}
