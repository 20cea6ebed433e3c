// Package calc implements the calculator: definite integrals, finite sums
// over an integer index and point derivatives of a user expression.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wesen/graphplot/internal/expr"
	"github.com/wesen/graphplot/pkg/series"
)

const (
	// IntegralSteps is the Simpson subdivision count.
	IntegralSteps = 1000
	// DiffStep is the central-difference step for point derivatives.
	DiffStep = 1e-6
	// MaxSumTerms caps the number of terms a sum may add.
	MaxSumTerms = 1_000_000
)

// ErrInvalidInput is returned for missing expressions, non-finite bounds
// or a reversed summation range.
var ErrInvalidInput = errors.New("calc: invalid input")

// Op selects the calculation.
type Op int

const (
	OpIntegral Op = iota
	OpSum
	OpDerivative
)

var opNames = [...]string{"integral", "sum", "derivative"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Next cycles through the operations.
func (o Op) Next() Op { return (o + 1) % Op(len(opNames)) }

// Request is one calculator input as typed by the user. B is unused for
// derivatives.
type Request struct {
	Op   Op
	Expr string
	A, B string
}

// Result is the outcome of Run.
type Result struct {
	Request
	Value float64
}

// String renders the result the way the panel shows it.
func (r Result) String() string {
	e := strings.TrimSpace(r.Expr)
	switch r.Op {
	case OpIntegral:
		return fmt.Sprintf("∫[%s, %s] %s dx = %.6f", r.A, r.B, e, r.Value)
	case OpSum:
		return fmt.Sprintf("Σ k=%s..%s %s = %.6f", r.A, r.B, e, r.Value)
	default:
		return fmt.Sprintf("d/dx %s at x=%s = %.6f", e, r.A, r.Value)
	}
}

// Run parses the bounds, compiles the expression with vars bound and
// performs the requested operation. Sums use k as their index variable.
func Run(req Request, vars map[string]float64) (Result, error) {
	res := Result{Request: req}
	if strings.TrimSpace(req.Expr) == "" {
		return res, ErrInvalidInput
	}
	a, err := parseBound(req.A)
	if err != nil {
		return res, err
	}
	var b float64
	if req.Op != OpDerivative {
		if b, err = parseBound(req.B); err != nil {
			return res, err
		}
	}

	params := expr.CartesianParams
	if req.Op == OpSum {
		params = expr.SumParams
	}
	e, err := expr.Compile(req.Expr, params, vars)
	if err != nil {
		return res, err
	}

	switch req.Op {
	case OpIntegral:
		res.Value, err = Integrate(e.Eval1, a, b, IntegralSteps)
	case OpSum:
		res.Value, err = Sum(e.Eval1, a, b)
	case OpDerivative:
		res.Value, err = Derivative(e.Eval1, a, DiffStep)
	default:
		err = fmt.Errorf("calc: unknown op %v", req.Op)
	}
	return res, err
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !series.Finite(v) {
		return 0, fmt.Errorf("%w: bound %q", ErrInvalidInput, s)
	}
	return v, nil
}

// Integrate applies Simpson's rule with n subintervals, rounded up to an
// even count.
func Integrate(f series.Func1, a, b float64, n int) (float64, error) {
	if n < 2 {
		n = 2
	}
	if n%2 != 0 {
		n++
	}
	h := (b - a) / float64(n)
	fa, err := f(a)
	if err != nil {
		return math.NaN(), err
	}
	fb, err := f(b)
	if err != nil {
		return math.NaN(), err
	}
	sum := fa + fb
	for i := 1; i < n; i++ {
		v, err := f(a + float64(i)*h)
		if err != nil {
			return math.NaN(), err
		}
		w := 4.0
		if i%2 == 0 {
			w = 2
		}
		sum += w * v
	}
	return h / 3 * sum, nil
}

// Sum adds f(k) for integer k from floor(start) to floor(end) inclusive.
// Ranges of more than MaxSumTerms terms are rejected.
func Sum(f series.Func1, start, end float64) (float64, error) {
	if start > end {
		return math.NaN(), fmt.Errorf("%w: start %g > end %g", ErrInvalidInput, start, end)
	}
	lo := math.Floor(start)
	terms := math.Floor(end) - lo + 1
	if !(terms <= MaxSumTerms) {
		return math.NaN(), fmt.Errorf("%w: %g terms, at most %d", ErrInvalidInput, terms, MaxSumTerms)
	}
	var sum float64
	for i := int64(0); i < int64(terms); i++ {
		v, err := f(lo + float64(i))
		if err != nil {
			return math.NaN(), err
		}
		sum += v
	}
	return sum, nil
}

// Derivative is the central difference of f at x with step h.
func Derivative(f series.Func1, x, h float64) (float64, error) {
	hi, err := f(x + h)
	if err != nil {
		return math.NaN(), err
	}
	lo, err := f(x - h)
	if err != nil {
		return math.NaN(), err
	}
	return (hi - lo) / (2 * h), nil
}
