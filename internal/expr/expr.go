// Package expr compiles the user's math expressions into callable
// functions using Goja (JS runtime).
//
// The accepted language is JavaScript expression syntax with a few
// calculator conveniences: ^ is exponentiation, Math members are in scope
// without a prefix (sin, sqrt, PI, ...), and pi, e, ln, log10, sec, csc and
// cot are predefined. User variables shadow those names; the bound
// parameters shadow everything.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dop251/goja"
)

var (
	// ErrEmpty is returned when the source is blank.
	ErrEmpty = errors.New("expr: empty expression")
	// ErrTimeout is returned when one evaluation runs past EvalTimeout.
	ErrTimeout = errors.New("expr: evaluation timed out")
)

// EvalTimeout bounds every call into the runtime, including the
// compile-time probe.
var EvalTimeout = 250 * time.Millisecond

// Parameter lists for the series kinds.
var (
	CartesianParams = []string{"x"}
	PolarParams     = []string{"theta"}
	RelationParams  = []string{"x", "y"}
	SumParams       = []string{"k"}
)

// aliases are extra names bound to the same argument slot.
var aliases = map[string][]string{
	"theta": {"θ", "t", "x"},
}

const helpers = `({
	pi: Math.PI,
	e: Math.E,
	ln: Math.log,
	sec: function (v) { return 1 / Math.cos(v); },
	csc: function (v) { return 1 / Math.sin(v); },
	cot: function (v) { return 1 / Math.tan(v); }
})`

// CompileError reports an expression that failed to parse or refers to an
// unknown name.
type CompileError struct {
	Label  string
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	name := e.Label
	if name == "" {
		name = e.Source
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Expression is a compiled function of its parameters. It owns a Goja
// runtime and must not be shared between goroutines.
type Expression struct {
	src    string
	params []string
	rt     *goja.Runtime
	fn     goja.Callable
	slots  [][]int // argument positions per parameter
	args   []goja.Value
	// stalled is set after a timeout; later calls fail without running.
	stalled bool
}

// Compile builds an expression over params with vars bound as constants.
// The body is probed once with every parameter set to 0.5 so that
// references to undefined names are reported here rather than per point.
func Compile(src string, params []string, vars map[string]float64) (*Expression, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}

	rt := goja.New()
	env := rt.NewObject()
	for name, v := range vars {
		if name == "" {
			continue
		}
		if err := env.Set(name, v); err != nil {
			return nil, &CompileError{Source: src, Err: err}
		}
	}
	if err := rt.Set("$env", env); err != nil {
		return nil, &CompileError{Source: src, Err: err}
	}

	var names []string
	slots := make([][]int, len(params))
	for i, p := range params {
		slots[i] = append(slots[i], len(names))
		names = append(names, p)
		for _, a := range aliases[p] {
			slots[i] = append(slots[i], len(names))
			names = append(names, a)
		}
	}

	code := fmt.Sprintf(
		"(function () { with (Math) { with (%s) { with ($env) { return function (%s) { return (%s); }; } } } })()",
		helpers, strings.Join(names, ", "), Translate(src))
	v, err := guard(rt, func() (goja.Value, error) { return rt.RunString(code) })
	if err != nil {
		return nil, &CompileError{Source: src, Err: cleanError(err)}
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, &CompileError{Source: src, Err: errors.New("not a function")}
	}

	e := &Expression{
		src:    src,
		params: params,
		rt:     rt,
		fn:     fn,
		slots:  slots,
		args:   make([]goja.Value, len(names)),
	}

	probe := make([]float64, len(params))
	for i := range probe {
		probe[i] = 0.5
	}
	if _, err := e.Eval(probe...); err != nil && (isReferenceError(err) || errors.Is(err, ErrTimeout)) {
		return nil, &CompileError{Source: src, Err: err}
	}
	return e, nil
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string { return e.src }

// Params returns the parameter names in argument order.
func (e *Expression) Params() []string { return e.params }

// Eval evaluates the expression. Values that are not numbers come back
// as NaN; a thrown JS error is returned. Once a call has run past
// EvalTimeout every later call returns ErrTimeout at once.
func (e *Expression) Eval(args ...float64) (float64, error) {
	if len(args) != len(e.slots) {
		return math.NaN(), fmt.Errorf("expr: got %d arguments, want %d", len(args), len(e.slots))
	}
	if e.stalled {
		return math.NaN(), ErrTimeout
	}
	for i, positions := range e.slots {
		v := e.rt.ToValue(args[i])
		for _, p := range positions {
			e.args[p] = v
		}
	}
	res, err := guard(e.rt, func() (goja.Value, error) { return e.fn(goja.Undefined(), e.args...) })
	if err != nil {
		err = cleanError(err)
		e.stalled = errors.Is(err, ErrTimeout)
		return math.NaN(), err
	}
	return res.ToFloat(), nil
}

// Eval1 evaluates a one-parameter expression.
func (e *Expression) Eval1(x float64) (float64, error) { return e.Eval(x) }

// Eval2 evaluates a two-parameter expression.
func (e *Expression) Eval2(x, y float64) (float64, error) { return e.Eval(x, y) }

// guard runs f with the runtime interrupted after EvalTimeout. The
// interrupt is cleared before returning so the next call starts clean.
func guard(rt *goja.Runtime, f func() (goja.Value, error)) (goja.Value, error) {
	fired := make(chan struct{})
	t := time.AfterFunc(EvalTimeout, func() {
		rt.Interrupt(ErrTimeout)
		close(fired)
	})
	v, err := f()
	if !t.Stop() {
		<-fired
	}
	rt.ClearInterrupt()
	return v, err
}

func isReferenceError(err error) bool {
	return strings.Contains(err.Error(), "ReferenceError")
}

// cleanError strips Goja's stack suffix from exceptions and maps an
// interrupt to ErrTimeout.
func cleanError(err error) error {
	var ie *goja.InterruptedError
	if errors.As(err, &ie) {
		return ErrTimeout
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return errors.New(exc.Value().String())
	}
	return err
}
