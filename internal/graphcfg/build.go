package graphcfg

import (
	"errors"
	"fmt"

	"github.com/wesen/graphplot/internal/expr"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/series"
)

// DerivativeStep is the central-difference step of derivative series.
const DerivativeStep = 1e-4

// Build compiles every visible series with the current variable values.
// A series with the derivative flag contributes a second, derived
// cartesian series right after it. Build stops at the first series that
// fails to compile.
func Build(c *Config) ([]series.Definition, error) {
	vars := c.Vars()
	var defs []series.Definition
	for _, s := range c.Series {
		if !s.Visible {
			continue
		}
		kind, ok := series.ParseKind(s.Type)
		if !ok {
			return nil, fmt.Errorf("%s: unknown series type %q", label(s), s.Type)
		}
		meta := series.Meta{Label: s.Name, Expr: s.Expr, Color: s.Color, Visible: true}

		params := expr.CartesianParams
		switch kind {
		case series.KindPolar:
			params = expr.PolarParams
		case series.KindRelation:
			params = expr.RelationParams
		}
		e, err := expr.Compile(s.Expr, params, vars)
		if err != nil {
			var ce *expr.CompileError
			if errors.As(err, &ce) {
				ce.Label = s.Name
			} else {
				err = fmt.Errorf("%s: %w", label(s), err)
			}
			plot.Logger().Warn("graphcfg: compile failed", "series", s.ID, "err", err)
			return nil, err
		}

		switch kind {
		case series.KindCartesian:
			defs = append(defs, series.Cartesian{Meta: meta, F: e.Eval1})
			if s.Derivative {
				defs = append(defs, series.Cartesian{
					Meta: series.Meta{
						Label:   label(s) + "'",
						Expr:    "d/dx " + s.Expr,
						Color:   s.Color,
						Visible: true,
					},
					F: series.Derivative(e.Eval1, DerivativeStep),
				})
			}
		case series.KindPolar:
			defs = append(defs, series.Polar{Meta: meta, R: e.Eval1})
		case series.KindRelation:
			defs = append(defs, series.Relation{Meta: meta, F: e.Eval2})
		}
	}
	return defs, nil
}

func label(s Series) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Expr
}
