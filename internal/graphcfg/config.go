// Package graphcfg holds the saved graph document: the window, the series
// list and the variables, plus the step that compiles it into plottable
// series definitions.
package graphcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/viewport"
)

// ErrNoSeries is returned when a document has no series list.
var ErrNoSeries = errors.New("graphcfg: document has no series")

// Defaults applied by Normalize and the JSON decoders.
const (
	DefaultExpr    = "sin(x)"
	DefaultVarMin  = -10
	DefaultVarMax  = 10
	DefaultVarStep = 0.1
	DefaultVarVal  = 1
)

// Series is one plotted expression.
type Series struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Expr       string `json:"expr"`
	Visible    bool   `json:"visible"`
	Color      string `json:"color"`
	Derivative bool   `json:"derivative"`
}

// UnmarshalJSON treats a missing "visible" as true.
func (s *Series) UnmarshalJSON(b []byte) error {
	type plain Series
	p := plain{Visible: true}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Series(p)
	return nil
}

// Variable is a named scalar bound into every expression.
type Variable struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// UnmarshalJSON fills missing numeric fields with the defaults.
func (v *Variable) UnmarshalJSON(b []byte) error {
	type plain Variable
	p := plain{Value: DefaultVarVal, Min: DefaultVarMin, Max: DefaultVarMax, Step: DefaultVarStep}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = Variable(p)
	return nil
}

// Nudge moves the value by n steps, clamped to [Min, Max].
func (v *Variable) Nudge(n int) {
	v.Value = min(v.Max, max(v.Min, v.Value+float64(n)*v.Step))
}

// Config is the whole document.
type Config struct {
	XMin      float64    `json:"xMin"`
	XMax      float64    `json:"xMax"`
	YMin      float64    `json:"yMin"`
	YMax      float64    `json:"yMax"`
	Series    []Series   `json:"series"`
	Variables []Variable `json:"variables"`
}

// UnmarshalJSON fills a missing window with the default one.
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	w := viewport.DefaultWindow
	p := plain{XMin: w.XMin, XMax: w.XMax, YMin: w.YMin, YMax: w.YMax}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// Default is the document a fresh session starts with: one sin(x) series
// over the default window.
func Default() *Config {
	w := viewport.DefaultWindow
	c := &Config{XMin: w.XMin, XMax: w.XMax, YMin: w.YMin, YMax: w.YMax}
	c.AddSeries()
	return c
}

// Window returns the stored window.
func (c *Config) Window() viewport.Window {
	return viewport.Window{XMin: c.XMin, XMax: c.XMax, YMin: c.YMin, YMax: c.YMax}
}

// SetWindow stores w.
func (c *Config) SetWindow(w viewport.Window) {
	c.XMin, c.XMax, c.YMin, c.YMax = w.XMin, w.XMax, w.YMin, w.YMax
}

// AddSeries appends a default series colored by its position.
func (c *Config) AddSeries() *Series {
	c.Series = append(c.Series, Series{
		ID:      c.nextID("s", len(c.Series)),
		Type:    "cartesian",
		Expr:    DefaultExpr,
		Visible: true,
		Color:   render.PaletteColor(len(c.Series)),
	})
	return &c.Series[len(c.Series)-1]
}

// AddVariable appends a variable named after the first free letter from
// a to z.
func (c *Config) AddVariable() *Variable {
	name := ""
	for r := 'a'; r <= 'z'; r++ {
		if r == 'e' || r == 'x' || r == 'y' || r == 'k' || r == 't' {
			continue
		}
		if c.variable(string(r)) == nil {
			name = string(r)
			break
		}
	}
	c.Variables = append(c.Variables, Variable{
		ID:    c.nextID("v", len(c.Variables)),
		Name:  name,
		Value: DefaultVarVal,
		Min:   DefaultVarMin,
		Max:   DefaultVarMax,
		Step:  DefaultVarStep,
	})
	return &c.Variables[len(c.Variables)-1]
}

func (c *Config) variable(name string) *Variable {
	for i := range c.Variables {
		if c.Variables[i].Name == name {
			return &c.Variables[i]
		}
	}
	return nil
}

// nextID returns prefix+n for the smallest n >= start not yet used.
func (c *Config) nextID(prefix string, start int) string {
	used := make(map[string]bool, len(c.Series)+len(c.Variables))
	for _, s := range c.Series {
		used[s.ID] = true
	}
	for _, v := range c.Variables {
		used[v.ID] = true
	}
	for n := start + 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if !used[id] {
			return id
		}
	}
}

// Vars returns the named variables as a binding map. Unnamed variables
// are skipped.
func (c *Config) Vars() map[string]float64 {
	out := make(map[string]float64, len(c.Variables))
	for _, v := range c.Variables {
		if v.Name != "" {
			out[v.Name] = v.Value
		}
	}
	return out
}

// Normalize fills missing fields and repairs inconsistent ones in place.
func (c *Config) Normalize() {
	w := c.Window()
	w.XMin, w.XMax = viewport.Normalize(w.XMin, w.XMax)
	w.YMin, w.YMax = viewport.Normalize(w.YMin, w.YMax)
	c.SetWindow(w)

	for i := range c.Series {
		s := &c.Series[i]
		if s.ID == "" {
			s.ID = c.nextID("s", i)
		}
		if s.Type == "" {
			s.Type = "cartesian"
		}
		if s.Expr == "" {
			s.Expr = DefaultExpr
		}
		if s.Color == "" {
			s.Color = render.PaletteColor(i)
		}
	}
	for i := range c.Variables {
		v := &c.Variables[i]
		if v.ID == "" {
			v.ID = c.nextID("v", i)
		}
		if v.Min > v.Max {
			v.Min, v.Max = v.Max, v.Min
		}
		if !(v.Step > 0) {
			v.Step = DefaultVarStep
		}
		v.Value = min(v.Max, max(v.Min, v.Value))
	}
}

// Decode reads a JSON document and normalizes it.
func Decode(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("graphcfg: decode: %w", err)
	}
	if c.Series == nil {
		return nil, ErrNoSeries
	}
	c.Normalize()
	return &c, nil
}

// Encode writes c as indented JSON.
func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Load reads the document at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphcfg: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes the document to path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphcfg: %w", err)
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("graphcfg: encode %s: %w", path, err)
	}
	return f.Close()
}
