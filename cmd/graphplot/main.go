// graphplot: terminal function plotter.
//
// Interactive:  go run ./cmd/graphplot -config graph.json
// Headless:     go run ./cmd/graphplot -expr 'sin(x)' -expr 'x^2/4' -png out.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/gogpu/gg"

	"github.com/wesen/graphplot/internal/graphcfg"
	"github.com/wesen/graphplot/internal/plotui"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/pngsurface"
)

type exprList []string

func (l *exprList) String() string     { return strings.Join(*l, ", ") }
func (l *exprList) Set(s string) error { *l = append(*l, s); return nil }

func main() {
	var (
		configPath = flag.String("config", "graph.json", "graph document to load and save")
		pngPath    = flag.String("png", "", "render to this PNG file and exit")
		width      = flag.Int("width", 800, "PNG width in logical pixels")
		height     = flag.Int("height", 600, "PNG height in logical pixels")
		scale      = flag.Float64("scale", 2, "PNG device pixel ratio")
		logPath    = flag.String("log", "", "write logs to this file")
		verbose    = flag.Bool("v", false, "debug logging")
		exprs      exprList
	)
	flag.Var(&exprs, "expr", "cartesian series y = f(x); repeatable")
	flag.Parse()

	if err := run(*configPath, *pngPath, *logPath, *width, *height, *scale, *verbose, exprs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, pngPath, logPath string, width, height int, scale float64, verbose bool, exprs []string) error {
	closeLog, err := setupLogging(logPath, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(configPath, exprs)
	if err != nil {
		return err
	}

	if pngPath != "" {
		return renderPNG(cfg, pngPath, width, height, scale)
	}

	m := plotui.New(cfg, plotui.Options{
		ConfigPath: configPath,
		PNGPath:    "graph.png",
		PNGWidth:   width,
		PNGHeight:  height,
		PNGScale:   scale,
	})
	_, err = tea.NewProgram(m).Run()
	return err
}

// renderPNG draws cfg to path. A compile error still produces an image,
// grid and axes under the error overlay, and is then returned.
func renderPNG(cfg *graphcfg.Config, path string, width, height int, scale float64) error {
	p := plot.New(float64(width), float64(height))
	w := cfg.Window()
	p.SetDomain(w.XMin, w.XMax)
	p.SetYRange(w.YMin, w.YMax)

	defs, buildErr := graphcfg.Build(cfg)
	var errMsg string
	if buildErr != nil {
		errMsg = buildErr.Error()
	} else {
		p.SetSeries(defs)
	}
	if err := pngsurface.Export(p, errMsg, path, width, height, scale); err != nil {
		return errors.Join(buildErr, err)
	}
	return buildErr
}

// loadConfig reads path when it exists. -expr series replace the loaded
// ones.
func loadConfig(path string, exprs []string) (*graphcfg.Config, error) {
	cfg, err := graphcfg.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		cfg = graphcfg.Default()
	default:
		return nil, err
	}
	if len(exprs) > 0 {
		cfg.Series = nil
		for _, e := range exprs {
			cfg.AddSeries().Expr = e
		}
	}
	return cfg, nil
}

// setupLogging sends plot and gg logs to path. Without a path logging
// stays silent so the TUI owns the terminal.
func setupLogging(path string, verbose bool) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	plot.SetLogger(l)
	gg.SetLogger(l)
	return func() { _ = f.Close() }, nil
}
