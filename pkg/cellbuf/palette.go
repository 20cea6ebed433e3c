package cellbuf

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette hands out a StyleKey per foreground/background pair on demand,
// so callers can draw with arbitrary "#rrggbb" colors. Colors with an
// alpha channel ("#rrggbbaa") are blended over the palette background.
//
// Key 0 is always the blank background style.
type Palette struct {
	bg     string
	keys   map[[2]string]StyleKey
	pairs  [][2]string
	styles map[StyleKey]lipgloss.Style
}

// NewPalette creates a palette over the given page background.
func NewPalette(bg string) *Palette {
	p := &Palette{
		bg:     Opaque(bg, "#000000"),
		keys:   make(map[[2]string]StyleKey),
		styles: make(map[StyleKey]lipgloss.Style),
	}
	p.KeyOn(p.bg, p.bg)
	return p
}

// Background returns the page background.
func (p *Palette) Background() string { return p.bg }

// Key returns the style for fg over the page background.
func (p *Palette) Key(fg string) StyleKey {
	return p.KeyOn(fg, p.bg)
}

// KeyOn returns the style for fg over bg, allocating it if needed.
func (p *Palette) KeyOn(fg, bg string) StyleKey {
	bg = Opaque(bg, p.bg)
	fg = Opaque(fg, bg)
	pair := [2]string{fg, bg}
	if k, ok := p.keys[pair]; ok {
		return k
	}
	k := StyleKey(len(p.pairs))
	p.keys[pair] = k
	p.pairs = append(p.pairs, pair)
	p.styles[k] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
	return k
}

// Colors returns the foreground and background behind k.
func (p *Palette) Colors(k StyleKey) (fg, bg string) {
	if int(k) < 0 || int(k) >= len(p.pairs) {
		return p.bg, p.bg
	}
	return p.pairs[k][0], p.pairs[k][1]
}

// Styles returns the map to pass to Buffer.Render.
func (p *Palette) Styles() map[StyleKey]lipgloss.Style { return p.styles }

// Opaque normalises a "#rgb", "#rrggbb" or "#rrggbbaa" color to
// "#rrggbb", blending any alpha over base. Unparseable input yields base.
func Opaque(c, base string) string {
	s := strings.TrimPrefix(strings.TrimSpace(c), "#")
	alpha := 1.0
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return base
		}
		alpha = float64(a) / 255
		s = s[:6]
	}
	fg, err := colorful.Hex("#" + s)
	if err != nil {
		return base
	}
	if alpha >= 1 {
		return fg.Hex()
	}
	under, err := colorful.Hex(base)
	if err != nil {
		return fg.Hex()
	}
	return under.BlendRgb(fg, alpha).Hex()
}
