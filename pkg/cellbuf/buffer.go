// Package cellbuf provides a 2D character buffer with per-cell styling,
// braille micro-pixels and run-merged Lipgloss rendering.
//
// Each cell holds either a rune or a set of braille dots, plus a StyleKey.
// At render time the caller supplies the StyleKey → lipgloss.Style map
// (usually from a Palette), so the buffer knows nothing about colors.
//
// Every cell is 2 dots wide and 4 dots tall, which gives plots a pixel
// grid of (W*2)×(H*4).
//
// Limitation: all runes are assumed to be single-width.
package cellbuf

// StyleKey identifies a visual style.
type StyleKey int

// Dot grid size of a single cell.
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// brailleBase is U+2800, the empty braille pattern.
const brailleBase = 0x2800

// dotBits maps a dot position inside a cell, [row][col], to its braille bit.
var dotBits = [DotsPerCellY][DotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell is one terminal cell. A zero Ch means the cell shows its braille
// Dots.
type Cell struct {
	Ch    rune
	Dots  uint8
	Style StyleKey
}

// Rune returns the character the cell displays.
func (c Cell) Rune() rune {
	if c.Ch != 0 {
		return c.Ch
	}
	if c.Dots == 0 {
		return ' '
	}
	return rune(brailleBase + int(c.Dots))
}

// Buffer is a 2D grid of styled cells.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]
}

// New creates a Buffer of the given size, blank in the given style.
func New(w, h int, defaultStyle StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(defaultStyle)
	return b
}

// InBounds reports whether cell (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// DotSize returns the micro-pixel dimensions of the buffer.
func (b *Buffer) DotSize() (w, h int) {
	return b.W * DotsPerCellX, b.H * DotsPerCellY
}

// Set writes a character at cell (x, y), replacing any dots.
// Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// SetStyle changes the style of cell (x, y) and keeps its content.
func (b *Buffer) SetStyle(x, y int, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x].Style = style
	}
}

// SetString writes s starting at cell (x, y), one rune per cell.
// Characters outside the buffer are skipped.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// Plot lights the micro-pixel (px, py). Cells holding text are left
// alone so labels stay readable under curves.
func (b *Buffer) Plot(px, py int, style StyleKey) {
	if px < 0 || py < 0 {
		return
	}
	x, y := px/DotsPerCellX, py/DotsPerCellY
	if !b.InBounds(x, y) {
		return
	}
	c := &b.Cells[y][x]
	if c.Ch != 0 && c.Ch != ' ' {
		return
	}
	c.Ch = 0
	c.Dots |= dotBits[py%DotsPerCellY][px%DotsPerCellX]
	c.Style = style
}

// Lit reports whether micro-pixel (px, py) is set.
func (b *Buffer) Lit(px, py int) bool {
	if px < 0 || py < 0 {
		return false
	}
	x, y := px/DotsPerCellX, py/DotsPerCellY
	if !b.InBounds(x, y) {
		return false
	}
	c := b.Cells[y][x]
	return c.Ch == 0 && c.Dots&dotBits[py%DotsPerCellY][px%DotsPerCellX] != 0
}

// Fill resets every cell to a space with the given style.
func (b *Buffer) Fill(style StyleKey) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// FillRect blanks the cells of [x0, x1)×[y0, y1) in the given style.
func (b *Buffer) FillRect(x0, y0, x1, y1 int, style StyleKey) {
	for y := max(y0, 0); y < min(y1, b.H); y++ {
		for x := max(x0, 0); x < min(x1, b.W); x++ {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// String returns the plain characters, rows joined by "\n".
func (b *Buffer) String() string {
	out := make([]rune, 0, (b.W+1)*b.H)
	for y, row := range b.Cells {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range row {
			out = append(out, c.Rune())
		}
	}
	return string(out)
}
