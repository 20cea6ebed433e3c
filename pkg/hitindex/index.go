// Package hitindex provides a generic, insertion-ordered set of screen
// markers with nearest-within-radius queries.
package hitindex

import (
	"image"
	"math"
)

// Locatable is anything with a screen position in pixels.
type Locatable interface {
	ScreenPos() (x, y float64)
}

// Entry wraps a user-supplied value with an integer ID.
type Entry[T Locatable] struct {
	ID   int
	Data T
}

// Index keeps entries in insertion order. Queries scan linearly, which
// is plenty for the tens of markers a frame produces.
type Index[T Locatable] struct {
	entries []Entry[T]
	nextID  int
}

// New creates an empty index.
func New[T Locatable]() *Index[T] {
	return &Index[T]{}
}

// Add inserts a value and returns its assigned ID.
func (ix *Index[T]) Add(data T) int {
	id := ix.nextID
	ix.nextID++
	ix.entries = append(ix.entries, Entry[T]{ID: id, Data: data})
	return id
}

// Len returns the number of entries.
func (ix *Index[T]) Len() int { return len(ix.entries) }

// Entries returns all entries in insertion order.
func (ix *Index[T]) Entries() []Entry[T] { return ix.entries }

// Reset empties the index. IDs keep counting up.
func (ix *Index[T]) Reset() { ix.entries = ix.entries[:0] }

// Nearest returns the entry closest to (x, y) whose distance is at most
// threshold. On equal distances the earliest inserted entry wins.
func (ix *Index[T]) Nearest(x, y, threshold float64) (Entry[T], float64, bool) {
	var best Entry[T]
	bestDist := math.Inf(1)
	found := false
	for _, e := range ix.entries {
		ex, ey := e.Data.ScreenPos()
		d := math.Hypot(ex-x, ey-y)
		if d > threshold {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = e, d, true
		}
	}
	return best, bestDist, found
}

// InRect returns the entries whose position falls inside r, in insertion
// order. Positions are truncated to integer pixels.
func (ix *Index[T]) InRect(r image.Rectangle) []Entry[T] {
	var out []Entry[T]
	for _, e := range ix.entries {
		x, y := e.Data.ScreenPos()
		if image.Pt(int(math.Floor(x)), int(math.Floor(y))).In(r) {
			out = append(out, e)
		}
	}
	return out
}
