// Package grid holds the scratch occupancy state used during a migration run.
// Trackers are rebuilt fresh for each run from the destination's already
// placed items and discarded afterwards; they own nothing but booleans.
package grid

import "github.com/pcranston/gridshift/internal/domain"

// Occupancy is a W x H boolean grid for one workspace screen.
type Occupancy struct {
	width  int
	height int
	cells  [][]bool
}

// NewOccupancy returns an empty tracker of the given dimensions.
func NewOccupancy(width, height int) *Occupancy {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
	}
	return &Occupancy{width: width, height: height, cells: cells}
}

// IsRegionVacant reports whether the rectangle [x, x+w) x [y, y+h) lies fully
// within bounds and contains no marked cell.
func (o *Occupancy) IsRegionVacant(x, y, w, h int) bool {
	if x < 0 || y < 0 || x+w > o.width || y+h > o.height {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if o.cells[cy][cx] {
				return false
			}
		}
	}
	return true
}

// MarkRegion sets or clears every cell of the rectangle, clamped to bounds.
func (o *Occupancy) MarkRegion(x, y, w, h int, value bool) {
	for cy := max(y, 0); cy < min(y+h, o.height); cy++ {
		for cx := max(x, 0); cx < min(x+w, o.width); cx++ {
			o.cells[cy][cx] = value
		}
	}
}

// MarkItem marks the item's current rectangle.
func (o *Occupancy) MarkItem(it *domain.Item, value bool) {
	o.MarkRegion(it.CellX, it.CellY, it.SpanX, it.SpanY, value)
}

// Strip is a flat boolean occupancy array for the hotseat.
type Strip struct {
	cells []bool
}

// NewStrip returns an empty strip of the given capacity.
func NewStrip(capacity int) *Strip {
	return &Strip{cells: make([]bool, capacity)}
}

// Len returns the strip capacity.
func (s *Strip) Len() int {
	return len(s.cells)
}

// IsSlotFree reports whether slot i is within bounds and unmarked.
func (s *Strip) IsSlotFree(i int) bool {
	return i >= 0 && i < len(s.cells) && !s.cells[i]
}

// MarkSlot sets or clears slot i. Out-of-range slots are ignored so that
// items carried over from a larger hotseat cannot panic the run.
func (s *Strip) MarkSlot(i int, value bool) {
	if i >= 0 && i < len(s.cells) {
		s.cells[i] = value
	}
}
