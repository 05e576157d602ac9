package migrate

import (
	"github.com/charmbracelet/log"

	"github.com/pcranston/gridshift/internal/domain"
	"github.com/pcranston/gridshift/internal/grid"
)

// Writer persists a single placement. Implementations must only update
// position and span fields plus a fresh storage id, never structural identity.
type Writer interface {
	PersistPlacement(it *domain.Item) (int64, error)
}

// workspaceSolver packs surplus items onto one destination screen. Each
// instance is used exactly once; only the surplus list it is handed is shared
// across screens.
type workspaceSolver struct {
	screen       int
	columns      int
	rows         int
	occupied     *grid.Occupancy
	matchingOnly bool
	logger       *log.Logger

	// scan cursor, memoized across items so exhausted rows are never
	// rescanned within a screen
	nextX int
	nextY int
}

func newWorkspaceSolver(screen, columns, rows int, seeded []*domain.Item,
	reserveFirstCell, matchingOnly bool, logger *log.Logger) *workspaceSolver {
	s := &workspaceSolver{
		screen:       screen,
		columns:      columns,
		rows:         rows,
		occupied:     grid.NewOccupancy(columns, rows),
		matchingOnly: matchingOnly,
		logger:       logger,
	}
	if screen == 0 && reserveFirstCell {
		// the first row of screen 0 hosts the fixed overlay
		s.nextY = 1
	}
	for _, it := range seeded {
		s.occupied.MarkItem(it, true)
	}
	return s
}

// placeAll walks the surplus in its current order, placing and persisting
// what fits on this screen. It returns the unplaced remainder in the same
// order; items whose minimum span can never fit this grid size are discarded
// from it permanently.
func (s *workspaceSolver) placeAll(surplus []*domain.Item, w Writer) ([]*domain.Item, error) {
	remaining := make([]*domain.Item, 0, len(surplus))
	for i, it := range surplus {
		if s.matchingOnly && it.Screen < s.screen {
			remaining = append(remaining, it)
			continue
		}
		if s.matchingOnly && it.Screen > s.screen {
			// the list is sorted by screen, everything after belongs to
			// later screens
			remaining = append(remaining, surplus[i:]...)
			break
		}
		if it.MinSpanX > s.columns || it.MinSpanY > s.rows {
			s.logger.Debug("dropping item that can never fit",
				"id", it.ID, "kind", it.Kind, "minspan", it.MinSpanX, "x", it.MinSpanY)
			continue
		}
		if !s.findPlacement(it) {
			remaining = append(remaining, it)
			continue
		}
		if _, err := w.PersistPlacement(it); err != nil {
			return nil, err
		}
		s.logger.Debug("placed item",
			"id", it.ID, "kind", it.Kind, "screen", it.Screen,
			"cell", it.CellX, "y", it.CellY, "span", it.SpanX, "sy", it.SpanY)
	}
	return remaining, nil
}

// findPlacement scans row-major from the memoized cursor for the first cell
// where either the full span or the minimum span fits. When the minimum span
// fits the item is shrunk to it; first fit wins, there is no backtracking.
func (s *workspaceSolver) findPlacement(it *domain.Item) bool {
	for y := s.nextY; y < s.rows; y++ {
		for x := s.nextX; x < s.columns; x++ {
			fits := s.occupied.IsRegionVacant(x, y, it.SpanX, it.SpanY)
			minFits := s.occupied.IsRegionVacant(x, y, it.MinSpanX, it.MinSpanY)
			if minFits {
				it.SpanX = it.MinSpanX
				it.SpanY = it.MinSpanY
			}
			if fits || minFits {
				it.Screen = s.screen
				it.CellX = x
				it.CellY = y
				s.occupied.MarkItem(it, true)
				s.nextX = x + it.SpanX
				s.nextY = y
				return true
			}
		}
		s.nextX = 0
	}
	return false
}

// placeHotseat fills free hotseat slots in index order from the front of the
// surplus list. The slot index becomes the item's logical position; the cell
// coordinates carry no geometric meaning on the strip. Excess surplus is
// returned unplaced.
func placeHotseat(capacity int, seeded, surplus []*domain.Item, w Writer) ([]*domain.Item, error) {
	occupied := grid.NewStrip(capacity)
	for _, it := range seeded {
		occupied.MarkSlot(it.Screen, true)
	}
	next := 0
	for slot := 0; slot < occupied.Len() && next < len(surplus); slot++ {
		if !occupied.IsSlotFree(slot) {
			continue
		}
		it := surplus[next]
		next++
		it.Screen = slot
		it.CellX = slot
		it.CellY = 0
		occupied.MarkSlot(slot, true)
		if _, err := w.PersistPlacement(it); err != nil {
			return nil, err
		}
	}
	return surplus[next:], nil
}
