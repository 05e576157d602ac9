// Package migrate implements the grid layout migration: identity-based
// diffing of items between a source and destination layout, and greedy
// non-overlapping placement of the surplus on the destination grid and
// hotseat. The whole run is synchronous and expects to execute inside one
// transaction owned by the caller.
package migrate

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/pcranston/gridshift/internal/domain"
)

// Reader supplies the validated, ordered item lists of one layout. Readers
// are responsible for structural validation; invalid records never appear in
// the returned lists.
type Reader interface {
	LoadHotseatItems() ([]*domain.Item, error)
	LoadWorkspaceItems() ([]*domain.Item, error)
	// WorkspaceItemsByScreen groups the previously loaded workspace items.
	WorkspaceItemsByScreen() map[int][]*domain.Item
	// LastScreenID is the highest screen id seen while loading, -1 when the
	// layout has no workspace items.
	LastScreenID() int
}

// Runner orchestrates one migration run from SrcLayout to DestLayout. It owns
// the surplus lists and hands them to successive solver instances; each
// solver owns only its own screen's occupancy.
type Runner struct {
	Src        Reader
	Dest       Reader
	Writer     Writer
	SrcLayout  domain.Descriptor
	DestLayout domain.Descriptor

	// ReserveFirstCell keeps the first row of screen 0 free for the fixed
	// system overlay.
	ReserveFirstCell bool

	Logger *log.Logger
}

// Run migrates the surplus items onto the destination layout. It returns
// false when the layouts already hold the same items and nothing was written.
// Any writer or reader error aborts the run; the caller must roll back.
func (r *Runner) Run() (bool, error) {
	srcHotseat, err := r.Src.LoadHotseatItems()
	if err != nil {
		return false, fmt.Errorf("loading source hotseat: %w", err)
	}
	srcWorkspace, err := r.Src.LoadWorkspaceItems()
	if err != nil {
		return false, fmt.Errorf("loading source workspace: %w", err)
	}
	destHotseat, err := r.Dest.LoadHotseatItems()
	if err != nil {
		return false, fmt.Errorf("loading destination hotseat: %w", err)
	}
	destWorkspace, err := r.Dest.LoadWorkspaceItems()
	if err != nil {
		return false, fmt.Errorf("loading destination workspace: %w", err)
	}

	hotseatSurplus := Diff(srcHotseat, destHotseat)
	workspaceSurplus := Diff(srcWorkspace, destWorkspace)
	if len(hotseatSurplus) == 0 && len(workspaceSurplus) == 0 {
		r.Logger.Info("no changes: destination already holds every source item")
		return false, nil
	}
	r.Logger.Info("migrating surplus items",
		"hotseat", len(hotseatSurplus), "workspace", len(workspaceSurplus),
		"from", r.SrcLayout, "to", r.DestLayout)

	sort.SliceStable(hotseatSurplus, func(i, j int) bool {
		return domain.ReadingOrderLess(hotseatSurplus[i], hotseatSurplus[j])
	})
	sort.SliceStable(workspaceSurplus, func(i, j int) bool {
		return domain.ReadingOrderLess(workspaceSurplus[i], workspaceSurplus[j])
	})

	unplaced, err := placeHotseat(r.DestLayout.HotseatCount, destHotseat, hotseatSurplus, r.Writer)
	if err != nil {
		return false, fmt.Errorf("placing hotseat items: %w", err)
	}
	if len(unplaced) > 0 {
		// true hotseat excess stays unplaced rather than spilling onto the
		// workspace
		r.Logger.Warn("hotseat full, leaving items unplaced", "count", len(unplaced))
	}

	lastScreen := r.Dest.LastScreenID()

	// Only relevant when the destination starts without screens: keep the
	// original page grouping if the new grid is no worse and at most two
	// columns narrower.
	preservePages := false
	if lastScreen < 0 {
		preservePages = r.DestLayout.Compare(r.SrcLayout) >= 0 &&
			r.SrcLayout.Columns-r.DestLayout.Columns <= 2
	}

	byScreen := r.Dest.WorkspaceItemsByScreen()
	for screen := 0; screen <= lastScreen && len(workspaceSurplus) > 0; screen++ {
		solver := newWorkspaceSolver(screen, r.DestLayout.Columns, r.DestLayout.Rows,
			byScreen[screen], r.ReserveFirstCell, false, r.Logger)
		workspaceSurplus, err = solver.placeAll(workspaceSurplus, r.Writer)
		if err != nil {
			return false, fmt.Errorf("placing on screen %d: %w", screen, err)
		}
	}

	// Whatever did not fit goes onto fresh screens with strictly increasing
	// ids. With page matching on, a pass can place nothing when no remaining
	// item belongs to the new screen; once the id passes the largest original
	// screen id still in the surplus, matching is switched off so the loop
	// cannot allocate screens forever.
	matching := preservePages
	for screen := lastScreen + 1; len(workspaceSurplus) > 0; screen++ {
		if matching && screen > maxOriginalScreen(workspaceSurplus) {
			matching = false
		}
		solver := newWorkspaceSolver(screen, r.DestLayout.Columns, r.DestLayout.Rows,
			nil, r.ReserveFirstCell, matching, r.Logger)
		workspaceSurplus, err = solver.placeAll(workspaceSurplus, r.Writer)
		if err != nil {
			return false, fmt.Errorf("placing on new screen %d: %w", screen, err)
		}
	}

	r.Logger.Info("migration complete")
	return true, nil
}

func maxOriginalScreen(items []*domain.Item) int {
	screen := -1
	for _, it := range items {
		if it.Screen > screen {
			screen = it.Screen
		}
	}
	return screen
}
