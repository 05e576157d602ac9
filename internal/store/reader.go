package store

import (
	"fmt"

	"github.com/pcranston/gridshift/internal/domain"
)

// PackageOracle answers whether a package currently resolves to an installed
// or installing application.
type PackageOracle interface {
	IsValid(pkg string) bool
}

// WidgetSizeOracle reports the minimum span a widget provider supports.
// ok is false when nothing is known about the provider.
type WidgetSizeOracle interface {
	MinSpan(provider string) (x, y int, ok bool)
}

// Reader loads the validated item lists of one layout table. Rows that fail
// structural validation are deleted from the table as part of the load and
// never appear in the returned lists.
type Reader struct {
	q        Querier
	table    string
	packages PackageOracle
	widgets  WidgetSizeOracle

	lastScreenID int
	byScreen     map[int][]*domain.Item
}

// NewReader creates a reader bound to one layout's item table.
func NewReader(q Querier, table string, packages PackageOracle, widgets WidgetSizeOracle) *Reader {
	return &Reader{
		q:            q,
		table:        table,
		packages:     packages,
		widgets:      widgets,
		lastScreenID: -1,
		byScreen:     make(map[int][]*domain.Item),
	}
}

// Table returns the item table this reader is bound to.
func (r *Reader) Table() string {
	return r.table
}

// LoadHotseatItems returns the valid hotseat items in slot order.
func (r *Reader) LoadHotseatItems() ([]*domain.Item, error) {
	return r.load(domain.ContainerHotseat, "screen")
}

// LoadWorkspaceItems returns the valid workspace items grouped by screen and
// ordered by reading order.
func (r *Reader) LoadWorkspaceItems() ([]*domain.Item, error) {
	items, err := r.load(domain.ContainerDesktop, "screen, celly, cellx")
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Screen > r.lastScreenID {
			r.lastScreenID = it.Screen
		}
		r.byScreen[it.Screen] = append(r.byScreen[it.Screen], it)
	}
	return items, nil
}

// WorkspaceItemsByScreen groups the items from the last LoadWorkspaceItems call.
func (r *Reader) WorkspaceItemsByScreen() map[int][]*domain.Item {
	return r.byScreen
}

// LastScreenID is the highest screen id seen while loading workspace items,
// -1 when the layout has none.
func (r *Reader) LastScreenID() int {
	return r.lastScreenID
}

func (r *Reader) load(container int64, order string) ([]*domain.Item, error) {
	rows, err := r.q.Query(`
		SELECT id, uuid, item_type, title, intent, provider,
		       screen, cellx, celly, spanx, spany
		FROM `+r.table+`
		WHERE container = ?
		ORDER BY `+order, container)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var items []*domain.Item
	var invalid []int64
	for rows.Next() {
		it := &domain.Item{Container: container, MinSpanX: 1, MinSpanY: 1}
		var kind string
		if err := rows.Scan(&it.ID, &it.UUID, &kind, &it.Title, &it.Intent, &it.Provider,
			&it.Screen, &it.CellX, &it.CellY, &it.SpanX, &it.SpanY); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		it.Kind = domain.Kind(kind)
		if err := r.validate(it); err != nil {
			invalid = append(invalid, it.ID)
			continue
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", r.table, err)
	}

	if err := deleteRows(r.q, r.table, invalid); err != nil {
		return nil, err
	}
	return items, nil
}

// validate applies the loading-time checks: descriptor parse, package
// resolution, widget minimum spans, folder child filtering, known kind.
func (r *Reader) validate(it *domain.Item) error {
	switch it.Kind {
	case domain.KindApplication, domain.KindShortcut, domain.KindDeepShortcut:
		return r.verifyIntent(it.Intent)

	case domain.KindWidget:
		pkg, err := domain.ProviderPackage(it.Provider)
		if err != nil {
			return err
		}
		if !r.packages.IsValid(pkg) {
			return fmt.Errorf("%w: %s", domain.ErrUnresolvablePackage, pkg)
		}
		if x, y, ok := r.widgets.MinSpan(it.Provider); ok {
			// non-positive oracle values mean the widget cannot shrink in
			// that dimension
			if x > 0 {
				it.MinSpanX = x
			} else {
				it.MinSpanX = it.SpanX
			}
			if y > 0 {
				it.MinSpanY = y
			} else {
				it.MinSpanY = it.SpanY
			}
		} else {
			// assume the widget can be resized down to 2x2
			it.MinSpanX, it.MinSpanY = 2, 2
		}
		return nil

	case domain.KindFolder:
		return r.loadFolderChildren(it)

	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, it.Kind)
	}
}

func (r *Reader) verifyIntent(intent string) error {
	pkg, err := domain.PackageName(intent)
	if err != nil {
		return err
	}
	if !r.packages.IsValid(pkg) {
		return fmt.Errorf("%w: %s", domain.ErrUnresolvablePackage, pkg)
	}
	return nil
}

// loadFolderChildren fills the folder's child multiset. Invalid children are
// deleted individually and do not count; a folder left with no valid children
// is itself invalid.
func (r *Reader) loadFolderChildren(it *domain.Item) error {
	rows, err := r.q.Query(
		"SELECT id, intent FROM "+r.table+" WHERE container = ?", it.ID)
	if err != nil {
		return fmt.Errorf("failed to query folder %d children: %w", it.ID, err)
	}
	defer rows.Close()

	children := make(map[string][]int64)
	var invalid []int64
	for rows.Next() {
		var id int64
		var intent string
		if err := rows.Scan(&id, &intent); err != nil {
			return fmt.Errorf("failed to scan folder child: %w", err)
		}
		if err := r.verifyIntent(intent); err != nil {
			invalid = append(invalid, id)
			continue
		}
		children[intent] = append(children[intent], id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating folder %d children: %w", it.ID, err)
	}

	if err := deleteRows(r.q, r.table, invalid); err != nil {
		return err
	}
	if len(children) == 0 {
		return fmt.Errorf("%w: folder %d", domain.ErrEmptyFolder, it.ID)
	}
	it.Children = children
	return nil
}
