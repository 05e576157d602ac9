package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pcranston/gridshift/internal/domain"
)

// LayoutState returns the layout the items were last placed on. ok is false
// when no layout has been recorded yet.
func LayoutState(q Querier) (desc domain.Descriptor, ok bool, err error) {
	row := q.QueryRow("SELECT columns, rows, hotseat_count FROM layout_state WHERE id = 1")
	if err := row.Scan(&desc.Columns, &desc.Rows, &desc.HotseatCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Descriptor{}, false, nil
		}
		return domain.Descriptor{}, false, fmt.Errorf("failed to read layout state: %w", err)
	}
	return desc, true, nil
}

// SetLayoutState records the current layout so the needs-migration check
// turns false after a successful run.
func SetLayoutState(q Querier, d domain.Descriptor) error {
	_, err := q.Exec(`
		INSERT INTO layout_state (id, columns, rows, hotseat_count, updated_at)
		VALUES (1, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		ON CONFLICT(id) DO UPDATE SET
			columns = excluded.columns,
			rows = excluded.rows,
			hotseat_count = excluded.hotseat_count,
			updated_at = excluded.updated_at
	`, d.Columns, d.Rows, d.HotseatCount)
	if err != nil {
		return fmt.Errorf("failed to write layout state: %w", err)
	}
	return nil
}

// PackageSet is a map-backed PackageOracle.
type PackageSet map[string]struct{}

// IsValid reports whether pkg is in the set.
func (p PackageSet) IsValid(pkg string) bool {
	_, ok := p[pkg]
	return ok
}

// LoadPackageSet reads the installed and installing package names.
func LoadPackageSet(q Querier) (PackageSet, error) {
	rows, err := q.Query("SELECT name FROM packages")
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	set := make(PackageSet)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan package name: %w", err)
		}
		set[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}
	return set, nil
}

// AddPackage records a package as installed (or installing).
func AddPackage(q Querier, name string, installing bool) error {
	inst := 0
	if installing {
		inst = 1
	}
	if _, err := q.Exec(`
		INSERT INTO packages (name, installing) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET installing = excluded.installing
	`, name, inst); err != nil {
		return fmt.Errorf("failed to add package %s: %w", name, err)
	}
	return nil
}

// RemovePackage removes a package from the validity set.
func RemovePackage(q Querier, name string) error {
	if _, err := q.Exec("DELETE FROM packages WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to remove package %s: %w", name, err)
	}
	return nil
}

// ListPackages returns the package names in sorted order.
func ListPackages(q Querier) ([]string, error) {
	rows, err := q.Query("SELECT name FROM packages ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan package name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}
	return names, nil
}

// WidgetSpans is a map-backed WidgetSizeOracle keyed by provider component.
type WidgetSpans map[string][2]int

// MinSpan returns the recorded minimum span for a provider.
func (w WidgetSpans) MinSpan(provider string) (int, int, bool) {
	span, ok := w[provider]
	if !ok {
		return 0, 0, false
	}
	return span[0], span[1], true
}

// LoadWidgetSpans reads the widget minimum-span table.
func LoadWidgetSpans(q Querier) (WidgetSpans, error) {
	rows, err := q.Query("SELECT provider, min_span_x, min_span_y FROM widgets")
	if err != nil {
		return nil, fmt.Errorf("failed to query widgets: %w", err)
	}
	defer rows.Close()

	spans := make(WidgetSpans)
	for rows.Next() {
		var provider string
		var x, y int
		if err := rows.Scan(&provider, &x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan widget span: %w", err)
		}
		spans[provider] = [2]int{x, y}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating widgets: %w", err)
	}
	return spans, nil
}

// SetWidgetSpan records the minimum span for a widget provider.
func SetWidgetSpan(q Querier, provider string, x, y int) error {
	if _, err := q.Exec(`
		INSERT INTO widgets (provider, min_span_x, min_span_y) VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			min_span_x = excluded.min_span_x,
			min_span_y = excluded.min_span_y
	`, provider, x, y); err != nil {
		return fmt.Errorf("failed to set widget span for %s: %w", provider, err)
	}
	return nil
}

// ListItems returns every row of a layout table, folder children included,
// without validation. Used by listing, rendering and export.
func ListItems(q Querier, table string) ([]*domain.Item, error) {
	rows, err := q.Query(`
		SELECT id, uuid, container, item_type, title, intent, provider,
		       screen, cellx, celly, spanx, spany
		FROM ` + table + `
		ORDER BY container DESC, screen, celly, cellx, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it := &domain.Item{MinSpanX: 1, MinSpanY: 1}
		var kind string
		if err := rows.Scan(&it.ID, &it.UUID, &it.Container, &kind, &it.Title,
			&it.Intent, &it.Provider, &it.Screen, &it.CellX, &it.CellY,
			&it.SpanX, &it.SpanY); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		it.Kind = domain.Kind(kind)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return items, nil
}

// InsertItem inserts a raw item row (used by import and tests) and returns
// its id. A fresh uuid is assigned when the item has none.
func InsertItem(q Querier, table string, it *domain.Item) (int64, error) {
	if it.UUID == "" {
		it.UUID = uuid.NewString()
	}
	res, err := q.Exec(`
		INSERT INTO `+table+` (
			uuid, container, item_type, title, intent, provider,
			screen, cellx, celly, spanx, spany
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.UUID, it.Container, string(it.Kind), it.Title, it.Intent, it.Provider,
		it.Screen, it.CellX, it.CellY, it.SpanX, it.SpanY)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted item id: %w", err)
	}
	it.ID = id
	return id, nil
}
