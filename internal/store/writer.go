package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pcranston/gridshift/internal/domain"
)

// Writer copies placed items from the source layout table into the
// destination layout table. Structural fields travel unchanged; only the
// position and span columns take the item's migrated values, and every copy
// gets a fresh id and uuid.
type Writer struct {
	q         Querier
	srcTable  string
	destTable string
}

// NewWriter creates a writer copying rows from srcTable into destTable.
func NewWriter(q Querier, srcTable, destTable string) *Writer {
	return &Writer{q: q, srcTable: srcTable, destTable: destTable}
}

// PersistPlacement inserts the item into the destination table at its
// migrated position and returns the new storage id. Folder children are
// copied along, re-parented to the new folder row.
func (w *Writer) PersistPlacement(it *domain.Item) (int64, error) {
	row := w.q.QueryRow(
		"SELECT item_type, title, intent, provider FROM "+w.srcTable+" WHERE id = ?", it.ID)
	var kind, title, intent, provider string
	if err := row.Scan(&kind, &title, &intent, &provider); err != nil {
		return 0, fmt.Errorf("failed to read source item %d: %w", it.ID, err)
	}

	res, err := w.q.Exec(`
		INSERT INTO `+w.destTable+` (
			uuid, container, item_type, title, intent, provider,
			screen, cellx, celly, spanx, spany
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), it.Container, kind, title, intent, provider,
		it.Screen, it.CellX, it.CellY, it.SpanX, it.SpanY)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item %d into %s: %w", it.ID, w.destTable, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new item id: %w", err)
	}

	if it.Kind == domain.KindFolder {
		for _, childIDs := range it.Children {
			for _, childID := range childIDs {
				if err := w.copyChild(childID, newID); err != nil {
					return 0, err
				}
			}
		}
	}

	return newID, nil
}

// copyChild copies one folder child row, re-parented to the new folder id.
// Children keep their stored cell fields; only the container changes.
func (w *Writer) copyChild(childID, folderID int64) error {
	row := w.q.QueryRow(`
		SELECT item_type, title, intent, provider, screen, cellx, celly, spanx, spany
		FROM `+w.srcTable+` WHERE id = ?`, childID)
	var kind, title, intent, provider string
	var screen, cellX, cellY, spanX, spanY int
	if err := row.Scan(&kind, &title, &intent, &provider,
		&screen, &cellX, &cellY, &spanX, &spanY); err != nil {
		return fmt.Errorf("failed to read folder child %d: %w", childID, err)
	}

	_, err := w.q.Exec(`
		INSERT INTO `+w.destTable+` (
			uuid, container, item_type, title, intent, provider,
			screen, cellx, celly, spanx, spany
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), folderID, kind, title, intent, provider,
		screen, cellX, cellY, spanX, spanY)
	if err != nil {
		return fmt.Errorf("failed to copy folder child %d: %w", childID, err)
	}
	return nil
}
