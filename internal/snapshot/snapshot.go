// Package snapshot provides YAML import and export of a layout's items, used
// for seeding a database and for backups.
package snapshot

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pcranston/gridshift/internal/domain"
	"github.com/pcranston/gridshift/internal/store"
)

// Snapshot is the YAML document shape.
type Snapshot struct {
	Layout domain.Descriptor `yaml:"layout"`
	Items  []Entry           `yaml:"items"`
}

// Entry is one placed item. Container is "desktop" or "hotseat".
type Entry struct {
	Kind      string  `yaml:"kind"`
	Title     string  `yaml:"title,omitempty"`
	Container string  `yaml:"container"`
	Screen    int     `yaml:"screen"`
	CellX     int     `yaml:"cellx"`
	CellY     int     `yaml:"celly"`
	SpanX     int     `yaml:"spanx"`
	SpanY     int     `yaml:"spany"`
	Intent    string  `yaml:"intent,omitempty"`
	Provider  string  `yaml:"provider,omitempty"`
	Children  []Child `yaml:"children,omitempty"`
}

// Child is a folder member; position inside a folder carries no meaning.
type Child struct {
	Kind   string `yaml:"kind"`
	Title  string `yaml:"title,omitempty"`
	Intent string `yaml:"intent"`
}

// Export reads every item of a layout table into a snapshot document.
func Export(q store.Querier, table string, desc domain.Descriptor) (*Snapshot, error) {
	items, err := store.ListItems(q, table)
	if err != nil {
		return nil, err
	}

	childrenByFolder := make(map[int64][]*domain.Item)
	var top []*domain.Item
	for _, it := range items {
		switch it.Container {
		case domain.ContainerDesktop, domain.ContainerHotseat:
			top = append(top, it)
		default:
			childrenByFolder[it.Container] = append(childrenByFolder[it.Container], it)
		}
	}

	snap := &Snapshot{Layout: desc}
	for _, it := range top {
		entry := Entry{
			Kind:      string(it.Kind),
			Title:     it.Title,
			Container: containerName(it.Container),
			Screen:    it.Screen,
			CellX:     it.CellX,
			CellY:     it.CellY,
			SpanX:     it.SpanX,
			SpanY:     it.SpanY,
			Intent:    it.Intent,
			Provider:  it.Provider,
		}
		for _, child := range childrenByFolder[it.ID] {
			entry.Children = append(entry.Children, Child{
				Kind:   string(child.Kind),
				Title:  child.Title,
				Intent: child.Intent,
			})
		}
		snap.Items = append(snap.Items, entry)
	}
	return snap, nil
}

// Import writes a snapshot into the layout table it describes, creating the
// table if needed, and records the layout state.
func Import(q store.Querier, snap *Snapshot) error {
	if err := snap.Layout.Validate(); err != nil {
		return err
	}
	table := snap.Layout.TableName()
	if err := store.EnsureItemTable(q, table); err != nil {
		return err
	}

	for i := range snap.Items {
		entry := &snap.Items[i]
		container, err := containerValue(entry.Container)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		it := &domain.Item{
			Kind:      domain.Kind(entry.Kind),
			Title:     entry.Title,
			Container: container,
			Screen:    entry.Screen,
			CellX:     entry.CellX,
			CellY:     entry.CellY,
			SpanX:     maxInt(entry.SpanX, 1),
			SpanY:     maxInt(entry.SpanY, 1),
			Intent:    entry.Intent,
			Provider:  entry.Provider,
		}
		if err := domain.ValidateKind(it.Kind); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		folderID, err := store.InsertItem(q, table, it)
		if err != nil {
			return err
		}
		for j, child := range entry.Children {
			childItem := &domain.Item{
				Kind:      domain.Kind(child.Kind),
				Title:     child.Title,
				Container: folderID,
				Screen:    -1,
				SpanX:     1,
				SpanY:     1,
				Intent:    child.Intent,
			}
			if _, err := store.InsertItem(q, table, childItem); err != nil {
				return fmt.Errorf("item %d child %d: %w", i, j, err)
			}
		}
	}

	return store.SetLayoutState(q, snap.Layout)
}

// Write encodes the snapshot as YAML.
func (s *Snapshot) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}

// Read decodes a snapshot from YAML.
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func containerName(c int64) string {
	if c == domain.ContainerHotseat {
		return "hotseat"
	}
	return "desktop"
}

func containerValue(name string) (int64, error) {
	switch name {
	case "desktop", "":
		return domain.ContainerDesktop, nil
	case "hotseat":
		return domain.ContainerHotseat, nil
	default:
		return 0, fmt.Errorf("unknown container %q", name)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
