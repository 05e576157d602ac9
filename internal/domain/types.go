package domain

import "fmt"

// Kind represents the type of a placed item
type Kind string

const (
	KindApplication  Kind = "application"
	KindShortcut     Kind = "shortcut"
	KindDeepShortcut Kind = "deep_shortcut"
	KindWidget       Kind = "widget"
	KindFolder       Kind = "folder"
)

// Container values for the container column. Positive values are folder row ids.
const (
	ContainerDesktop int64 = -100
	ContainerHotseat int64 = -101
)

// Item is a single placed entry: an app shortcut, deep shortcut, widget or
// folder living on a workspace screen or a hotseat slot. Position and span
// fields are the only ones mutated during a migration run; everything else is
// loaded read-only from the store.
type Item struct {
	ID        int64
	UUID      string
	Kind      Kind
	Title     string
	Container int64
	Screen    int // hotseat items store their slot index here
	CellX     int
	CellY     int
	SpanX     int
	SpanY     int
	MinSpanX  int
	MinSpanY  int
	Intent    string // launch descriptor URI for app/shortcut kinds
	Provider  string // flattened provider component for widgets

	// Children maps a child's raw launch descriptor to the row ids of the
	// children sharing it. Only populated for folders; never empty for a
	// folder that survived loading.
	Children map[string][]int64
}

// ValidateKind reports whether kind is one of the recognized item kinds
func ValidateKind(kind Kind) error {
	switch kind {
	case KindApplication, KindShortcut, KindDeepShortcut, KindWidget, KindFolder:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ValidateSpans checks the span invariants: spans and minimum spans are >= 1
// and the minimum span never exceeds the span.
func ValidateSpans(it *Item) error {
	if it.SpanX < 1 || it.SpanY < 1 {
		return fmt.Errorf("invalid span %dx%d: must be at least 1x1", it.SpanX, it.SpanY)
	}
	if it.MinSpanX < 1 || it.MinSpanY < 1 {
		return fmt.Errorf("invalid min span %dx%d: must be at least 1x1", it.MinSpanX, it.MinSpanY)
	}
	if it.MinSpanX > it.SpanX || it.MinSpanY > it.SpanY {
		return fmt.Errorf("min span %dx%d exceeds span %dx%d", it.MinSpanX, it.MinSpanY, it.SpanX, it.SpanY)
	}
	return nil
}

// ReadingOrderLess is the comparator used for all sorting in the migration:
// screen ascending, then cell row, then cell column.
func ReadingOrderLess(a, b *Item) bool {
	if a.Screen != b.Screen {
		return a.Screen < b.Screen
	}
	if a.CellY != b.CellY {
		return a.CellY < b.CellY
	}
	return a.CellX < b.CellX
}

// Descriptor identifies a grid layout: workspace dimensions plus hotseat capacity.
type Descriptor struct {
	Columns      int `yaml:"columns"`
	Rows         int `yaml:"rows"`
	HotseatCount int `yaml:"hotseat"`
}

// Compatible reports whether two layouts are equivalent, i.e. no migration is
// needed between them.
func (d Descriptor) Compatible(o Descriptor) bool {
	return d == o
}

// Compare orders layouts by generosity: total workspace cells first, then
// hotseat capacity. Returns <0 if d is smaller than o, 0 if equal, >0 if larger.
func (d Descriptor) Compare(o Descriptor) int {
	if c := d.Columns*d.Rows - o.Columns*o.Rows; c != 0 {
		return c
	}
	return d.HotseatCount - o.HotseatCount
}

// TableName returns the item table backing this layout. Layouts sharing grid
// dimensions share a table, matching one database per grid option.
func (d Descriptor) TableName() string {
	return fmt.Sprintf("items_%dx%d", d.Columns, d.Rows)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%dx%d/%d", d.Columns, d.Rows, d.HotseatCount)
}

// Validate checks that all layout dimensions are positive
func (d Descriptor) Validate() error {
	if d.Columns < 1 || d.Rows < 1 {
		return fmt.Errorf("invalid grid size %dx%d: must be at least 1x1", d.Columns, d.Rows)
	}
	if d.HotseatCount < 0 {
		return fmt.Errorf("invalid hotseat capacity %d", d.HotseatCount)
	}
	return nil
}
