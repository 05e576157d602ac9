package domain

import (
	"sort"
	"testing"
)

func TestReadingOrderLess(t *testing.T) {
	items := []*Item{
		{ID: 1, Screen: 1, CellY: 0, CellX: 0},
		{ID: 2, Screen: 0, CellY: 2, CellX: 1},
		{ID: 3, Screen: 0, CellY: 2, CellX: 0},
		{ID: 4, Screen: 0, CellY: 0, CellX: 3},
	}
	sort.SliceStable(items, func(i, j int) bool {
		return ReadingOrderLess(items[i], items[j])
	})

	want := []int64{4, 3, 2, 1}
	for i, it := range items {
		if it.ID != want[i] {
			t.Fatalf("position %d: got item %d, want %d", i, it.ID, want[i])
		}
	}
}

func TestDescriptorCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Descriptor
		sign int
	}{
		{"more cells wins", Descriptor{5, 5, 5}, Descriptor{4, 4, 9}, 1},
		{"fewer cells loses", Descriptor{4, 4, 9}, Descriptor{5, 5, 5}, -1},
		{"cells tie broken by hotseat", Descriptor{4, 5, 6}, Descriptor{5, 4, 5}, 1},
		{"equal", Descriptor{5, 5, 5}, Descriptor{5, 5, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Compare(tt.b)
			switch {
			case tt.sign == 0 && got != 0:
				t.Errorf("Compare = %d, want 0", got)
			case tt.sign > 0 && got <= 0:
				t.Errorf("Compare = %d, want > 0", got)
			case tt.sign < 0 && got >= 0:
				t.Errorf("Compare = %d, want < 0", got)
			}
		})
	}
}

func TestDescriptorTableName(t *testing.T) {
	d := Descriptor{Columns: 5, Rows: 6, HotseatCount: 4}
	if got := d.TableName(); got != "items_5x6" {
		t.Errorf("TableName = %q, want %q", got, "items_5x6")
	}
	// hotseat capacity does not change the backing table
	e := Descriptor{Columns: 5, Rows: 6, HotseatCount: 9}
	if d.TableName() != e.TableName() {
		t.Error("layouts differing only in hotseat should share a table")
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Descriptor
		wantErr bool
	}{
		{"valid", Descriptor{5, 5, 5}, false},
		{"no hotseat ok", Descriptor{4, 4, 0}, false},
		{"zero columns", Descriptor{0, 5, 5}, true},
		{"zero rows", Descriptor{5, 0, 5}, true},
		{"negative hotseat", Descriptor{5, 5, -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpans(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{SpanX: 2, SpanY: 2, MinSpanX: 1, MinSpanY: 1}, false},
		{"zero span", Item{SpanX: 0, SpanY: 1, MinSpanX: 1, MinSpanY: 1}, true},
		{"zero min span", Item{SpanX: 1, SpanY: 1, MinSpanX: 0, MinSpanY: 1}, true},
		{"min exceeds span", Item{SpanX: 2, SpanY: 2, MinSpanX: 3, MinSpanY: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpans(&tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpans() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateKind(t *testing.T) {
	for _, kind := range []Kind{KindApplication, KindShortcut, KindDeepShortcut, KindWidget, KindFolder} {
		if err := ValidateKind(kind); err != nil {
			t.Errorf("ValidateKind(%q) = %v, want nil", kind, err)
		}
	}
	if err := ValidateKind("gadget"); err == nil {
		t.Error("ValidateKind should reject unknown kinds")
	}
}
