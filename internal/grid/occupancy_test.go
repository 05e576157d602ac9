package grid

import (
	"testing"

	"github.com/pcranston/gridshift/internal/domain"
)

func TestOccupancyVacancy(t *testing.T) {
	o := NewOccupancy(4, 4)
	o.MarkRegion(1, 1, 2, 2, true)

	tests := []struct {
		name       string
		x, y, w, h int
		want       bool
	}{
		{"free corner", 0, 0, 1, 1, true},
		{"overlaps marked block", 0, 0, 2, 2, false},
		{"inside marked block", 1, 1, 1, 1, false},
		{"beside marked block", 3, 0, 1, 4, true},
		{"exceeds right edge", 3, 0, 2, 1, false},
		{"exceeds bottom edge", 0, 3, 1, 2, false},
		{"negative origin", -1, 0, 1, 1, false},
		{"full grid blocked", 0, 0, 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.IsRegionVacant(tt.x, tt.y, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("IsRegionVacant(%d,%d,%d,%d) = %v, want %v",
					tt.x, tt.y, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestOccupancyUnmark(t *testing.T) {
	o := NewOccupancy(3, 3)
	o.MarkRegion(0, 0, 3, 3, true)
	o.MarkRegion(1, 1, 1, 1, false)

	if !o.IsRegionVacant(1, 1, 1, 1) {
		t.Error("cleared cell should be vacant")
	}
	if o.IsRegionVacant(0, 0, 1, 1) {
		t.Error("still-marked cell should not be vacant")
	}
}

func TestOccupancyMarkClamps(t *testing.T) {
	o := NewOccupancy(3, 3)
	// a region hanging off the grid must not panic
	o.MarkRegion(2, 2, 4, 4, true)
	if o.IsRegionVacant(2, 2, 1, 1) {
		t.Error("in-bounds part of the clamped region should be marked")
	}
	if !o.IsRegionVacant(0, 0, 2, 2) {
		t.Error("cells outside the clamped region should stay vacant")
	}
}

func TestMarkItem(t *testing.T) {
	o := NewOccupancy(5, 5)
	it := &domain.Item{CellX: 1, CellY: 2, SpanX: 2, SpanY: 1}
	o.MarkItem(it, true)

	if o.IsRegionVacant(1, 2, 2, 1) {
		t.Error("item rectangle should be marked")
	}
	if !o.IsRegionVacant(3, 2, 1, 1) {
		t.Error("cell past the item should be vacant")
	}
}

func TestStrip(t *testing.T) {
	s := NewStrip(4)
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}

	s.MarkSlot(1, true)
	s.MarkSlot(9, true) // out of range, ignored
	s.MarkSlot(-1, true)

	wantFree := []bool{true, false, true, true}
	for i, want := range wantFree {
		if got := s.IsSlotFree(i); got != want {
			t.Errorf("IsSlotFree(%d) = %v, want %v", i, got, want)
		}
	}
	if s.IsSlotFree(4) {
		t.Error("out-of-range slot should never be free")
	}
}
