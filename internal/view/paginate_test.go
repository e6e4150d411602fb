package view

import (
	"reflect"
	"testing"
)

func TestPaginateClampsPage(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		pageSize   int
		page       int
		wantPage   int
		wantTotal  int
	}{
		{"page within range", 25, 10, 2, 2, 3},
		{"page past the end clamps", 25, 10, 5, 3, 3},
		{"page below one clamps", 25, 10, 0, 1, 3},
		{"empty set still has one page", 0, 10, 3, 1, 1},
		{"unknown size snaps to first option", 25, 7, 1, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.totalItems, tt.pageSize, tt.page)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.TotalPages != tt.wantTotal {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantTotal)
			}
		})
	}
}

func TestPageButtonsWindow(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		current    int
		want       []int
	}{
		{"seven or fewer lists all", 7, 4, []int{1, 2, 3, 4, 5, 6, 7}},
		{"near the start", 10, 2, []int{1, 2, 3, 4, 5, EllipsisPage, 10}},
		{"near the end", 10, 10, []int{1, EllipsisPage, 6, 7, 8, 9, 10}},
		{"middle", 20, 11, []int{1, EllipsisPage, 10, 11, 12, EllipsisPage, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageButtons(tt.totalPages, tt.current)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pageButtons(%d, %d) = %v, want %v", tt.totalPages, tt.current, got, tt.want)
			}
		})
	}
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := Paginate(len(items), 10, 3)
	got := pageSlice(items, p)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0] != 20 {
		t.Errorf("first = %d, want 20", got[0])
	}
}
