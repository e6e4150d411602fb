package view

// PageSizes are the selectable page sizes; an unknown size falls back to the
// first option.
var PageSizes = []int{10, 20, 50, 100}

// EllipsisPage marks a gap in the page-button list.
const EllipsisPage = -1

// Pagination describes the visible window over a filtered set.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Buttons    []int `json:"buttons"`
}

// NormalizePageSize snaps size to the option set.
func NormalizePageSize(size int) int {
	for _, option := range PageSizes {
		if option == size {
			return size
		}
	}
	return PageSizes[0]
}

// Paginate clamps page into [1, totalPages] and computes the button window.
func Paginate(totalItems, pageSize, page int) Pagination {
	pageSize = NormalizePageSize(pageSize)
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Buttons:    pageButtons(totalPages, page),
	}
}

// pageButtons lists every page up to 7 pages; beyond that it windows: the
// first five plus the last near the start, the first plus the last five near
// the end, and first + current±1 + last in between, gaps marked by
// EllipsisPage.
func pageButtons(totalPages, current int) []int {
	if totalPages <= 7 {
		buttons := make([]int, 0, totalPages)
		for page := 1; page <= totalPages; page++ {
			buttons = append(buttons, page)
		}
		return buttons
	}
	switch {
	case current <= 4:
		return []int{1, 2, 3, 4, 5, EllipsisPage, totalPages}
	case current >= totalPages-3:
		return []int{1, EllipsisPage, totalPages - 4, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		return []int{1, EllipsisPage, current - 1, current, current + 1, EllipsisPage, totalPages}
	}
}

// pageSlice cuts the visible window out of items.
func pageSlice[T any](items []T, p Pagination) []T {
	start := (p.Page - 1) * p.PageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
