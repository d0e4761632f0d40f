// Package pagination slices records into pages and builds the page
// navigation controls shown under the table.
package pagination

import (
	"fmt"
	"strconv"
)

// MaxButtons is the width of the numbered page window
const MaxButtons = 5

// Window is the visible slice of a collection
type Window[T any] struct {
	Items []T `json:"items"`
	Start int `json:"start"` // 1-based position of the first item
	End   int `json:"end"`   // 1-based position of the last item
	Total int `json:"total"`
}

// ComputeWindow returns items[(page-1)*size : min(page*size, total)].
// A page past the end yields an empty window.
func ComputeWindow[T any](items []T, currentPage, pageSize int) Window[T] {
	total := len(items)
	if pageSize < 1 {
		pageSize = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}

	// compare by division so huge page sizes cannot overflow
	startIndex := total
	if currentPage-1 <= total/pageSize {
		startIndex = min((currentPage-1)*pageSize, total)
	}
	endIndex := total
	if pageSize < total-startIndex {
		endIndex = startIndex + pageSize
	}

	return Window[T]{
		Items: items[startIndex:endIndex:endIndex],
		Start: startIndex + 1,
		End:   endIndex,
		Total: total,
	}
}

// Summary is the "Showing X to Y of Z records" line
func (w Window[T]) Summary() string {
	if w.Total == 0 {
		return "Showing 0 records"
	}
	return fmt.Sprintf("Showing %d to %d of %d records", w.Start, w.End, w.Total)
}

// TotalPages returns ceil(total / pageSize)
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}

// ClampPage keeps page within [1, totalPages], or 1 when there are no pages
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ControlKind is the type of a navigation control
type ControlKind string

const (
	ControlPrev     ControlKind = "prev"
	ControlPage     ControlKind = "page"
	ControlEllipsis ControlKind = "ellipsis"
	ControlNext     ControlKind = "next"
)

// Control is one entry of the pagination bar
type Control struct {
	Kind     ControlKind `json:"kind"`
	Page     int         `json:"page,omitempty"`
	Label    string      `json:"label"`
	Active   bool        `json:"active,omitempty"`
	Disabled bool        `json:"disabled,omitempty"`
}

// Token is the navigation value a click on the control submits:
// "prev", "next" or the page number. Ellipses have no token.
func (c Control) Token() string {
	switch c.Kind {
	case ControlPrev:
		return "prev"
	case ControlNext:
		return "next"
	case ControlPage:
		return strconv.Itoa(c.Page)
	}
	return ""
}

// Controls builds the navigation bar. Nothing is shown for a single page.
func Controls(currentPage, totalPages int) []Control {
	if totalPages <= 1 {
		return nil
	}
	currentPage = ClampPage(currentPage, totalPages)

	controls := []Control{{
		Kind:     ControlPrev,
		Label:    "Previous",
		Disabled: currentPage == 1,
	}}

	startPage := max(1, currentPage-MaxButtons/2)
	endPage := min(totalPages, startPage+MaxButtons-1)
	if endPage-startPage < MaxButtons-1 {
		startPage = max(1, endPage-MaxButtons+1)
	}

	if startPage > 1 {
		controls = append(controls, pageControl(1, currentPage))
		if startPage > 2 {
			controls = append(controls, ellipsis())
		}
	}

	for i := startPage; i <= endPage; i++ {
		controls = append(controls, pageControl(i, currentPage))
	}

	if endPage < totalPages {
		if endPage < totalPages-1 {
			controls = append(controls, ellipsis())
		}
		controls = append(controls, pageControl(totalPages, currentPage))
	}

	return append(controls, Control{
		Kind:     ControlNext,
		Label:    "Next",
		Disabled: currentPage == totalPages,
	})
}

func pageControl(page, currentPage int) Control {
	return Control{
		Kind:   ControlPage,
		Page:   page,
		Label:  strconv.Itoa(page),
		Active: page == currentPage,
	}
}

func ellipsis() Control {
	return Control{Kind: ControlEllipsis, Label: "...", Disabled: true}
}
