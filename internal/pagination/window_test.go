package pagination

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestComputeWindow(t *testing.T) {
	items := seq(12)

	tests := []struct {
		name    string
		page    int
		size    int
		want    []int
		summary string
	}{
		{"first page", 1, 5, []int{0, 1, 2, 3, 4}, "Showing 1 to 5 of 12 records"},
		{"middle page", 2, 5, []int{5, 6, 7, 8, 9}, "Showing 6 to 10 of 12 records"},
		{"short last page", 3, 5, []int{10, 11}, "Showing 11 to 12 of 12 records"},
		{"everything on one page", 1, 20, seq(12), "Showing 1 to 12 of 12 records"},
		{"past the end", 4, 5, []int{}, "Showing 13 to 12 of 12 records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(items, tt.page, tt.size)
			assert.Equal(t, tt.want, w.Items)
			assert.Equal(t, 12, w.Total)
			assert.Equal(t, tt.summary, w.Summary())
		})
	}
}

func TestComputeWindowEmpty(t *testing.T) {
	w := ComputeWindow([]string{}, 1, 5)
	assert.Empty(t, w.Items)
	assert.Equal(t, 0, w.Total)
	assert.Equal(t, "Showing 0 records", w.Summary())
}

func TestComputeWindowDoesNotAlias(t *testing.T) {
	items := seq(6)
	w := ComputeWindow(items, 1, 3)
	w.Items = append(w.Items, 99)
	assert.Equal(t, 3, items[3], "appending to a window must not overwrite the source")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 2, TotalPages(10, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(2, math.MaxInt))
	assert.Equal(t, 1, TotalPages(math.MaxInt, math.MaxInt))
}

func TestComputeWindowHugePageSize(t *testing.T) {
	items := seq(2)

	w := ComputeWindow(items, 1, math.MaxInt)
	assert.Equal(t, []int{0, 1}, w.Items)
	assert.Equal(t, "Showing 1 to 2 of 2 records", w.Summary())

	w = ComputeWindow(items, 2, math.MaxInt)
	assert.Empty(t, w.Items)
	assert.Equal(t, 2, w.End)

	w = ComputeWindow(items, math.MaxInt, math.MaxInt)
	assert.Empty(t, w.Items)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(2, 1))
	assert.Equal(t, 3, ClampPage(7, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}

// render writes controls compactly: <prev, [n] for the active page,
// ... for ellipses, >next; disabled controls get a leading !
func render(controls []Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		var s string
		switch c.Kind {
		case ControlPrev:
			s = "<"
		case ControlNext:
			s = ">"
		case ControlEllipsis:
			s = "..."
		case ControlPage:
			s = c.Label
			if c.Active {
				s = "[" + s + "]"
			}
		}
		if c.Disabled && c.Kind != ControlEllipsis {
			s = "!" + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func TestControls(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{7, 10, "< 1 ... 5 6 [7] 8 9 10 >"},
		{1, 10, "!< [1] 2 3 4 5 ... 10 >"},
		{3, 10, "< 1 2 [3] 4 5 ... 10 >"},
		{4, 10, "< 1 2 3 [4] 5 6 ... 10 >"},
		{8, 10, "< 1 ... 6 7 [8] 9 10 >"},
		{10, 10, "< 1 ... 6 7 8 9 [10] !>"},
		{2, 3, "< 1 [2] 3 >"},
		{2, 2, "< 1 [2] !>"},
		{5, 5, "< 1 2 3 4 [5] !>"},
		{4, 6, "< 1 2 3 [4] 5 6 >"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render(Controls(tt.current, tt.total)), "page %d of %d", tt.current, tt.total)
	}
}

func TestControlsSinglePage(t *testing.T) {
	assert.Empty(t, Controls(1, 1))
	assert.Empty(t, Controls(1, 0))
}

func TestControlToken(t *testing.T) {
	controls := Controls(7, 10)
	var tokens []string
	for _, c := range controls {
		tokens = append(tokens, c.Token())
	}
	assert.Equal(t, []string{"prev", "1", "", "5", "6", "7", "8", "9", "10", "next"}, tokens)
}
