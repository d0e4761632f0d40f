package pagination

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/xelth-com/eckform/internal/models"
)

// DefaultPageSize matches the initial choice of the page size selector
const DefaultPageSize = 5

var (
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidToken    = errors.New("invalid navigation token")
)

// Source is the record collection a View pages through
type Source interface {
	Count() int
	Records() []models.Record
}

// State is the externally visible navigation state
type State struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// Page is everything the table renderer needs for one draw
type Page struct {
	Window[models.Record]
	Summary     string    `json:"summary"`
	Controls    []Control `json:"controls"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	TotalPages  int       `json:"totalPages"`
}

// View tracks the current page and page size over a Source
type View struct {
	mu          sync.Mutex
	src         Source
	currentPage int
	pageSize    int

	subMu     sync.Mutex
	subs      map[int]func(State)
	nextSubID int
}

// NewView starts on page 1. A non-positive pageSize uses DefaultPageSize.
func NewView(src Source, pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{
		src:         src,
		currentPage: 1,
		pageSize:    pageSize,
		subs:        make(map[int]func(State)),
	}
}

// State returns the clamped navigation state
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	st, _ := v.clampLocked(v.src.Count())
	return st
}

// SetPageSize changes the page size and goes back to page 1
func (v *View) SetPageSize(n int) error {
	if n < 1 {
		return ErrInvalidPageSize
	}
	v.mu.Lock()
	changed := v.pageSize != n || v.currentPage != 1
	v.pageSize = n
	v.currentPage = 1
	st, _ := v.clampLocked(v.src.Count())
	v.mu.Unlock()

	if changed {
		v.notify(st)
	}
	return nil
}

// GoTo jumps to page, clamped into the valid range
func (v *View) GoTo(page int) {
	v.move(func(current, total int) int { return ClampPage(page, total) })
}

// Prev moves one page back. It does nothing on the first page.
func (v *View) Prev() {
	v.move(func(current, total int) int {
		if current > 1 {
			return current - 1
		}
		return current
	})
}

// Next moves one page forward. It does nothing on the last page.
func (v *View) Next() {
	v.move(func(current, total int) int {
		if current < total {
			return current + 1
		}
		return current
	})
}

// Navigate applies a control token: "prev", "next" or a page number
func (v *View) Navigate(token string) error {
	switch token = strings.TrimSpace(token); token {
	case "prev":
		v.Prev()
	case "next":
		v.Next()
	default:
		page, err := strconv.Atoi(token)
		if err != nil || page < 1 {
			return ErrInvalidToken
		}
		v.GoTo(page)
	}
	return nil
}

// Refresh re-clamps the current page against the source, for example
// after records were deleted. Subscribers hear about it only when the
// page had to move.
func (v *View) Refresh() {
	v.mu.Lock()
	st, moved := v.clampLocked(v.src.Count())
	v.mu.Unlock()
	if moved {
		v.notify(st)
	}
}

// Render clamps the current page and computes the visible window and
// navigation controls
func (v *View) Render() Page {
	records := v.src.Records()
	v.mu.Lock()
	st, moved := v.clampLocked(len(records))
	v.mu.Unlock()

	if moved {
		v.notify(st)
	}

	w := ComputeWindow(records, st.CurrentPage, st.PageSize)
	return Page{
		Window:      w,
		Summary:     w.Summary(),
		Controls:    Controls(st.CurrentPage, st.TotalPages),
		CurrentPage: st.CurrentPage,
		PageSize:    st.PageSize,
		TotalPages:  st.TotalPages,
	}
}

// Subscribe registers fn for navigation state changes
func (v *View) Subscribe(fn func(State)) func() {
	v.subMu.Lock()
	id := v.nextSubID
	v.nextSubID++
	v.subs[id] = fn
	v.subMu.Unlock()

	return func() {
		v.subMu.Lock()
		delete(v.subs, id)
		v.subMu.Unlock()
	}
}

func (v *View) move(next func(current, total int) int) {
	v.mu.Lock()
	st, _ := v.clampLocked(v.src.Count())
	page := next(st.CurrentPage, st.TotalPages)
	changed := page != v.currentPage
	v.currentPage = page
	st.CurrentPage = page
	v.mu.Unlock()

	if changed {
		v.notify(st)
	}
}

// clampLocked pulls currentPage back into range and reports whether it moved
func (v *View) clampLocked(count int) (State, bool) {
	total := TotalPages(count, v.pageSize)
	clamped := ClampPage(v.currentPage, total)
	moved := clamped != v.currentPage
	v.currentPage = clamped
	return State{CurrentPage: clamped, PageSize: v.pageSize, TotalPages: total}, moved
}

func (v *View) notify(st State) {
	v.subMu.Lock()
	fns := make([]func(State), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
