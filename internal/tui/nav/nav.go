// Package nav holds the navigation state of the dashboard: which pane has
// focus, the list selection and scroll position, the sort column and the
// active detail tab.
//
// State is owned by the render loop and mutated only from it.
package nav

import "github.com/buzzdavidson/ozwcommander/internal/tui/pane"

// Mode selects which pane the arrow keys drive.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	if m == ModeDetail {
		return "detail"
	}
	return "list"
}

// firstSortable is the index of the first sortable column. Column 0 is the
// selection indicator.
const firstSortable = 1

// State is the navigation state machine.
type State struct {
	Mode       Mode
	List       pane.Viewport
	SortColumn int
	DetailTab  int
	DetailTop  int

	columns int
	hidden  []bool
	tabs    int
	stopped bool
}

// New returns the initial state for the given column and tab titles.
func New(columns []string, tabs []string) *State {
	s := &State{
		Mode:    ModeList,
		columns: len(columns),
		tabs:    len(tabs),
	}
	if s.columns > firstSortable {
		s.SortColumn = firstSortable
	}
	return s
}

// Selected returns the selected list index.
func (s *State) Selected() int {
	return s.List.Selected
}

// MoveSelection moves the list selection by delta. It only applies in list
// mode and reports whether the selection changed. The detail pane scrolls
// back to the top when it does.
func (s *State) MoveSelection(delta int) bool {
	if s.Mode != ModeList {
		return false
	}
	if !s.List.Move(delta) {
		return false
	}
	s.DetailTop = 0
	return true
}

// Select moves the selection to index i, clamped to the item range, and
// scrolls it into view. Unlike MoveSelection it applies in either mode.
func (s *State) Select(i int) {
	s.List.Selected = min(max(i, 0), max(s.List.Count-1, 0))
	s.List.Scroll()
}

// SetItemCount updates the number of list items.
func (s *State) SetItemCount(n int) {
	s.List.SetCount(n)
}

// SetVisibleHeight updates the number of list rows on screen, minus one.
func (s *State) SetVisibleHeight(h int) {
	s.List.SetVisibleHeight(h)
}

// CycleSortColumn moves the sort column by delta, skipping the indicator
// column and hidden columns.
func (s *State) CycleSortColumn(delta int) {
	n := s.columns - firstSortable
	if n <= 0 || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	col := s.SortColumn
	for ; delta > 0; delta-- {
		next, ok := s.nextVisible(col, step)
		if !ok {
			return
		}
		col = next
	}
	s.SortColumn = col
}

// nextVisible returns the first visible sortable column after col in the
// direction of step.
func (s *State) nextVisible(col, step int) (int, bool) {
	n := s.columns - firstSortable
	for i := 1; i <= n; i++ {
		c := firstSortable + wrap(col-firstSortable+i*step, n)
		if !s.isHidden(c) {
			return c, true
		}
	}
	return col, false
}

func (s *State) isHidden(col int) bool {
	return col < len(s.hidden) && s.hidden[col]
}

// SetHiddenColumns records which columns the layout dropped. A sort column
// that became hidden moves forward to the next visible one; the result
// reports whether the sort column changed.
func (s *State) SetHiddenColumns(hidden []bool) bool {
	s.hidden = append(s.hidden[:0], hidden...)
	if !s.isHidden(s.SortColumn) {
		return false
	}
	next, ok := s.nextVisible(s.SortColumn, 1)
	if !ok {
		return false
	}
	s.SortColumn = next
	return true
}

// CycleDetailTab moves the active detail tab by delta.
func (s *State) CycleDetailTab(delta int) {
	if s.tabs == 0 {
		return
	}
	s.DetailTab = wrap(s.DetailTab+delta, s.tabs)
	s.DetailTop = 0
}

// Cycle handles the left and right arrows: the sort column in list mode, the
// detail tab in detail mode.
func (s *State) Cycle(delta int) {
	if s.Mode == ModeDetail {
		s.CycleDetailTab(delta)
		return
	}
	s.CycleSortColumn(delta)
}

// ToggleMode flips between list and detail mode.
func (s *State) ToggleMode() {
	if s.Mode == ModeList {
		s.Mode = ModeDetail
	} else {
		s.Mode = ModeList
	}
}

// ScrollDetail scrolls the detail pane by delta in detail mode, keeping the
// last content row reachable. It reports whether the offset changed.
func (s *State) ScrollDetail(delta, contentRows, visible int) bool {
	if s.Mode != ModeDetail {
		return false
	}
	maxTop := max(contentRows-visible, 0)
	top := min(max(s.DetailTop+delta, 0), maxTop)
	if top == s.DetailTop {
		return false
	}
	s.DetailTop = top
	return true
}

// RequestStop sets the stop flag.
func (s *State) RequestStop() {
	s.stopped = true
}

// Stopped reports whether a stop was requested.
func (s *State) Stopped() bool {
	return s.stopped
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
