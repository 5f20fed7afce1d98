// Package layout computes the dashboard geometry from the terminal size.
//
// A Spec declares an ordered set of columns and horizontal bands. Each member
// is either fixed (exact size) or flexible (minimum size). Compute hands the
// space left over after the declared sizes to the flexible members, evenly,
// with the integer-division remainder going to the last flexible member:
//
//	spec := layout.Spec{
//	    Columns: []layout.Column{{Width: 4}, {Width: 10, Flex: true}, {Width: 10, Flex: true}},
//	    Rows:    []layout.Band{{Height: 1}, {Height: 5, Flex: true}},
//	}
//	r := layout.Compute(80, 24, spec)
//
// When the terminal is smaller than the declared sizes, optional columns are
// dropped from the right first; if that is not enough the layout is returned
// at its declared minimums and marked Degraded. Callers keep rendering and
// rely on clipping.
//
// Compute is pure: the same inputs always produce the same Resolved value and
// the Spec is never modified.
package layout

// Column declares one column of the device list.
type Column struct {
	Title string
	// Width is the exact width of a fixed column or the minimum width of a
	// flexible one.
	Width int
	Flex  bool
	// Optional columns are hidden when the terminal is too narrow for them.
	Optional bool
}

// Band declares one horizontal band of the screen.
type Band struct {
	Name   string
	Height int
	Flex   bool
}

// Spec is the declarative layout of the dashboard.
type Spec struct {
	Columns []Column
	Rows    []Band
}

// Resolved holds concrete sizes for a Spec at a given terminal size.
type Resolved struct {
	Width  int
	Height int

	// Columns holds one width per declared column; hidden columns are 0.
	Columns []int
	Hidden  []bool

	// Rows holds one height per declared band.
	Rows []int

	// Degraded is set when the declared minimums did not fit.
	Degraded bool
}

// Compute resolves spec for a terminal of width x height cells.
func Compute(width, height int, spec Spec) Resolved {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cols, hidden, colsDegraded := resolveColumns(width, spec.Columns)

	heights := make([]int, len(spec.Rows))
	var flexRows []int
	for i, b := range spec.Rows {
		heights[i] = nonNegative(b.Height)
		if b.Flex {
			flexRows = append(flexRows, i)
		}
	}
	rowsDegraded := distribute(height, heights, flexRows)

	return Resolved{
		Width:    width,
		Height:   height,
		Columns:  cols,
		Hidden:   hidden,
		Rows:     heights,
		Degraded: colsDegraded || rowsDegraded,
	}
}

func resolveColumns(width int, columns []Column) ([]int, []bool, bool) {
	widths := make([]int, len(columns))
	hidden := make([]bool, len(columns))
	sum := 0
	for i, c := range columns {
		widths[i] = nonNegative(c.Width)
		sum += widths[i]
	}

	// Drop optional columns right to left until the declared widths fit.
	for i := len(columns) - 1; i >= 0 && sum > width; i-- {
		if columns[i].Optional {
			sum -= widths[i]
			widths[i] = 0
			hidden[i] = true
		}
	}

	var flex []int
	for i, c := range columns {
		if c.Flex && !hidden[i] {
			flex = append(flex, i)
		}
	}
	degraded := distribute(width, widths, flex)
	return widths, hidden, degraded
}

// distribute grows the flexible entries of sizes to fill total. It reports
// true when the fixed sizes alone exceed total.
func distribute(total int, sizes []int, flex []int) bool {
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	remainder := total - sum
	if remainder < 0 {
		return true
	}
	if remainder == 0 || len(flex) == 0 {
		return false
	}
	each, extra := remainder/len(flex), remainder%len(flex)
	for _, i := range flex {
		sizes[i] += each
	}
	sizes[flex[len(flex)-1]] += extra
	return false
}

// RowOffset returns the first screen row of band i.
func (r Resolved) RowOffset(i int) int {
	off := 0
	for j := 0; j < i && j < len(r.Rows); j++ {
		off += r.Rows[j]
	}
	return off
}

// ColumnOffset returns the first screen column of column i.
func (r Resolved) ColumnOffset(i int) int {
	off := 0
	for j := 0; j < i && j < len(r.Columns); j++ {
		off += r.Columns[j]
	}
	return off
}

// VisibleColumns returns the indexes of the columns that are not hidden.
func (r Resolved) VisibleColumns() []int {
	out := make([]int, 0, len(r.Columns))
	for i := range r.Columns {
		if i < len(r.Hidden) && r.Hidden[i] {
			continue
		}
		out = append(out, i)
	}
	return out
}

// TotalWidth is the sum of all resolved column widths.
func (r Resolved) TotalWidth() int {
	return r.ColumnOffset(len(r.Columns))
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
