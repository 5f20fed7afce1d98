package pane

// Rect is a region of a Grid.
type Rect struct {
	Row    int
	Col    int
	Height int
	Width  int
}

// Window is the part of a virtual pane copied to the screen.
type Window struct {
	Top    int
	Left   int
	Height int
	Width  int
}

// Blit copies win from src onto dst at dest. The copy is clipped to the
// smaller of the window and the destination rectangle, and to both grids.
func Blit(src *Grid, win Window, dst *Grid, dest Rect) {
	h := min(win.Height, dest.Height)
	w := min(win.Width, dest.Width)
	for i := 0; i < h; i++ {
		sr, dr := win.Top+i, dest.Row+i
		if sr < 0 || sr >= src.rows || dr < 0 || dr >= dst.rows {
			continue
		}
		for j := 0; j < w; j++ {
			c, ok := src.Cell(sr, win.Left+j)
			if !ok {
				continue
			}
			// A double-width rune split by the window edge becomes a blank.
			if (c.Rune == 0 && j == 0) || (j == w-1 && c.Rune != 0 && isWide(src, sr, win.Left+j)) {
				c = Cell{Rune: ' ', Style: c.Style}
			}
			dst.set(dr, dest.Col+j, c)
		}
	}
}

func isWide(g *Grid, row, col int) bool {
	next, ok := g.Cell(row, col+1)
	return ok && next.Rune == 0
}

// Viewport tracks the scroll position of a list pane.
//
// The rows Top..Top+VisibleHeight (inclusive) are on screen, so a band of h
// rows has a VisibleHeight of h-1. After every mutation
// Top <= Selected <= Top+VisibleHeight holds.
type Viewport struct {
	Top           int
	Selected      int
	VisibleHeight int
	Count         int
}

// Scroll moves Top the minimum distance needed to keep Selected on screen.
func (v *Viewport) Scroll() {
	if v.Selected-v.Top > v.VisibleHeight {
		v.Top = v.Selected - v.VisibleHeight
	} else if v.Selected < v.Top {
		v.Top = v.Selected
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// Move shifts the selection by delta, clamped to the item range, and reports
// whether it changed.
func (v *Viewport) Move(delta int) bool {
	if v.Count == 0 {
		return false
	}
	n := v.Selected + delta
	if n < 0 {
		n = 0
	}
	if n > v.Count-1 {
		n = v.Count - 1
	}
	if n == v.Selected {
		return false
	}
	v.Selected = n
	v.Scroll()
	return true
}

// SetCount updates the item count and re-clamps the selection.
func (v *Viewport) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	v.Count = n
	if v.Selected > n-1 {
		v.Selected = n - 1
	}
	if v.Selected < 0 {
		v.Selected = 0
	}
	if v.Top > v.Selected {
		v.Top = v.Selected
	}
	v.Scroll()
}

// SetVisibleHeight updates the visible span and scrolls if needed.
func (v *Viewport) SetVisibleHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.VisibleHeight = h
	v.Scroll()
}

// Window returns the pane window for a band of the given width.
func (v Viewport) Window(width int) Window {
	return Window{Top: v.Top, Height: v.VisibleHeight + 1, Width: width}
}

// Valid reports whether the scroll invariant holds.
func (v Viewport) Valid() bool {
	if v.Count == 0 {
		return v.Selected == 0
	}
	return v.Selected >= 0 && v.Selected < v.Count &&
		v.Top <= v.Selected && v.Selected <= v.Top+v.VisibleHeight
}
