package pane

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_WriteClipsSilently(t *testing.T) {
	g := NewGrid(2, 5)

	assert.Equal(t, 5, g.Write(0, 0, "abcdefgh", Style{}))
	assert.Equal(t, "abcde", g.Line(0))

	assert.Equal(t, 0, g.Write(5, 0, "x", Style{}))
	assert.Equal(t, 0, g.Write(-1, 0, "x", Style{}))
	assert.Equal(t, 0, g.Write(1, 9, "x", Style{}))

	assert.Equal(t, 2, g.Write(1, -2, "wxyz", Style{}))
	assert.Equal(t, "yz   ", g.Line(1))
}

func TestGrid_WriteWideRunes(t *testing.T) {
	g := NewGrid(1, 5)

	n := g.Write(0, 0, "日本語", Style{})

	// Third rune would end past column 5.
	assert.Equal(t, 4, n)
	assert.Equal(t, "日本 ", g.Line(0))
	c, ok := g.Cell(0, 1)
	require.True(t, ok)
	assert.Equal(t, rune(0), c.Rune)
}

func TestGrid_FillAndClear(t *testing.T) {
	g := NewGrid(1, 4)
	warn := Style{Color: ColorWarn}

	g.Fill(0, 1, 10, '-', warn)
	assert.Equal(t, " ---", g.Line(0))
	c, _ := g.Cell(0, 3)
	assert.Equal(t, warn, c.Style)

	g.Clear()
	assert.Equal(t, "    ", g.Line(0))
}

func TestGrid_RenderCoalescesRuns(t *testing.T) {
	g := NewGrid(2, 4)
	g.Write(0, 0, "ab", Style{Color: ColorOK})
	g.Write(1, 0, "cd", Style{})

	var calls int
	out := g.Render(func(s Style) lipgloss.Style {
		calls++
		return lipgloss.NewStyle()
	})

	assert.Equal(t, "ab  \ncd  ", out)
	// Row 0 has two runs, row 1 a single run.
	assert.Equal(t, 3, calls)
}

func TestStyle_With(t *testing.T) {
	s := Style{Color: ColorHeaderHi}.With(AttrBold).With(AttrStandout)

	assert.True(t, s.Has(AttrBold))
	assert.True(t, s.Has(AttrBold|AttrStandout))
	assert.False(t, s.Has(AttrDim))
}

func TestBlit_CopiesWindow(t *testing.T) {
	src := NewPane()
	for i := 0; i < 10; i++ {
		src.Write(i, 0, strings.Repeat(string(rune('0'+i)), 8), Style{})
	}
	dst := NewGrid(6, 6)

	Blit(src, Window{Top: 3, Height: 3, Width: 4}, dst, Rect{Row: 1, Col: 1, Height: 10, Width: 10})

	assert.Equal(t, []string{
		"      ",
		" 3333 ",
		" 4444 ",
		" 5555 ",
		"      ",
		"      ",
	}, strings.Split(dst.String(), "\n"))
}

func TestBlit_ClipsToDestination(t *testing.T) {
	src := NewPane()
	for i := 0; i < 10; i++ {
		src.Write(i, 0, "abcdefghij", Style{})
	}
	dst := NewGrid(3, 3)

	Blit(src, Window{Top: 0, Height: 10, Width: 10}, dst, Rect{Row: 1, Col: 1, Height: 5, Width: 5})

	assert.Equal(t, "   \n ab\n ab", dst.String())
}

func TestBlit_SplitWideRuneBecomesBlank(t *testing.T) {
	src := NewGrid(1, 6)
	src.Write(0, 0, "a日b", Style{})
	dst := NewGrid(1, 6)

	Blit(src, Window{Height: 1, Width: 2}, dst, Rect{Height: 1, Width: 6})

	assert.Equal(t, "a     ", dst.Line(0))
}

func TestViewport_SevenNodes(t *testing.T) {
	v := Viewport{Count: 7}
	v.SetVisibleHeight(5)

	for i := 0; i < 6; i++ {
		require.True(t, v.Move(1))
	}
	assert.Equal(t, 6, v.Selected)
	assert.Equal(t, 1, v.Top)

	assert.False(t, v.Move(1), "moving past the last item is a no-op")
	assert.Equal(t, 6, v.Selected)
	assert.Equal(t, 1, v.Top)
}

func TestViewport_ScrollsBackUp(t *testing.T) {
	v := Viewport{Count: 20, Selected: 15, Top: 12, VisibleHeight: 4}

	for i := 0; i < 5; i++ {
		v.Move(-1)
	}
	assert.Equal(t, 10, v.Selected)
	assert.Equal(t, 10, v.Top)
}

func TestViewport_InvariantHoldsForRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		v := Viewport{Count: 1 + rng.Intn(40)}
		v.SetVisibleHeight(rng.Intn(10))
		for step := 0; step < 200; step++ {
			switch rng.Intn(10) {
			case 0:
				v.SetCount(rng.Intn(40))
			case 1:
				v.SetVisibleHeight(rng.Intn(10))
			default:
				v.Move(rng.Intn(7) - 3)
			}
			require.True(t, v.Valid(), "trial %d step %d: %+v", trial, step, v)
		}
	}
}

func TestViewport_SetCountClamps(t *testing.T) {
	v := Viewport{Count: 10, Selected: 9, Top: 5, VisibleHeight: 4}

	v.SetCount(3)
	assert.Equal(t, 2, v.Selected)
	assert.Equal(t, 2, v.Top)
	assert.True(t, v.Valid())

	v.SetCount(0)
	assert.Equal(t, 0, v.Selected)
	assert.Equal(t, 0, v.Top)
	assert.False(t, v.Move(1))
}

func TestViewport_Window(t *testing.T) {
	v := Viewport{Top: 4, VisibleHeight: 5}
	assert.Equal(t, Window{Top: 4, Height: 6, Width: 80}, v.Window(80))
}
