package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

func TestOpen_CentersOnScreen(t *testing.T) {
	d := Open(80, 24, 10, 60, []string{"Cancel"}, "Progress")

	assert.Equal(t, pane.Rect{Row: 7, Col: 10, Height: 10, Width: 60}, d.Rect)
	assert.Contains(t, d.Line(0), " Progress ")
	assert.Contains(t, d.Line(8), "<Cancel>")
}

func TestOpen_LargerThanScreenClampsToOrigin(t *testing.T) {
	d := Open(20, 5, 10, 60, nil, "")

	assert.Equal(t, 0, d.Rect.Row)
	assert.Equal(t, 0, d.Rect.Col)

	// Drawing onto a smaller screen clips instead of panicking.
	screen := pane.NewGrid(5, 20)
	d.Draw(screen)
	assert.Equal(t, "╭", string([]rune(screen.Line(0))[0]))
}

func TestDialog_MultipleButtonsShareRow(t *testing.T) {
	d := Open(80, 24, 6, 42, []string{"OK", "Cancel"}, "")

	row := d.Line(4)
	ok := strings.Index(row, "<  OK  >")
	cancel := strings.Index(row, "<Cancel>")
	require.GreaterOrEqual(t, ok, 0, row)
	require.GreaterOrEqual(t, cancel, 0, row)
	assert.Less(t, ok, cancel)
}

func TestDialog_SetRowAlignsAndClips(t *testing.T) {
	d := Open(80, 24, 6, 12, nil, "")

	d.SetRow(1, "left", AlignLeft)
	d.SetRow(2, "mid", AlignCenter)
	d.SetRow(3, "right", AlignRight)
	d.SetRow(4, "much too long for this", AlignLeft)

	assert.Equal(t, "│left      │", d.Line(1))
	assert.Equal(t, "│   mid    │", d.Line(2))
	assert.Equal(t, "│     right│", d.Line(3))
	assert.Equal(t, "│much too l│", d.Line(4))

	text, ok := d.Row(4)
	require.True(t, ok)
	assert.Equal(t, "much too long for this", text)
}

func TestDialog_SetRowIgnoresBorders(t *testing.T) {
	d := Open(80, 24, 5, 12, nil, "")
	top := d.Line(0)

	d.SetRow(0, "nope", AlignLeft)
	d.SetRow(4, "nope", AlignLeft)
	d.SetRow(-1, "nope", AlignLeft)

	assert.Equal(t, top, d.Line(0))
	assert.NotContains(t, d.Line(4), "nope")
}

func TestDialog_SetProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		ratio   float64
		filled  int
	}{
		{name: "empty", current: 0, total: 10, ratio: 0, filled: 0},
		{name: "half", current: 5, total: 10, ratio: 0.5, filled: 19},
		{name: "full", current: 10, total: 10, ratio: 1, filled: 39},
		{name: "zero total", current: 3, total: 0, ratio: 0, filled: 0},
		{name: "overflow", current: 12, total: 10, ratio: 1, filled: 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Open(80, 24, 10, 60, []string{"Cancel"}, "Progress")

			got := d.SetProgress(5, tt.current, tt.total, false, 0)

			assert.InDelta(t, tt.ratio, got, 1e-9)
			line := d.Line(5)
			assert.Equal(t, tt.filled, strings.Count(line, "|"))
			assert.Equal(t, 9, runeIndex(line, '['))
			assert.Equal(t, 49, runeIndex(line, ']'))
		})
	}
}

func TestDialog_SetProgressPercentLabel(t *testing.T) {
	d := Open(80, 24, 10, 60, nil, "")

	d.SetProgress(5, 0, 10, true, 0)
	assert.Contains(t, d.Line(5), "  0%")

	d.SetProgress(5, 10, 10, true, 0)
	assert.Contains(t, d.Line(5), "100%")

	d.SetProgress(5, 1, 0, true, 0)
	assert.Contains(t, d.Line(5), "  0%")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "  0%", Percent(0, 10))
	assert.Equal(t, " 50%", Percent(5, 10))
	assert.Equal(t, "100%", Percent(10, 10))
	assert.Equal(t, "  0%", Percent(7, 0))
}

func TestDialog_RepositionKeepsContent(t *testing.T) {
	d := Open(80, 24, 10, 60, []string{"Cancel"}, "Progress")
	d.SetRow(2, "Initializing Z-Wave driver", AlignCenter)
	before := d.Line(2)

	d.Reposition(120, 40)

	assert.Equal(t, pane.Rect{Row: 15, Col: 30, Height: 10, Width: 60}, d.Rect)
	assert.Equal(t, before, d.Line(2))

	screen := pane.NewGrid(40, 120)
	d.Draw(screen)
	assert.Contains(t, screen.Line(17), "Initializing Z-Wave driver")
}

func TestAlerts_DisplayInRaiseOrder(t *testing.T) {
	var a Alerts

	shown, gen := a.Raise("A")
	require.True(t, shown)
	shownB, _ := a.Raise("B")
	shownC, _ := a.Raise("C")
	assert.False(t, shownB)
	assert.False(t, shownC)
	assert.Equal(t, []string{"B", "C"}, a.Backlog())

	var seen []string
	cur, ok := a.Current()
	require.True(t, ok)
	seen = append(seen, cur)

	for {
		tr := a.Expire(gen)
		require.False(t, tr.Stale)
		if tr.Idle() {
			break
		}
		seen = append(seen, tr.Text)
		gen = tr.Generation
	}

	assert.Equal(t, []string{"A", "B", "C"}, seen)
	_, ok = a.Current()
	assert.False(t, ok)
	assert.Empty(t, a.Backlog())
}

func TestAlerts_StaleExpiryIgnored(t *testing.T) {
	var a Alerts

	_, first := a.Raise("first")
	tr := a.Expire(first)
	require.True(t, tr.Idle())

	_, second := a.Raise("second")
	require.NotEqual(t, first, second)

	// A late expiry for the first alert must not dismiss the second.
	tr = a.Expire(first)
	assert.True(t, tr.Stale)
	cur, ok := a.Current()
	assert.True(t, ok)
	assert.Equal(t, "second", cur)
}

func TestAlerts_ExpireWhileIdleIsStale(t *testing.T) {
	var a Alerts

	assert.True(t, a.Expire(0).Stale)
	assert.True(t, a.Expire(7).Stale)
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", Fit("ab", 4, AlignLeft))
	assert.Equal(t, " ab ", Fit("ab", 4, AlignCenter))
	assert.Equal(t, "  ab", Fit("ab", 4, AlignRight))
	assert.Equal(t, "abcd", Fit("abcdef", 4, AlignRight))
	assert.Equal(t, "", Fit("abc", 0, AlignLeft))
}

func runeIndex(s string, want rune) int {
	for i, r := range []rune(s) {
		if r == want {
			return i
		}
	}
	return -1
}
