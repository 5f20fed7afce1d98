package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

func TestCellStyle(t *testing.T) {
	st := CellStyle(pane.Style{Color: pane.ColorHeaderHi, Attr: pane.AttrBold | pane.AttrStandout})
	assert.Equal(t, White, st.GetForeground())
	assert.Equal(t, Cyan, st.GetBackground())
	assert.True(t, st.GetBold())
	assert.True(t, st.GetReverse())
	assert.False(t, st.GetFaint())

	st = CellStyle(alertStyle)
	assert.True(t, st.GetBlink())
	assert.Equal(t, Red, st.GetBackground())

	st = CellStyle(pane.Style{Color: pane.Color(200)})
	assert.Equal(t, White, st.GetForeground(), "unknown colors fall back to normal")
}

func TestKeyHint(t *testing.T) {
	assert.Equal(t, "↑/↓ select  ←/→ sort/tab  tab list/detail  enter close", newKeyMap().hint())
}
