package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deviceColumns() []Column {
	return []Column{
		{Title: "", Width: 1},
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 10, Flex: true},
		{Title: "Location", Width: 10, Flex: true},
		{Title: "Type", Width: 20, Flex: true},
		{Title: "State", Width: 9, Optional: true},
		{Title: "Batt", Width: 7, Optional: true},
		{Title: "Signal", Width: 7, Optional: true},
	}
}

func screenBands() []Band {
	return []Band{
		{Name: "info", Height: 5},
		{Name: "list", Height: 5, Flex: true},
		{Name: "detail", Height: 10, Flex: true},
		{Name: "menu", Height: 1},
	}
}

func TestCompute_RemainderGoesToLastFlexColumn(t *testing.T) {
	// Declared widths sum to 68; 75 leaves 7 for three flexible columns.
	r := Compute(75, 24, Spec{Columns: deviceColumns()})

	assert.Equal(t, []int{1, 4, 12, 12, 23, 9, 7, 7}, r.Columns)
	assert.False(t, r.Degraded)
	assert.Equal(t, 75, r.TotalWidth())
}

func TestCompute_FlexibleColumnsAbsorbExactRemainder(t *testing.T) {
	for width := 68; width <= 300; width++ {
		r := Compute(width, 24, Spec{Columns: deviceColumns()})

		grown := (r.Columns[2] - 10) + (r.Columns[3] - 10) + (r.Columns[4] - 20)
		require.Equal(t, width-68, grown, "width %d", width)
		require.Equal(t, width, r.TotalWidth(), "width %d", width)
		require.Equal(t, r.Columns[2], r.Columns[3], "width %d", width)
		require.GreaterOrEqual(t, r.Columns[4], r.Columns[3], "width %d", width)
		require.False(t, r.Degraded)
	}
}

func TestCompute_RowBands(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		want     []int
		degraded bool
	}{
		{name: "exact fit", height: 21, want: []int{5, 5, 10, 1}},
		{name: "even split", height: 25, want: []int{5, 7, 12, 1}},
		{name: "odd remainder to last flex band", height: 24, want: []int{5, 6, 12, 1}},
		{name: "too short", height: 12, want: []int{5, 5, 10, 1}, degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(80, tt.height, Spec{Rows: screenBands()})
			assert.Equal(t, tt.want, r.Rows)
			assert.Equal(t, tt.degraded, r.Degraded)
		})
	}
}

func TestCompute_DropsOptionalColumnsWhenNarrow(t *testing.T) {
	r := Compute(50, 24, Spec{Columns: deviceColumns()})

	assert.Equal(t, []bool{false, false, false, false, false, true, true, true}, r.Hidden)
	// 45 declared visible, 5 spare: +1, +1, +3.
	assert.Equal(t, []int{1, 4, 11, 11, 23, 0, 0, 0}, r.Columns)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.VisibleColumns())
	assert.False(t, r.Degraded)
}

func TestCompute_DropsOnlyAsManyOptionalColumnsAsNeeded(t *testing.T) {
	r := Compute(61, 24, Spec{Columns: deviceColumns()})

	assert.Equal(t, []bool{false, false, false, false, false, false, false, true}, r.Hidden)
	assert.Equal(t, 61, r.TotalWidth())
}

func TestCompute_DegradesToMinimums(t *testing.T) {
	r := Compute(30, 8, Spec{Columns: deviceColumns(), Rows: screenBands()})

	assert.True(t, r.Degraded)
	assert.Equal(t, []int{1, 4, 10, 10, 20, 0, 0, 0}, r.Columns)
	for _, w := range r.Columns {
		assert.GreaterOrEqual(t, w, 0)
	}
	assert.Equal(t, []int{5, 5, 10, 1}, r.Rows)
}

func TestCompute_NoFlexibleMembers(t *testing.T) {
	spec := Spec{
		Columns: []Column{{Width: 3}, {Width: 4}},
		Rows:    []Band{{Height: 2}},
	}
	r := Compute(100, 50, spec)

	assert.Equal(t, []int{3, 4}, r.Columns)
	assert.Equal(t, []int{2}, r.Rows)
	assert.False(t, r.Degraded)
}

func TestCompute_IsIdempotentAndDoesNotMutateSpec(t *testing.T) {
	spec := Spec{Columns: deviceColumns(), Rows: screenBands()}

	first := Compute(97, 31, spec)
	second := Compute(97, 31, spec)

	assert.Equal(t, first, second)
	assert.Equal(t, deviceColumns(), spec.Columns)
	assert.Equal(t, screenBands(), spec.Rows)
}

func TestCompute_NegativeDimensions(t *testing.T) {
	r := Compute(-5, -1, Spec{Columns: deviceColumns(), Rows: screenBands()})

	assert.Equal(t, 0, r.Width)
	assert.Equal(t, 0, r.Height)
	assert.True(t, r.Degraded)
}

func TestResolved_Offsets(t *testing.T) {
	r := Compute(75, 24, Spec{Columns: deviceColumns(), Rows: screenBands()})

	assert.Equal(t, 0, r.ColumnOffset(0))
	assert.Equal(t, 5, r.ColumnOffset(2))
	assert.Equal(t, 17, r.ColumnOffset(3))
	assert.Equal(t, 0, r.RowOffset(0))
	assert.Equal(t, 5, r.RowOffset(1))
	assert.Equal(t, 11, r.RowOffset(2))
	assert.Equal(t, 23, r.RowOffset(3))
	assert.Equal(t, 24, r.RowOffset(10))
}
