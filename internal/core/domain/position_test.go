package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Sortable(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want float64
	}{
		{"line start", "1.0", 1.0},
		{"mid line", "5.250", 5.25},
		{"large line", "120.0", 120.0},
		{"malformed no dot", "12", 0.0},
		{"malformed text", "abc.def", 0.0},
		{"empty", "", 0.0},
		{"trailing garbage", "3.x", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.pos.Sortable(), 1e-9)
		})
	}
}

func TestPosition_Sortable_MonotonicInLine(t *testing.T) {
	// A later line always sorts after an earlier one regardless of the
	// character offset, for offsets within the supported line length.
	p1 := NewPosition(3, 999)
	p2 := NewPosition(4, 0)
	assert.Less(t, p1.Sortable(), p2.Sortable())

	p3 := NewPosition(4, 1)
	assert.Less(t, p2.Sortable(), p3.Sortable())
}

func TestPosition_Validate(t *testing.T) {
	text := "first line\nsecond\n\nlast"

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"first char", "1.0", true},
		{"end of first line", "1.10", true},
		{"past end of line", "1.11", false},
		{"second line", "2.3", true},
		{"empty line start", "3.0", true},
		{"empty line past end", "3.1", false},
		{"last line", "4.4", true},
		{"line zero", "0.0", false},
		{"line past end", "5.0", false},
		{"negative char", "1.-1", false},
		{"malformed", "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Validate(text))
		})
	}
}

func TestFindText(t *testing.T) {
	text := "the quick brown fox\njumps over\nthe lazy dog"

	pos, ok := FindText(text, "quick", 1)
	require.True(t, ok)
	assert.Equal(t, Position("1.4"), pos)

	// Scanning starts at startLine, skipping earlier matches.
	pos, ok = FindText(text, "the", 2)
	require.True(t, ok)
	assert.Equal(t, Position("3.0"), pos)

	// Case-sensitive, first match only.
	_, ok = FindText(text, "Quick", 1)
	assert.False(t, ok)

	_, ok = FindText(text, "missing", 1)
	assert.False(t, ok)

	// Start line past the end of the text.
	_, ok = FindText(text, "the", 10)
	assert.False(t, ok)
}

func TestPosition_Distance(t *testing.T) {
	assert.InDelta(t, 1.0, Position("5.0").Distance("4.0"), 1e-9)
	assert.InDelta(t, 15.0, Position("5.0").Distance("20.0"), 1e-9)
	assert.InDelta(t, 0.5, Position("2.500").Distance("2.0"), 1e-9)
}

func TestNewPosition(t *testing.T) {
	assert.Equal(t, Position("12.40"), NewPosition(12, 40))
	assert.Equal(t, 12, NewPosition(12, 40).Line())
	assert.Equal(t, 0, Position("garbage").Line())
}
