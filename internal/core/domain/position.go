package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Position addresses a location within rendered text as "line.char":
// 1-indexed line, 0-indexed character offset. A Position is not
// guaranteed valid against arbitrary content; use Validate to check it
// against the line/char bounds of the text it targets.
type Position string

// sortableCharScale converts a character offset into the fractional part
// of a sortable value. This assumes no line exceeds 1000 characters;
// offsets beyond that compare equal to offsets on the next line.
const sortableCharScale = 1000.0

// NewPosition builds a Position from a line number and character offset.
func NewPosition(line, char int) Position {
	return Position(fmt.Sprintf("%d.%d", line, char))
}

// parse splits the position into line and char components.
func (p Position) parse() (line, char int, ok bool) {
	head, tail, found := strings.Cut(string(p), ".")
	if !found {
		return 0, 0, false
	}
	line, err := strconv.Atoi(head)
	if err != nil {
		return 0, 0, false
	}
	char, err = strconv.Atoi(tail)
	if err != nil {
		return 0, 0, false
	}
	return line, char, true
}

// Line returns the 1-indexed line component, or 0 for malformed input.
func (p Position) Line() int {
	line, _, ok := p.parse()
	if !ok {
		return 0
	}
	return line
}

// Char returns the 0-indexed character offset, or 0 for malformed input.
func (p Position) Char() int {
	_, char, ok := p.parse()
	if !ok {
		return 0
	}
	return char
}

// Sortable converts the position into a comparable numeric form,
// monotonic in line then char. Malformed positions yield 0.0 rather
// than an error so that annotation lists still render (and sort first)
// when stored position data is corrupt.
func (p Position) Sortable() float64 {
	line, char, ok := p.parse()
	if !ok {
		return 0.0
	}
	return float64(line) + float64(char)/sortableCharScale
}

// Validate reports whether the position falls inside the given text:
// line within [1, total lines] and char within [0, len(line)].
func (p Position) Validate(text string) bool {
	line, char, ok := p.parse()
	if !ok {
		return false
	}
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return false
	}
	if char < 0 || char > len(lines[line-1]) {
		return false
	}
	return true
}

// Distance returns the absolute difference between the sortable forms
// of two positions.
func (p Position) Distance(other Position) float64 {
	d := p.Sortable() - other.Sortable()
	if d < 0 {
		return -d
	}
	return d
}

// FindText scans text line by line from startLine (1-indexed) and
// returns the position of the first literal, case-sensitive match of
// needle. The second return value is false when no match exists.
func FindText(text, needle string, startLine int) (Position, bool) {
	if startLine < 1 {
		startLine = 1
	}
	lines := strings.Split(text, "\n")
	if startLine > len(lines) {
		return "", false
	}
	for i := startLine - 1; i < len(lines); i++ {
		if char := strings.Index(lines[i], needle); char != -1 {
			return NewPosition(i+1, char), true
		}
	}
	return "", false
}
