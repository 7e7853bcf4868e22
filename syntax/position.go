package syntax

import (
	"fmt"
	"sort"
	"unicode/utf16"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps code-point offsets to 1-based line and column numbers.
// Lines are terminated by "\n"; a "\r" before it belongs to the line.
type LineIndex struct {
	text       []rune
	lineStarts []int
}

func NewLineIndex(text string) *LineIndex {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: runes, lineStarts: starts}
}

func (x *LineIndex) LineCount() int {
	return len(x.lineStarts)
}

func (x *LineIndex) Position(offset int) Position {
	offset = x.clamp(offset)
	line := sort.SearchInts(x.lineStarts, offset+1) - 1
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - x.lineStarts[line] + 1,
	}
}

// UTF16Position returns the 0-based line and the 0-based column in UTF-16
// code units, as used by editors speaking LSP.
func (x *LineIndex) UTF16Position(offset int) (line, column int) {
	offset = x.clamp(offset)
	line = sort.SearchInts(x.lineStarts, offset+1) - 1
	for _, r := range x.text[x.lineStarts[line]:offset] {
		column += utf16.RuneLen(r)
	}
	return line, column
}

// Offset converts a 0-based line and UTF-16 column back to a code-point offset.
func (x *LineIndex) Offset(line, column int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.lineStarts) {
		return len(x.text)
	}
	offset := x.lineStarts[line]
	for units := 0; offset < len(x.text) && x.text[offset] != '\n'; offset++ {
		units += utf16.RuneLen(x.text[offset])
		if units > column {
			break
		}
	}
	return offset
}

func (x *LineIndex) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(x.text) {
		return len(x.text)
	}
	return offset
}
