// Package diagnostics provides the file registry and severity-tagged
// report collection shared by every stage of the WFL pipeline.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Position is a 1-based (line, column) pair within a single source file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range between two positions in the same file.
type Span struct {
	Start Position
	End   Position
}

// FileID opaquely identifies a registered source file.
type FileID string

// File holds a registered source's text plus its line-start index, so
// offset<->(line,col) conversions never rescan the text.
type File struct {
	ID         FileID
	Name       string
	Text       string
	lineStarts []int
}

func newFile(name, text string) *File {
	text = normalizeNewlines(text)
	f := &File{
		ID:   FileID(uuid.NewString()),
		Name: name,
		Text: text,
	}
	f.lineStarts = []int{0}
	for i, r := range text {
		if r == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// normalizeNewlines rewrites CRLF and lone CR to LF so offset arithmetic
// never has to special-case line-ending width (spec.md §6).
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// OffsetToPosition converts a byte offset into the file to a (line, column)
// pair. Column is counted in runes, matching the lexer's own column count.
func (f *File) OffsetToPosition(offset int) Position {
	i := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	lineStart := f.lineStarts[i]
	col := 1
	for _, r := range f.Text[lineStart:offset] {
		_ = r
		col++
	}
	return Position{Line: i + 1, Column: col}
}

// PositionToOffset is the inverse of OffsetToPosition.
func (f *File) PositionToOffset(pos Position) int {
	if pos.Line-1 < 0 || pos.Line-1 >= len(f.lineStarts) {
		return len(f.Text)
	}
	offset := f.lineStarts[pos.Line-1]
	col := 1
	for i, r := range f.Text[offset:] {
		if col == pos.Column {
			return offset + i
		}
		col++
		_ = r
	}
	return len(f.Text)
}

// Line returns the raw text of a single 1-based line, without its
// terminator, for caret-style diagnostic rendering.
func (f *File) Line(n int) string {
	if n-1 < 0 || n-1 >= len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	if end < start {
		end = start
	}
	return f.Text[start:end]
}

// Registry maps FileIDs to their registered File contents.
type Registry struct {
	files map[FileID]*File
	order []FileID
}

// NewRegistry creates an empty file registry.
func NewRegistry() *Registry {
	return &Registry{files: make(map[FileID]*File)}
}

// Register adds a source file under name and returns its FileID.
func (r *Registry) Register(name, text string) FileID {
	f := newFile(name, text)
	r.files[f.ID] = f
	r.order = append(r.order, f.ID)
	return f.ID
}

// File returns the registered file for id, or nil if unknown.
func (r *Registry) File(id FileID) *File {
	return r.files[id]
}
