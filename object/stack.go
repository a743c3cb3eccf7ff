// Package object holds the interpreter's mutable state containers:
// the value stack, the heap (flat cell memory plus variable bindings)
// and the dictionary of user words and constants. Pure containers:
// error reporting and word semantics live in the eval package.
package object

import (
	"strconv"
	"strings"

	"fortio.org/log"
)

// Cell is the sole value type: a signed integer.
// Boolean convention: -1 true, 0 false.
type Cell = int64

const (
	True  Cell = -1
	False Cell = 0
)

func BoolCell(b bool) Cell {
	if b {
		return True
	}
	return False
}

// Stack is the value stack, top at the end of the slice.
type Stack struct {
	cells []Cell
}

// Has is the single underflow check: it reports whether n genuine
// values are present. Callers must skip their entire effect when it
// returns false, so a failing word never partially applies.
func (s *Stack) Has(n int) bool {
	if len(s.cells) >= n {
		return true
	}
	log.Debugf("stack has %d of %d wanted", len(s.cells), n)
	return false
}

func (s *Stack) Push(v Cell) {
	s.cells = append(s.cells, v)
}

// Pop removes and returns the top cell. Callers check Has first.
func (s *Stack) Pop() Cell {
	v := s.cells[len(s.cells)-1]
	s.cells = s.cells[:len(s.cells)-1]
	return v
}

// Top returns the top cell without removing it.
func (s *Stack) Top() Cell {
	return s.cells[len(s.cells)-1]
}

// Peek returns the cell n positions below the top (Peek(0) == Top).
func (s *Stack) Peek(n int) Cell {
	return s.cells[len(s.cells)-1-n]
}

func (s *Stack) Len() int {
	return len(s.cells)
}

// Dump renders the whole stack bottom to top, e.g. "<3> 1 2 3".
func (s *Stack) Dump() string {
	out := strings.Builder{}
	out.WriteString("<")
	out.WriteString(strconv.Itoa(len(s.cells)))
	out.WriteString(">")
	for _, c := range s.cells {
		out.WriteString(" ")
		out.WriteString(strconv.FormatInt(c, 10))
	}
	return out.String()
}
