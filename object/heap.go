package object

import (
	"fortio.org/safecast"
)

// Heap is the flat addressable cell memory backing declared variables
// and raw-allotted space. Growth is append-only; every name in the
// table maps to a valid index for the life of the process.
type Heap struct {
	cells []Cell
	names map[string]int
}

func NewHeap() *Heap {
	return &Heap{names: make(map[string]int)}
}

// Create appends one zero cell and binds name to its index.
// The caller validates the name (see eval definition rules).
func (h *Heap) Create(name string) int {
	idx := len(h.cells)
	h.cells = append(h.cells, 0)
	h.names[name] = idx
	return idx
}

// Allot appends n zero cells without binding a name.
func (h *Heap) Allot(n int) {
	h.cells = append(h.cells, make([]Cell, n)...)
}

// index converts a cell-valued address to a checked slice index.
// Addresses are plain cells so arithmetic on them is unchecked until
// this point; anything outside current bounds reports !ok.
func (h *Heap) index(addr Cell) (int, bool) {
	idx, err := safecast.Convert[int](addr)
	if err != nil || idx < 0 || idx >= len(h.cells) {
		return 0, false
	}
	return idx, true
}

func (h *Heap) Get(addr Cell) (Cell, bool) {
	idx, ok := h.index(addr)
	if !ok {
		return 0, false
	}
	return h.cells[idx], true
}

func (h *Heap) Set(addr, value Cell) bool {
	idx, ok := h.index(addr)
	if !ok {
		return false
	}
	h.cells[idx] = value
	return true
}

// Address returns the index bound to a declared variable name. A bare
// variable name used as a word pushes this, not the value.
func (h *Heap) Address(name string) (Cell, bool) {
	idx, ok := h.names[name]
	return Cell(idx), ok
}

// Defined reports whether name is a declared variable.
func (h *Heap) Defined(name string) bool {
	_, ok := h.names[name]
	return ok
}

// Size returns the current number of cells.
func (h *Heap) Size() int {
	return len(h.cells)
}

// Names returns the declared variable names, for completion.
func (h *Heap) Names() []string {
	out := make([]string, 0, len(h.names))
	for n := range h.names {
		out = append(out, n)
	}
	return out
}
