package object_test

import (
	"slices"
	"testing"

	"grol.io/gorth/object"
)

func TestHeapCreateAndAccess(t *testing.T) {
	h := object.NewHeap()
	if h.Size() != 0 {
		t.Errorf("new heap not empty")
	}
	if idx := h.Create("X"); idx != 0 {
		t.Errorf("first variable at %d", idx)
	}
	if idx := h.Create("Y"); idx != 1 {
		t.Errorf("second variable at %d", idx)
	}
	addr, ok := h.Address("X")
	if !ok || addr != 0 {
		t.Errorf("Address(X) = %d, %v", addr, ok)
	}
	if !h.Defined("Y") || h.Defined("Z") {
		t.Errorf("Defined wrong")
	}
	if !h.Set(0, 42) {
		t.Errorf("Set in bounds failed")
	}
	v, ok := h.Get(0)
	if !ok || v != 42 {
		t.Errorf("Get(0) = %d, %v", v, ok)
	}
	if v, ok = h.Get(1); !ok || v != 0 {
		t.Errorf("fresh cell = %d, %v want 0", v, ok)
	}
	names := h.Names()
	slices.Sort(names)
	if !slices.Equal(names, []string{"X", "Y"}) {
		t.Errorf("Names() = %v", names)
	}
}

func TestHeapBounds(t *testing.T) {
	h := object.NewHeap()
	h.Create("X")
	for _, addr := range []object.Cell{-1, 1, 99, 1 << 40} {
		if _, ok := h.Get(addr); ok {
			t.Errorf("Get(%d) should be out of range", addr)
		}
		if h.Set(addr, 1) {
			t.Errorf("Set(%d) should be out of range", addr)
		}
	}
}

func TestHeapAllot(t *testing.T) {
	h := object.NewHeap()
	h.Create("A")
	h.Allot(3)
	if h.Size() != 4 {
		t.Errorf("size %d want 4", h.Size())
	}
	// allotted space is addressable but unnamed
	if !h.Set(2, 7) {
		t.Errorf("allotted cell not writable")
	}
	if idx := h.Create("B"); idx != 4 {
		t.Errorf("variable after allot at %d want 4", idx)
	}
	if len(h.Names()) != 2 {
		t.Errorf("allot should not bind names")
	}
}
