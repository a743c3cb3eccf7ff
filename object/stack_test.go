package object_test

import (
	"testing"

	"grol.io/gorth/object"
)

func TestStackPushPop(t *testing.T) {
	s := &object.Stack{}
	if s.Has(1) {
		t.Errorf("empty stack claims to have a value")
	}
	s.Push(1)
	s.Push(2)
	s.Push(3)
	if !s.Has(3) || s.Has(4) {
		t.Errorf("Has() wrong for len 3 stack")
	}
	if s.Top() != 3 || s.Peek(0) != 3 || s.Peek(1) != 2 || s.Peek(2) != 1 {
		t.Errorf("Top/Peek wrong: %s", s.Dump())
	}
	// one pop per drop, length decreases by exactly one
	for want := 3; want >= 1; want-- {
		if s.Len() != want {
			t.Errorf("len %d want %d", s.Len(), want)
		}
		if got := s.Pop(); got != object.Cell(want) {
			t.Errorf("popped %d want %d", got, want)
		}
	}
	if s.Len() != 0 || s.Has(1) {
		t.Errorf("stack not empty after popping everything")
	}
}

func TestStackDump(t *testing.T) {
	s := &object.Stack{}
	if got := s.Dump(); got != "<0>" {
		t.Errorf("empty dump %q", got)
	}
	s.Push(5)
	s.Push(-7)
	if got := s.Dump(); got != "<2> 5 -7" {
		t.Errorf("dump %q", got)
	}
	if s.Len() != 2 {
		t.Errorf("Dump consumed the stack")
	}
}

func TestBoolCell(t *testing.T) {
	if object.BoolCell(true) != -1 || object.BoolCell(false) != 0 {
		t.Errorf("boolean convention broken")
	}
}
