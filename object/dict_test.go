package object_test

import (
	"testing"

	"grol.io/gorth/object"
)

func TestDictionaryWords(t *testing.T) {
	d := object.NewDictionary()
	if d.HasWord("F") {
		t.Errorf("empty dictionary has F")
	}
	d.Define("F", []string{"DUP", "*"})
	body, ok := d.Word("F")
	if !ok || len(body) != 2 {
		t.Errorf("Word(F) = %v, %v", body, ok)
	}
	// bodies are private copies: mutating one must not change the template
	body[0] = "CLOBBERED"
	body2, _ := d.Word("F")
	if body2[0] != "DUP" {
		t.Errorf("stored body mutated through a returned copy")
	}
	// redefinition replaces
	d.Define("F", []string{"1"})
	body, _ = d.Word("F")
	if len(body) != 1 || body[0] != "1" {
		t.Errorf("redefinition did not replace: %v", body)
	}
}

func TestDictionaryConstants(t *testing.T) {
	d := object.NewDictionary()
	d.DefineConstant("ANSWER", 42)
	v, ok := d.Constant("ANSWER")
	if !ok || v != 42 {
		t.Errorf("Constant(ANSWER) = %d, %v", v, ok)
	}
	if !d.HasConstant("ANSWER") || d.HasConstant("NOPE") {
		t.Errorf("HasConstant wrong")
	}
	names := d.Names()
	if !names.Has("ANSWER") {
		t.Errorf("Names() missing ANSWER")
	}
}
