package object

import (
	"slices"

	"fortio.org/log"
	"fortio.org/sets"
)

// Dictionary holds the two mutable word tables: user-defined words
// (name to raw, unresolved token sequence) and constants. Builtin
// keywords and operator aliases live in package token and are
// immutable, so they are not stored here.
type Dictionary struct {
	words  map[string][]string
	consts map[string]Cell
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		words:  make(map[string][]string),
		consts: make(map[string]Cell),
	}
}

// Define binds name to a raw token body, replacing any previous user
// word of that name. Redefinition checks against builtins, aliases and
// constants happen in eval before calling this.
func (d *Dictionary) Define(name string, body []string) {
	if _, ok := d.words[name]; ok {
		log.LogVf("redefining user word %q", name)
	}
	d.words[name] = slices.Clone(body)
}

// Word returns a private copy of the stored body: the evaluator
// consumes its input as it runs, so callers must never share the
// stored template.
func (d *Dictionary) Word(name string) ([]string, bool) {
	body, ok := d.words[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(body), true
}

func (d *Dictionary) HasWord(name string) bool {
	_, ok := d.words[name]
	return ok
}

func (d *Dictionary) DefineConstant(name string, value Cell) {
	d.consts[name] = value
}

func (d *Dictionary) Constant(name string) (Cell, bool) {
	v, ok := d.consts[name]
	return v, ok
}

func (d *Dictionary) HasConstant(name string) bool {
	_, ok := d.consts[name]
	return ok
}

// Names returns all user word and constant names, for completion.
func (d *Dictionary) Names() sets.Set[string] {
	s := sets.New[string]()
	for n := range d.words {
		s.Add(n)
	}
	for n := range d.consts {
		s.Add(n)
	}
	return s
}
