package repl

import (
	"fmt"
	"strings"

	"fortio.org/sets"
	"fortio.org/terminal"
	"grol.io/gorth/eval"
	"grol.io/gorth/token"
)

// AutoComplete completes the word under the cursor against builtin
// keywords and whatever words, variables and constants the user has
// defined so far in this state.
type AutoComplete struct {
	state *eval.State
}

func NewCompletion(s *eval.State) *AutoComplete {
	return &AutoComplete{state: s}
}

func (a *AutoComplete) AutoComplete() terminal.AutoCompleteCallback {
	return func(t *terminal.Terminal, line string, pos int, key rune) (newLine string, newPos int, ok bool) {
		if key != '\t' {
			return // only tab for now
		}
		return a.autoCompleteCallback(t, line, pos)
	}
}

func (a *AutoComplete) autoCompleteCallback(t *terminal.Terminal, line string, pos int) (newLine string, newPos int, ok bool) {
	head := line[:pos]
	start := strings.LastIndexAny(head, " \t") + 1
	prefix := head[start:]
	if prefix == "" {
		return
	}
	candidates := a.candidates(prefix)
	if len(candidates) == 0 {
		return
	}
	if len(candidates) > 1 {
		fmt.Fprint(t.Out, "One of: ")
		for _, c := range candidates {
			fmt.Fprint(t.Out, c, " ")
		}
		fmt.Fprintln(t.Out)
	}
	completion := commonPrefix(candidates)
	newLine = head[:start] + completion
	return newLine, len(newLine), true
}

// candidates returns the sorted known words starting with prefix.
func (a *AutoComplete) candidates(prefix string) []string {
	info := token.Info() // returns copies, safe to grow
	all := info.Keywords
	for al := range info.Aliases {
		all.Add(al)
	}
	for w := range a.state.Words.Names() {
		all.Add(w)
	}
	all.Add(a.state.Heap.Names()...)
	matches := sets.New[string]()
	for w := range all {
		if strings.HasPrefix(w, prefix) {
			matches.Add(w)
		}
	}
	return sets.Sort(matches)
}

func commonPrefix(words []string) string {
	p := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, p) {
			p = p[:len(p)-1]
		}
	}
	return p
}
