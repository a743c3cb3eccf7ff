package token

import "fortio.org/sets"

// Info enables introspection of known keywords, aliases and
// terminators (used by the repl for completion).
type GorthInfo struct {
	Keywords    sets.Set[string]
	Aliases     sets.Set[string]
	Terminators sets.Set[string]
}

func Info() GorthInfo {
	i := GorthInfo{
		Keywords:    keywords.Clone(),
		Aliases:     sets.New[string](),
		Terminators: sets.New(SEMICOLON, ENDQUOTE, RPAREN, ELSE, THEN, LOOP, UNTIL),
	}
	for a := range aliases {
		i.Aliases.Add(a)
	}
	return i
}
