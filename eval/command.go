package eval

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/log"
	"fortio.org/safecast"
	"grol.io/gorth/object"
	"grol.io/gorth/token"
)

// Kind discriminates the closed set of builtin command variants.
type Kind uint8

const (
	PrintString Kind = iota // ." ... "
	Comment                 // ( ... )
	Define                  // : name ... ;
	Variable                // VARIABLE name
	Constant                // value CONSTANT name
	Allot                   // n ALLOT
	If                      // IF ... [ELSE ...] THEN
	Do                      // start limit DO ... LOOP
	Begin                   // BEGIN ... UNTIL
	Load                    // LOAD filename
)

// Command is a parsed builtin that consumed more of the line (or more
// lines) to construct itself. Transient: built per occurrence,
// evaluated once, discarded. A failed parse still yields a usable
// object; evaluating it reports the parse error and does nothing.
type Command struct {
	kind Kind
	err  error    // parse failure, reported at evaluation time
	name string   // define/variable/constant/load target
	text []string // captured string-literal tokens
	body []string // define body, do/begin body, if true-branch
	alt  []string // if false-branch (empty when no ELSE)
	src  []string // every token consumed, terminators included
	rest []string // remainder of the line for the evaluator to resume on
}

// scanner pulls tokens from the in-hand line, requesting continuation
// lines from the Source when the policy allows, and records
// everything it consumes (so an enclosing block reader can splice a
// nested construct's raw text back into its own body).
type scanner struct {
	st     *State
	toks   []string
	policy Policy
	src    []string
}

func (sc *scanner) next() (string, bool) {
	for len(sc.toks) == 0 {
		if sc.policy == MustCompleteNow || sc.st.Source == nil {
			return "", false
		}
		line, err := sc.st.Source.NextLine(false)
		if err != nil {
			return "", false
		}
		sc.toks = line
	}
	tok := sc.toks[0]
	sc.toks = sc.toks[1:]
	sc.src = append(sc.src, tok)
	return tok, true
}

// nextOnLine reads a single token without ever pulling a new line,
// for the single-token declarations (VARIABLE, CONSTANT, LOAD names).
func (sc *scanner) nextOnLine() (string, bool) {
	if len(sc.toks) == 0 {
		return "", false
	}
	return sc.next()
}

// readRaw collects tokens verbatim until the terminator, with no
// nesting awareness: the lazy strategy, used for string literals,
// comments and word-definition bodies (which are re-resolved on each
// invocation).
func (sc *scanner) readRaw(term string) ([]string, error) {
	var out []string
	for {
		tok, ok := sc.next()
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrSyntax, term)
		}
		if tok == term {
			return out, nil
		}
		out = append(out, tok)
	}
}

// readBlock collects a block's raw tokens until one of the stop
// terminators at nesting depth zero: the eager strategy. A nested
// structured word is immediately constructed as a Command (recursing
// into its parser), so an inner THEN/LOOP/UNTIL can never close the
// outer block; the nested construct's consumed text is spliced back
// verbatim since blocks are replayed as plain token lists.
func (sc *scanner) readBlock(stops ...string) ([]string, string, error) {
	var out []string
	for {
		tok, ok := sc.next()
		if !ok {
			return nil, "", fmt.Errorf("%w: missing %q", ErrSyntax, stops[len(stops)-1])
		}
		if slices.Contains(stops, tok) {
			return out, tok, nil
		}
		out = append(out, tok)
		word := tok
		if kw, aok := token.LookupAlias(tok); aok {
			word = kw
		}
		if !token.IsStructured(word) {
			continue
		}
		nested := sc.st.parseCommand(word, sc.toks, sc.policy)
		if nested.err != nil {
			return nil, "", nested.err
		}
		out = append(out, nested.src...)
		sc.src = append(sc.src, nested.src...)
		sc.toks = nested.rest
	}
}

// parseCommand constructs the Command object for structured keyword kw
// from the rest of the current line, per the caller's policy.
func (s *State) parseCommand(kw string, rest []string, policy Policy) *Command {
	sc := &scanner{st: s, toks: rest, policy: policy}
	cmd := &Command{}
	switch kw {
	case token.PRINTSTR:
		cmd.kind = PrintString
		cmd.text, cmd.err = sc.readRaw(token.ENDQUOTE)
	case token.COMMENT:
		cmd.kind = Comment
		_, cmd.err = sc.readRaw(token.RPAREN)
	case token.DEFINE:
		cmd.kind = Define
		name, ok := sc.next()
		switch {
		case !ok:
			cmd.err = fmt.Errorf("%w: missing word name", ErrDefinition)
		case name == token.SEMICOLON:
			cmd.err = fmt.Errorf("%w: empty word name", ErrDefinition)
		default:
			cmd.name = name
			cmd.body, cmd.err = sc.readRaw(token.SEMICOLON)
		}
	case token.VARIABLE:
		cmd.kind = Variable
		cmd.name, cmd.err = declName(sc, "variable")
	case token.CONSTANT:
		cmd.kind = Constant
		cmd.name, cmd.err = declName(sc, "constant")
	case token.ALLOT:
		cmd.kind = Allot
	case token.IF:
		cmd.kind = If
		var stop string
		cmd.body, stop, cmd.err = sc.readBlock(token.ELSE, token.THEN)
		if cmd.err == nil && stop == token.ELSE {
			cmd.alt, _, cmd.err = sc.readBlock(token.THEN)
		}
	case token.DO:
		cmd.kind = Do
		cmd.body, _, cmd.err = sc.readBlock(token.LOOP)
	case token.BEGIN:
		cmd.kind = Begin
		cmd.body, _, cmd.err = sc.readBlock(token.UNTIL)
	case token.LOAD:
		cmd.kind = Load
		name, ok := sc.nextOnLine()
		if !ok {
			cmd.err = fmt.Errorf("%w: missing filename", ErrLoad)
		}
		cmd.name = name
	default:
		log.Critf("parseCommand called for non structured keyword %q", kw)
	}
	cmd.src = sc.src
	cmd.rest = sc.toks
	log.Debugf("parsed command kind %d name %q body %d err %v rest %d",
		cmd.kind, cmd.name, len(cmd.body), cmd.err, len(cmd.rest))
	return cmd
}

// declName reads the single name token of a VARIABLE/CONSTANT
// declaration from the current line only.
func declName(sc *scanner, what string) (string, error) {
	name, ok := sc.nextOnLine()
	if !ok {
		return "", fmt.Errorf("%w: missing %s name", ErrDefinition, what)
	}
	return name, nil
}

// checkName enforces the naming rules shared by word, variable and
// constant declarations: no numeric names, no shadowing of builtins,
// operator aliases, or constants.
func (s *State) checkName(name string) error {
	if token.IsInteger(name) {
		return fmt.Errorf("%w: %q is a number", ErrDefinition, name)
	}
	if token.IsKeyword(name) {
		return fmt.Errorf("%w: %q is a builtin", ErrDefinition, name)
	}
	if _, ok := token.LookupAlias(name); ok {
		return fmt.Errorf("%w: %q is an operator", ErrDefinition, name)
	}
	if s.Words.HasConstant(name) {
		return fmt.Errorf("%w: %q is a constant", ErrDefinition, name)
	}
	return nil
}

// evalCommand executes a constructed command against the interpreter
// state. Preconditions are checked before any mutation: a failing
// command has no stack or heap effect at all.
func (s *State) evalCommand(cmd *Command) {
	if cmd.err != nil {
		s.report(cmd.err)
		return
	}
	switch cmd.kind {
	case PrintString:
		fmt.Fprintf(s.Out, "%s ", strings.Join(cmd.text, " "))
	case Comment:
		// captured and dropped
	case Define:
		if err := s.checkName(cmd.name); err != nil {
			s.report(err)
			return
		}
		s.Words.Define(cmd.name, cmd.body)
	case Variable:
		s.evalVariable(cmd.name)
	case Constant:
		s.evalConstant(cmd.name)
	case Allot:
		s.evalAllot()
	case If:
		if !s.need(1, token.IF) {
			return
		}
		body := cmd.body
		if s.Stack.Pop() == 0 {
			body = cmd.alt
		}
		s.evalTokens(slices.Clone(body), MustCompleteNow)
	case Do:
		s.evalDo(cmd)
	case Begin:
		s.evalBegin(cmd)
	case Load:
		if s.LoadFile == nil {
			s.reportf(ErrLoad, "no file loader available")
			return
		}
		if err := s.LoadFile(s, cmd.name); err != nil {
			s.reportf(ErrLoad, "%q: %v", cmd.name, err)
		}
	}
}

func (s *State) evalVariable(name string) {
	if err := s.checkName(name); err != nil {
		s.report(err)
		return
	}
	if s.Heap.Defined(name) {
		s.reportf(ErrDefinition, "variable %q already declared", name)
		return
	}
	if s.Words.HasWord(name) {
		log.LogVf("variable %q shadows a user word", name)
	}
	s.Heap.Create(name)
}

func (s *State) evalConstant(name string) {
	if err := s.checkName(name); err != nil {
		s.report(err)
		return
	}
	if s.Heap.Defined(name) {
		s.reportf(ErrDefinition, "%q is a variable", name)
		return
	}
	if !s.need(1, token.CONSTANT) {
		return
	}
	s.Words.DefineConstant(name, s.Stack.Pop())
}

func (s *State) evalAllot() {
	if !s.need(1, token.ALLOT) {
		return
	}
	n := s.Stack.Pop()
	count, err := safecast.Convert[int](n)
	if err != nil || count < 0 {
		s.reportf(ErrDefinition, "cannot allot %d cells", n)
		return
	}
	s.Heap.Allot(count)
}

// evalDo unrolls the loop: one body replay per index, ascending, with
// every literal token I textually replaced by the index.
func (s *State) evalDo(cmd *Command) {
	if !s.need(2, token.DO) {
		return
	}
	limit := s.Stack.Pop()
	start := s.Stack.Pop()
	if start < 0 || limit < 0 || start > limit {
		s.reportf(ErrLoopRange, "start %d limit %d", start, limit)
		return
	}
	for i := start; i < limit; i++ {
		s.evalTokens(substituteIndex(cmd.body, i), MustCompleteNow)
	}
}

// evalBegin replays the body then pops the flag: zero loops again,
// non-zero stops. An empty stack at the pop reports underflow and
// terminates the loop (looping on would spin forever on a stack that
// can no longer change the outcome).
func (s *State) evalBegin(cmd *Command) {
	for {
		s.evalTokens(slices.Clone(cmd.body), MustCompleteNow)
		if !s.need(1, token.UNTIL) {
			return
		}
		if s.Stack.Pop() != 0 {
			return
		}
	}
}

// substituteIndex copies body with every token exactly equal to I replaced
// by the decimal text of i.
func substituteIndex(body []string, i object.Cell) []string {
	text := strconv.FormatInt(i, 10)
	out := make([]string, len(body))
	for k, tok := range body {
		if tok == "I" {
			out[k] = text
		} else {
			out[k] = tok
		}
	}
	return out
}
