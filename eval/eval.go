// Package eval is the word-resolution and control-flow execution
// engine: the token dispatcher, the builtin command object model and
// the multi-line control-flow parser/evaluator. Parsing and execution
// interleave in a single pass over the token stream.
package eval

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"fortio.org/log"
	"grol.io/gorth/object"
	"grol.io/gorth/token"
)

// Error kinds. All are reported and recorded on the State; execution
// then continues at the next token or line.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrSyntax         = errors.New("syntax error")
	ErrDefinition     = errors.New("definition error")
	ErrLoopRange      = errors.New("invalid loop range")
	ErrUnknownWord    = errors.New("unknown word")
	ErrLoad           = errors.New("load error")
	ErrAddress        = errors.New("address out of range")
)

// Policy tells a multi-line reader what to do when the in-hand tokens
// run out before its terminator is found.
type Policy uint8

const (
	// MayRequestMore pulls continuation lines from the Source.
	MayRequestMore Policy = iota
	// MustCompleteNow marks the parse failed instead: used when
	// replaying stored token sequences that have no live input.
	MustCompleteNow
)

// Source yields one line of tokens at a time. Continuation reads for
// unfinished multi-line constructs pass prompt=false; only the outer
// loop requests a prompt. io.EOF ends input.
type Source interface {
	NextLine(prompt bool) ([]string, error)
}

// Approximate maximum depth of nested block replay, to avoid a
// runaway recursive definition blowing the goroutine stack.
const DefaultMaxDepth = 10_000

// State is the whole interpreter state: value stack, heap, word
// dictionary, output and input plumbing. No ambient globals; every
// command evaluates against the State it is handed.
type State struct {
	Out    io.Writer
	Stack  *object.Stack
	Heap   *object.Heap
	Words  *object.Dictionary
	Source Source
	// LoadFile is installed by the collaborator driving the
	// interpreter (the repl): it streams a file's lines back
	// through this same State.
	LoadFile func(s *State, name string) error
	MaxDepth int
	depth    int
	errs     []string
	// set by PRINT: a line break is owed before the next DUMP.
	pendingNL bool
}

func NewState() *State {
	return &State{
		Out:      os.Stdout,
		Stack:    &object.Stack{},
		Heap:     object.NewHeap(),
		Words:    object.NewDictionary(),
		MaxDepth: DefaultMaxDepth,
	}
}

// Reset clears transient evaluation state (not the stack/heap/words).
func (s *State) Reset() {
	s.depth = 0
	s.errs = nil
	s.pendingNL = false
}

func (s *State) report(err error) {
	log.Debugf("reported: %v", err)
	s.errs = append(s.errs, err.Error())
}

func (s *State) reportf(kind error, format string, args ...interface{}) {
	s.report(fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...))
}

// TakeErrors returns the errors recorded since the last call and
// clears them. The outer loop drains this after every line.
func (s *State) TakeErrors() []string {
	errs := s.errs
	s.errs = nil
	return errs
}

// need is the single underflow check: every word that needs n stack
// values calls it and skips its entire effect when it fails.
func (s *State) need(n int, word string) bool {
	if s.Stack.Has(n) {
		return true
	}
	s.reportf(ErrStackUnderflow, "%s needs %d value(s), have %d", word, n, s.Stack.Len())
	return false
}

// EvalLine evaluates one live input line; multi-line constructs on it
// may pull continuation lines from the Source.
func (s *State) EvalLine(toks []string) {
	s.evalTokens(toks, MayRequestMore)
}

// evalTokens consumes the token list one token at a time. The list is
// destroyed as it runs: callers replaying stored bodies pass a copy.
func (s *State) evalTokens(toks []string, policy Policy) {
	if s.depth > s.MaxDepth {
		s.reportf(ErrSyntax, "max nesting depth %d exceeded", s.MaxDepth)
		return
	}
	s.depth++
	for len(toks) > 0 {
		tok := toks[0]
		toks = s.evalToken(tok, toks[1:], policy)
	}
	s.depth--
}

// evalToken resolves a single token (literal, alias, variable,
// constant, builtin, user word, in that order) and returns the tokens
// the rest of the line evaluation should resume on.
func (s *State) evalToken(tok string, rest []string, policy Policy) []string {
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		s.Stack.Push(v)
		return rest
	}
	word := tok
	alias := false
	if kw, ok := token.LookupAlias(tok); ok {
		word = kw
		alias = true
	}
	if !alias {
		if addr, ok := s.Heap.Address(tok); ok {
			s.Stack.Push(addr)
			return rest
		}
		if v, ok := s.Words.Constant(tok); ok {
			s.Stack.Push(v)
			return rest
		}
	}
	if token.IsKeyword(word) {
		if token.IsStructured(word) {
			cmd := s.parseCommand(word, rest, policy)
			s.evalCommand(cmd)
			return cmd.rest
		}
		s.execBuiltin(word)
		return rest
	}
	if body, ok := s.Words.Word(tok); ok {
		log.LogVf("invoking user word %q (%d tokens)", tok, len(body))
		// splice a private copy of the body in front of the rest
		// of the line and keep going.
		return append(body, rest...)
	}
	s.reportf(ErrUnknownWord, "%q", tok)
	return rest
}

// execBuiltin runs a builtin that needs no further input.
func (s *State) execBuiltin(word string) {
	switch word {
	case token.ADD, token.SUB, token.MUL, token.DIV, token.MOD,
		token.AND, token.OR, token.XOR, token.EQ, token.GT, token.LT:
		s.binaryOp(word)
	case token.DUP:
		if s.need(1, word) {
			s.Stack.Push(s.Stack.Top())
		}
	case token.DROP:
		if s.need(1, word) {
			s.Stack.Pop()
		}
	case token.SWAP:
		if s.need(2, word) {
			b, a := s.Stack.Pop(), s.Stack.Pop()
			s.Stack.Push(b)
			s.Stack.Push(a)
		}
	case token.OVER:
		if s.need(2, word) {
			s.Stack.Push(s.Stack.Peek(1))
		}
	case token.ROT:
		// a b c -> b c a
		if s.need(3, word) {
			c, b, a := s.Stack.Pop(), s.Stack.Pop(), s.Stack.Pop()
			s.Stack.Push(b)
			s.Stack.Push(c)
			s.Stack.Push(a)
		}
	case token.INVERT:
		if s.need(1, word) {
			s.Stack.Push(^s.Stack.Pop())
		}
	case token.PRINT:
		if s.need(1, word) {
			fmt.Fprintf(s.Out, "%d ", s.Stack.Pop())
			s.pendingNL = true
		}
	case token.EMIT:
		// Emits the character code of the first character of the
		// value's decimal text, not the character whose code equals
		// the value: 65 EMIT prints "54 " ('6' is 54).
		if s.need(1, word) {
			text := strconv.FormatInt(s.Stack.Pop(), 10)
			fmt.Fprintf(s.Out, "%d ", text[0])
		}
	case token.STORE:
		s.store()
	case token.FETCH:
		s.fetch()
	case token.DUMP:
		if s.pendingNL {
			fmt.Fprintln(s.Out)
			s.pendingNL = false
		}
		fmt.Fprintln(s.Out, s.Stack.Dump())
	case token.CR:
		fmt.Fprintln(s.Out)
		s.pendingNL = false
	default:
		// structured keywords are dispatched in evalToken
		log.Critf("unhandled builtin %q", word)
	}
}

// binaryOp pops the shallow then the deep operand and pushes
// deep OP shallow. Division and modulo by zero push 0.
func (s *State) binaryOp(word string) {
	if !s.need(2, word) {
		return
	}
	shallow := s.Stack.Pop()
	deep := s.Stack.Pop()
	var r object.Cell
	switch word {
	case token.ADD:
		r = deep + shallow
	case token.SUB:
		r = deep - shallow
	case token.MUL:
		r = deep * shallow
	case token.DIV:
		if shallow != 0 {
			r = deep / shallow
		}
	case token.MOD:
		if shallow != 0 {
			r = deep % shallow
		}
	case token.AND:
		r = deep & shallow
	case token.OR:
		r = deep | shallow
	case token.XOR:
		r = deep ^ shallow
	case token.EQ:
		r = object.BoolCell(deep == shallow)
	case token.GT:
		r = object.BoolCell(deep > shallow)
	case token.LT:
		r = object.BoolCell(deep < shallow)
	}
	s.Stack.Push(r)
}

// store implements ! : value addr STORE. The address is validated
// before anything is popped so a failing store mutates nothing.
func (s *State) store() {
	if !s.need(2, token.STORE) {
		return
	}
	addr := s.Stack.Peek(0)
	if _, ok := s.Heap.Get(addr); !ok {
		s.reportf(ErrAddress, "store to %d", addr)
		return
	}
	addr = s.Stack.Pop()
	s.Heap.Set(addr, s.Stack.Pop())
}

// fetch implements @ : addr FETCH pushes the cell at addr.
func (s *State) fetch() {
	if !s.need(1, token.FETCH) {
		return
	}
	addr := s.Stack.Peek(0)
	v, ok := s.Heap.Get(addr)
	if !ok {
		s.reportf(ErrAddress, "fetch from %d", addr)
		return
	}
	s.Stack.Pop()
	s.Stack.Push(v)
}
