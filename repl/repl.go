// Package repl drives the eval engine: the outer read loop with its
// prompt and ok acknowledgment, quit/exit handling, the line sources
// (reader and terminal backed), file loading and the EvalString API.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"fortio.org/terminal"
	"grol.io/gorth/eval"
	"grol.io/gorth/token"
)

const (
	PROMPT       = "gorth> "
	CONTINUATION = "... "
	// ACK is the fixed ready acknowledgment after each evaluated line.
	ACK = "ok"
)

type Options struct {
	ShowOk      bool
	Prompt      string
	HistoryFile string
	MaxHistory  int
	MaxDepth    int
}

// readerSource yields tokenized lines from a plain reader, writing
// the prompt (if any) to out when the outer loop requests one.
type readerSource struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func newReaderSource(in io.Reader, out io.Writer, prompt string) *readerSource {
	return &readerSource{scanner: bufio.NewScanner(in), out: out, prompt: prompt}
}

func (r *readerSource) NextLine(prompt bool) ([]string, error) {
	if prompt && r.prompt != "" && r.out != nil {
		fmt.Fprint(r.out, r.prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return token.Tokenize(r.scanner.Text()), nil
}

// termSource yields tokenized lines from the interactive terminal,
// switching to the continuation prompt for nested multi-line reads.
type termSource struct {
	term   *terminal.Terminal
	prompt string
}

func (t *termSource) NextLine(prompt bool) ([]string, error) {
	if prompt {
		t.term.SetPrompt(t.prompt)
	} else {
		t.term.SetPrompt(CONTINUATION)
	}
	line, err := t.term.ReadLine()
	if err != nil {
		return nil, err
	}
	return token.Tokenize(line), nil
}

// isExit recognizes the process-level quit/exit commands: exact,
// case-sensitive, alone on their line.
func isExit(toks []string) bool {
	return len(toks) == 1 && (toks[0] == "quit" || toks[0] == "exit")
}

// run is the outer loop: read a line, evaluate it, drain reported
// errors, acknowledge. Stops on end of input or quit/exit.
func run(s *eval.State, src eval.Source, out io.Writer, options Options) []string {
	s.Out = out
	s.Source = src
	if s.LoadFile == nil {
		s.LoadFile = LoadFile
	}
	if options.MaxDepth > 0 {
		s.MaxDepth = options.MaxDepth
	}
	var all []string
	for {
		toks, err := src.NextLine(true)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Errf("Error reading line: %v", err)
			}
			return all
		}
		if isExit(toks) {
			log.LogVf("%s requested", toks[0])
			return all
		}
		s.EvalLine(toks)
		errs := s.TakeErrors()
		for _, e := range errs {
			log.Errf("%s", e)
		}
		all = append(all, errs...)
		if options.ShowOk {
			fmt.Fprintln(out, ACK)
		}
	}
}

// EvalAll reads and evaluates every line of in against s, writing
// interpreter output to out. Returns the reported errors.
func EvalAll(s *eval.State, in io.Reader, out io.Writer, options Options) []string {
	return run(s, newReaderSource(in, out, options.Prompt), out, options)
}

// EvalString evaluates a program with a fresh state and returns its
// output and the errors it reported.
func EvalString(what string) (string, []string) {
	return EvalStringWithOption(Options{}, what)
}

func EvalStringWithOption(options Options, what string) (string, []string) {
	s := eval.NewState()
	out := &strings.Builder{}
	errs := EvalAll(s, strings.NewReader(what), out, options)
	return out.String(), errs
}

// LoadFile streams the named file's lines through the state, swapping
// the live source so continuation reads inside the file stay inside
// the file. Installed as the default eval.State.LoadFile.
func LoadFile(s *eval.State, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	log.Infof("Loading %s", name)
	src := newReaderSource(f, nil, "")
	prev := s.Source
	s.Source = src
	defer func() { s.Source = prev }()
	for {
		toks, rerr := src.NextLine(false)
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return rerr
		}
		s.EvalLine(toks)
	}
}

// Interactive runs the terminal repl until end of input or quit.
func Interactive(options Options) int {
	if options.Prompt == "" {
		options.Prompt = PROMPT
	}
	options.ShowOk = true
	term, err := terminal.Open(context.Background())
	if err != nil {
		return log.FErrf("Error opening terminal: %v", err)
	}
	defer term.Close()
	term.SetPrompt(options.Prompt)
	term.NewHistory(options.MaxHistory)
	if options.HistoryFile != "" {
		if err := term.SetHistoryFile(options.HistoryFile); err != nil {
			log.Warnf("History file %s not usable: %v", options.HistoryFile, err)
		}
	}
	s := eval.NewState()
	ac := NewCompletion(s)
	term.SetAutoCompleteCallback(ac.AutoComplete())
	run(s, &termSource{term: term, prompt: options.Prompt}, term.Out, options)
	return 0
}
