package repl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grol.io/gorth/repl"
)

func TestEvalString(t *testing.T) {
	got, errs := repl.EvalString(": SQUARE DUP * ; 4 SQUARE .")
	if len(errs) > 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	if got != "16 " {
		t.Errorf("got %q want %q", got, "16 ")
	}
}

func TestEvalStringMultiLine(t *testing.T) {
	s := `VARIABLE X
5 X !
X @ 1 IF
. THEN`
	got, errs := repl.EvalString(s)
	if len(errs) > 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	if got != "5 " {
		t.Errorf("got %q want %q", got, "5 ")
	}
}

func TestEvalStringErrors(t *testing.T) {
	got, errs := repl.EvalString("BOGUS 2 3 + .")
	if got != "5 " {
		t.Errorf("got %q want evaluation to continue", got)
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "unknown word") {
		t.Errorf("got errors %v want unknown word", errs)
	}
}

func TestAckAndExit(t *testing.T) {
	got, errs := repl.EvalStringWithOption(repl.Options{ShowOk: true}, "1 .\nquit\n2 .")
	if len(errs) > 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	// one ok per evaluated line, nothing after quit
	if got != "1 ok\n" {
		t.Errorf("got %q want %q", got, "1 ok\n")
	}
	got, _ = repl.EvalStringWithOption(repl.Options{ShowOk: true}, "exit\n3 .")
	if got != "" {
		t.Errorf("got %q want exit to stop before evaluating anything", got)
	}
	// quit must be alone on its line to count
	got, _ = repl.EvalString("1 quit .")
	if !strings.Contains(got, "1 ") {
		t.Errorf("got %q, quit mid-line should be an ordinary (unknown) word", got)
	}
}

func TestPromptWriting(t *testing.T) {
	got, errs := repl.EvalStringWithOption(repl.Options{Prompt: "> "}, "1 IF\n7 .\nTHEN")
	if len(errs) > 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	// the prompt is only written for outer-loop reads (including the
	// final one that hits end of input), not for the two continuation
	// reads consumed by the IF
	if got != "> 7 > " {
		t.Errorf("got %q want %q", got, "> 7 > ")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "defs.fs")
	prog := ": CUBE DUP DUP * * ;\n2 CUBE .\n"
	if err := os.WriteFile(file, []byte(prog), 0o600); err != nil {
		t.Fatalf("writing %s: %v", file, err)
	}
	got, errs := repl.EvalString("LOAD " + file + "\n3 CUBE .")
	if len(errs) > 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	// the loaded definitions persist in the calling state
	if got != "8 27 " {
		t.Errorf("got %q want %q", got, "8 27 ")
	}
}

func TestLoadFileMissing(t *testing.T) {
	got, errs := repl.EvalString("LOAD /does/not/exist.fs\n1 .")
	if got != "1 " {
		t.Errorf("got %q want evaluation to continue", got)
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "load error") {
		t.Errorf("got errors %v want load error", errs)
	}
}
