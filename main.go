// Gorth is a small interactive stack-based (Forth-like) interpreter.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"
	"fortio.org/terminal"
	"fortio.org/version"
	"grol.io/gorth/eval"
	"grol.io/gorth/repl"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	HistoryFile string
}

var config = Config{}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("GORTH_", res, true)
	fmt.Fprintln(w, "# Gorth environment variables:")
	fmt.Fprint(w, str)
}

var hookBefore, hookAfter func() int

func Main() int {
	commandFlag := flag.String("c", "", "command/inline program to run instead of interactive mode")
	showOk := flag.Bool("ok", true, "print the ok acknowledgment after each evaluated line")
	sharedState := flag.Bool("shared-state", false, "All files share same interpreter state (default is new state for each)")
	const historyDefault = "~/.gorth_history" // virtual/token filename, will be replaced by actual home dir if not changed.
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	defaultHistoryFile := historyDefault
	errs := struct2env.SetFromEnv("GORTH_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	if config.HistoryFile != "" {
		defaultHistoryFile = config.HistoryFile
	}
	historyFile := flag.String("history", defaultHistoryFile, "history `file` to use")
	maxHistory := flag.Int("max-history", terminal.DefaultHistoryCapacity, "max history `size`, use 0 to disable.")
	maxDepth := flag.Int("max-depth", eval.DefaultMaxDepth, "Maximum nested block replay `depth`")
	cli.ArgsHelp = "*.fs files to interpret or `-` for stdin without prompt or no arguments for stdin repl..."
	cli.MaxArgs = -1
	cli.Main()
	histFile := *historyFile
	if histFile == historyDefault {
		homeDir, err := os.UserHomeDir()
		histFile = filepath.Join(homeDir, ".gorth_history")
		if err != nil {
			log.Warnf("Couldn't get user home dir: %v", err)
			histFile = ""
		}
	}
	_, gorthVersion, _ := version.FromBuildInfoPath("grol.io/gorth")
	log.Infof("gorth %s - welcome!", gorthVersion)
	options := repl.Options{
		ShowOk:      *showOk,
		HistoryFile: histFile,
		MaxHistory:  *maxHistory,
		MaxDepth:    *maxDepth,
	}
	if hookBefore != nil {
		ret := hookBefore()
		if ret != 0 {
			return ret
		}
	}
	if *commandFlag != "" {
		options.ShowOk = false
		res, errs := repl.EvalStringWithOption(options, *commandFlag)
		if len(errs) > 0 {
			log.Errf("Errors: %v", errs)
		}
		fmt.Print(res)
		return len(errs)
	}
	if len(flag.Args()) == 0 {
		return repl.Interactive(options)
	}
	s := eval.NewState()
	for _, file := range flag.Args() {
		ret := processOneFile(file, s, options)
		if ret != 0 {
			return ret
		}
		if !*sharedState {
			s = eval.NewState()
		}
	}
	log.Infof("All done")
	if hookAfter != nil {
		return hookAfter()
	}
	return 0
}

func processOneStream(s *eval.State, in io.Reader, options repl.Options) int {
	errs := repl.EvalAll(s, in, os.Stdout, options)
	if len(errs) > 0 {
		log.Errf("Errors: %v", errs)
	}
	return len(errs)
}

func processOneFile(file string, s *eval.State, options repl.Options) int {
	if file == "-" {
		log.Infof("Running on stdin")
		return processOneStream(s, os.Stdin, options)
	}
	f, err := os.Open(file)
	if err != nil {
		return log.FErrf("%v", err)
	}
	log.Infof("Running %s", file)
	code := processOneStream(s, f, options)
	f.Close()
	return code
}
