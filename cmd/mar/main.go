package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	mar "github.com/laradeaque/mar"
)

const appName = "mar"

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// stderrColor reports whether stderr is a terminal that can take ANSI color.
func stderrColor() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		fmt.Println(mar.Version)
		return
	case "-h", "--help", "help":
		usage()
		return
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "usage: %s run <file.mar>\n", appName)
			os.Exit(2)
		}
		os.Exit(runFile(os.Args[2]))
	default:
		os.Exit(runFile(os.Args[1]))
	}
}

func usage() {
	fmt.Printf(`Mar %s

Usage:
  %s <file.mar>         Run a script.
  %s run <file.mar>     Same as above.
  %s version            Print the compiled version.

`, mar.Version, appName, appName, appName)
}

func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fail(errors.Wrapf(err, "%s: cannot read %s", appName, path))
		return 1
	}
	src := string(data)

	if err := mar.NewInterp().RunSource(src); err != nil {
		fail(mar.WrapErrorWithSource(err, src))
		return 1
	}
	return 0
}

func fail(err error) {
	msg := err.Error()
	if stderrColor() {
		msg = red(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
