package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&runCmd{}, "")
	commander.Register(&fmtCmd{}, "")

	// A bare invocation starts the interactive loop.
	if len(os.Args) == 1 {
		_ = flag.CommandLine.Parse([]string{"run"})
	} else {
		flag.Parse()
	}
	os.Exit(int(commander.Execute(context.Background())))
}
