package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/payscope/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Configure()
	// exits when invoked by the shell for completion.
	cmd.Completion().Complete("money")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(run(commander))
}

func run(commander *subcommands.Commander) int {
	defer cmd.Logger().Sync()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			return code
		}
	}
	return int(commander.Execute(context.Background()))
}

// registered reports whether name is a built-in sub-command.
func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
