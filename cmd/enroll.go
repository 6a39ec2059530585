package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/payscope/roster"
	"github.com/google/subcommands"
)

type enrollCmd struct {
	grant string
}

func (*enrollCmd) Name() string     { return "enroll" }
func (*enrollCmd) Synopsis() string { return "register a player in the roster" }
func (*enrollCmd) Usage() string {
	return `money enroll [-grant <capability>] <player>...

  Registers players in the roster, giving each a new account identifier.
  Players already enrolled keep their identifier. Only the console can enroll.

Usage Examples:
$ money enroll Steve Alex
$ money enroll -grant money.set Steve
`
}

func (c *enrollCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.grant, "grant", "", "Capability to grant to the players, e.g. money.set.")
}

func (c *enrollCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *caller != roster.Console {
		fmt.Fprintln(stderr, "Only the console can use this command.")
		return subcommands.ExitFailure
	}
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Usage: money enroll <player>...")
		return subcommands.ExitUsageError
	}

	r, err := OpenRoster()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, name := range f.Args() {
		id, created, err := r.Enroll(name)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if created {
			fmt.Fprintf(stdout, "Enrolled %s as %v.\n", name, id)
		} else {
			fmt.Fprintf(stdout, "%s is already enrolled as %v.\n", r.Name(name), id)
		}
		if c.grant != "" {
			r.Grant(r.Name(name), c.grant)
		}
	}

	if err := r.Save(*rosterFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
