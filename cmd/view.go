package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "show the balance of a player" }
func (*viewCmd) Usage() string {
	return `money view <player>

  Shows the balance of a player. A player that never received money holds 0.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: money view <player>")
		return subcommands.ExitUsageError
	}

	r, err := OpenRoster()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	name := f.Arg(0)
	id, ok := r.Resolve(name)
	if !ok {
		fmt.Fprintln(stderr, "Player not found.")
		return subcommands.ExitFailure
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "%s's balance: %s\n", r.Name(name), format(ledger.Balance(id)))
	return subcommands.ExitSuccess
}
