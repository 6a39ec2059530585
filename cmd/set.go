package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/payscope"
	"github.com/etnz/payscope/roster"
	"github.com/google/subcommands"
)

type setCmd struct{}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "overwrite the balance of a player" }
func (*setCmd) Usage() string {
	return `money set <player> <amount>

  Overwrites the balance of a player with a non-negative amount.
  Requires the "money.set" capability, the console always holds it.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := OpenRoster()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !r.HasCapability(*caller, roster.CapabilitySet) {
		fmt.Fprintln(stderr, "You do not have permission to use this command.")
		return subcommands.ExitFailure
	}
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, "Usage: money set <player> <amount>")
		return subcommands.ExitUsageError
	}

	name := f.Arg(0)
	id, ok := r.Resolve(name)
	if !ok {
		fmt.Fprintln(stderr, "Player not found.")
		return subcommands.ExitFailure
	}
	amount, err := payscope.ParseBalance(f.Arg(1))
	if err != nil {
		fmt.Fprintln(stderr, "Invalid amount.")
		return subcommands.ExitFailure
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	err = ledger.SetBalance(id, amount)
	switch {
	case err == nil, reportFlush(err):
	case errors.Is(err, payscope.ErrInvalidAmount):
		fmt.Fprintln(stderr, "Balance cannot be negative.")
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "%s's balance set to %s\n", r.Name(name), format(amount))
	return subcommands.ExitSuccess
}
