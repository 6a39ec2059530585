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

type payCmd struct{}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "send money to another player" }
func (*payCmd) Usage() string {
	return `money -as <you> pay <player> <amount>

  Sends a positive amount from your balance to another player.
  Only players can pay, use the global -as flag (or PAYSCOPE_PLAYER) to say who you are.

Usage Examples:
$ money -as Steve pay Alex 12.50
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *caller == roster.Console {
		fmt.Fprintln(stderr, "Only players can use this command.")
		return subcommands.ExitFailure
	}
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, "Usage: money pay <player> <amount>")
		return subcommands.ExitUsageError
	}

	r, err := OpenRoster()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sender, ok := r.Resolve(*caller)
	if !ok {
		fmt.Fprintf(stderr, "Unknown player %q.\n", *caller)
		return subcommands.ExitFailure
	}
	name := f.Arg(0)
	target, ok := r.Resolve(name)
	if !ok {
		fmt.Fprintln(stderr, "Player not found.")
		return subcommands.ExitFailure
	}
	if target == sender {
		fmt.Fprintln(stderr, "You cannot pay yourself.")
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

	err = ledger.Transfer(sender, target, amount)
	switch {
	case err == nil, reportFlush(err):
	case errors.Is(err, payscope.ErrInvalidTarget):
		fmt.Fprintln(stderr, "You cannot pay yourself.")
		return subcommands.ExitFailure
	case errors.Is(err, payscope.ErrInvalidAmount):
		fmt.Fprintln(stderr, "Amount must be positive.")
		return subcommands.ExitFailure
	case errors.Is(err, payscope.ErrInsufficientFunds):
		fmt.Fprintln(stderr, "Insufficient funds.")
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "You sent %s to %s.\n", format(amount), r.Name(name))
	return subcommands.ExitSuccess
}
