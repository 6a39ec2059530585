package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/payscope"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `money fmt

  Validates and formats the ledger file. Entries are sorted by account,
  invalid entries are reported and dropped, negative balances are reset to 0,
  and the file is written back in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: ledger file %q does not exist, nothing to format.\n", *ledgerFile)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	balances, warnings, err := payscope.DecodeBalances(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	for _, w := range warnings {
		fmt.Fprintf(stderr, "Warning: %v\n", w)
	}

	if err := payscope.NewFileStore(*ledgerFile, Logger()).Save(balances); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Ledger file %q has been formatted.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
