package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/payscope"
	"github.com/etnz/payscope/roster"
	"github.com/google/subcommands"
)

type accountsCmd struct {
	raw bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list every account and its balance" }
func (*accountsCmd) Usage() string {
	return `money accounts [-raw]

  Lists every account of the ledger with its balance, and the total.
  Accounts are named after their player when the roster knows them.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := OpenRoster()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := accountsMarkdown(ledger, r)
	if c.raw {
		fmt.Fprint(stdout, md)
	} else {
		printMarkdown(stdout, md)
	}
	return subcommands.ExitSuccess
}

// accountsMarkdown renders the ledger as a markdown table.
func accountsMarkdown(ledger *payscope.Ledger, r *roster.Roster) string {
	var b strings.Builder
	b.WriteString("# Accounts\n\n")
	if ledger.Len() == 0 {
		b.WriteString("The ledger is empty.\n")
		return b.String()
	}

	b.WriteString("| Account | Balance |\n")
	b.WriteString("|:---|---:|\n")
	for id, balance := range ledger.Accounts() {
		name, ok := r.NameOf(id)
		if !ok {
			name = "`" + id.String() + "`"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", name, format(balance))
	}
	fmt.Fprintf(&b, "\n**Total**: %s across %d accounts.\n", format(ledger.Total()), ledger.Len())
	return b.String()
}
