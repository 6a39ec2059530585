// Package cmd implements the CLI application to manage balances.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/payscope"
	"github.com/etnz/payscope/roster"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range balanceCommands {
		c.Register(cmd, "balances")
	}
	for _, cmd := range adminCommands {
		c.Register(cmd, "administration")
	}
	c.Register(&topicCmd{}, "help")
}

var balanceCommands = []subcommands.Command{
	&viewCmd{},
	&payCmd{},
	&setCmd{},
}

var adminCommands = []subcommands.Command{
	&accountsCmd{},
	&enrollCmd{},
	&fmtCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "plugins/Payscope/balances.yml", "Path to the ledger file holding balances (YAML format)")
var rosterFile = flag.String("roster-file", "plugins/Payscope/roster.yml", "Path to the roster file mapping player names to accounts (YAML format)")
var caller = flag.String("as", roster.Console, "Name of the player issuing the command, empty for the console")
var currency = flag.String("currency", payscope.DefaultCurrency, "Currency code used to display balances")

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "Enable verbose logging")

// output streams, replaced by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// flagEnv binds global flags to the environment variables providing their defaults.
var flagEnv = map[string]string{
	"ledger-file": EnvLedgerFile,
	"roster-file": EnvRosterFile,
	"as":          EnvPlayer,
	"currency":    EnvCurrency,
	"v":           EnvVerbose,
}

// Configure loads the optional .env file and applies PAYSCOPE_* environment
// variables as global flag defaults. It must be called before flag.Parse so
// that command line flags still win.
func Configure() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env file: %v\n", err)
	}
	for name, env := range flagEnv {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if err := flag.CommandLine.Set(name, v); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid value %q for %s: %v\n", v, env, err)
		}
	}
}

// OpenLedger is the central function to open the ledger file.
func OpenLedger() (*payscope.Ledger, error) {
	store := payscope.NewFileStore(*ledgerFile, Logger())
	return payscope.Open(store, payscope.WithLogger(Logger()))
}

// OpenRoster loads the roster file. A missing roster is empty.
func OpenRoster() (*roster.Roster, error) {
	return roster.Load(*rosterFile)
}

// format renders a balance in the configured display currency.
func format(b payscope.Balance) string { return b.Format(*currency) }

// reportFlush prints a durability warning when err says the change was applied but not saved.
// It returns false for any other error.
func reportFlush(err error) bool {
	if !errors.Is(err, payscope.ErrNotPersisted) {
		return false
	}
	fmt.Fprintf(stderr, "Warning: the change is applied but could not be saved to %q: %v\n", *ledgerFile, err)
	return true
}
