package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/payscope/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	raw  bool
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [-raw] <topic>...
topic -list

Show documentation for the given topics, "*" shows them all.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
	f.BoolVar(&c.list, "list", false, "List the available topics.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		return listTopics()
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Fprint(stdout, doc)
	} else {
		printMarkdown(stdout, doc)
	}
	return subcommands.ExitSuccess
}

func listTopics() subcommands.ExitStatus {
	topics, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, topic := range topics {
		title, err := docs.Title(topic)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading doc: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "%-16s %s\n", topic, title)
	}
	return subcommands.ExitSuccess
}
