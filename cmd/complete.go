package cmd

import (
	"strings"

	"github.com/etnz/payscope/docs"
	"github.com/etnz/payscope/roster"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the money command.
//
// A main package calls Completion().Complete(name) before parsing flags, it
// exits when the process was invoked by the shell for completion.
// COMP_INSTALL=1 installs the completion in the user shell.
func Completion() *complete.Command {
	players := complete.PredictFunc(predictPlayers)
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"view":     {Args: players},
			"pay":      {Args: players},
			"set":      {Args: players},
			"accounts": {Flags: map[string]complete.Predictor{"raw": predict.Nothing}},
			"enroll": {
				Flags: map[string]complete.Predictor{"grant": predict.Set{roster.CapabilitySet}},
				Args:  predict.Something,
			},
			"fmt": {},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing, "list": predict.Nothing},
				Args:  complete.PredictFunc(predictTopics),
			},
			"help":  {},
			"flags": {},
		},
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.yml"),
			"roster-file": predict.Files("*.yml"),
			"as":          players,
			"currency":    predict.Set{"USD", "EUR", "GBP", "JPY"},
			"v":           predict.Nothing,
		},
	}
}

// predictPlayers suggests enrolled player names.
func predictPlayers(prefix string) []string {
	r, err := OpenRoster()
	if err != nil {
		return nil
	}
	return withPrefix(r.Names(), prefix)
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return withPrefix(topics, prefix)
}

// withPrefix keeps the candidates starting with prefix, ignoring case.
func withPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(prefix)) {
			out = append(out, c)
		}
	}
	return out
}
