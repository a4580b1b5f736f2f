package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/hfcharts/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], cmd.DefaultCommand))
	}
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion answers the shell completion requests, and exits if it was one.
func completion(name string) {
	cache := predict.Nothing
	skip := predict.Nothing
	(&complete.Command{
		Sub: map[string]*complete.Command{
			"build": {Flags: map[string]complete.Predictor{
				"o":              predict.Files("*.html"),
				"cache":          cache,
				"skip-malformed": skip,
				"currency":       predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
				"top":            predict.Nothing,
				"commentary":     predict.Nothing,
			}},
			"fetch": {Flags: map[string]complete.Predictor{
				"d":     predict.Dirs("*"),
				"cache": cache,
			}},
			"summary": {Flags: map[string]complete.Predictor{
				"cache":          cache,
				"skip-malformed": skip,
				"currency":       predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
				"top":            predict.Nothing,
				"raw":            predict.Nothing,
			}},
		},
		Flags: map[string]complete.Predictor{
			"credentials": predict.Files("*.json"),
			"funds":       predict.Something,
			"v":           predict.Nothing,
		},
	}).Complete(name)
}
