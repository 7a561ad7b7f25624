package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/relicdev/relic/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	// If no subcommand provided, launch the browser (same as 'relic browse')
	if args.Log == nil && args.Push == nil && args.Trim == nil &&
		args.Clipboard == nil && args.Config == nil && args.Browse == nil {
		args.Browse = &cli.BrowseCmd{}
	}

	// Create CLI instance with args for config and scope overrides
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Execute the command
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)

		// If it's an argument validation error, show usage
		if args.Log != nil || args.Push != nil || args.Trim != nil ||
			args.Clipboard != nil || args.Config != nil || args.Browse != nil {
			fmt.Println()
			parser.WriteUsage(os.Stderr)
		}
		os.Exit(1)
	}
}
