package main

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

var version = "0.1.0"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	DB      string `long:"db" description:"Path to the log database" default:""`
	Verbose bool   `long:"verbose" description:"Enable verbose logging"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "zodmapd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	for _, arg := range args {
		if arg == "--version" {
			fmt.Printf("zodmapd %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	var globals GlobalFlags
	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "zodmapd"
	parser.LongDescription = "Driving log catalog service: stores raw logs and serves trajectories and previews over HTTP."

	parser.AddCommand("serve", "Start the catalog service", "Start the HTTP catalog service.", &ServeCommand{globals: &globals})
	parser.AddCommand("ingest", "Ingest raw driving logs", "Ingest raw driving log files into the database.", &IngestCommand{globals: &globals})

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}
