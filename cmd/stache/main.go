// Command stache renders mustache-style templates from the command line.
// Templates come from files, YAML manifests, or inline strings; data comes
// from YAML or JSON documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-stache/cmd/stache/command"
)

func main() {
	app := &cli.Command{
		Name:  "stache",
		Usage: "render mustache-style templates",
		Commands: []*cli.Command{
			command.Render,
			command.Check,
			command.Vars,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
