package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Vars is the `stache vars` subcommand: list the dotted paths a template
// references.
var Vars = &cli.Command{
	Name:      "vars",
	Usage:     "list variables referenced by a template",
	ArgsUsage: "[template-file]",
	Flags:     sourceFlags(),
	Action:    varsAction,
}

func varsAction(_ context.Context, cmd *cli.Command) error {
	eng, _, source, err := setup(cmd)
	if err != nil {
		return err
	}
	for _, path := range eng.Vars(source) {
		fmt.Println(path)
	}
	return nil
}
