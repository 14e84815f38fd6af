package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Check is the `stache check` subcommand: parse a template and report
// malformed constructs without rendering it.
var Check = &cli.Command{
	Name:      "check",
	Usage:     "report malformed block markers in a template",
	ArgsUsage: "[template-file]",
	Flags:     sourceFlags(),
	Action:    checkAction,
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	eng, _, source, err := setup(cmd)
	if err != nil {
		return err
	}

	issues := eng.Check(source)
	if len(issues) == 0 {
		fmt.Println("OK")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("offset %d: %s: %s\n", issue.Pos, issue.Marker, issue.Message)
	}
	return fmt.Errorf("stache: %d issue(s) found", len(issues))
}
