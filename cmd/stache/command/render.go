package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-stache/pkg/engine"
	"github.com/goliatone/go-stache/pkg/prompt"
)

// Render is the `stache render` subcommand.
var Render = &cli.Command{
	Name:      "render",
	Usage:     "render a template against a data document",
	ArgsUsage: "[template-file]",
	Flags: append(sourceFlags(),
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "YAML or JSON data document",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (stdout if empty)",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "prompt for referenced variables missing from the data",
		},
	),
	Action: renderAction,
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	eng, options, source, err := setup(cmd)
	if err != nil {
		return err
	}

	data, err := loadData(cmd.String("data"))
	if err != nil {
		return err
	}

	if cmd.Bool("interactive") {
		if err := promptMissing(ctx, eng, source, data, prompt.NewSurveyDriver()); err != nil {
			return err
		}
	}

	output := eng.Render(source, data, options)

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			return fmt.Errorf("stache: write output %s: %w", path, err)
		}
		fmt.Printf("Rendered output written to %s\n", path)
		return nil
	}
	fmt.Println(output)
	return nil
}

// promptMissing collects values for referenced top-level variables that the
// data document does not supply.
func promptMissing(ctx context.Context, eng *engine.Engine, source string, data map[string]any, driver prompt.Driver) error {
	seen := map[string]struct{}{}
	for _, path := range eng.Vars(source) {
		root := path
		if dot := strings.IndexByte(path, '.'); dot >= 0 {
			root = path[:dot]
		}
		if _, ok := data[root]; ok {
			continue
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}

		value, err := driver.Input(ctx, prompt.InputConfig{
			Message: fmt.Sprintf("Value for %q:", root),
			Help:    fmt.Sprintf("referenced by the template as {{%s}}", path),
		})
		if err != nil {
			return err
		}
		data[root] = value
	}
	return nil
}
