// Package command implements the stache CLI subcommands.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stache/pkg/components"
	"github.com/goliatone/go-stache/pkg/engine"
	"github.com/goliatone/go-stache/pkg/manifest"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "template file to render",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "registered template name (requires --manifest)",
		},
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "manifest YAML file or template directory",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log render diagnostics to stderr",
		},
	}
}

// setup builds an engine from the shared flags and returns it together with
// the manifest's default render options and the template source argument
// suitable for Engine.Render.
func setup(cmd *cli.Command) (*engine.Engine, map[string]any, string, error) {
	logger := zap.NewNop()
	if cmd.Bool("verbose") {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, "", fmt.Errorf("stache: build logger: %w", err)
		}
	}

	eng := engine.New(engine.WithLogger(logger))
	components.Register(eng)

	var options map[string]any
	if path := cmd.String("manifest"); path != "" {
		doc, err := loadManifest(path)
		if err != nil {
			return nil, nil, "", err
		}
		doc.Apply(eng)
		options = doc.Options
	}

	source, err := templateSource(cmd, eng)
	if err != nil {
		return nil, nil, "", err
	}
	return eng, options, source, nil
}

func loadManifest(path string) (*manifest.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stache: manifest %s: %w", path, err)
	}
	if info.IsDir() {
		return manifest.LoadFS(os.DirFS(path))
	}
	return manifest.LoadFile(path)
}

// templateSource resolves the template argument: an explicit file wins, then
// a registered name, then a bare positional argument treated as a file path.
func templateSource(cmd *cli.Command, eng *engine.Engine) (string, error) {
	if path := cmd.String("template"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("stache: read template %s: %w", path, err)
		}
		return string(data), nil
	}
	if name := cmd.String("name"); name != "" {
		return name, nil
	}
	if path := cmd.Args().First(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("stache: read template %s: %w", path, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("stache: no template supplied; use --template, --name, or a file argument")
}

// loadData reads a YAML or JSON document into a render context map.
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stache: read data %s: %w", path, err)
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("stache: parse data %s: %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
