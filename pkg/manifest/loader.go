// Package manifest loads template registrations from YAML documents and
// standalone template files so applications can keep their templates next to
// their content instead of in Go string literals.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stache/pkg/engine"
)

// TemplateExt is the extension recognised for standalone template files. The
// registered name is the file path with the extension removed.
const TemplateExt = ".stache"

// Manifest is a parsed template bundle: named template strings plus default
// render options the host can pass through to Engine.Render.
type Manifest struct {
	Templates map[string]string `mapstructure:"templates"`
	Options   map[string]any    `mapstructure:"options"`
}

// Parse decodes a single YAML manifest document.
func Parse(data []byte, path string) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := &Manifest{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           manifest,
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", path, err)
	}

	if manifest.Templates == nil {
		manifest.Templates = map[string]string{}
	}
	return manifest, nil
}

// LoadFS walks the provided filesystem collecting YAML manifests and
// standalone template files. Template names must be unique across the tree;
// duplicates are an error so a bundle cannot silently shadow itself.
func LoadFS(fsys fs.FS) (*Manifest, error) {
	merged := &Manifest{Templates: map[string]string{}}
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}

		switch {
		case isManifestFile(path):
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("manifest: read %s: %w", path, err)
			}
			doc, err := Parse(data, path)
			if err != nil {
				return err
			}
			for name, template := range doc.Templates {
				if err := merged.add(name, template, path); err != nil {
					return err
				}
			}
			for key, value := range doc.Options {
				if merged.Options == nil {
					merged.Options = map[string]any{}
				}
				merged.Options[key] = value
			}
		case strings.HasSuffix(path, TemplateExt):
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("manifest: read %s: %w", path, err)
			}
			name := strings.TrimSuffix(path, TemplateExt)
			if err := merged.add(name, string(data), path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadFile reads a single manifest document from disk.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Apply registers every template in the manifest on the engine.
func (m *Manifest) Apply(e *engine.Engine) {
	for name, template := range m.Templates {
		e.RegisterTemplate(name, template)
	}
}

func (m *Manifest) add(name, template, path string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("manifest: file %s defines an empty template name", path)
	}
	if _, exists := m.Templates[trimmed]; exists {
		return fmt.Errorf("manifest: duplicate template %q (file %s)", trimmed, path)
	}
	m.Templates[trimmed] = template
	return nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
