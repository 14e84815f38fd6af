package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-stache/pkg/engine"
	"github.com/goliatone/go-stache/pkg/prompt"
)

func TestPromptMissing(t *testing.T) {
	eng := engine.New()
	template := "{{greeting}}, {{user.name}}! {{#each items}}{{this}}{{/each}}"
	data := map[string]any{"items": []any{"a"}}
	// prompting follows Vars order (sorted), so greeting is asked before user
	driver := &prompt.MemoryDriver{Inputs: []string{"Hello", "Ada"}}

	err := promptMissing(context.Background(), eng, template, data, driver)
	require.NoError(t, err)

	assert.Equal(t, "Hello", data["greeting"])
	assert.Equal(t, "Ada", data["user"])
	assert.Equal(t, []any{"a"}, data["items"])
}

func TestPromptMissing_NothingMissing(t *testing.T) {
	eng := engine.New()
	data := map[string]any{"name": "Ada"}
	driver := &prompt.MemoryDriver{}

	err := promptMissing(context.Background(), eng, "{{name}}", data, driver)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, data)
}

func TestLoadData(t *testing.T) {
	data, err := loadData("")
	require.NoError(t, err)
	assert.Empty(t, data)
}
