package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDriver_ReplaysAnswers(t *testing.T) {
	driver := &MemoryDriver{Inputs: []string{"first", "second"}, Confirms: []bool{true}}
	ctx := context.Background()

	got, err := driver.Input(ctx, InputConfig{Message: "a"})
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = driver.Input(ctx, InputConfig{Message: "b"})
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "c"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryDriver_FallsBackToDefaults(t *testing.T) {
	driver := &MemoryDriver{}
	ctx := context.Background()

	got, err := driver.Input(ctx, InputConfig{Default: "dft"})
	require.NoError(t, err)
	assert.Equal(t, "dft", got)

	ok, err := driver.Confirm(ctx, ConfirmConfig{Default: true})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryDriver_HonoursContextCancellation(t *testing.T) {
	driver := &MemoryDriver{Inputs: []string{"x"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.Input(ctx, InputConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}
