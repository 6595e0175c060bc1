package clidc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsUsage(t *testing.T) {
	type Args struct {
		Src  []string `clidc:"argument,nargs=-1,required"`
		Dest string   `clidc:"argument"`
		Mode *string  `clidc:"argument"`
		Pair []int    `clidc:"argument,nargs=2"`
	}
	params, err := DefaultBinder.getParams(reflect.ValueOf(Args{}))
	require.NoError(t, err)
	assert.Equal(t, "SRC... DEST [MODE] PAIR...", argsUsage(params))
}

func TestWithArgsUsage(t *testing.T) {
	type Args struct {
		Name string `clidc:"argument"`
	}
	params, err := DefaultBinder.getParams(reflect.ValueOf(Args{}))
	require.NoError(t, err)
	assert.Equal(t, "greet NAME", withArgsUsage("greet", params))
	assert.Equal(t, "greet [flags] WHO", withArgsUsage("greet [flags] WHO", params))
	assert.Equal(t, "greet", withArgsUsage("greet", nil))
}
