package clidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalBase64String(t *testing.T) {
	input := []byte("SGVsbG8sIHdvcmxkIQ==")
	var output Base64String
	err := (&output).UnmarshalText(input)
	require.Nil(t, err)
	assert.Equal(t, "Hello, world!", string(output))
}

func TestBase64StringOption(t *testing.T) {
	type Args struct {
		Secret Base64String `clidc:"option"`
	}
	got, err := run(t, Args{}, "--secret SGVsbG8sIHdvcmxkIQ==")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", string(got.Secret))

	args, err := ToArgs(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"--secret", "SGVsbG8sIHdvcmxkIQ=="}, args)
}

func TestBase64StringInvalid(t *testing.T) {
	type Args struct {
		Secret Base64String `clidc:"option"`
	}
	_, err := run(t, Args{}, "--secret !!!")
	assert.Error(t, err)
}
