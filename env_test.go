package clidc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnvFile(t, "# comment\nFOO=bar\nQUOTED=\"a b\"\n")
	file, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)

	value, ok := file.Lookup("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", value)

	value, ok = file.Lookup("QUOTED")
	assert.True(t, ok)
	assert.Equal(t, "a b", value)

	_, ok = file.Lookup("MISSING")
	assert.False(t, ok)
}

func TestChainEnv(t *testing.T) {
	env := ChainEnv{
		MapEnv{"A": "first"},
		MapEnv{"A": "second", "B": "second"},
	}
	value, ok := env.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	value, ok = env.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "second", value)

	_, ok = env.Lookup("C")
	assert.False(t, ok)
}

func TestWithEnvFile(t *testing.T) {
	type Args struct {
		Foo   string `clidc:"option,env=CLIDC_TEST_FILE_FOO"`
		Count int    `clidc:"option,env=CLIDC_TEST_FILE_COUNT,default=1"`
	}
	path := writeEnvFile(t, "CLIDC_TEST_FILE_FOO=from-file\nCLIDC_TEST_FILE_COUNT=5\n")

	got, err := run(t, Args{}, "", WithEnvFile(path))
	require.NoError(t, err)
	assert.Equal(t, "from-file", got.Foo)
	assert.Equal(t, 5, got.Count)

	t.Setenv("CLIDC_TEST_FILE_COUNT", "7")
	got, err = run(t, Args{}, "--foo flag", WithEnvFile(path))
	require.NoError(t, err)
	assert.Equal(t, "flag", got.Foo)
	assert.Equal(t, 7, got.Count)
}

func TestWithEnvFileMissing(t *testing.T) {
	type Args struct {
		Foo string `clidc:"option"`
	}
	cmd := newTestCommand()
	_, err := Add(cmd, Args{}, WithEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	assert.ErrorContains(t, err, "failed to read env file")
}

func TestEnvListOption(t *testing.T) {
	type Args struct {
		Tags  []string `clidc:"option,env=TAGS"`
		Ports []int    `clidc:"option,env=PORTS"`
	}
	env := MapEnv{"TAGS": "x  y", "PORTS": "80 443"}
	got, err := run(t, Args{Ports: []int{1}}, "", WithEnv(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got.Tags)
	assert.Equal(t, []int{80, 443}, got.Ports)

	got, err = run(t, Args{}, "--tags z", WithEnv(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, got.Tags)
}

func TestEnvInvalidValue(t *testing.T) {
	type Args struct {
		Count int `clidc:"option,env=COUNT,default=1"`
	}
	_, err := run(t, Args{}, "", WithEnv(MapEnv{"COUNT": "many"}))
	assert.ErrorContains(t, err, "error parsing COUNT")
}
