package slog

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/isobit/clidc"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	Options
	Name string `clidc:"argument"`
}

func parse(t *testing.T, args string, env clidc.MapEnv) *app {
	t.Helper()
	var got *app
	cmd := &cobra.Command{Use: "app", SilenceErrors: true, SilenceUsage: true}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := clidc.Run(cmd, app{}, func(cmd *cobra.Command, a *app, _ []string) error {
		got = a
		return nil
	}, clidc.WithEnv(env))
	require.NoError(t, err)
	cmd.SetArgs(strings.Fields(args))
	require.NoError(t, cmd.Execute())
	return got
}

func TestOptionsDefaults(t *testing.T) {
	a := parse(t, "x", clidc.MapEnv{})
	assert.Equal(t, slog.LevelInfo, a.LogLevel)
	assert.False(t, a.LogJSON)
	assert.Equal(t, "x", a.Name)
}

func TestOptionsFlags(t *testing.T) {
	a := parse(t, "--log-level debug --log-json x", clidc.MapEnv{})
	assert.Equal(t, slog.LevelDebug, a.LogLevel)
	assert.True(t, a.LogJSON)
}

func TestOptionsEnv(t *testing.T) {
	a := parse(t, "x", clidc.MapEnv{"LOG_LEVEL": "warn", "LOG_JSON": "true"})
	assert.Equal(t, slog.LevelWarn, a.LogLevel)
	assert.True(t, a.LogJSON)
}

func TestConfigureJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	opts := Options{LogLevel: slog.LevelWarn, LogJSON: true}
	buf := &bytes.Buffer{}
	logger := opts.ConfigureWithHandlerOptions(buf, nil)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Same(t, logger, slog.Default())
}
