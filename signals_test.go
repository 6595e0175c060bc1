package clidc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return "exit"
}

func (e exitError) ExitCode() int {
	return e.code
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("plain")))
	assert.Equal(t, 3, exitCode(exitError{3}))
	assert.Equal(t, 4, exitCode(errors.Wrap(exitError{4}, "wrapped")))
}

func TestExecute(t *testing.T) {
	type Args struct {
		Code int `clidc:"option,default=0"`
	}
	cmd := newTestCommand()
	MustRun(cmd, Args{}, func(cmd *cobra.Command, args *Args, _ []string) error {
		if cmd.Context() == nil {
			return errors.New("no context")
		}
		if args.Code != 0 {
			return exitError{args.Code}
		}
		return nil
	})

	cmd.SetArgs([]string{})
	assert.NoError(t, Execute(cmd))

	cmd.SetArgs([]string{"--code", "5"})
	err := Execute(cmd)
	assert.Equal(t, 5, exitCode(err))
}
