package clidc

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	ExitCode() int
}

func ContextWithSigCancel(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// Execute runs cmd with a context that is cancelled on SIGINT or SIGTERM.
func Execute(cmd *cobra.Command) error {
	ctx, stop := ContextWithSigCancel(context.Background())
	defer stop()
	return cmd.ExecuteContext(ctx)
}

// ExecuteFatal is like Execute, except it exits the process with an
// appropriate status code: 0 on success, the result of ExitCode() if the error
// implements ExitCoder, and 1 otherwise. Cobra has already printed the error.
func ExecuteFatal(cmd *cobra.Command) {
	os.Exit(exitCode(Execute(cmd)))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
