// Package slog provides logging options that can be embedded in a clidc
// record.
package slog

import (
	"io"
	"log/slog"
	"os"
)

type Options struct {
	LogLevel slog.Level `clidc:"option,env=LOG_LEVEL,default=INFO,placeholder=level,help=minimum level to log"`
	LogJSON  bool       `clidc:"option,name=log-json,env=LOG_JSON,help=log as JSON"`
}

func (opts *Options) ConfigureWithHandlerOptions(w io.Writer, handlerOpts *slog.HandlerOptions) *slog.Logger {
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{}
	}
	handlerOpts.Level = opts.LogLevel

	var handler slog.Handler
	if opts.LogJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Configure installs a handler writing to stderr as the default logger.
func (opts *Options) Configure() *slog.Logger {
	return opts.ConfigureWithHandlerOptions(os.Stderr, nil)
}
