package clidc

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// LookupEnvFunc looks up an environment variable. A non-nil error aborts the
// command.
type LookupEnvFunc func(string) (string, bool, error)

// Binder holds the settings shared by every field of a binding. A Binder is
// itself an Option, so a preconfigured one can be passed to Add, Run or New;
// its zero fields leave the current settings alone.
type Binder struct {
	LookupEnv LookupEnvFunc
	Setter    SetterFunc
	Logger    *slog.Logger
	// Char replaces underscores in names derived from field names.
	Char string
}

var DefaultBinder = Binder{
	LookupEnv: func(key string) (string, bool, error) {
		val, ok := os.LookupEnv(key)
		return val, ok, nil
	},
	Char: "-",
}

func (b Binder) Apply(s *settings) {
	if b.LookupEnv != nil {
		s.binder.LookupEnv = b.LookupEnv
	}
	if b.Setter != nil {
		s.binder.Setter = b.Setter
	}
	if b.Logger != nil {
		s.binder.Logger = b.Logger
	}
	if b.Char != "" {
		s.binder.Char = b.Char
	}
}

func (b Binder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

type settings struct {
	binder   Binder
	short    string
	long     string
	group    string
	aliases  []string
	commands []*cobra.Command
	err      error
}

func newSettings(opts []Option) *settings {
	s := &settings{binder: DefaultBinder}
	for _, opt := range opts {
		opt.Apply(s)
	}
	return s
}

type Option interface {
	Apply(s *settings)
}

type optionFunc func(s *settings)

func (of optionFunc) Apply(s *settings) {
	of(s)
}

func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(s *settings) {
		s.binder.Logger = logger
	})
}

func WithSetter(setter SetterFunc) Option {
	return optionFunc(func(s *settings) {
		s.binder.Setter = setter
	})
}

func WithLookupEnv(lookup LookupEnvFunc) Option {
	return optionFunc(func(s *settings) {
		s.binder.LookupEnv = lookup
	})
}

// WithChar sets the character that replaces underscores in derived names,
// e.g. "_" to get --max_count instead of --max-count.
func WithChar(char string) Option {
	return optionFunc(func(s *settings) {
		s.binder.Char = char
	})
}

// WithShort sets the one-line help of a command built with New.
func WithShort(help string) Option {
	return optionFunc(func(s *settings) {
		s.short = help
	})
}

// WithLong sets the long description of a command built with New.
func WithLong(description string) Option {
	return optionFunc(func(s *settings) {
		s.long = description
	})
}

// WithGroup places a command built with New in the parent's command group id.
func WithGroup(id string) Option {
	return optionFunc(func(s *settings) {
		s.group = id
	})
}

func WithAliases(aliases ...string) Option {
	return optionFunc(func(s *settings) {
		s.aliases = append(s.aliases, aliases...)
	})
}

// WithCommands adds subcommands to a command built with New.
func WithCommands(cmds ...*cobra.Command) Option {
	return optionFunc(func(s *settings) {
		s.commands = append(s.commands, cmds...)
	})
}
