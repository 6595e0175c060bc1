package clidc

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const tagName = "clidc"

// argsAnnotation marks a command whose positional arguments are owned by a
// binding.
const argsAnnotation = "clidc.arguments"

type Runner interface {
	Run() error
}

type ContextRunner interface {
	Run(context.Context) error
}

// Beforer is called on a freshly built record before it is handed out.
type Beforer interface {
	Before() error
}

// Setuper lets a record customize the command New builds for it.
type Setuper interface {
	SetupCommand(cmd *cobra.Command)
}

// Binding ties the fields of record type T to the flags and positional
// arguments of a cobra command.
type Binding[T any] struct {
	cmd       *cobra.Command
	defaults  T
	binder    Binder
	values    []*fieldValue
	arguments []*param
	argDefs   []reflect.Value
	counter   int
	prepared  bool
}

// Add registers the bound fields of T on cmd: options and aliases become
// flags, arguments become the command's positional argument validator.
// Non-zero fields of defaults, and default= tags, are the default values.
//
// Unset options are filled from the environment and alias defaults are
// applied in a PreRunE hook chained in front of cobra's required flag check.
func Add[T any](cmd *cobra.Command, defaults T, opts ...Option) (*Binding[T], error) {
	s := newSettings(opts)
	if s.err != nil {
		return nil, s.err
	}

	dv := reflect.ValueOf(defaults)
	if !dv.IsValid() || dv.Kind() != reflect.Struct {
		return nil, errors.Errorf("record must be a struct (got %T)", defaults)
	}

	params, err := s.binder.getParams(dv)
	if err != nil {
		return nil, err
	}

	b := &Binding[T]{
		cmd:      cmd,
		defaults: defaults,
		binder:   s.binder,
	}
	log := s.binder.logger().With(slog.String("command", cmd.Name()), slog.String("record", dv.Type().String()))

	for _, p := range params {
		def := copyValue(dv.FieldByIndex(p.index))
		fv := newFieldValue(p, def, s.binder.Setter, &b.counter)
		if p.hasDefaultTag {
			if err := fv.assignDefault(p.defaultString); err != nil {
				return nil, errors.Wrapf(err, "problem with field %s.%s: invalid default %q", dv.Type(), p.field.Name, p.defaultString)
			}
		}

		log.Debug("bound field",
			slog.String("field", p.field.Name),
			slog.String("kind", p.kind.String()),
			slog.String("name", p.name),
			slog.Bool("required", p.required),
			slog.Bool("multiple", p.multiple || p.shape == shapeList),
			slog.Int("nargs", p.nargs),
		)

		if p.kind == kindArgument {
			b.arguments = append(b.arguments, p)
			b.argDefs = append(b.argDefs, fv.target)
			continue
		}

		if err := b.addFlag(p, fv); err != nil {
			return nil, errors.Wrapf(err, "problem with field %s.%s", dv.Type(), p.field.Name)
		}
		b.values = append(b.values, fv)
	}

	if len(b.arguments) > 0 {
		if owner, ok := cmd.Annotations[argsAnnotation]; ok {
			return nil, errors.Errorf("command %s already binds arguments from %s", cmd.Name(), owner)
		}
		if cmd.Annotations == nil {
			cmd.Annotations = map[string]string{}
		}
		cmd.Annotations[argsAnnotation] = dv.Type().String()
		specs := b.argSpecs()
		cmd.Args = func(cmd *cobra.Command, args []string) error {
			_, err := unpackArgs(specs, args)
			return err
		}
		cmd.Use = withArgsUsage(cmd.Use, b.arguments)
	}

	prev, prevRun := cmd.PreRunE, cmd.PreRun
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if prev != nil {
			if err := prev(cmd, args); err != nil {
				return err
			}
		} else if prevRun != nil {
			prevRun(cmd, args)
		}
		return b.prepare()
	}

	return b, nil
}

func (b *Binding[T]) addFlag(p *param, fv *fieldValue) error {
	fs := b.cmd.Flags()
	if fs.Lookup(p.name) != nil {
		return errors.Errorf("flag --%s already defined on command %s", p.name, b.cmd.Name())
	}
	if p.short != "" && fs.ShorthandLookup(p.short) != nil {
		return errors.Errorf("flag -%s already defined on command %s", p.short, b.cmd.Name())
	}

	flag := fs.VarPF(fv, p.name, p.short, p.help)
	switch {
	case p.shape == shapeCount:
		flag.NoOptDefVal = "+1"
	case p.flag:
		flag.NoOptDefVal = "true"
	}
	flag.Hidden = p.hidden
	if p.deprecated != "" {
		flag.Deprecated = p.deprecated
	}

	if p.required && !p.hasDefault {
		if err := b.cmd.MarkFlagRequired(p.name); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binding[T]) argSpecs() []argSpec {
	specs := make([]argSpec, len(b.arguments))
	for i, p := range b.arguments {
		specs[i] = argSpec{
			name:     p.metavar(),
			nargs:    p.nargs,
			required: p.required && !p.hasDefault,
		}
	}
	return specs
}

// prepare fills unset options from the environment and then applies alias
// defaults to options that are still unset.
func (b *Binding[T]) prepare() error {
	b.prepared = true
	fs := b.cmd.Flags()

	for _, fv := range b.values {
		p := fv.p
		if p.env == "" || fv.setCount > 0 {
			continue
		}
		val, ok, err := b.binder.LookupEnv(p.env)
		if err != nil {
			return errors.Wrapf(err, "failed to look up %s", p.env)
		}
		if !ok {
			continue
		}
		// list options take whitespace-separated values
		vals := []string{val}
		if p.shape == shapeList {
			vals = strings.Fields(val)
		}
		for _, v := range vals {
			if err := fs.Set(p.name, v); err != nil {
				return errors.Wrapf(err, "error parsing %s", p.env)
			}
		}
	}

	aliases := []*fieldValue{}
	for _, fv := range b.values {
		if fv.p.kind == kindAlias && fv.setCount > 0 && isTrue(fv.target) {
			aliases = append(aliases, fv)
		}
	}
	sort.SliceStable(aliases, func(i, j int) bool {
		return aliases[i].order < aliases[j].order
	})
	for _, alias := range aliases {
		for i, target := range alias.p.targets {
			tv := b.valueOf(target)
			if tv == nil || tv.setCount > 0 {
				continue
			}
			if err := tv.assign(alias.p.aliased[i].value); err != nil {
				return errors.Wrapf(err, "alias --%s cannot set --%s", alias.p.name, target.name)
			}
			if flag := fs.Lookup(target.name); flag != nil {
				flag.Changed = true
			}
		}
	}
	return nil
}

func (b *Binding[T]) valueOf(p *param) *fieldValue {
	for _, fv := range b.values {
		if fv.p == p {
			return fv
		}
	}
	return nil
}

// Record builds a new T from the parsed flags and the positional args. It
// returns the args not consumed by T, which is all of them when T has no
// argument fields.
func (b *Binding[T]) Record(args []string) (*T, []string, error) {
	if !b.prepared {
		if err := b.prepare(); err != nil {
			return nil, nil, err
		}
	}

	rec := new(T)
	rv := reflect.ValueOf(rec).Elem()
	rv.Set(reflect.ValueOf(b.defaults))
	for _, fv := range b.values {
		rv.FieldByIndex(fv.p.index).Set(copyValue(fv.target))
	}

	rest := args
	if len(b.arguments) > 0 {
		groups, err := unpackArgs(b.argSpecs(), args)
		if err != nil {
			return nil, nil, err
		}
		for i, p := range b.arguments {
			fv := newFieldValue(p, b.argDefs[i], b.binder.Setter, nil)
			if groups[i] != nil {
				if p.shape == shapeList {
					fv.target.Set(reflect.Zero(fv.target.Type()))
				}
				for _, s := range groups[i] {
					if err := fv.assign(s); err != nil {
						return nil, nil, errors.Wrapf(err, "invalid value %q for argument %s", s, p.metavar())
					}
				}
			}
			rv.FieldByIndex(p.index).Set(fv.target)
		}
		rest = []string{}
	}

	if beforer, ok := interface{}(rec).(Beforer); ok {
		if err := beforer.Before(); err != nil {
			return nil, nil, err
		}
	}
	return rec, rest, nil
}

// Flags returns the flag set the binding's options were added to.
func (b *Binding[T]) Flags() *pflag.FlagSet {
	return b.cmd.Flags()
}

// RunFunc receives the record built for an invocation and the positional
// arguments the record did not take.
type RunFunc[T any] func(cmd *cobra.Command, rec *T, args []string) error

// Run binds T to cmd like Add and sets cmd.RunE to call fn with the record
// instead of the raw flag values.
func Run[T any](cmd *cobra.Command, defaults T, fn RunFunc[T], opts ...Option) error {
	b, err := Add(cmd, defaults, opts...)
	if err != nil {
		return err
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rec, rest, err := b.Record(args)
		if err != nil {
			return err
		}
		return fn(cmd, rec, rest)
	}
	return nil
}

// MustRun is like Run but panics on binding errors, which are programming
// errors in the record type.
func MustRun[T any](cmd *cobra.Command, defaults T, fn RunFunc[T], opts ...Option) {
	if err := Run(cmd, defaults, fn, opts...); err != nil {
		panic(fmt.Sprintf("clidc: %s", err))
	}
}

// New creates a cobra command named use whose flags and arguments come from
// the fields of T. If *T implements Runner or ContextRunner, running the
// command calls Run on the record built from the command line; otherwise the
// command only groups its subcommands.
//
// If an error is encountered while binding, such as a field having an
// unsupported type, New will panic. Use Build to have it returned instead.
func New[T any](use string, defaults T, opts ...Option) *cobra.Command {
	cmd, err := Build(use, defaults, opts...)
	if err != nil {
		panic(fmt.Sprintf("clidc: %s", err))
	}
	return cmd
}

// Build is like New, but it returns any errors instead of calling panic.
func Build[T any](use string, defaults T, opts ...Option) (*cobra.Command, error) {
	s := newSettings(opts)
	if s.err != nil {
		return nil, s.err
	}
	cmd := &cobra.Command{
		Use:     use,
		Short:   s.short,
		Long:    s.long,
		GroupID: s.group,
		Aliases: s.aliases,
	}

	b, err := Add(cmd, defaults, opts...)
	if err != nil {
		return nil, err
	}
	var probe interface{} = new(T)
	switch probe.(type) {
	case ContextRunner, Runner:
		if len(b.arguments) == 0 {
			cmd.Args = cobra.NoArgs
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			rec, _, err := b.Record(args)
			if err != nil {
				return err
			}
			switch r := interface{}(rec).(type) {
			case ContextRunner:
				return r.Run(cmd.Context())
			case Runner:
				return r.Run()
			}
			return nil
		}
	}

	cmd.AddCommand(s.commands...)

	if setuper, ok := probe.(Setuper); ok {
		setuper.SetupCommand(cmd)
	}
	return cmd, nil
}

// Group adds a command group to parent; subcommands join it with WithGroup.
func Group(parent *cobra.Command, id, title string) *cobra.Command {
	parent.AddGroup(&cobra.Group{ID: id, Title: title})
	return parent
}
