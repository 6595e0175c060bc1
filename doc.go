/*
Package clidc binds the fields of a struct to the flags and positional
arguments of a cobra command, and builds a struct value from the parsed
command line when the command runs.

Example

Greet program:

		package main

		import (
			"fmt"

			"github.com/isobit/clidc"
			"github.com/spf13/cobra"
		)

		type Greet struct {
			Excited  bool   `clidc:"option,help='when true, use exclamation point'"`
			Greeting string `clidc:"option,env=GREETING,help=the greeting to use"`
			Name     string `clidc:"argument"`
		}

		func main() {
			cmd := &cobra.Command{Use: "greet"}
			clidc.MustRun(cmd, Greet{Greeting: "Hey"}, func(cmd *cobra.Command, g *Greet, _ []string) error {
				punctuation := "."
				if g.Excited {
					punctuation = "!"
				}
				fmt.Printf("%s, %s%s\n", g.Greeting, g.Name, punctuation)
				return nil
			})
			clidc.ExecuteFatal(cmd)
		}

Usage:

		$ greet --help
		Usage:
		  greet NAME [flags]

		Flags:
		      --excited           when true, use exclamation point
		      --greeting string   the greeting to use (default "Hey")
		  -h, --help              help for greet
		$ GREETING="Hello" greet --excited world
		Hello, world!

Struct Tags

Only fields with a clidc tag are bound. The first key of the tag is the kind
of the field:

		type Args struct {
			F1 string   `clidc:"option"`                 // --f1 VALUE
			F2 []string `clidc:"argument"`               // all remaining positional args
			F3 bool     `clidc:"alias,aliased='F1=x'"`   // --f3 means --f1=x unless --f1 is given
			F4 string   `clidc:"-"`                      // skipped
			F5 Common   `clidc:"embed"`                  // fields of Common are bound too
		}

The remaining keys are parameters:

		name=<name>         explicitly set the flag name or argument metavar
		short=<c>           add a short alias name (must be 1 rune)
		help=<text>         help text; quote with '' if it contains commas
		placeholder=<text>  value name in the help, e.g. "--out FILE"
		env=<VAR>           use an environment variable when the flag is not given
		default=<text>      textual default; comma-separated for lists
		required            error if not given and there is no default
		flag                a bool flag that takes no value
		count               an int incremented on each occurrence, e.g. -vvv
		multiple            a repeatable option collected into a slice
		nargs=<n>           number of values of an argument, -1 for all remaining
		hidden              hide the flag from the help
		deprecated=<text>   mark the flag deprecated with a message

and switches of the binding itself:

		raw       no name derivation, inference or checks
		noname    do not derive the name from the field name
		char=<c>  replace underscores of derived names with c instead of "-"
		nocheck   do not check the field type against the parameters
		noinfer   do not infer parameters from the field type

Names are derived from field names by converting them to snake case and
replacing underscores, so MaxCount becomes --max-count.

Inference

Unless one of required, flag, count, multiple or nargs is given, parameters
are inferred from the field type. For options, bool and *bool fields are
flags, *T fields are optional and stay nil when absent, slice fields are
repeatable and other fields are required unless they have a default. For
arguments, slice fields take all remaining values, *T fields are optional and
other fields are required unless they have a default. A default is a
default= tag or a non-zero field in the defaults value passed to Add.

Slice types that parse themselves from one string, like net.IP or
Base64String, count as single values.

Field Types

Values are parsed using the first method below that is implemented by the
type or a pointer to the type:

		Set(s string) error                 // similar to flag.Value
		UnmarshalText(text []byte) error    // encoding.TextUnmarshaler
		UnmarshalBinary(data []byte) error  // encoding.BinaryUnmarshaler

Additionally, time.Duration is parsed with time.ParseDuration, strings are
set directly and bool, int, uint and float kinds are parsed with strconv.
WithSetter adds custom parsing for other types.
*/
package clidc
