package clidc

import (
	"strings"

	"github.com/pkg/errors"
)

// argSpec describes one positional argument. nargs < 0 takes all remaining
// values.
type argSpec struct {
	name     string
	nargs    int
	required bool
}

// unpackArgs distributes positional args over specs. Fixed-size specs take
// values from the front until the variadic spec is reached, the ones after it
// take values from the back, and the variadic spec gets whatever is left.
// A nil entry in the result means the argument was not given.
func unpackArgs(specs []argSpec, args []string) ([][]string, error) {
	out := make([][]string, len(specs))

	variadic := -1
	for i, s := range specs {
		if s.nargs >= 0 {
			continue
		}
		if variadic >= 0 {
			return nil, errors.Errorf("arguments %s and %s cannot both take all remaining values", specs[variadic].name, s.name)
		}
		variadic = i
	}

	front, back := 0, len(args)
	take := func(n int) int {
		if n > back-front {
			return back - front
		}
		return n
	}

	end := len(specs)
	if variadic >= 0 {
		end = variadic
	}
	for i := 0; i < end; i++ {
		n := take(specs[i].nargs)
		if n > 0 {
			out[i] = args[front : front+n]
		}
		front += n
	}
	if variadic >= 0 {
		for i := len(specs) - 1; i > variadic; i-- {
			n := take(specs[i].nargs)
			if n > 0 {
				out[i] = args[back-n : back]
			}
			back -= n
		}
		out[variadic] = args[front:back]
		front = len(args)
	}

	for i, s := range specs {
		got := len(out[i])
		switch {
		case got == 0 && s.required:
			return nil, errors.Errorf("missing argument %q", s.name)
		case got == 0:
			out[i] = nil
		case s.nargs > 0 && got < s.nargs:
			return nil, errors.Errorf("argument %q takes %d values", s.name, s.nargs)
		}
	}

	if front < len(args) {
		extra := args[front:]
		plural := ""
		if len(extra) > 1 {
			plural = "s"
		}
		return nil, errors.Errorf("got unexpected extra argument%s (%s)", plural, strings.Join(extra, " "))
	}

	return out, nil
}
