package clidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackArgs(t *testing.T) {
	one := argSpec{name: "A", nargs: 1, required: true}
	optional := argSpec{name: "B", nargs: 1}
	pair := argSpec{name: "P", nargs: 2, required: true}
	rest := argSpec{name: "R", nargs: -1}

	cases := []struct {
		name     string
		specs    []argSpec
		args     []string
		expected [][]string
	}{
		{
			name:     "single",
			specs:    []argSpec{one},
			args:     []string{"x"},
			expected: [][]string{{"x"}},
		},
		{
			name:     "optional missing",
			specs:    []argSpec{one, optional},
			args:     []string{"x"},
			expected: [][]string{{"x"}, nil},
		},
		{
			name:     "variadic empty",
			specs:    []argSpec{rest},
			args:     []string{},
			expected: [][]string{nil},
		},
		{
			name:     "variadic first",
			specs:    []argSpec{rest, one},
			args:     []string{"a", "b", "c"},
			expected: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:     "variadic middle",
			specs:    []argSpec{one, rest, pair},
			args:     []string{"a", "b", "c", "d", "e"},
			expected: [][]string{{"a"}, {"b", "c"}, {"d", "e"}},
		},
		{
			name:     "fixed pair",
			specs:    []argSpec{pair, optional},
			args:     []string{"a", "b", "c"},
			expected: [][]string{{"a", "b"}, {"c"}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := unpackArgs(c.specs, c.args)
			require.NoError(t, err)
			assert.Equal(t, c.expected, got)
		})
	}
}

func TestUnpackArgsErrors(t *testing.T) {
	one := argSpec{name: "A", nargs: 1, required: true}
	pair := argSpec{name: "P", nargs: 2, required: true}
	rest := argSpec{name: "R", nargs: -1}

	cases := []struct {
		name  string
		specs []argSpec
		args  []string
		err   string
	}{
		{
			name:  "missing",
			specs: []argSpec{one},
			args:  []string{},
			err:   `missing argument "A"`,
		},
		{
			name:  "short pair",
			specs: []argSpec{pair},
			args:  []string{"a"},
			err:   `argument "P" takes 2 values`,
		},
		{
			name:  "extra",
			specs: []argSpec{one},
			args:  []string{"a", "b", "c"},
			err:   "got unexpected extra arguments (b c)",
		},
		{
			name:  "extra single",
			specs: []argSpec{},
			args:  []string{"a"},
			err:   "got unexpected extra argument (a)",
		},
		{
			name:  "two variadic",
			specs: []argSpec{rest, {name: "S", nargs: -1}},
			args:  []string{},
			err:   "cannot both take all remaining values",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := unpackArgs(c.specs, c.args)
			assert.ErrorContains(t, err, c.err)
		})
	}
}
