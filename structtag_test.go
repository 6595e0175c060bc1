package clidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructTagInner(t *testing.T) {
	cases := []struct {
		in  string
		out []tagEntry
	}{
		{
			"",
			[]tagEntry{},
		},
		{
			"option",
			[]tagEntry{{"option", ""}},
		},
		{
			"option,short=o",
			[]tagEntry{{"option", ""}, {"short", "o"}},
		},
		{
			"argument, nargs=-1",
			[]tagEntry{{"argument", ""}, {"nargs", "-1"}},
		},
		{
			"option,help='one, two',default=42",
			[]tagEntry{{"option", ""}, {"help", "one, two"}, {"default", "42"}},
		},
		{
			"alias,aliased='Sum=1;Add=true'",
			[]tagEntry{{"alias", ""}, {"aliased", "Sum=1;Add=true"}},
		},
	}

	for _, c := range cases {
		out, err := parseStructTagInner(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.out, out, c.in)
	}
}

func TestParseStructTagInnerUnterminatedQuote(t *testing.T) {
	_, err := parseStructTagInner("option,help='oops")
	assert.Error(t, err)
}
