package clidc

import (
	"strings"

	"github.com/pkg/errors"
)

// tagEntry is one key of a clidc struct tag, in declaration order.
type tagEntry struct {
	key string
	val string
}

// parseStructTagInner splits a tag like `option,short=o,help='a, b'` into its
// entries. Single quotes protect commas inside values.
func parseStructTagInner(tagInner string) ([]tagEntry, error) {
	entries := []tagEntry{}

	key := strings.Builder{}
	val := strings.Builder{}
	inKey := true
	inQuote := false
	flush := func() {
		if key.Len() > 0 {
			entries = append(entries, tagEntry{key.String(), val.String()})
		}
		key.Reset()
		val.Reset()
		inKey = true
	}
	for _, c := range tagInner {
		switch {
		case inKey:
			switch c {
			case ',':
				flush()
			case '=':
				inKey = false
			case ' ':
			default:
				key.WriteRune(c)
			}
		case inQuote:
			if c == '\'' {
				inQuote = false
			} else {
				val.WriteRune(c)
			}
		default:
			switch c {
			case ',':
				flush()
			case '\'':
				inQuote = true
			default:
				val.WriteRune(c)
			}
		}
	}
	if inQuote {
		return nil, errors.Errorf("unterminated quote in tag %q", tagInner)
	}
	flush()

	return entries, nil
}
