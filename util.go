package clidc

import (
	"encoding/base64"
)

// Base64String is a byte slice that can be unmarshaled from a standard (RFC
// 4648) base64-encoded string. It binds as a single value, not a list.
type Base64String []byte

func (b *Base64String) UnmarshalText(src []byte) error {
	enc := base64.StdEncoding
	dbuf := make([]byte, enc.DecodedLen(len(src)))
	n, err := enc.Decode(dbuf, src)
	if err != nil {
		return err
	}
	*b = dbuf[:n]
	return nil
}

func (b Base64String) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(b)), nil
}
