package clidc

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Setter parses a string into the value it wraps. It is the same shape as
// flag.Value's Set method, so any flag.Value or pflag.Value works as a record
// field type.
type Setter interface {
	Set(s string) error
}

// SetterFunc can return a custom Setter for a pointer to a field element, or
// nil to fall back on the built-in rules.
type SetterFunc func(interface{}) Setter

// setters

func tryGetSetter(i interface{}) Setter {
	switch v := i.(type) {
	case Setter:
		return v
	case encoding.TextUnmarshaler:
		return textSetter{v}
	case encoding.BinaryUnmarshaler:
		return binarySetter{v}
	case *time.Duration:
		return durationSetter{v}
	case *string:
		return stringSetter{v}
	case *bool:
		return boolSetter{v}
	}
	rv := reflect.ValueOf(i)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil
	}
	switch rv.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intSetter{rv.Elem()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintSetter{rv.Elem()}
	case reflect.Float32, reflect.Float64:
		return floatSetter{rv.Elem()}
	}
	return nil
}

// hasSetter reports whether values of t are parsed as a whole, which keeps
// slice types like net.IP from being treated as lists.
func hasSetter(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		return false
	}
	ptr := reflect.New(t)
	if tryGetSetter(ptr.Interface()) != nil {
		return true
	}
	return tryGetSetter(ptr.Elem().Interface()) != nil
}

// string

type stringSetter struct {
	v *string
}

func (ss stringSetter) Set(s string) error {
	*ss.v = s
	return nil
}

// TextUnmarshaler

type textSetter struct {
	encoding.TextUnmarshaler
}

func (ts textSetter) Set(s string) error {
	return ts.UnmarshalText([]byte(s))
}

// BinaryUnmarshaler

type binarySetter struct {
	encoding.BinaryUnmarshaler
}

func (bs binarySetter) Set(s string) error {
	return bs.UnmarshalBinary([]byte(s))
}

// Primitives (strconv)

type boolSetter struct {
	v *bool
}

func (bs boolSetter) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*bs.v = v
	return nil
}

type intSetter struct {
	v reflect.Value
}

func (is intSetter) Set(s string) error {
	n, err := strconv.ParseInt(s, 0, is.v.Type().Bits())
	if err != nil {
		return err
	}
	is.v.SetInt(n)
	return nil
}

type uintSetter struct {
	v reflect.Value
}

func (us uintSetter) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, us.v.Type().Bits())
	if err != nil {
		return err
	}
	us.v.SetUint(n)
	return nil
}

type floatSetter struct {
	v reflect.Value
}

func (fs floatSetter) Set(s string) error {
	n, err := strconv.ParseFloat(s, fs.v.Type().Bits())
	if err != nil {
		return err
	}
	fs.v.SetFloat(n)
	return nil
}

// time.Duration

type durationSetter struct {
	duration *time.Duration
}

func (ds durationSetter) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*ds.duration = v
	return nil
}

// stringers

// formatValue renders a single element the way it would be typed on the
// command line.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
	}
	i := v.Interface()
	switch s := i.(type) {
	case encoding.TextMarshaler:
		if b, err := s.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return s.String()
	}
	if v.CanAddr() {
		switch s := v.Addr().Interface().(type) {
		case encoding.TextMarshaler:
			if b, err := s.MarshalText(); err == nil {
				return string(b)
			}
		case fmt.Stringer:
			return s.String()
		}
	}
	if v.Kind() == reflect.Ptr {
		return formatValue(v.Elem())
	}
	return fmt.Sprintf("%v", i)
}
