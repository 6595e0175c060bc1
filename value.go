package clidc

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// fieldValue holds the parsed value of one bound field and implements
// pflag.Value so the flag set writes into it directly.
type fieldValue struct {
	p      *param
	target reflect.Value
	setter SetterFunc

	// setCount is the number of explicit sets (command line or environment)
	setCount uint
	// order is the position of the first explicit set among all fields of
	// the binding
	order   int
	counter *int
}

// newFieldValue creates a value starting out as a copy of def, which must be
// of the field's type.
func newFieldValue(p *param, def reflect.Value, setter SetterFunc, counter *int) *fieldValue {
	if counter == nil {
		counter = new(int)
	}
	return &fieldValue{
		p:       p,
		target:  copyValue(def),
		setter:  setter,
		counter: counter,
	}
}

// copyValue returns an addressable copy of v. Slices get their own backing
// array and pointers their own element, so a record never shares memory with
// the defaults or with another record.
func copyValue(v reflect.Value) reflect.Value {
	c := reflect.New(v.Type()).Elem()
	switch {
	case v.Kind() == reflect.Slice && !v.IsNil():
		s := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			s.Index(i).Set(copyValue(v.Index(i)))
		}
		c.Set(s)
	case v.Kind() == reflect.Ptr && !v.IsNil():
		elem := reflect.New(v.Type().Elem())
		elem.Elem().Set(v.Elem())
		c.Set(elem)
	default:
		c.Set(v)
	}
	return c
}

func (fv *fieldValue) Set(s string) error {
	if fv.setCount == 0 {
		*fv.counter++
		fv.order = *fv.counter
		// values given explicitly replace a default list
		if fv.p.shape == shapeList {
			fv.target.Set(reflect.Zero(fv.target.Type()))
		}
	}
	fv.setCount++
	return fv.assign(s)
}

// assign stores s without counting it as explicitly set.
func (fv *fieldValue) assign(s string) error {
	p := fv.p
	switch p.shape {
	case shapeCount:
		if s == "+1" {
			fv.target.SetInt(fv.target.Int() + 1)
			return nil
		}
		n, err := strconv.ParseInt(s, 0, fv.target.Type().Bits())
		if err != nil {
			return err
		}
		fv.target.SetInt(n)
	case shapeList:
		elem, err := fv.parse(s)
		if err != nil {
			return err
		}
		if p.elemPtr {
			elem = elem.Addr()
		}
		fv.target.Set(reflect.Append(fv.target, elem))
	case shapePointer:
		elem, err := fv.parse(s)
		if err != nil {
			return err
		}
		fv.target.Set(elem.Addr())
	default:
		elem, err := fv.parse(s)
		if err != nil {
			return err
		}
		fv.target.Set(elem)
	}
	return nil
}

// assignDefault parses a textual default. Lists take comma-separated values.
func (fv *fieldValue) assignDefault(s string) error {
	if fv.p.shape != shapeList {
		return fv.assign(s)
	}
	fv.target.Set(reflect.Zero(fv.target.Type()))
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		if err := fv.assign(strings.TrimSpace(part)); err != nil {
			return err
		}
	}
	return nil
}

// parse converts s into a new addressable value of the element type.
func (fv *fieldValue) parse(s string) (reflect.Value, error) {
	ptr := reflect.New(fv.p.base)
	var set Setter
	if fv.setter != nil {
		set = fv.setter(ptr.Interface())
	}
	if set == nil {
		set = tryGetSetter(ptr.Interface())
	}
	if set == nil {
		set = tryGetSetter(ptr.Elem().Interface())
	}
	if set == nil {
		return reflect.Value{}, errors.Errorf("no setter for type %s", fv.p.base)
	}
	if err := set.Set(s); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

func (fv *fieldValue) String() string {
	switch fv.p.shape {
	case shapeList:
		if fv.target.Len() == 0 {
			return ""
		}
		parts := make([]string, fv.target.Len())
		for i := range parts {
			parts[i] = formatValue(fv.target.Index(i))
		}
		return "[" + strings.Join(parts, ",") + "]"
	case shapeCount:
		return strconv.FormatInt(fv.target.Int(), 10)
	default:
		return formatValue(fv.target)
	}
}

func (fv *fieldValue) Type() string {
	p := fv.p
	switch {
	case p.placeholder != "":
		return p.placeholder
	case p.flag:
		return "bool"
	case p.shape == shapeCount:
		return "count"
	}
	name := strings.ToLower(p.base.Name())
	if name == "" {
		name = p.base.String()
	}
	if p.shape == shapeList {
		name += "s"
	}
	return name
}

// isTrue reports whether a flag-style field is on.
func isTrue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Ptr:
		return !v.IsNil() && isTrue(v.Elem())
	}
	return !v.IsZero()
}
