package clidc

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// ToArgs converts a record back into command line arguments that would
// parse into an equal record: every option in field order, then every
// argument. Long option names are always used. Aliases are skipped since
// their effect is already part of the options they set.
func ToArgs(rec interface{}, opts ...Option) ([]string, error) {
	s := newSettings(opts)
	if s.err != nil {
		return nil, s.err
	}

	rv := reflect.ValueOf(rec)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, errors.Errorf("record must be a struct or struct pointer (got %T)", rec)
	}

	params, err := s.binder.getParams(rv)
	if err != nil {
		return nil, err
	}

	ret := []string{}
	for _, p := range params {
		if p.kind == kindOption {
			ret = append(ret, p.toArgs(rv.FieldByIndex(p.index))...)
		}
	}
	for _, p := range params {
		if p.kind == kindArgument {
			ret = append(ret, p.toArgs(rv.FieldByIndex(p.index))...)
		}
	}
	return ret, nil
}

// ArgsString is ToArgs joined with spaces, for logging and messages.
func ArgsString(rec interface{}, opts ...Option) (string, error) {
	args, err := ToArgs(rec, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(args, " "), nil
}

func (p *param) toArgs(v reflect.Value) []string {
	ret := []string{}
	name := p.dashName()
	isOption := p.kind != kindArgument

	if p.flag {
		if isTrue(v) {
			ret = append(ret, name)
		}
		return ret
	}

	switch p.shape {
	case shapeCount:
		for i := int64(0); i < v.Int(); i++ {
			ret = append(ret, name)
		}
	case shapeList:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Ptr && elem.IsNil() {
				continue
			}
			if isOption {
				ret = append(ret, name)
			}
			ret = append(ret, formatValue(elem))
		}
	case shapePointer:
		if v.IsNil() {
			break
		}
		if isOption {
			ret = append(ret, name)
		}
		ret = append(ret, formatValue(v.Elem()))
	default:
		if isOption {
			ret = append(ret, name)
		}
		ret = append(ret, formatValue(v))
	}
	return ret
}
