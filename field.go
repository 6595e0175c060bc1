package clidc

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/huandu/xstrings"
	"github.com/pkg/errors"
)

// Opts are the per-field switches of the binding itself, as opposed to the
// parameters forwarded to the flag set. They are set with tag keys:
//
//	raw      disable naming, inference and checks
//	noname   do not derive a name from the field name
//	char=X   replace underscores of the derived name with X
//	nocheck  do not check the field type against the parameters
//	noinfer  do not infer parameters from the field type
type Opts struct {
	No    bool
	Arg   bool
	Char  string
	Check bool
	Infer bool
}

func defaultOpts(char string) Opts {
	return Opts{Arg: true, Char: char, Check: true, Infer: true}
}

type paramKind int

const (
	kindOption paramKind = iota
	kindArgument
	kindAlias
)

func (k paramKind) String() string {
	switch k {
	case kindOption:
		return "option"
	case kindArgument:
		return "argument"
	case kindAlias:
		return "alias"
	}
	return "unknown"
}

// shape is how parsed strings land in the field.
type shape int

const (
	shapeScalar  shape = iota // replace the value
	shapePointer              // allocate a new element and point at it
	shapeList                 // append an element
	shapeCount                // increment on every occurrence
)

type aliasTarget struct {
	field string
	value string
}

// param is one bound record field.
type param struct {
	kind      paramKind
	field     reflect.StructField
	index     []int
	fieldType reflect.Type
	opts      Opts

	name          string
	short         string
	help          string
	placeholder   string
	env           string
	deprecated    string
	defaultString string
	hasDefaultTag bool
	hidden        bool

	required    bool
	requiredSet bool
	flag        bool
	count       bool
	multiple    bool
	nargs       int
	explicit    bool

	aliased []aliasTarget
	targets []*param

	// resolved
	hasDefault bool
	shape      shape
	base       reflect.Type
	elemPtr    bool
}

func (p *param) String() string {
	return fmt.Sprintf("%s %s (%s)", p.kind, p.field.Name, p.fieldType)
}

// metavar is the name shown for an argument in usage and errors.
func (p *param) metavar() string {
	return strings.ToUpper(strings.ReplaceAll(p.name, "-", "_"))
}

// dashName is the long form used when converting back to arguments.
func (p *param) dashName() string {
	if p.kind == kindArgument {
		return p.name
	}
	return "--" + p.name
}

// getParams walks the struct value sv (the record defaults) and returns its
// bound fields in declaration order, with parameters inferred and checked.
func (b Binder) getParams(sv reflect.Value) ([]*param, error) {
	params, err := b.walk(sv.Type(), nil)
	if err != nil {
		return nil, err
	}

	names := map[string]*param{}
	shorts := map[string]*param{}
	byField := map[string]*param{}
	for _, p := range params {
		p.hasDefault = p.hasDefaultTag || !sv.FieldByIndex(p.index).IsZero()
		p.infer()
		if err := p.resolve(b); err != nil {
			return nil, errors.Wrapf(err, "problem with field %s.%s", sv.Type(), p.field.Name)
		}
		if p.kind != kindArgument {
			if other, ok := names[p.name]; ok {
				return nil, errors.Errorf("fields %s.%s and %s.%s both use --%s", sv.Type(), other.field.Name, sv.Type(), p.field.Name, p.name)
			}
			names[p.name] = p
			if p.short != "" {
				if other, ok := shorts[p.short]; ok {
					return nil, errors.Errorf("fields %s.%s and %s.%s both use -%s", sv.Type(), other.field.Name, sv.Type(), p.field.Name, p.short)
				}
				shorts[p.short] = p
			}
		}
		byField[p.field.Name] = p
	}

	for _, p := range params {
		for _, a := range p.aliased {
			target, ok := byField[a.field]
			if !ok || target.kind != kindOption {
				return nil, errors.Errorf("problem with field %s.%s: aliased option %s not found", sv.Type(), p.field.Name, a.field)
			}
			p.targets = append(p.targets, target)
		}
		if p.kind == kindAlias && p.help == "" {
			p.help = "Alias to " + p.aliasHelp()
		}
	}

	return params, nil
}

func (b Binder) walk(t reflect.Type, index []int) ([]*param, error) {
	params := []*param{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fieldIndex := append(append([]int{}, index...), i)

		tag, hasTag := sf.Tag.Lookup(tagName)
		if tag == "-" {
			continue
		}

		if sf.Anonymous && (!hasTag || tag == "embed") {
			ft := sf.Type
			if ft.Kind() == reflect.Ptr {
				if hasTag {
					return nil, errors.Errorf("problem with field %s.%s: embedded struct pointers are not supported", t, sf.Name)
				}
				continue
			}
			if ft.Kind() != reflect.Struct {
				continue
			}
			embedded, err := b.walk(ft, fieldIndex)
			if err != nil {
				return nil, err
			}
			params = append(params, embedded...)
			continue
		}

		// ignore untagged and unexported fields
		if !hasTag || !sf.IsExported() {
			continue
		}

		if tag == "embed" {
			if sf.Type.Kind() != reflect.Struct {
				return nil, errors.Errorf("problem with field %s.%s: embed tag on non-struct type %s", t, sf.Name, sf.Type)
			}
			embedded, err := b.walk(sf.Type, fieldIndex)
			if err != nil {
				return nil, err
			}
			params = append(params, embedded...)
			continue
		}

		p, err := b.parseParam(sf, fieldIndex, tag)
		if err != nil {
			return nil, errors.Wrapf(err, "problem with field %s.%s", t, sf.Name)
		}
		params = append(params, p)
	}
	return params, nil
}

func (b Binder) parseParam(sf reflect.StructField, index []int, tag string) (*param, error) {
	entries, err := parseStructTagInner(tag)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("empty tag")
	}

	p := &param{
		field:     sf,
		index:     index,
		fieldType: sf.Type,
		opts:      defaultOpts(b.Char),
	}

	switch entries[0].key {
	case "option":
		p.kind = kindOption
	case "argument":
		p.kind = kindArgument
	case "alias":
		p.kind = kindAlias
		p.flag = true
	default:
		return nil, errors.Errorf("tag must start with option, argument or alias (got %q)", entries[0].key)
	}

	unknown := []string{}
	for _, e := range entries[1:] {
		switch e.key {
		case "name":
			p.name = e.val
		case "short":
			if len(e.val) != 1 {
				return nil, errors.New("short name must be 1 letter")
			}
			p.short = e.val
		case "help":
			p.help = e.val
		case "placeholder":
			p.placeholder = e.val
		case "env":
			p.env = e.val
		case "deprecated":
			p.deprecated = e.val
		case "default":
			p.defaultString = e.val
			p.hasDefaultTag = true
		case "hidden":
			p.hidden = true
		case "required":
			p.required = true
			p.requiredSet = true
			p.explicit = true
		case "flag":
			p.flag = true
			p.explicit = true
		case "count":
			p.count = true
			p.explicit = true
		case "multiple":
			p.multiple = true
			p.explicit = true
		case "nargs":
			n, err := strconv.Atoi(e.val)
			if err != nil {
				return nil, errors.Wrap(err, "nargs must be an integer")
			}
			if n == 0 {
				return nil, errors.New("nargs must not be 0")
			}
			p.nargs = n
			p.explicit = true
		case "aliased":
			targets, err := parseAliased(e.val)
			if err != nil {
				return nil, err
			}
			p.aliased = targets
		case "raw":
			p.opts.No = true
		case "noname":
			p.opts.Arg = false
		case "char":
			p.opts.Char = e.val
		case "nocheck":
			p.opts.Check = false
		case "noinfer":
			p.opts.Infer = false
		default:
			unknown = append(unknown, e.key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Errorf("unknown tags: %s", strings.Join(unknown, ", "))
	}
	if p.opts.No {
		p.opts.Arg = false
		p.opts.Check = false
		p.opts.Infer = false
	}

	if p.kind == kindAlias && len(p.aliased) == 0 {
		return nil, errors.New("alias needs aliased='Field=value;...'")
	}
	if p.kind != kindAlias && len(p.aliased) > 0 {
		return nil, errors.Errorf("aliased is only valid on alias fields, not %s", p.kind)
	}
	if p.kind == kindArgument && (p.short != "" || p.env != "") {
		return nil, errors.New("arguments cannot have short or env tags")
	}

	if p.name == "" && p.opts.Arg {
		p.name = strings.ReplaceAll(xstrings.ToSnakeCase(sf.Name), "_", p.opts.Char)
	}
	if p.name == "" {
		if p.kind != kindArgument {
			return nil, errors.Errorf("%s has no name, set one with name=", p.kind)
		}
		p.name = xstrings.ToSnakeCase(sf.Name)
	}

	return p, nil
}

// parseAliased reads `Field=value;Other=value` pairs.
func parseAliased(s string) ([]aliasTarget, error) {
	targets := []aliasTarget{}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, errors.Errorf("aliased entry %q is not of form Field=value", pair)
		}
		targets = append(targets, aliasTarget{field: kv[0], value: kv[1]})
	}
	return targets, nil
}

func (p *param) aliasHelp() string {
	parts := make([]string, 0, len(p.targets))
	for i, a := range p.aliased {
		name := "--" + p.targets[i].name
		switch {
		case a.value == "true":
			parts = append(parts, name)
		case isNumber(a.value):
			parts = append(parts, name+"="+a.value)
		default:
			parts = append(parts, name+"='"+a.value+"'")
		}
	}
	return strings.Join(parts, " ")
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isList reports whether t collects repeated values, which excludes slice
// types such as net.IP that parse themselves from a single string.
func isList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && !hasSetter(t)
}

func isBool(t reflect.Type) bool {
	return t.Kind() == reflect.Bool || (t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Bool)
}

func isInt(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// infer fills in parameters from the field type. Nothing is inferred once
// any of required, flag, count, multiple or nargs was given explicitly.
func (p *param) infer() {
	if !p.opts.Infer || p.explicit || p.kind == kindAlias {
		return
	}
	ft := p.fieldType
	switch p.kind {
	case kindOption:
		switch {
		case isBool(ft):
			p.flag = true
		case ft.Kind() == reflect.Ptr:
			p.required = false
			p.requiredSet = true
		case isList(ft):
			p.multiple = true
		default:
			p.required = !p.hasDefault
			p.requiredSet = true
		}
	case kindArgument:
		switch {
		case isList(ft):
			p.nargs = -1
		case ft.Kind() == reflect.Ptr:
			p.nargs = 1
			p.required = false
			p.requiredSet = true
		default:
			p.nargs = 1
		}
	}
}

// resolve applies the flag set's own defaults, decides how values are
// stored and checks the parameters against the field type.
func (p *param) resolve(b Binder) error {
	ft := p.fieldType

	if p.kind == kindArgument {
		if p.nargs == 0 {
			p.nargs = 1
		}
		if !p.requiredSet {
			p.required = p.nargs > 0 && !p.hasDefault
		}
	}

	if p.opts.Check {
		if err := p.check(); err != nil {
			return err
		}
	}

	p.base = ft
	switch {
	case p.count:
		if !isInt(ft) {
			return errors.Errorf("count needs an integer field, not %s", ft)
		}
		p.shape = shapeCount
	case (p.multiple || (p.kind == kindArgument && p.nargs != 1)) && ft.Kind() == reflect.Slice:
		p.shape = shapeList
		p.base = ft.Elem()
		if p.base.Kind() == reflect.Ptr {
			p.elemPtr = true
			p.base = p.base.Elem()
		}
	case p.kind == kindArgument && p.nargs != 1:
		return errors.Errorf("argument with nargs=%d needs a slice field, not %s", p.nargs, ft)
	case ft.Kind() == reflect.Ptr:
		p.shape = shapePointer
		p.base = ft.Elem()
	default:
		p.shape = shapeScalar
	}

	if !b.canSet(p.base) {
		return errors.Errorf("not supported: no setter for type %s", p.base)
	}
	return nil
}

// check rejects parameters that contradict the declared field type.
func (p *param) check() error {
	ft := p.fieldType
	switch p.kind {
	case kindOption, kindAlias:
		if p.flag && !isBool(ft) {
			return errors.Errorf("flag needs a bool or *bool field, not %s", ft)
		}
		if p.count && !isInt(ft) {
			return errors.Errorf("count needs an integer field, not %s", ft)
		}
		if p.multiple && !isList(ft) {
			return errors.Errorf("multiple needs a slice field, not %s", ft)
		}
		if !p.multiple && !p.flag && isList(ft) {
			return errors.Errorf("slice field %s needs multiple", ft)
		}
	case kindArgument:
		if p.nargs != 1 && !isList(ft) {
			return errors.Errorf("argument with nargs=%d needs a slice field, not %s", p.nargs, ft)
		}
		if p.nargs == 1 && isList(ft) {
			return errors.Errorf("slice field %s needs nargs", ft)
		}
	}
	return nil
}

func (b Binder) canSet(t reflect.Type) bool {
	ptr := reflect.New(t)
	if b.Setter != nil && b.Setter(ptr.Interface()) != nil {
		return true
	}
	return hasSetter(t)
}
