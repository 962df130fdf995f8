package params

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// ErrParamNotSet is returned by the typed accessors when a parameter is
// missing.
var ErrParamNotSet = errors.New("parameter not set")

var bindValidator = validator.New()

// Set is a normalized parameter set: the positional and keyword arguments
// handed to a template's SetParameters hook.
type Set struct {
	Args   []interface{}
	Kwargs map[string]interface{}
}

// Sequence is the ordered list of sets derived from one list of descriptors.
type Sequence []Set

// Clone returns a copy of s whose containers are not shared with s.
func (s Set) Clone() Set {
	out := Set{
		Args:   make([]interface{}, len(s.Args)),
		Kwargs: make(map[string]interface{}, len(s.Kwargs)),
	}
	copy(out.Args, s.Args)
	for k, v := range s.Kwargs {
		out.Kwargs[k] = v
	}
	return out
}

// Equal reports whether both sets hold deeply equal arguments. A nil and an
// empty container compare equal.
func (s Set) Equal(o Set) bool {
	if len(s.Args) != len(o.Args) || len(s.Kwargs) != len(o.Kwargs) {
		return false
	}
	for i := range s.Args {
		if !reflect.DeepEqual(s.Args[i], o.Args[i]) {
			return false
		}
	}
	for k, v := range s.Kwargs {
		ov, ok := o.Kwargs[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// String renders the set as ((a, b), {k: v}), with sorted keys.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteString("((")
	for i, a := range s.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#v", a)
	}
	sb.WriteString("), {")
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %#v", k, s.Kwargs[k])
	}
	sb.WriteString("})")
	return sb.String()
}

// Keys returns the keyword names in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.Kwargs))
	for k := range s.Kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the sequence's containers.
func (seq Sequence) Clone() Sequence {
	if seq == nil {
		return nil
	}
	out := make(Sequence, len(seq))
	for i, s := range seq {
		out[i] = s.Clone()
	}
	return out
}

// Equal compares two sequences element-wise.
func (seq Sequence) Equal(o Sequence) bool {
	if len(seq) != len(o) {
		return false
	}
	for i := range seq {
		if !seq[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Arg returns the positional argument at index i.
func (s Set) Arg(i int) (interface{}, error) {
	if i < 0 || i >= len(s.Args) {
		return nil, fmt.Errorf("positional argument %d: %w", i, ErrParamNotSet)
	}
	return s.Args[i], nil
}

// Kwarg returns a keyword argument and whether it was set.
func (s Set) Kwarg(name string) (interface{}, bool) {
	v, ok := s.Kwargs[name]
	return v, ok
}

// IsSet checks if a keyword argument is set.
func (s Set) IsSet(name string) bool {
	_, ok := s.Kwargs[name]
	return ok
}

func (s Set) lookup(name string) (interface{}, error) {
	v, ok := s.Kwargs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrParamNotSet)
	}
	return v, nil
}

// StringParam returns a keyword argument rendered as a string.
func (s Set) StringParam(name string) (string, error) {
	v, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	if str, ok := v.(string); ok {
		return str, nil
	}
	return fmt.Sprint(v), nil
}

// Int returns a keyword argument as an int. Strings are parsed.
func (s Set) Int(name string) (int, error) {
	v, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case uint:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%s: %v is not an integer", name, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s: cannot convert %T to int", name, v)
	}
}

// Bool returns a keyword argument as a bool. Strings are parsed.
func (s Set) Bool(name string) (bool, error) {
	v, err := s.lookup(name)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		r, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		return r, nil
	default:
		return false, fmt.Errorf("%s: cannot convert %T to bool", name, v)
	}
}

// Duration returns a keyword argument as a time.Duration. Strings use
// time.ParseDuration syntax.
func (s Set) Duration(name string) (time.Duration, error) {
	v, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		r, err := time.ParseDuration(d)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return r, nil
	default:
		return 0, fmt.Errorf("%s: cannot convert %T to duration", name, v)
	}
}

// Bytes returns a keyword argument as a size in bytes. Strings accept human
// sizes such as "4 KiB" or "10MB".
func (s Set) Bytes(name string) (uint64, error) {
	v, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	switch b := v.(type) {
	case uint64:
		return b, nil
	case int:
		if b < 0 {
			return 0, fmt.Errorf("%s: negative size %d", name, b)
		}
		return uint64(b), nil
	case int64:
		if b < 0 {
			return 0, fmt.Errorf("%s: negative size %d", name, b)
		}
		return uint64(b), nil
	case string:
		n, err := humanize.ParseBytes(b)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: cannot convert %T to bytes", name, v)
	}
}

// Bind decodes the keyword arguments into v, which must be a pointer to a
// struct or a map. Struct fields are matched by their `param` tag (or the
// field name, case-insensitively) and validated against `validate` tags.
func (s Set) Bind(v interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "param",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build parameter decoder: %w", err)
	}

	if err := dec.Decode(s.Kwargs); err != nil {
		return fmt.Errorf("failed to bind parameters: %w", err)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
		if err := bindValidator.Struct(v); err != nil {
			return fmt.Errorf("invalid parameters: %w", err)
		}
	}
	return nil
}
