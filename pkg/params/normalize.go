package params

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDescriptorShape is returned when a descriptor is neither a string-keyed
// map nor a slice or array.
var ErrDescriptorShape = errors.New("parameter descriptor is neither a mapping nor a sequence")

// Args is a positional descriptor literal.
type Args = []interface{}

// KW is a keyword descriptor literal.
type KW = map[string]interface{}

// Normalize converts raw descriptors into normalized sets, one per
// descriptor, in order. Each descriptor is either a string-keyed map, a
// (sequence, map) pair, or any other sequence of positional values.
func Normalize(descriptors ...interface{}) (Sequence, error) {
	seq := make(Sequence, 0, len(descriptors))
	for i, d := range descriptors {
		s, err := normalizeOne(d)
		if err != nil {
			return nil, fmt.Errorf("descriptor %d (%T): %w", i, d, err)
		}
		seq = append(seq, s)
	}
	return seq, nil
}

// MustNormalize is like Normalize but panics on malformed descriptors.
func MustNormalize(descriptors ...interface{}) Sequence {
	seq, err := Normalize(descriptors...)
	if err != nil {
		panic(err)
	}
	return seq
}

func normalizeOne(d interface{}) (Set, error) {
	v := reflect.ValueOf(d)

	// order matters: mapping, then the (sequence, mapping) pair, then plain
	// positional.
	if isMapping(v) {
		return Set{Args: []interface{}{}, Kwargs: copyMapping(v)}, nil
	}

	if !isSequence(v) {
		return Set{}, ErrDescriptorShape
	}

	if v.Len() == 2 {
		first, second := elem(v.Index(0)), elem(v.Index(1))
		if isSequence(first) && isMapping(second) {
			return Set{Args: copySequence(first), Kwargs: copyMapping(second)}, nil
		}
	}

	return Set{Args: copySequence(v), Kwargs: map[string]interface{}{}}, nil
}

// elem unwraps interface values so that []interface{}{[]int{1}, KW{}} is
// classified by the dynamic types of its elements.
func elem(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isMapping(v reflect.Value) bool {
	return v.IsValid() && v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String
}

func isSequence(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func copySequence(v reflect.Value) []interface{} {
	out := make([]interface{}, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}

func copyMapping(v reflect.Value) map[string]interface{} {
	out := make(map[string]interface{}, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}
