package paramcase

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"

	"github.com/testground/paramcase/pkg/logging"
	"github.com/testground/paramcase/pkg/params"
)

// Decorator multiplies a template into one generated test case per
// parameter set.
type Decorator struct {
	seq params.Sequence
	err error
}

// Parametrized normalizes descriptors once and returns a decorator for them.
// Every descriptor is a params.KW (or any string-keyed map), a params.Args
// (or any slice or array), or a two-element sequence holding both. A
// malformed descriptor is reported when the decorator is applied.
func Parametrized(descriptors ...interface{}) *Decorator {
	seq, err := params.Normalize(descriptors...)
	return &Decorator{seq: seq, err: err}
}

// FromFile builds a decorator from a descriptor file.
func FromFile(path string) *Decorator {
	pf, err := params.LoadFile(path)
	if err != nil {
		return &Decorator{err: err}
	}
	seq, err := pf.Sequence()
	return &Decorator{seq: seq, err: err}
}

// Sequence returns a copy of the normalized parameter sequence.
func (d *Decorator) Sequence() params.Sequence {
	return d.seq.Clone()
}

// Err returns the normalization error, if any.
func (d *Decorator) Err() error {
	return d.err
}

// Apply multiplies template into the Default registry. See ApplyTo.
func (d *Decorator) Apply(template interface{}) (*StandIn, error) {
	return d.ApplyTo(Default, template)
}

// MustApply is like Apply but panics on error.
func (d *Decorator) MustApply(template interface{}) *StandIn {
	return d.MustApplyTo(Default, template)
}

// MustApplyTo is like ApplyTo but panics on error.
func (d *Decorator) MustApplyTo(ns *Registry, template interface{}) *StandIn {
	s, err := d.ApplyTo(ns, template)
	if err != nil {
		panic(err)
	}
	return s
}

// ApplyTo publishes one generated case per parameter set into ns, named
// <Template>_<index>, followed by a disabled stand-in under the template's
// own name, and returns the stand-in.
//
// template is a pointer to a struct implementing Template; a typed nil such
// as (*MyCase)(nil) is enough. Nothing is published if any check fails.
func (d *Decorator) ApplyTo(ns *Registry, template interface{}) (*StandIn, error) {
	if d.err != nil {
		return nil, d.err
	}

	typ := reflect.TypeOf(template)
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct || typ.Elem().Name() == "" {
		return nil, fmt.Errorf("%v: %w", typ, ErrNotPointer)
	}

	tname := typ.Elem().Name()
	if !typ.Implements(templateType) {
		return nil, fmt.Errorf("%s: %w", tname, ErrMissingHook)
	}

	if ns == nil {
		return nil, fmt.Errorf("%s: %w", tname, ErrNoNamespace)
	}

	names := make([]string, len(d.seq))
	var merr *multierror.Error
	for i := range d.seq {
		names[i] = CaseName(tname, i)
		if ns.Has(names[i]) {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", names[i], ErrDuplicateName))
		}
	}
	if ns.Has(tname) {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", tname, ErrDuplicateName))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	methods := discoverMethods(typ, ns.Config().Prefix)

	cases := make([]*Case, 0, len(d.seq))
	for i, set := range d.seq {
		c := newCase(names[i], i, d.seq, typ, methods, ns.Config())
		if err := ns.Publish(c); err != nil {
			return nil, err
		}
		cases = append(cases, c)

		logging.S().Debugw("published parametrized test case",
			"name", c.Name(), "index", i, "params", set.String(), "methods", len(methods))
	}

	s := newStandIn(tname, typ, cases)
	if err := ns.Publish(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CaseName returns the name of the test case generated from the parameter
// set at index for the template called name.
func CaseName(name string, index int) string {
	return fmt.Sprintf("%s_%d", name, index)
}
