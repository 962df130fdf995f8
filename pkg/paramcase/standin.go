package paramcase

import (
	"reflect"
	"testing"
)

// DisabledReason is reported when a stand-in is run.
const DisabledReason = "parametrized template; its generated variants run instead"

// StandIn takes the place of a parametrized template in its registry. It is
// never run; attributes set on it are propagated to every generated case.
type StandIn struct {
	name  string
	typ   reflect.Type
	cases []*Case
	attrs map[string]interface{}
}

func newStandIn(name string, typ reflect.Type, cases []*Case) *StandIn {
	return &StandIn{
		name:  name,
		typ:   typ,
		cases: cases,
		attrs: make(map[string]interface{}),
	}
}

// Name returns the template name the stand-in is published under.
func (s *StandIn) Name() string { return s.name }

// Template returns the qualified name of the template.
func (s *StandIn) Template() string { return QualifiedName(s.typ) }

// Type returns the template type.
func (s *StandIn) Type() reflect.Type { return s.typ }

// Disabled is always true.
func (s *StandIn) Disabled() bool { return true }

// Reason returns why the stand-in does not run.
func (s *StandIn) Reason() string { return DisabledReason }

// Cases returns the generated cases the stand-in supersedes, in index order.
func (s *StandIn) Cases() []*Case {
	out := make([]*Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// Set records an attribute on the stand-in and on every generated case.
func (s *StandIn) Set(key string, value interface{}) *StandIn {
	s.attrs[key] = value
	for _, c := range s.cases {
		c.setAttr(key, value)
	}
	return s
}

// Attr returns an attribute previously set on the stand-in.
func (s *StandIn) Attr(key string) (interface{}, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// Skip marks every generated case as skipped with reason.
func (s *StandIn) Skip(reason string) *StandIn {
	return s.Set(AttrSkip, reason)
}

// Parallel marks every generated case as parallel.
func (s *StandIn) Parallel() *StandIn {
	return s.Set(AttrParallel, true)
}

// Run skips: the stand-in is discoverable but never executes.
func (s *StandIn) Run(t *testing.T) {
	t.Skip(s.Reason())
}
