package paramcase

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/testground/paramcase/pkg/config"
	"github.com/testground/paramcase/pkg/params"
)

// Attributes understood by Case.Run. Any other key is carried along and can
// be read by template instances through Base.Attr.
const (
	// AttrSkip skips the test case. The value is the reason (a string), or
	// true.
	AttrSkip = "skip"

	// AttrParallel runs the test case in parallel with its siblings when
	// true. It overrides the registry configuration.
	AttrParallel = "parallel"
)

var testingTType = reflect.TypeOf((*testing.T)(nil))

type testMethod struct {
	name  string
	fn    reflect.Value
	withT bool
}

// Case is a test case generated from a template and one parameter set.
type Case struct {
	name  string
	index int
	set   params.Set

	// seq is shared with every sibling and never written to.
	seq params.Sequence

	typ     reflect.Type
	methods []testMethod
	cfg     *config.Config
	attrs   map[string]interface{}
}

func newCase(name string, index int, seq params.Sequence, typ reflect.Type, methods []testMethod, cfg *config.Config) *Case {
	return &Case{
		name:    name,
		index:   index,
		set:     seq[index],
		seq:     seq,
		typ:     typ,
		methods: methods,
		cfg:     cfg,
		attrs:   make(map[string]interface{}),
	}
}

// Name returns the derived name, <Template>_<index>.
func (c *Case) Name() string { return c.name }

// Index returns the position of this case's parameters in the sequence.
func (c *Case) Index() int { return c.index }

// Disabled is always false: generated cases are runnable.
func (c *Case) Disabled() bool { return false }

// Template returns the qualified name of the originating template.
func (c *Case) Template() string { return QualifiedName(c.typ) }

// Type returns the template type instances are created from.
func (c *Case) Type() reflect.Type { return c.typ }

// Parameters returns a copy of this case's parameter set.
func (c *Case) Parameters() params.Set {
	return c.set.Clone()
}

// FullParametersSequence returns a copy of the full normalized sequence.
func (c *Case) FullParametersSequence() params.Sequence {
	return c.seq.Clone()
}

// Methods returns the names of the test methods, in run order.
func (c *Case) Methods() []string {
	out := make([]string, len(c.methods))
	for i, m := range c.methods {
		out[i] = m.name
	}
	return out
}

// Attr returns a propagated attribute.
func (c *Case) Attr(key string) (interface{}, bool) {
	v, ok := c.attrs[key]
	return v, ok
}

func (c *Case) setAttr(key string, value interface{}) {
	c.attrs[key] = value
}

func (c *Case) String() string {
	return fmt.Sprintf("%s[%d](%s) (%s)", c.name, c.index, c.set, c.Template())
}

func (c *Case) skipReason() (string, bool) {
	v, ok := c.attrs[AttrSkip]
	if !ok {
		return "", false
	}
	switch r := v.(type) {
	case string:
		return r, true
	case bool:
		return "skipped", r
	default:
		return fmt.Sprint(r), true
	}
}

func (c *Case) parallel() bool {
	if v, ok := c.attrs[AttrParallel].(bool); ok {
		return v
	}
	return c.cfg != nil && c.cfg.Parallel
}

// Run runs every test method of the case as a subtest. Each method gets a
// fresh template instance.
func (c *Case) Run(t *testing.T) {
	if reason, ok := c.skipReason(); ok {
		t.Skip(reason)
	}
	if c.parallel() {
		t.Parallel()
	}

	for _, m := range c.methods {
		m := m
		t.Run(m.name, func(t *testing.T) {
			c.runMethod(t, m)
		})
	}
}

// NewInstance returns a fresh template instance bound to this case, as it
// would be before SetParameters is called for method.
func (c *Case) NewInstance(method string) Template {
	inst := reflect.New(c.typ.Elem()).Interface()
	if b, ok := inst.(binder); ok {
		b.bind(&binding{c: c, method: method})
	}
	return inst.(Template)
}

func (c *Case) runMethod(t *testing.T, m testMethod) {
	inst := c.NewInstance(m.name)
	if ts, ok := inst.(suite.TestingSuite); ok {
		ts.SetT(t)
	}

	set := c.set.Clone()
	if err := inst.SetParameters(set.Args, set.Kwargs); err != nil {
		t.Fatalf("%s: SetParameters failed: %s", c.name, err)
	}

	if s, ok := inst.(suite.SetupTestSuite); ok {
		s.SetupTest()
	}
	if s, ok := inst.(suite.TearDownTestSuite); ok {
		defer s.TearDownTest()
	}

	in := []reflect.Value{reflect.ValueOf(inst)}
	if m.withT {
		in = append(in, reflect.ValueOf(t))
	}
	m.fn.Call(in)
}

// discoverMethods finds the test methods of typ: exported methods starting
// with prefix that take nothing or a *testing.T and return nothing.
func discoverMethods(typ reflect.Type, prefix string) []testMethod {
	var out []testMethod
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		if !strings.HasPrefix(m.Name, prefix) || m.Type.NumOut() != 0 {
			continue
		}
		switch {
		case m.Type.NumIn() == 1:
			out = append(out, testMethod{name: m.Name, fn: m.Func})
		case m.Type.NumIn() == 2 && m.Type.In(1) == testingTType:
			out = append(out, testMethod{name: m.Name, fn: m.Func, withT: true})
		}
	}
	return out
}
