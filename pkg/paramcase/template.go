package paramcase

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/suite"

	"github.com/testground/paramcase/pkg/params"
)

// Template is a test case definition that receives its parameters before
// each test method runs. Templates are pointers to structs; their exported
// methods whose names carry the configured prefix (Test by default) and
// whose signature is func() or func(*testing.T) are the test methods.
//
// Templates may implement the testify suite lifecycle interfaces
// (suite.TestingSuite, suite.SetupTestSuite, suite.TearDownTestSuite); the
// easiest way to get them is to embed Base.
type Template interface {
	SetParameters(args []interface{}, kwargs map[string]interface{}) error
}

var templateType = reflect.TypeOf((*Template)(nil)).Elem()

// binding ties a template instance to its generated test case.
type binding struct {
	c      *Case
	method string
}

type binder interface {
	bind(*binding)
}

// Base is meant to be embedded into templates. It carries a testify suite
// for assertions and exposes the parameters of the generated test case the
// instance belongs to. Until the instance is bound, every accessor returns
// ErrUnbound.
type Base struct {
	suite.Suite

	b *binding
}

var _ binder = (*Base)(nil)

func (b *Base) bind(bd *binding) {
	b.b = bd
}

// Parameters returns the parameters this test case was instantiated with.
func (b *Base) Parameters() (params.Set, error) {
	if b.b == nil {
		return params.Set{}, ErrUnbound
	}
	return b.b.c.Parameters(), nil
}

// TestCaseIndex returns the index of this test case in the list of
// parameters passed to Parametrized.
func (b *Base) TestCaseIndex() (int, error) {
	if b.b == nil {
		return -1, ErrUnbound
	}
	return b.b.c.Index(), nil
}

// FullParametersSequence returns the full normalized list of parameters
// passed to Parametrized.
func (b *Base) FullParametersSequence() (params.Sequence, error) {
	if b.b == nil {
		return nil, ErrUnbound
	}
	return b.b.c.FullParametersSequence(), nil
}

// Attr returns an attribute propagated from the stand-in.
func (b *Base) Attr(key string) (interface{}, bool) {
	if b.b == nil {
		return nil, false
	}
	return b.b.c.Attr(key)
}

// TestMethodName returns the name of the running test method.
func (b *Base) TestMethodName() string {
	if b.b == nil {
		return ""
	}
	return b.b.method
}

// unboundTemplate stands in for the template name of an unbound Base, which
// cannot see the struct it is embedded in.
const unboundTemplate = "unbound template"

func (b *Base) qualifiedName() string {
	if b.b == nil {
		return unboundTemplate
	}
	return b.b.c.Template()
}

// String renders the instance as Method[index](params) (pkg.Type). An
// unbound instance cannot name its template and renders as
// [...](...) (unbound template); use Describe(v) on the template value to
// get the template type in both cases.
func (b *Base) String() string {
	return describe(b.TestMethodName(), b.qualifiedName(), b)
}

// GoString is the %#v form of String.
func (b *Base) GoString() string {
	return goDescribe(b.TestMethodName(), b.qualifiedName(), b)
}

// accessor is implemented by bound test case instances.
type accessor interface {
	Parameters() (params.Set, error)
	TestCaseIndex() (int, error)
}

// Describe renders a template instance as Method[index](params) (pkg.Type).
// Unbound instances render as Method[...](...) (pkg.Type).
func Describe(v interface{}) string {
	method := ""
	if m, ok := v.(interface{ TestMethodName() string }); ok {
		method = m.TestMethodName()
	}
	a, _ := v.(accessor)
	return describe(method, QualifiedName(reflect.TypeOf(v)), a)
}

func describe(method, qual string, a accessor) string {
	idx, set, err := accessors(a)
	if err != nil {
		return fmt.Sprintf("%s[...](...) (%s)", method, qual)
	}
	return fmt.Sprintf("%s[%d](%s) (%s)", method, idx, set, qual)
}

func goDescribe(method, qual string, a accessor) string {
	idx, set, err := accessors(a)
	if err != nil {
		return fmt.Sprintf("<%s[...](...) testMethod=%s>", qual, method)
	}
	return fmt.Sprintf("<%s[%d](%s) testMethod=%s>", qual, idx, set, method)
}

func accessors(a accessor) (int, params.Set, error) {
	if a == nil {
		return 0, params.Set{}, ErrUnbound
	}
	idx, err := a.TestCaseIndex()
	if err != nil {
		return 0, params.Set{}, err
	}
	set, err := a.Parameters()
	if err != nil {
		return 0, params.Set{}, err
	}
	return idx, set, nil
}

// QualifiedName returns pkgpath.Name for t, dereferencing pointers.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
