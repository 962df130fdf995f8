package paramcase_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/testground/paramcase/pkg/paramcase"
	"github.com/testground/paramcase/pkg/params"
)

var seen []int

type T struct {
	paramcase.Base

	x int
}

func (c *T) SetParameters(args []interface{}, kwargs map[string]interface{}) error {
	c.x = args[0].(int)
	return nil
}

func (c *T) TestX() {
	c.Require().NotZero(c.x)
	seen = append(seen, c.x)
}

func TestEndToEnd(t *testing.T) {
	ns := paramcase.NewRegistry(nil)
	s, err := paramcase.Parametrized(params.Args{1}, params.Args{2}).ApplyTo(ns, (*T)(nil))
	require.NoError(t, err)

	require.True(t, ns.Has("T_0"))
	require.True(t, ns.Has("T_1"))
	require.True(t, ns.Has("T"))
	require.Len(t, s.Cases(), 2)

	seen = nil
	ns.Run(t)
	require.Equal(t, []int{1, 2}, seen)
}

type Server struct {
	paramcase.Base

	cfg struct {
		Addr    string `param:"addr" validate:"required"`
		Workers int    `param:"workers" validate:"gte=1"`
	}
}

func (s *Server) SetParameters(args []interface{}, kwargs map[string]interface{}) error {
	set, err := s.Parameters()
	if err != nil {
		return err
	}
	return set.Bind(&s.cfg)
}

func (s *Server) TestConfig() {
	s.Require().NotEmpty(s.cfg.Addr)
	s.Require().GreaterOrEqual(s.cfg.Workers, 1)
}

func Example() {
	ns := paramcase.NewRegistry(nil)

	s := paramcase.Parametrized(
		params.KW{"addr": "localhost:8042", "workers": 1},
		params.Args{params.Args{}, params.KW{"addr": "localhost:8043", "workers": "4"}},
	).MustApplyTo(ns, (*Server)(nil))

	for _, c := range s.Cases() {
		fmt.Println(c.Name(), c.Parameters())
	}
	fmt.Println(s.Name(), s.Disabled())

	// Output:
	// Server_0 ((), {addr: "localhost:8042", workers: 1})
	// Server_1 ((), {addr: "localhost:8043", workers: "4"})
	// Server true
}

func TestBindingHook(t *testing.T) {
	ns := paramcase.NewRegistry(nil)
	paramcase.Parametrized(
		params.KW{"addr": "localhost:8042", "workers": 1},
		params.KW{"addr": "localhost:8043", "workers": "4"},
	).MustApplyTo(ns, (*Server)(nil))

	ns.Run(t)
}
