package paramcase

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/testground/paramcase/pkg/config"
	"github.com/testground/paramcase/pkg/logging"
)

// Entry is anything a registry can run: generated cases and stand-ins.
type Entry interface {
	Name() string
	Disabled() bool
	Run(t *testing.T)
}

var (
	_ Entry = (*Case)(nil)
	_ Entry = (*StandIn)(nil)
)

// Registry is the namespace generated test cases are published into, in
// publication order. Registration is expected to happen during package
// initialization; it is not safe for concurrent use with Run.
type Registry struct {
	cfg     *config.Config
	entries []Entry
	byName  map[string]Entry
}

// Default is the registry used by Decorator.Apply and Run. Its configuration
// comes from config.Load with no explicit path.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	cfg, err := config.Load("")
	if err != nil {
		logging.S().Warnw("failed to load configuration; using defaults", "err", err)
		cfg = config.Default()
	}

	var l zapcore.Level
	if err := l.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		logging.SetLevel(l)
	}
	return NewRegistry(cfg)
}

// NewRegistry creates an empty registry. A nil configuration means
// config.Default().
func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Registry{
		cfg:    cfg,
		byName: make(map[string]Entry),
	}
}

// Config returns the registry configuration.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// Publish adds an entry under its name.
func (r *Registry) Publish(e Entry) error {
	if _, ok := r.byName[e.Name()]; ok {
		return fmt.Errorf("%s: %w", e.Name(), ErrDuplicateName)
	}
	r.byName[e.Name()] = e
	r.entries = append(r.entries, e)
	return nil
}

// Has reports whether name was published.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Lookup returns the entry published under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Entries returns every entry in publication order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Cases returns the generated cases in publication order.
func (r *Registry) Cases() []*Case {
	var out []*Case
	for _, e := range r.entries {
		if c, ok := e.(*Case); ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Run runs every entry selected by the configured filter as a subtest of t.
// Disabled entries are reported as skipped.
func (r *Registry) Run(t *testing.T) {
	t.Helper()

	re, err := r.cfg.Matcher()
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range r.entries {
		if re != nil && !re.MatchString(e.Name()) {
			continue
		}
		t.Run(e.Name(), e.Run)
	}
}

// Run runs the Default registry.
func Run(t *testing.T) {
	t.Helper()
	Default.Run(t)
}
