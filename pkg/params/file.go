package params

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
)

var (
	fileValidator = validator.New()
	keywordRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// File is a descriptor file: an optional template name, defaults that
// trickle down to every entry's keyword arguments, and the entries
// themselves.
type File struct {
	// Name is the template name the descriptors are meant for.
	Name string `toml:"name" json:"name"`

	// Defaults are merged into the keyword arguments of every entry. Values
	// set on an entry win.
	Defaults map[string]interface{} `toml:"defaults" json:"defaults"`

	// Params enumerates the descriptors, in order.
	Params []*Entry `toml:"params" json:"params" validate:"required,gt=0,dive,required"`

	path string
}

// Entry is one descriptor in a file. Leaving out both Args and Kwargs yields
// an empty positional descriptor.
type Entry struct {
	Args   []interface{}          `toml:"args" json:"args"`
	Kwargs map[string]interface{} `toml:"kwargs" json:"kwargs"`
}

// LoadFile decodes and validates the descriptor file at path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptor file: %w", err)
	}
	defer f.Close()

	pf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pf.path = path
	return pf, nil
}

// Decode reads a descriptor file from r and validates it.
func Decode(r io.Reader) (*File, error) {
	pf := new(File)
	if _, err := toml.DecodeReader(r, pf); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor file: %w", err)
	}
	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return pf, nil
}

// Path returns the path the file was loaded from, if any.
func (pf *File) Path() string {
	return pf.path
}

// Validate checks the file structure and reports every problem found.
func (pf *File) Validate() error {
	if err := fileValidator.Struct(pf); err != nil {
		return fmt.Errorf("invalid descriptor file: %w", err)
	}

	var merr *multierror.Error
	for _, k := range sortedKeys(pf.Defaults) {
		if !keywordRe.MatchString(k) {
			merr = multierror.Append(merr, fmt.Errorf("defaults: keyword %q is not an identifier", k))
		}
	}
	for i, e := range pf.Params {
		for _, k := range sortedKeys(e.Kwargs) {
			if !keywordRe.MatchString(k) {
				merr = multierror.Append(merr, fmt.Errorf("params[%d]: keyword %q is not an identifier", i, k))
			}
		}
	}
	return merr.ErrorOrNil()
}

// Descriptors converts every entry into a descriptor, with defaults merged
// into the keyword arguments: a (sequence, mapping) pair when the entry has
// args, a mapping when it only has keyword arguments, and an empty sequence
// otherwise. The result feeds Normalize.
func (pf *File) Descriptors() ([]interface{}, error) {
	out := make([]interface{}, 0, len(pf.Params))
	for i, e := range pf.Params {
		kwargs := make(map[string]interface{}, len(e.Kwargs)+len(pf.Defaults))
		for k, v := range e.Kwargs {
			kwargs[k] = v
		}
		if len(pf.Defaults) > 0 {
			if err := mergo.Merge(&kwargs, pf.Defaults); err != nil {
				return nil, fmt.Errorf("params[%d]: failed to merge defaults: %w", i, err)
			}
		}

		// entries with args always use the pair form so that args such as
		// [[1, 2], {c = 3}] stay two positional values.
		switch {
		case e.Args != nil:
			out = append(out, []interface{}{e.Args, kwargs})
		case len(kwargs) > 0:
			out = append(out, kwargs)
		default:
			out = append(out, []interface{}{})
		}
	}
	return out, nil
}

// Sequence normalizes the file's descriptors.
func (pf *File) Sequence() (Sequence, error) {
	ds, err := pf.Descriptors()
	if err != nil {
		return nil, err
	}
	return Normalize(ds...)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
