package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"

	"github.com/testground/paramcase/pkg/logging"
	"github.com/testground/paramcase/pkg/params"
)

const defaultTemplateName = "Template"

// resolved is a descriptor file ready to be printed.
type resolved struct {
	path string
	name string
	seq  params.Sequence
}

// expandPaths resolves every argument as a path or a glob (with ** support),
// deduplicated and in a stable order.
func expandPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("missing descriptor file location")
	}

	seen := make(map[string]struct{})
	var out []string
	for _, a := range args {
		matches := []string{a}
		if strings.ContainsAny(a, "*?[") {
			var err error
			if matches, err = zglob.Glob(a); err != nil {
				return nil, fmt.Errorf("failed to expand %s: %w", a, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no descriptor files match %s", a)
			}
			sort.Strings(matches)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

// resolveFiles loads and normalizes every descriptor file named by args.
// The template name is taken from name, the file, or the file's base name,
// in that order.
func resolveFiles(args []string, name string) ([]*resolved, error) {
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}

	out := make([]*resolved, 0, len(paths))
	for _, p := range paths {
		pf, err := params.LoadFile(p)
		if err != nil {
			return nil, err
		}
		seq, err := pf.Sequence()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		r := &resolved{path: p, name: name, seq: seq}
		if r.name == "" {
			r.name = pf.Name
		}
		if r.name == "" {
			r.name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
		if r.name == "" {
			r.name = defaultTemplateName
		}

		logging.S().Debugw("resolved descriptor file", "path", p, "name", r.name, "cases", len(seq))
		out = append(out, r)
	}
	return out, nil
}
