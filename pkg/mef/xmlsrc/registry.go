package xmlsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// Registry owns every parsed Document for the lifetime of initialization.
// Each Document keeps the path the caller supplied; the registry keeps no
// canonical-path index.
type Registry struct {
	docs []*Document
}

// NewRegistry returns an empty document registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// CheckFiles verifies every path exists and that no two paths resolve to
// the same canonical filesystem location.
func CheckFiles(paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return &merr.IOError{Msg: fmt.Sprintf("file doesn't exist: %s", p)}
		}
	}

	type entry struct {
		canonical string
		given     string
	}
	entries := make([]entry, 0, len(paths))
	for _, p := range paths {
		canon, err := canonicalize(p)
		if err != nil {
			return &merr.IOError{Msg: fmt.Sprintf("cannot canonicalize %s: %v", p, err)}
		}
		entries = append(entries, entry{canonical: canon, given: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].canonical < entries[j].canonical })

	for i := 1; i < len(entries); i++ {
		if entries[i].canonical == entries[i-1].canonical {
			msg := "duplicate input files:\n"
			j := i - 1
			for j < len(entries) && entries[j].canonical == entries[i-1].canonical {
				msg += "    " + entries[j].given + "\n"
				j++
			}
			msg += "  canonical path: " + entries[i-1].canonical
			return &merr.DuplicateArgumentError{Msg: msg}
		}
	}
	return nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Load parses path and records it in the registry.
func (r *Registry) Load(path string) (*Document, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	r.docs = append(r.docs, doc)
	return doc, nil
}

// Documents returns every loaded document, in load order.
func (r *Registry) Documents() []*Document { return r.docs }
