// Package symtab implements the scoped name resolution rule shared by every
// kind of named MEF element: try the fully qualified name, then
// progressively strip the innermost scope segment, and finally fall back to
// the model-scope table of public elements addressed by bare name.
package symtab

import (
	"fmt"
	"strings"

	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// Table holds one kind of named element (gates, basic events, parameters,
// ...) indexed both by its fully qualified name and, for public elements,
// by its bare name at model scope.
type Table[T any] struct {
	kind         string
	full         map[string]T
	publicByName map[string]T
	order        []string // qualified names in insertion order, for stable iteration
}

// New returns an empty table. kind names the element kind for error
// messages, e.g. "gate" or "parameter".
func New[T any](kind string) *Table[T] {
	return &Table[T]{
		kind:         kind,
		full:         make(map[string]T),
		publicByName: make(map[string]T),
	}
}

// Qualify joins a base path and a bare name the way spec.md defines it:
// base_path ⊕ "." ⊕ name when base_path is non-empty, else name.
func Qualify(basePath, name string) string {
	if basePath == "" {
		return name
	}
	return basePath + "." + name
}

// Insert adds v under its qualified name, additionally exposing it by bare
// name at model scope if public is true. It fails if the qualified name is
// already taken, or if a public bare-name collision would shadow an
// existing public element from a different scope.
func (t *Table[T]) Insert(basePath, name string, public bool, v T) error {
	qualified := Qualify(basePath, name)
	if _, exists := t.full[qualified]; exists {
		return &merr.ValidationError{Msg: fmt.Sprintf("duplicate %s name '%s'", t.kind, qualified)}
	}
	if public {
		if _, exists := t.publicByName[name]; exists {
			return &merr.ValidationError{Msg: fmt.Sprintf("duplicate public %s name '%s'", t.kind, name)}
		}
	}
	t.full[qualified] = v
	t.order = append(t.order, qualified)
	if public {
		t.publicByName[name] = v
	}
	return nil
}

// Get resolves (name, basePath) per the scoped lookup rule: try
// basePath.name, then strip basePath's innermost segment repeatedly, then
// fall back to the model-scope public table by bare name.
func (t *Table[T]) Get(name, basePath string) (T, bool) {
	var segments []string
	if basePath != "" {
		segments = strings.Split(basePath, ".")
	}
	for i := len(segments); i >= 1; i-- {
		candidate := strings.Join(segments[:i], ".") + "." + name
		if v, ok := t.full[candidate]; ok {
			return v, true
		}
	}
	if v, ok := t.full[name]; ok {
		return v, true
	}
	if v, ok := t.publicByName[name]; ok {
		return v, true
	}
	var zero T
	return zero, false
}

// GetQualified looks up an element by its exact qualified name only,
// bypassing scope stripping and the public fallback. Used when the caller
// already has a fully resolved path (e.g. a sequence name at model scope).
func (t *Table[T]) GetQualified(qualified string) (T, bool) {
	v, ok := t.full[qualified]
	return v, ok
}

// All returns every element in insertion order.
func (t *Table[T]) All() []T {
	out := make([]T, 0, len(t.order))
	for _, q := range t.order {
		out = append(out, t.full[q])
	}
	return out
}

// Len reports how many elements are stored.
func (t *Table[T]) Len() int { return len(t.order) }
