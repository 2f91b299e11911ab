// Package mef holds the analysis-ready data model: fault trees, event
// trees, common-cause-failure groups, parameters, and the expression graph
// that binds them together. The Model owns every element in per-kind
// arenas (see model.go); cross-references between elements are plain Go
// pointers obtained through the symbol table, which is safe even across
// cycles because the runtime, not manual handle bookkeeping, reclaims
// cyclic graphs once the Model itself is released.
package mef

import "github.com/openpsa-tools/mef-init/pkg/mef/merr"

// Attribute is one arbitrary (name, value, type) triple attached to an
// element via the MEF <attributes> container. It has nothing to do with
// XML attributes on the defining element itself.
type Attribute struct {
	Name  string
	Value string
	Type  string
}

// Element is the base trait every MEF construct carries: a unique name
// within its container, an optional free-text label, and a set of
// attribute triples with unique names.
type Element struct {
	Name       string
	Label      string
	Attributes []Attribute
	attrNames  map[string]bool
}

// SetLabel attaches the element's optional <label> text.
func (e *Element) SetLabel(text string) { e.Label = text }

// AddAttribute appends an attribute, rejecting a name already present on
// this element.
func (e *Element) AddAttribute(a Attribute) error {
	if e.attrNames == nil {
		e.attrNames = make(map[string]bool)
	}
	if e.attrNames[a.Name] {
		return &merr.ValidationError{Msg: "duplicate attribute name '" + a.Name + "' on '" + e.Name + "'"}
	}
	e.attrNames[a.Name] = true
	e.Attributes = append(e.Attributes, a)
	return nil
}

// Role is an element's visibility: public elements are additionally
// resolvable by bare name at model scope; private elements are only
// resolvable within their declaring container.
type Role int

const (
	RolePublic Role = iota
	RolePrivate
)

func (r Role) String() string {
	if r == RolePublic {
		return "public"
	}
	return "private"
}

// ParseRole maps an XML role attribute value, inheriting parent when s is
// empty.
func ParseRole(s string, parent Role) Role {
	switch s {
	case "public":
		return RolePublic
	case "private":
		return RolePrivate
	default:
		return parent
	}
}

// RoleElement adds visibility and scope to an Element: a role and a
// dot-separated base path of ancestor container names (empty at model
// scope).
type RoleElement struct {
	Element
	Role     Role
	BasePath string
}

// QualifiedName is base_path ⊕ "." ⊕ name when BasePath is non-empty, else
// just name.
func (r *RoleElement) QualifiedName() string {
	if r.BasePath == "" {
		return r.Name
	}
	return r.BasePath + "." + r.Name
}
