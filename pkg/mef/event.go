package mef

import "github.com/openpsa-tools/mef-init/pkg/mef/merr"

// Event is the union of the three things a formula argument can refer
// to. It exists purely so the
// model can keep one combined namespace for basic events, house events,
// and gates: two of them sharing a qualified name is a modeling error even
// though they live in separate per-kind arenas.
type Event interface {
	isEvent()
	EventName() string
}

// HouseEvent is a Boolean flag: always exactly true or false, never
// expression-valued. TRUE and FALSE are canonical singletons owned by the
// Model (see model.go); named house events declared in a model carry their
// own state.
type HouseEvent struct {
	RoleElement
	State bool
}

func (*HouseEvent) isEvent()             {}
func (h *HouseEvent) EventName() string  { return h.QualifiedName() }

// BasicEvent is a leaf event that either carries no expression (its
// probability is supplied out of band) or exactly one, bound during the
// second construction pass. A basic event that is a CCF group member
// points back at its owning group.
type BasicEvent struct {
	RoleElement
	Expression Expression
	CcfGroup   *CcfGroup
}

func (*BasicEvent) isEvent()            {}
func (b *BasicEvent) EventName() string { return b.QualifiedName() }

// HasExpression reports whether pass two bound a probability expression.
func (b *BasicEvent) HasExpression() bool { return b.Expression != nil }

// Validate performs the one static probability check that doesn't require
// evaluating the expression tree: when the bound expression is a bare
// numeric literal (not a parameter reference, distribution, or compound
// expression), its value must be a valid probability in [0, 1].
func (b *BasicEvent) Validate() error {
	if b.Expression == nil {
		return nil
	}
	if c, ok := b.Expression.(*ConstantExpression); ok {
		if c.Value < 0 || c.Value > 1 {
			return &merr.ValidationError{Msg: "basic event '" + b.QualifiedName() + "' has an out-of-range probability"}
		}
	}
	return nil
}
