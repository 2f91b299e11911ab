package mef

import (
	"fmt"

	"github.com/openpsa-tools/mef-init/pkg/mef/cycle"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// Operator is a gate's Boolean connective.
type Operator int

const (
	OpAnd Operator = iota
	OpOr
	OpXor
	OpNot
	OpNand
	OpNor
	OpVote
	OpNull // a formula wrapping a single argument, no connective of its own
)

var operatorNames = map[string]Operator{
	"and":  OpAnd,
	"or":   OpOr,
	"xor":  OpXor,
	"not":  OpNot,
	"nand": OpNand,
	"nor":  OpNor,
	"vote": OpVote,
	"atleast": OpVote, // legacy tag alias
}

func (op Operator) String() string {
	for name, o := range operatorNames {
		if o == op && name != "atleast" {
			return name
		}
	}
	if op == OpNull {
		return "null"
	}
	return "?"
}

// ParseOperator maps a gate-formula XML tag name to its operator, per
// spec: a "name" attribute or a "constant" tag always means a pass-through
// null formula regardless of the tag itself.
func ParseOperator(tag string, hasNameAttr bool) (Operator, bool) {
	if hasNameAttr || tag == "constant" {
		return OpNull, true
	}
	op, ok := operatorNames[tag]
	return op, ok
}

// FormulaArg is exactly one of a basic event, a house event, a gate, or a
// nested formula. Exactly one field is non-nil.
type FormulaArg struct {
	BasicEvent *BasicEvent
	HouseEvent *HouseEvent
	Gate       *Gate
	Nested     *Formula
}

// Formula is a gate's Boolean expression: a connective plus its
// arguments. vote formulas additionally carry the required vote count.
type Formula struct {
	Operator   Operator
	Args       []FormulaArg
	VoteNumber int
	HasVote    bool
}

// Validate checks arity (vote needs at least VoteNumber+1 args and 2 <=
// VoteNumber < len(Args); not needs exactly 1; xor needs exactly 2; the
// rest need at least 1, with and/or/nand/nor conventionally taking 2+) and
// rejects an argument appearing twice in the same formula.
func (f *Formula) Validate() error {
	n := len(f.Args)
	switch f.Operator {
	case OpNot, OpNull:
		if n != 1 {
			return fmt.Errorf("%s formula needs exactly 1 argument, got %d", f.Operator, n)
		}
	case OpXor:
		if n != 2 {
			return fmt.Errorf("xor formula needs exactly 2 arguments, got %d", n)
		}
	case OpVote:
		if !f.HasVote {
			return fmt.Errorf("vote formula is missing its min attribute")
		}
		if f.VoteNumber < 2 {
			return fmt.Errorf("vote formula's min must be at least 2, got %d", f.VoteNumber)
		}
		if f.VoteNumber >= n {
			return fmt.Errorf("vote formula's min (%d) must be less than its argument count (%d)", f.VoteNumber, n)
		}
	default:
		if n < 1 {
			return fmt.Errorf("%s formula needs at least 1 argument", f.Operator)
		}
	}
	seen := make(map[string]bool)
	for _, a := range f.Args {
		var key string
		switch {
		case a.BasicEvent != nil:
			key = "b:" + a.BasicEvent.QualifiedName()
		case a.HouseEvent != nil:
			key = "h:" + a.HouseEvent.QualifiedName()
		case a.Gate != nil:
			key = "g:" + a.Gate.QualifiedName()
		default:
			continue // nested formulas can't be argument-duplicates of themselves
		}
		if seen[key] {
			return fmt.Errorf("%s formula has a duplicate argument '%s'", f.Operator, key)
		}
		seen[key] = true
	}
	return nil
}

// gates collects every Gate reachable as a direct or nested argument of
// this formula, for cycle detection.
func (f *Formula) gates() []*Gate {
	var out []*Gate
	var walk func(*Formula)
	walk = func(fm *Formula) {
		for _, a := range fm.Args {
			if a.Gate != nil {
				out = append(out, a.Gate)
			}
			if a.Nested != nil {
				walk(a.Nested)
			}
		}
	}
	walk(f)
	return out
}

// Gate is a fault-tree logic gate: a named, scoped element bound to a
// Formula during pass two.
type Gate struct {
	RoleElement
	Formula *Formula
	mark    cycle.Mark
}

// Successors returns the gates this gate's formula references directly or
// through nested sub-formulas, for the gate cycle detector.
func (g *Gate) Successors() []*Gate {
	if g.Formula == nil {
		return nil
	}
	return g.Formula.gates()
}

func (g *Gate) Mark() cycle.Mark     { return g.mark }
func (g *Gate) SetMark(m cycle.Mark) { g.mark = m }

func (*Gate) isEvent()            {}
func (g *Gate) EventName() string { return g.QualifiedName() }

// Validate runs the gate's formula validation, attributing failures to
// this gate's declaration.
func (g *Gate) Validate() error {
	if g.Formula == nil {
		return &merr.ValidationError{Msg: "gate '" + g.QualifiedName() + "' was never bound to a formula"}
	}
	if err := g.Formula.Validate(); err != nil {
		return &merr.ValidationError{Msg: "gate '" + g.QualifiedName() + "': " + err.Error()}
	}
	return nil
}
