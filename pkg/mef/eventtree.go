package mef

import "github.com/openpsa-tools/mef-init/pkg/mef/cycle"

// FunctionalEvent is a named question an event tree branches on. It
// carries no further structure of its own: the branching is expressed by
// the Fork that names it.
type FunctionalEvent struct {
	RoleElement
}

// InstructionKind distinguishes the kinds of side effect a branch can
// carry before reaching its target. Only collect-expression exists today;
// the type stays open for future instruction kinds the way the teacher's
// own dispatch tables stay open for new tags.
type InstructionKind int

const (
	InstructionCollectExpression InstructionKind = iota
)

// Instruction is one <collect-expression> (or future instruction kind)
// attached to a branch.
type Instruction struct {
	Kind       InstructionKind
	Expression Expression
}

// BranchTargetKind selects which of a BranchTarget's fields is populated.
type BranchTargetKind int

const (
	TargetNamedBranch BranchTargetKind = iota
	TargetSequence
	TargetFork
)

// BranchTarget is what a branch (or a fork path) leads to next: another
// named branch, a terminal sequence, or a further fork.
type BranchTarget struct {
	Kind        BranchTargetKind
	NamedBranch *NamedBranch
	Sequence    *Sequence
	Fork        *Fork
}

// Branch is a sequence of instructions followed by a target. It backs
// both the tree's initial state and every path inside a Fork.
type Branch struct {
	Instructions []Instruction
	Target       BranchTarget
}

// successors resolves the named-branch targets reachable from b, unwinding
// through any number of intervening forks. Sequences are terminal.
func (b Branch) successors() []*NamedBranch {
	switch b.Target.Kind {
	case TargetNamedBranch:
		return []*NamedBranch{b.Target.NamedBranch}
	case TargetSequence:
		return nil
	case TargetFork:
		var out []*NamedBranch
		for _, path := range b.Target.Fork.Paths {
			out = append(out, path.Branch.successors()...)
		}
		return out
	default:
		return nil
	}
}

// Path is one arm of a Fork, keyed by the functional event's state.
type Path struct {
	State string
	Branch
}

// Fork splits execution on a functional event's possible states.
type Fork struct {
	FunctionalEvent *FunctionalEvent
	Paths           []*Path
}

// Sequence is an event tree's terminal outcome: a named list of
// instructions with no further branching. Sequences are visible at model
// scope by bare name, since branch targets reference them without going
// through the declaring event tree.
type Sequence struct {
	RoleElement
	Instructions []Instruction
}

// NamedBranch is a reusable, named Branch that other branches (directly
// or through forks) can target, which is exactly what makes named
// branches the one place an event tree can legitimately contain a cycle
// before it's rejected.
type NamedBranch struct {
	RoleElement
	Branch
	mark cycle.Mark
}

func (nb *NamedBranch) Successors() []*NamedBranch { return nb.Branch.successors() }
func (nb *NamedBranch) Mark() cycle.Mark            { return nb.mark }
func (nb *NamedBranch) SetMark(m cycle.Mark)        { nb.mark = m }

// EventTree owns its functional events, sequences, named branches, and
// forks, plus the initial-state branch that begins evaluation.
type EventTree struct {
	RoleElement
	FunctionalEvents []*FunctionalEvent
	Sequences        []*Sequence
	Branches         []*NamedBranch
	Forks            []*Fork
	InitialState     Branch
}

// FindFunctionalEvent looks up a functional event by bare name among
// those this tree declares.
func (et *EventTree) FindFunctionalEvent(name string) (*FunctionalEvent, bool) {
	for _, fe := range et.FunctionalEvents {
		if fe.Name == name {
			return fe, true
		}
	}
	return nil, false
}

// FindBranch looks up a named branch declared by this tree.
func (et *EventTree) FindBranch(name string) (*NamedBranch, bool) {
	for _, b := range et.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}
