package build

import (
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// DefineBranch fills branch's instructions and target from nodes: every
// node but the last is a collect-expression instruction, the last is the
// target descriptor (fork, sequence, or named-branch reference). It backs
// an event tree's initial state, a <define-branch>, and every <path>
// inside a fork.
func (b *Builder) DefineBranch(nodes []xmlsrc.Node, et *mef.EventTree, branch *mef.Branch, basePath string) error {
	if len(nodes) == 0 {
		return &merr.ValidationError{Msg: "branch in event tree '" + et.QualifiedName() + "' has no target"}
	}
	body, last := nodes[:len(nodes)-1], nodes[len(nodes)-1]
	for _, n := range body {
		instr, err := b.GetInstruction(n, basePath)
		if err != nil {
			return err
		}
		branch.Instructions = append(branch.Instructions, instr)
	}
	switch last.Name() {
	case "fork":
		fork, err := b.defineFork(last, et, basePath)
		if err != nil {
			return err
		}
		et.Forks = append(et.Forks, fork)
		branch.Target = mef.BranchTarget{Kind: mef.TargetFork, Fork: fork}
	case "sequence":
		name := last.Attr("name")
		seq, ok := b.Model.Sequences.Get(name, basePath)
		if !ok {
			return merr.Validation(last.Line(), "undefined sequence '%s'", name)
		}
		branch.Target = mef.BranchTarget{Kind: mef.TargetSequence, Sequence: seq}
	case "branch":
		name := last.Attr("name")
		nb, ok := et.FindBranch(name)
		if !ok {
			return merr.Validation(last.Line(), "undefined branch '%s' in event tree '%s'", name, et.QualifiedName())
		}
		branch.Target = mef.BranchTarget{Kind: mef.TargetNamedBranch, NamedBranch: nb}
	default:
		return merr.Validation(last.Line(), "unrecognized branch target '%s'", last.Name())
	}
	return nil
}

func (b *Builder) defineFork(node xmlsrc.Node, et *mef.EventTree, basePath string) (*mef.Fork, error) {
	feName := node.Attr("functional-event")
	fe, ok := et.FindFunctionalEvent(feName)
	if !ok {
		return nil, merr.Validation(node.Line(), "undefined functional event '%s' in event tree '%s'", feName, et.QualifiedName())
	}
	fork := &mef.Fork{FunctionalEvent: fe}
	for _, pathNode := range node.ChildrenNamed("path") {
		path := &mef.Path{State: pathNode.Attr("state")}
		if err := b.DefineBranch(pathNode.Children(), et, &path.Branch, basePath); err != nil {
			return nil, err
		}
		fork.Paths = append(fork.Paths, path)
	}
	return fork, nil
}

// GetInstruction parses a single <collect-expression> instruction. It is
// the only instruction kind this model understands; unrecognized tags are
// a construction error rather than silently ignored.
func (b *Builder) GetInstruction(node xmlsrc.Node, basePath string) (mef.Instruction, error) {
	if node.Name() != "collect-expression" {
		return mef.Instruction{}, merr.Validation(node.Line(), "unrecognized instruction '%s'", node.Name())
	}
	children := node.Children()
	if len(children) != 1 {
		return mef.Instruction{}, merr.Validation(node.Line(), "collect-expression needs exactly one expression")
	}
	expr, err := b.GetExpression(children[0], basePath)
	if err != nil {
		return mef.Instruction{}, err
	}
	return mef.Instruction{Kind: mef.InstructionCollectExpression, Expression: expr}, nil
}
