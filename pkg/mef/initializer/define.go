package initializer

import (
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// defineGateBody binds a gate's single formula child.
func (init *Initializer) defineGateBody(node xmlsrc.Node, g *mef.Gate) error {
	formulas := nonAttributeChildren(node)
	if len(formulas) != 1 {
		return merr.Validation(node.Line(), "gate '%s' must have exactly one formula, got %d", g.QualifiedName(), len(formulas))
	}
	formula, err := init.builder.GetFormula(formulas[0], g.BasePath)
	if err != nil {
		return err
	}
	g.Formula = formula
	if err := g.Validate(); err != nil {
		return merr.Validation(node.Line(), "%s", err.Error())
	}
	return nil
}

// defineBasicEventBody binds the last non-attribute child, if any, as the
// basic event's probability expression; an event with none is missing a
// probability, which checkMissingProbabilities catches when required.
func (init *Initializer) defineBasicEventBody(node xmlsrc.Node, be *mef.BasicEvent) error {
	children := nonAttributeChildren(node)
	if len(children) == 0 {
		return nil
	}
	expr, err := init.builder.GetExpression(children[len(children)-1], be.BasePath)
	if err != nil {
		return err
	}
	be.Expression = expr
	return nil
}

// defineParameterBody binds a parameter's exactly-one expression child.
func (init *Initializer) defineParameterBody(node xmlsrc.Node, p *mef.Parameter) error {
	children := nonAttributeChildren(node)
	if len(children) != 1 {
		return merr.Validation(node.Line(), "parameter '%s' must have exactly one expression, got %d", p.QualifiedName(), len(children))
	}
	expr, err := init.builder.GetExpression(children[0], p.BasePath)
	if err != nil {
		return err
	}
	p.Expression = expr
	return nil
}

// defineCcfGroupBody dispatches a group's children generically on tag
// name: distribution, factor, and the older factors/factor wrapper form.
func (init *Initializer) defineCcfGroupBody(node xmlsrc.Node, g *mef.CcfGroup) error {
	for _, n := range node.Children() {
		switch n.Name() {
		case "distribution":
			children := n.Children()
			if len(children) != 1 {
				return merr.Validation(n.Line(), "CCF group '%s' distribution needs exactly one expression", g.QualifiedName())
			}
			expr, err := init.builder.GetExpression(children[0], g.BasePath)
			if err != nil {
				return err
			}
			g.AddDistribution(expr)
		case "factor":
			if err := init.builder.DefineCcfFactor(n, g, g.BasePath); err != nil {
				return err
			}
		case "factors":
			for _, f := range n.ChildrenNamed("factor") {
				if err := init.builder.DefineCcfFactor(f, g, g.BasePath); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// defineSequenceBody binds a sequence's instructions.
func (init *Initializer) defineSequenceBody(node xmlsrc.Node, s *mef.Sequence) error {
	for _, n := range nonAttributeChildren(node) {
		instr, err := init.builder.GetInstruction(n, s.BasePath)
		if err != nil {
			return err
		}
		s.Instructions = append(s.Instructions, instr)
	}
	return nil
}

// defineEventTreeBody binds every named branch's body, paired positionally
// with the tree's <define-branch> children in declaration order, and the
// tree's single initial-state branch. Both are bound here, from one
// pass-two entry, because the original tool processes them together once
// the tree's branch shells all exist.
func (init *Initializer) defineEventTreeBody(node xmlsrc.Node, et *mef.EventTree) error {
	branchNodes := node.ChildrenNamed("define-branch")
	if len(branchNodes) != len(et.Branches) {
		return merr.Validation(node.Line(), "event tree '%s' has %d branch shells but %d define-branch elements",
			et.QualifiedName(), len(et.Branches), len(branchNodes))
	}
	for i, bn := range branchNodes {
		nb := et.Branches[i]
		if bn.Attr("name") != nb.Name {
			return merr.Validation(bn.Line(), "event tree '%s' branch order mismatch: expected '%s', got '%s'",
				et.QualifiedName(), nb.Name, bn.Attr("name"))
		}
		if err := init.builder.DefineBranch(nonAttributeChildren(bn), et, &nb.Branch, et.QualifiedName()); err != nil {
			return err
		}
	}

	initialStates := node.ChildrenNamed("initial-state")
	if len(initialStates) != 1 {
		return merr.Validation(node.Line(), "event tree '%s' must have exactly one initial-state, got %d",
			et.QualifiedName(), len(initialStates))
	}
	if err := init.builder.DefineBranch(nonAttributeChildren(initialStates[0]), et, &et.InitialState, et.QualifiedName()); err != nil {
		return err
	}
	return nil
}
