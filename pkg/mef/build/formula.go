package build

import (
	"strconv"

	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// GetFormula parses a gate's Boolean formula. A node with a name
// attribute, or the literal tag "constant", is a pass-through null
// formula wrapping a single reference; every other tag is looked up as a
// connective.
func (b *Builder) GetFormula(node xmlsrc.Node, basePath string) (*mef.Formula, error) {
	op, ok := mef.ParseOperator(node.Name(), node.HasAttr("name"))
	if !ok {
		return nil, merr.Validation(node.Line(), "unrecognized formula operator '%s'", node.Name())
	}
	f := &mef.Formula{Operator: op}
	if op == mef.OpVote {
		minAttr := node.Attr("min")
		if minAttr == "" {
			return nil, merr.Validation(node.Line(), "vote formula is missing its required 'min' attribute")
		}
		n, err := strconv.Atoi(minAttr)
		if err != nil {
			return nil, merr.Validation(node.Line(), "vote formula's min %q is not an integer", minAttr)
		}
		f.VoteNumber = n
		f.HasVote = true
	}

	if op == mef.OpNull {
		if err := b.addFormulaArg(f, node, basePath); err != nil {
			return nil, err
		}
	} else {
		for _, child := range node.Children() {
			if err := b.addFormulaArg(f, child, basePath); err != nil {
				return nil, err
			}
		}
	}

	if err := f.Validate(); err != nil {
		return nil, merr.Validation(node.Line(), "%s", err.Error())
	}
	return f, nil
}

func (b *Builder) addFormulaArg(f *mef.Formula, n xmlsrc.Node, basePath string) error {
	if n.Name() == "constant" {
		switch n.Attr("value") {
		case "true":
			f.Args = append(f.Args, mef.FormulaArg{HouseEvent: b.Model.TrueEvent})
			return nil
		case "false":
			f.Args = append(f.Args, mef.FormulaArg{HouseEvent: b.Model.FalseEvent})
			return nil
		default:
			return merr.Validation(n.Line(), "constant formula argument must be 'true' or 'false', got %q", n.Attr("value"))
		}
	}
	if !n.HasAttr("name") {
		nested, err := b.GetFormula(n, basePath)
		if err != nil {
			return err
		}
		f.Args = append(f.Args, mef.FormulaArg{Nested: nested})
		return nil
	}

	name := n.Attr("name")
	elementType := n.Name()
	if t := n.Attr("type"); t != "" {
		elementType = t
	}
	switch elementType {
	case "gate":
		g, ok := b.Model.GetGate(name, basePath)
		if !ok {
			return merr.Validation(n.Line(), "undefined gate '%s' in formula at '%s'", name, basePath)
		}
		f.Args = append(f.Args, mef.FormulaArg{Gate: g})
	case "basic-event":
		be, ok := b.Model.GetBasicEvent(name, basePath)
		if !ok {
			return merr.Validation(n.Line(), "undefined basic event '%s' in formula at '%s'", name, basePath)
		}
		f.Args = append(f.Args, mef.FormulaArg{BasicEvent: be})
	case "house-event":
		he, ok := b.Model.GetHouseEvent(name, basePath)
		if !ok {
			return merr.Validation(n.Line(), "undefined house event '%s' in formula at '%s'", name, basePath)
		}
		f.Args = append(f.Args, mef.FormulaArg{HouseEvent: he})
	default:
		ev, ok := b.Model.GetEvent(name, basePath)
		if !ok {
			return merr.Validation(n.Line(), "undefined event '%s' in formula at '%s'", name, basePath)
		}
		switch v := ev.(type) {
		case *mef.Gate:
			f.Args = append(f.Args, mef.FormulaArg{Gate: v})
		case *mef.BasicEvent:
			f.Args = append(f.Args, mef.FormulaArg{BasicEvent: v})
		case *mef.HouseEvent:
			f.Args = append(f.Args, mef.FormulaArg{HouseEvent: v})
		}
	}
	return nil
}
