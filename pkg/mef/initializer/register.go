package initializer

import (
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/build"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// registerHouseEvent builds and registers a house event. Its state is a
// boolean constant that can never forward-reference anything, so unlike
// basic events, gates, and parameters it needs no pass-two entry.
func (init *Initializer) registerHouseEvent(node xmlsrc.Node, basePath string, parentRole mef.Role, comp *mef.Component) error {
	re, err := build.RoleShell(node, basePath, parentRole)
	if err != nil {
		return err
	}
	he := &mef.HouseEvent{RoleElement: re}
	if constants := node.ChildrenNamed("constant"); len(constants) > 0 {
		switch constants[0].Attr("value") {
		case "true":
			he.State = true
		case "false":
			he.State = false
		default:
			return merr.Validation(constants[0].Line(), "constant value must be 'true' or 'false', got %q", constants[0].Attr("value"))
		}
	}
	if err := init.model.AddHouseEvent(he); err != nil {
		return err
	}
	if comp != nil {
		comp.AddHouseEvent(he)
	}
	init.countElement("house-event")
	return nil
}

func (init *Initializer) registerBasicEvent(node xmlsrc.Node, basePath string, parentRole mef.Role, comp *mef.Component) error {
	re, err := build.RoleShell(node, basePath, parentRole)
	if err != nil {
		return err
	}
	be := &mef.BasicEvent{RoleElement: re}
	if err := init.model.AddBasicEvent(be); err != nil {
		return err
	}
	if comp != nil {
		comp.AddBasicEvent(be)
	}
	init.tbd = append(init.tbd, tbdEntry{kind: tbdBasicEvent, node: node, basicEvent: be})
	init.countElement("basic-event")
	return nil
}

func (init *Initializer) registerParameter(node xmlsrc.Node, basePath string, parentRole mef.Role, comp *mef.Component) error {
	re, err := build.RoleShell(node, basePath, parentRole)
	if err != nil {
		return err
	}
	unit := mef.UnitUnitless
	if u := node.Attr("unit"); u != "" {
		parsed, ok := mef.ParseUnit(u)
		if !ok {
			return merr.Validation(node.Line(), "unrecognized parameter unit '%s'", u)
		}
		unit = parsed
	}
	p := &mef.Parameter{RoleElement: re, Unit: unit, Unused: true}
	if err := init.model.AddParameter(p); err != nil {
		return err
	}
	if comp != nil {
		comp.AddParameter(p)
	}
	init.tbd = append(init.tbd, tbdEntry{kind: tbdParameter, node: node, parameter: p})
	init.countElement("parameter")
	return nil
}

func (init *Initializer) registerGate(node xmlsrc.Node, basePath string, parentRole mef.Role, comp *mef.Component) error {
	re, err := build.RoleShell(node, basePath, parentRole)
	if err != nil {
		return err
	}
	g := &mef.Gate{RoleElement: re}
	if err := init.model.AddGate(g); err != nil {
		return err
	}
	if comp != nil {
		comp.AddGate(g)
	}
	init.tbd = append(init.tbd, tbdEntry{kind: tbdGate, node: node, gate: g})
	init.countElement("gate")
	return nil
}

// defineCcfGroup registers a CCF group's shell and its members in one
// step: members must be added to the group before this initializer adds
// them to the model, so a duplicate member name is reported as a
// CCF-specific error rather than a generic scope collision.
func (init *Initializer) defineCcfGroup(node xmlsrc.Node, basePath string, parentRole mef.Role, comp *mef.Component) error {
	re, err := build.RoleShell(node, basePath, parentRole)
	if err != nil {
		return err
	}
	kind, ok := mef.ParseCcfModelKind(node.Attr("model"))
	if !ok {
		return merr.Validation(node.Line(), "unrecognized CCF model '%s'", node.Attr("model"))
	}
	g := &mef.CcfGroup{RoleElement: re, ModelKind: kind}

	members := node.ChildrenNamed("members")
	if len(members) != 1 {
		return merr.Validation(node.Line(), "CCF group '%s' needs exactly one members element", g.QualifiedName())
	}
	if err := init.builder.ProcessCcfMembers(members[0], g); err != nil {
		return err
	}

	if err := init.model.AddCcfGroup(g); err != nil {
		return err
	}
	if comp != nil {
		comp.AddCcfGroup(g)
	}
	init.tbd = append(init.tbd, tbdEntry{kind: tbdCcfGroup, node: node, ccfGroup: g})
	init.countElement("ccf-group")
	return nil
}

// processModelData registers the house events, basic events, and
// parameters declared at model scope, outside any fault tree.
func (init *Initializer) processModelData(node xmlsrc.Node) error {
	for _, n := range node.ChildrenNamed("define-house-event") {
		if err := init.registerHouseEvent(n, "", mef.RolePublic, nil); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-basic-event") {
		if err := init.registerBasicEvent(n, "", mef.RolePublic, nil); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-parameter") {
		if err := init.registerParameter(n, "", mef.RolePublic, nil); err != nil {
			return err
		}
	}
	return nil
}

// registerFaultTreeData registers everything a fault tree or a nested
// component declares directly, before the container itself is added
// anywhere: children resolve names against the container's own qualified
// name as their base path, which only exists once the container's shell
// has been built.
func (init *Initializer) registerFaultTreeData(node xmlsrc.Node, basePath string, role mef.Role, comp *mef.Component) error {
	for _, n := range node.ChildrenNamed("define-house-event") {
		if err := init.registerHouseEvent(n, basePath, role, comp); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-basic-event") {
		if err := init.registerBasicEvent(n, basePath, role, comp); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-parameter") {
		if err := init.registerParameter(n, basePath, role, comp); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-gate") {
		if err := init.registerGate(n, basePath, role, comp); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-CCF-group") {
		if err := init.defineCcfGroup(n, basePath, role, comp); err != nil {
			return err
		}
	}
	for _, n := range node.ChildrenNamed("define-component") {
		sub, err := build.RoleShell(n, basePath, role)
		if err != nil {
			return err
		}
		subComp := &mef.Component{RoleElement: sub}
		if err := init.registerFaultTreeData(n, subComp.QualifiedName(), subComp.Role, subComp); err != nil {
			return err
		}
		comp.AddComponent(subComp)
		init.countElement("component")
	}
	return nil
}

func (init *Initializer) defineFaultTree(node xmlsrc.Node) error {
	re, err := build.RoleShell(node, "", mef.RolePublic)
	if err != nil {
		return err
	}
	ft := &mef.FaultTree{Component: mef.Component{RoleElement: re}}
	if err := init.registerFaultTreeData(node, ft.QualifiedName(), ft.Role, &ft.Component); err != nil {
		return err
	}
	if err := init.model.AddFaultTree(ft); err != nil {
		return err
	}
	init.countElement("fault-tree")
	return nil
}

// defineEventTree registers an event tree's functional events, sequences,
// and named-branch shells, then the tree itself with a single pass-two
// entry that binds every branch body and the initial state together.
func (init *Initializer) defineEventTree(node xmlsrc.Node) error {
	re, err := build.RoleShell(node, "", mef.RolePublic)
	if err != nil {
		return err
	}
	et := &mef.EventTree{RoleElement: re}

	for _, n := range node.ChildrenNamed("define-functional-event") {
		feRe, err := build.RoleShell(n, et.QualifiedName(), et.Role)
		if err != nil {
			return err
		}
		et.FunctionalEvents = append(et.FunctionalEvents, &mef.FunctionalEvent{RoleElement: feRe})
	}

	for _, n := range node.ChildrenNamed("define-sequence") {
		seqRe, err := build.RoleShell(n, et.QualifiedName(), et.Role)
		if err != nil {
			return err
		}
		seq := &mef.Sequence{RoleElement: seqRe}
		if err := init.model.AddSequence(seq); err != nil {
			return err
		}
		init.tbd = append(init.tbd, tbdEntry{kind: tbdSequence, node: n, sequence: seq})
		init.countElement("sequence")
	}

	for _, n := range node.ChildrenNamed("define-branch") {
		nbRe, err := build.RoleShell(n, et.QualifiedName(), et.Role)
		if err != nil {
			return err
		}
		et.Branches = append(et.Branches, &mef.NamedBranch{RoleElement: nbRe})
	}

	if err := init.model.AddEventTree(et); err != nil {
		return err
	}
	init.tbd = append(init.tbd, tbdEntry{kind: tbdEventTree, node: node, eventTree: et})
	init.countElement("event-tree")
	return nil
}
