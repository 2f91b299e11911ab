// Package validate runs the whole-model checks that only make sense once
// every element in every input file has been built: cycle detection over
// the three graphs that can legitimately contain one before rejection,
// then the aggregate checks that report every offender at once instead of
// stopping at the first.
package validate

import (
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/build"
	"github.com/openpsa-tools/mef-init/pkg/mef/cycle"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// Validate runs the full post-construction validation sequence: gate
// cycles, branch cycles, (optionally) missing basic-event probabilities,
// parameter cycles, expression re-validation, CCF group validation, and
// basic-event probability-range validation. The first failing step ends
// the sequence. The cycle and expression steps stop at their first
// problem; the missing-probability step and the last two aggregate every
// offender of their kind into one error.
func Validate(model *mef.Model, probabilityAnalysis bool, exprs []build.ExprEntry) error {
	if err := checkGateCycles(model); err != nil {
		return err
	}
	if err := checkBranchCycles(model); err != nil {
		return err
	}
	if probabilityAnalysis {
		if err := checkMissingProbabilities(model); err != nil {
			return err
		}
	}
	if err := checkParameterCycles(model); err != nil {
		return err
	}
	if err := checkExpressions(exprs); err != nil {
		return err
	}
	if err := checkCcfGroups(model); err != nil {
		return err
	}
	return checkBasicEventProbabilities(model)
}

func checkGateCycles(model *mef.Model) error {
	gates := model.Gates.All()
	for _, g := range gates {
		g.SetMark(cycle.Clear)
	}
	if c, found := cycle.DetectAll(gates); found {
		return &merr.CycleError{Msg: "cyclic gate reference: " + cycle.Print(c, (*mef.Gate).QualifiedName)}
	}
	return nil
}

func checkBranchCycles(model *mef.Model) error {
	for _, et := range model.EventTrees.All() {
		for _, nb := range et.Branches {
			nb.SetMark(cycle.Clear)
		}
		if c, found := cycle.DetectAll(et.Branches); found {
			return &merr.CycleError{Msg: "cyclic branch reference in event tree '" + et.QualifiedName() + "': " +
				cycle.Print(c, (*mef.NamedBranch).QualifiedName)}
		}
	}
	return nil
}

func checkMissingProbabilities(model *mef.Model) error {
	me := merr.NewMultiError("basic events are missing probability expressions")
	for _, be := range model.BasicEvents.All() {
		if !be.HasExpression() {
			me.Add(be.QualifiedName())
		}
	}
	return me.Err()
}

func checkParameterCycles(model *mef.Model) error {
	params := model.Parameters.All()
	for _, p := range params {
		p.SetMark(cycle.Clear)
	}
	if c, found := cycle.DetectAll(params); found {
		return &merr.CycleError{Msg: "cyclic parameter reference: " + cycle.Print(c, (*mef.Parameter).QualifiedName)}
	}
	return nil
}

func checkExpressions(exprs []build.ExprEntry) error {
	for _, e := range exprs {
		if err := e.Expression.Validate(); err != nil {
			return merr.Validation(e.Node.Line(), "%s", err.Error())
		}
	}
	return nil
}

func checkCcfGroups(model *mef.Model) error {
	me := merr.NewMultiError("invalid distributions for CCF groups detected")
	for _, g := range model.CcfGroups.All() {
		if err := g.Validate(); err != nil {
			me.Add(err.Error())
		}
	}
	return me.Err()
}

func checkBasicEventProbabilities(model *mef.Model) error {
	me := merr.NewMultiError("invalid basic event probabilities detected")
	for _, be := range model.BasicEvents.All() {
		if err := be.Validate(); err != nil {
			me.Add(err.Error())
		}
	}
	return me.Err()
}
