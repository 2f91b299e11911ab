package mef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	u, ok := ParseUnit("hours-1")
	require.True(t, ok)
	assert.Equal(t, UnitInverseHours, u)

	_, ok = ParseUnit("furlongs")
	assert.False(t, ok)
}

func newParameter(name string, unit Unit) *Parameter {
	return &Parameter{RoleElement: RoleElement{Element: Element{Name: name}, Role: RolePublic}, Unit: unit}
}

func TestCheckUnitEmptyDeclarationNeverConflicts(t *testing.T) {
	p := newParameter("p", UnitHours)
	assert.NoError(t, CheckUnit("", p, 1))
}

func TestCheckUnitMismatch(t *testing.T) {
	p := newParameter("p", UnitHours)
	err := CheckUnit("years", p, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit mismatch")
}

func TestCheckUnitUnrecognized(t *testing.T) {
	p := newParameter("p", UnitHours)
	assert.Error(t, CheckUnit("bogus-unit", p, 1))
}

func TestParameterSuccessorsWalksExpressionTree(t *testing.T) {
	inner := newParameter("inner", UnitUnitless)
	inner.Expression = c(1)
	outer := newParameter("outer", UnitUnitless)
	outer.Expression = &NAryExpression{Kind: "add", Args: []Expression{inner, c(2)}}

	succ := outer.Successors()
	require.Len(t, succ, 1)
	assert.Same(t, inner, succ[0])
}

func TestParameterSuccessorsWalksHistogramAndSwitch(t *testing.T) {
	pBoundary := newParameter("boundary", UnitUnitless)
	pWeight := newParameter("weight", UnitUnitless)
	h := &HistogramExpression{Boundaries: []Expression{c(0), pBoundary}, Weights: []Expression{pWeight}}
	holder := newParameter("holder", UnitUnitless)
	holder.Expression = h

	succ := holder.Successors()
	assert.ElementsMatch(t, []*Parameter{pBoundary, pWeight}, succ)

	pTest := newParameter("test", UnitUnitless)
	pDefault := newParameter("default", UnitUnitless)
	sw := &SwitchExpression{Cases: []SwitchCase{{Test: pTest, Value: c(1)}}, Default: pDefault}
	holder2 := newParameter("holder2", UnitUnitless)
	holder2.Expression = sw

	succ2 := holder2.Successors()
	assert.ElementsMatch(t, []*Parameter{pTest, pDefault}, succ2)
}

func TestParameterValidateRequiresExpression(t *testing.T) {
	p := newParameter("p", UnitUnitless)
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never bound to an expression")
}

func TestBasicEventValidateRejectsOutOfRangeConstantProbability(t *testing.T) {
	be := newBasicEvent("be")
	be.Expression = c(1.5)
	err := be.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out-of-range probability")
}

func TestBasicEventValidateAllowsBoundaryProbabilities(t *testing.T) {
	for _, v := range []float64{0, 1, 0.5} {
		be := newBasicEvent("be")
		be.Expression = c(v)
		assert.NoError(t, be.Validate())
	}
}

func TestBasicEventValidateSkipsNonConstantExpression(t *testing.T) {
	be := newBasicEvent("be")
	be.Expression = newParameter("p", UnitUnitless)
	assert.NoError(t, be.Validate(), "a parameter reference is only range-checked once evaluated, not at this static stage")
}
