package mef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBasicEvent(name string) *BasicEvent {
	return &BasicEvent{RoleElement: RoleElement{Element: Element{Name: name}, Role: RolePublic}}
}

func TestParseOperator(t *testing.T) {
	op, ok := ParseOperator("and", false)
	require.True(t, ok)
	assert.Equal(t, OpAnd, op)

	op, ok = ParseOperator("atleast", false)
	require.True(t, ok)
	assert.Equal(t, OpVote, op)

	op, ok = ParseOperator("basic-event", true)
	require.True(t, ok)
	assert.Equal(t, OpNull, op)

	op, ok = ParseOperator("constant", false)
	require.True(t, ok)
	assert.Equal(t, OpNull, op)

	_, ok = ParseOperator("bogus", false)
	assert.False(t, ok)
}

func TestFormulaValidateArity(t *testing.T) {
	be1, be2 := newBasicEvent("a"), newBasicEvent("b")

	t.Run("not needs exactly one", func(t *testing.T) {
		f := &Formula{Operator: OpNot, Args: []FormulaArg{{BasicEvent: be1}, {BasicEvent: be2}}}
		assert.Error(t, f.Validate())
	})

	t.Run("xor needs exactly two", func(t *testing.T) {
		f := &Formula{Operator: OpXor, Args: []FormulaArg{{BasicEvent: be1}}}
		assert.Error(t, f.Validate())
		f.Args = append(f.Args, FormulaArg{BasicEvent: be2})
		assert.NoError(t, f.Validate())
	})

	t.Run("vote needs a min attribute", func(t *testing.T) {
		f := &Formula{Operator: OpVote, Args: []FormulaArg{{BasicEvent: be1}, {BasicEvent: be2}}}
		assert.Error(t, f.Validate())
	})

	t.Run("vote min must be below argument count", func(t *testing.T) {
		f := &Formula{
			Operator:   OpVote,
			HasVote:    true,
			VoteNumber: 2,
			Args:       []FormulaArg{{BasicEvent: be1}, {BasicEvent: be2}},
		}
		assert.Error(t, f.Validate(), "min (2) equals the argument count (2)")
	})

	t.Run("vote min at least 2", func(t *testing.T) {
		f := &Formula{
			Operator:   OpVote,
			HasVote:    true,
			VoteNumber: 1,
			Args:       []FormulaArg{{BasicEvent: be1}, {BasicEvent: be2}},
		}
		assert.Error(t, f.Validate())
	})

	t.Run("valid vote", func(t *testing.T) {
		be3 := newBasicEvent("c")
		f := &Formula{
			Operator:   OpVote,
			HasVote:    true,
			VoteNumber: 2,
			Args:       []FormulaArg{{BasicEvent: be1}, {BasicEvent: be2}, {BasicEvent: be3}},
		}
		assert.NoError(t, f.Validate())
	})
}

func TestFormulaValidateRejectsDuplicateArgument(t *testing.T) {
	be := newBasicEvent("a")
	f := &Formula{Operator: OpAnd, Args: []FormulaArg{{BasicEvent: be}, {BasicEvent: be}}}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate argument")
}

func TestFormulaValidateAllowsDuplicateNestedFormulas(t *testing.T) {
	be := newBasicEvent("a")
	nested := &Formula{Operator: OpNot, Args: []FormulaArg{{BasicEvent: be}}}
	f := &Formula{Operator: OpAnd, Args: []FormulaArg{{Nested: nested}, {Nested: nested}}}
	assert.NoError(t, f.Validate(), "nested formulas are never flagged as duplicate arguments of their parent")
}

func TestGateSuccessorsReachThroughNestedFormulas(t *testing.T) {
	g1 := &Gate{RoleElement: RoleElement{Element: Element{Name: "g1"}}}
	g2 := &Gate{RoleElement: RoleElement{Element: Element{Name: "g2"}}}
	nested := &Formula{Operator: OpNot, Args: []FormulaArg{{Gate: g2}}}
	top := &Gate{RoleElement: RoleElement{Element: Element{Name: "top"}}}
	top.Formula = &Formula{Operator: OpAnd, Args: []FormulaArg{{Gate: g1}, {Nested: nested}}}

	succ := top.Successors()
	require.Len(t, succ, 2)
	assert.Contains(t, succ, g1)
	assert.Contains(t, succ, g2)
}

func TestGateValidateRequiresFormula(t *testing.T) {
	g := &Gate{RoleElement: RoleElement{Element: Element{Name: "g"}}}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never bound to a formula")
}
