package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpsa-tools/mef-init/pkg/mef"
)

func newModelAndBuilder() (*mef.Model, *Builder) {
	m := mef.NewModel("test")
	return m, NewBuilder(m)
}

func TestGetExpressionConstants(t *testing.T) {
	_, b := newModelAndBuilder()

	node := parseFragment(t, `<float value="0.25"/>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Equal(t, 0.25, e.(*mef.ConstantExpression).Value)

	node = parseFragment(t, `<int value="3"/>`)
	e, err = b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Equal(t, 3.0, e.(*mef.ConstantExpression).Value)
}

func TestGetExpressionBoolReturnsModelSingletons(t *testing.T) {
	m, b := newModelAndBuilder()

	node := parseFragment(t, `<bool value="true"/>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Same(t, m.One, e)

	node = parseFragment(t, `<bool value="false"/>`)
	e, err = b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Same(t, m.Zero, e)

	node = parseFragment(t, `<bool value="maybe"/>`)
	_, err = b.GetExpression(node, "")
	assert.Error(t, err)
}

func TestGetExpressionPi(t *testing.T) {
	m, b := newModelAndBuilder()
	node := parseFragment(t, `<pi/>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Same(t, m.Pi, e)
}

func TestGetExpressionSystemMissionTime(t *testing.T) {
	m, b := newModelAndBuilder()
	m.MissionTime.Expression = &mef.ConstantExpression{Value: 8760}

	node := parseFragment(t, `<system-mission-time/>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Same(t, m.MissionTime, e)
}

func TestGetExpressionSystemMissionTimeUnitMismatch(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<system-mission-time unit="years"/>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit mismatch")
}

func TestGetExpressionParameterReferenceMarksUsed(t *testing.T) {
	m, b := newModelAndBuilder()
	p := &mef.Parameter{RoleElement: mef.RoleElement{Element: mef.Element{Name: "p1"}, Role: mef.RolePublic}, Unit: mef.UnitHours, Unused: true}
	require.NoError(t, m.AddParameter(p))

	node := parseFragment(t, `<parameter name="p1"/>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	assert.Same(t, p, e)
	assert.False(t, p.Unused, "referencing a parameter clears its unused flag")
}

func TestGetExpressionUndefinedParameter(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<parameter name="nope"/>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined parameter")
}

func TestGetExpressionGenericOperatorRecursesAndValidatesArity(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<add><float value="1"/><float value="2"/></add>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	nary := e.(*mef.NAryExpression)
	assert.Equal(t, "add", nary.Kind)
	assert.Len(t, nary.Args, 2)
	assert.Len(t, b.Expressions, 1, "a generic expression is recorded for later re-validation")
}

func TestGetExpressionGenericOperatorRejectsBadArity(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<add><float value="1"/><float value="2"/><float value="3"/></add>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
}

func TestGetExpressionUnrecognizedTag(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<not-a-real-expression/>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized expression")
}

func TestGetExpressionHistogram(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<histogram>
		<float value="0"/>
		<bin><float value="1"/><float value="0.5"/></bin>
		<bin><float value="2"/><float value="0.5"/></bin>
	</histogram>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	h := e.(*mef.HistogramExpression)
	assert.Len(t, h.Boundaries, 3)
	assert.Len(t, h.Weights, 2)
}

func TestGetExpressionHistogramTooFewChildren(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<histogram><float value="0"/></histogram>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
}

func TestGetExpressionSwitch(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<switch>
		<case><bool value="true"/><float value="1"/></case>
		<float value="0"/>
	</switch>`)
	e, err := b.GetExpression(node, "")
	require.NoError(t, err)
	sw := e.(*mef.SwitchExpression)
	require.Len(t, sw.Cases, 1)
	assert.NotNil(t, sw.Default)
}

func TestGetExpressionSwitchNeedsAtLeastDefault(t *testing.T) {
	_, b := newModelAndBuilder()
	node := parseFragment(t, `<switch></switch>`)
	_, err := b.GetExpression(node, "")
	require.Error(t, err)
}
