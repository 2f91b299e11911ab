package introspect

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpsa-tools/mef-init/pkg/mef"
)

func sampleModel(t *testing.T) *mef.Model {
	t.Helper()
	m := mef.NewModel("sample")
	be := &mef.BasicEvent{
		RoleElement: mef.RoleElement{Element: mef.Element{Name: "be1"}, Role: mef.RolePublic},
		Expression:  &mef.ConstantExpression{Value: 0.01},
	}
	require.NoError(t, m.AddBasicEvent(be))

	g := &mef.Gate{
		RoleElement: mef.RoleElement{Element: mef.Element{Name: "g1"}, BasePath: "ft1", Role: mef.RolePublic},
		Formula:     &mef.Formula{Operator: mef.OpNot, Args: []mef.FormulaArg{{BasicEvent: be}}},
	}
	require.NoError(t, m.AddGate(g))

	ft := &mef.FaultTree{Component: mef.Component{RoleElement: mef.RoleElement{Element: mef.Element{Name: "ft1"}, Role: mef.RolePublic}}}
	ft.AddGate(g)
	require.NoError(t, m.AddFaultTree(ft))

	return m
}

func execute(t *testing.T, schema graphql.Schema, query string) *graphql.Result {
	t.Helper()
	result := graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: context.Background()})
	require.Empty(t, result.Errors, "%v", result.Errors)
	return result
}

func TestGenerateSchemaHealthCheck(t *testing.T) {
	schema, err := GenerateSchema(sampleModel(t))
	require.NoError(t, err)

	result := execute(t, schema, `{ health }`)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "ok", data["health"])
}

func TestGenerateSchemaQueriesGateByName(t *testing.T) {
	schema, err := GenerateSchema(sampleModel(t))
	require.NoError(t, err)

	result := execute(t, schema, `{ gate(name: "ft1.g1") { name operator } }`)
	data := result.Data.(map[string]interface{})
	gate := data["gate"].(map[string]interface{})
	assert.Equal(t, "ft1.g1", gate["name"])
	assert.Equal(t, "not", gate["operator"])
}

func TestGenerateSchemaListsBasicEvents(t *testing.T) {
	schema, err := GenerateSchema(sampleModel(t))
	require.NoError(t, err)

	result := execute(t, schema, `{ basicEvents { name } }`)
	data := result.Data.(map[string]interface{})
	events := data["basicEvents"].([]interface{})
	require.Len(t, events, 1)
	assert.Equal(t, "be1", events[0].(map[string]interface{})["name"])
}

func TestGenerateSchemaUnknownGateReturnsNull(t *testing.T) {
	schema, err := GenerateSchema(sampleModel(t))
	require.NoError(t, err)

	result := execute(t, schema, `{ gate(name: "nope") { name } }`)
	data := result.Data.(map[string]interface{})
	assert.Nil(t, data["gate"])
}

func TestGenerateSchemaListsFaultTreesWithTopEvents(t *testing.T) {
	schema, err := GenerateSchema(sampleModel(t))
	require.NoError(t, err)

	result := execute(t, schema, `{ faultTrees { name gateCount topEvents { name } } }`)
	data := result.Data.(map[string]interface{})
	trees := data["faultTrees"].([]interface{})
	require.Len(t, trees, 1)
	tree := trees[0].(map[string]interface{})
	assert.Equal(t, "ft1", tree["name"])
	assert.Equal(t, 1, tree["gateCount"])
}
