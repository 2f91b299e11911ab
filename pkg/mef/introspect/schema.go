// Package introspect exposes a finished model.Model as a read-only
// GraphQL schema: gates, basic events, house events, parameters, CCF
// groups, and fault trees, each listable in full; gates and basic events
// can also be queried by qualified name. It never mutates the model; there
// is no mutation type.
package introspect

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/openpsa-tools/mef-init/pkg/mef"
)

// GenerateSchema builds a GraphQL schema over model. The schema is a
// snapshot of whatever model looks like at call time; nothing here
// re-queries the underlying files.
func GenerateSchema(model *mef.Model) (graphql.Schema, error) {
	basicEventType := newBasicEventType()
	houseEventType := newHouseEventType()
	gateType := newGateType(basicEventType, houseEventType)
	parameterType := newParameterType()
	ccfGroupType := newCcfGroupType(basicEventType)
	faultTreeType := newFaultTreeType(gateType)

	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return "ok", nil
			},
		},
		"gate": &graphql.Field{
			Type: gateType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				g, ok := model.Gates.GetQualified(p.Args["name"].(string))
				if !ok {
					return nil, nil
				}
				return g, nil
			},
		},
		"gates": &graphql.Field{
			Type: graphql.NewList(gateType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.Gates.All(), nil
			},
		},
		"basicEvent": &graphql.Field{
			Type: basicEventType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				be, ok := model.BasicEvents.GetQualified(p.Args["name"].(string))
				if !ok {
					return nil, nil
				}
				return be, nil
			},
		},
		"basicEvents": &graphql.Field{
			Type: graphql.NewList(basicEventType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.BasicEvents.All(), nil
			},
		},
		"houseEvents": &graphql.Field{
			Type: graphql.NewList(houseEventType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.HouseEvents.All(), nil
			},
		},
		"parameters": &graphql.Field{
			Type: graphql.NewList(parameterType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.Parameters.All(), nil
			},
		},
		"ccfGroups": &graphql.Field{
			Type: graphql.NewList(ccfGroupType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.CcfGroups.All(), nil
			},
		},
		"faultTrees": &graphql.Field{
			Type: graphql.NewList(faultTreeType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return model.FaultTrees.All(), nil
			},
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("building introspection schema: %w", err)
	}
	return schema, nil
}
