package introspect

import (
	"github.com/graphql-go/graphql"

	"github.com/openpsa-tools/mef-init/pkg/mef"
)

func newHouseEventType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "HouseEvent",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.HouseEvent).QualifiedName(), nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.HouseEvent).Role.String(), nil
				},
			},
			"state": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.HouseEvent).State, nil
				},
			},
		},
	})
}

func newBasicEventType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "BasicEvent",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.BasicEvent).QualifiedName(), nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.BasicEvent).Role.String(), nil
				},
			},
			"hasExpression": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.BasicEvent).HasExpression(), nil
				},
			},
			"ccfGroup": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					be := p.Source.(*mef.BasicEvent)
					if be.CcfGroup == nil {
						return nil, nil
					}
					return be.CcfGroup.QualifiedName(), nil
				},
			},
		},
	})
}

func newParameterType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Parameter",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.Parameter).QualifiedName(), nil
				},
			},
			"unit": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.Parameter).Unit.String(), nil
				},
			},
			"unused": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.Parameter).Unused, nil
				},
			},
		},
	})
}

// formulaArgNames flattens a formula's arguments to the qualified names of
// every leaf event it reaches, recursing through nested sub-formulas. It
// exists only for introspection output, which has no need of the formula's
// tree shape, only what it ultimately references.
func formulaArgNames(f *mef.Formula) []string {
	if f == nil {
		return nil
	}
	var out []string
	for _, a := range f.Args {
		switch {
		case a.Gate != nil:
			out = append(out, a.Gate.QualifiedName())
		case a.BasicEvent != nil:
			out = append(out, a.BasicEvent.QualifiedName())
		case a.HouseEvent != nil:
			out = append(out, a.HouseEvent.QualifiedName())
		case a.Nested != nil:
			out = append(out, formulaArgNames(a.Nested)...)
		}
	}
	return out
}

// newGateType builds the Gate object type lazily so it can reference
// itself for "referencedGates": graphql-go's Fields map is resolved at
// query time, not at NewObject time, so a self-reference through a
// closure over the still-being-built *graphql.Object is safe.
func newGateType(basicEventType, houseEventType *graphql.Object) *graphql.Object {
	gateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Gate",
		Fields: graphql.Fields{},
	})
	_ = gateType.AddFieldConfig("name", &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(*mef.Gate).QualifiedName(), nil
		},
	})
	_ = gateType.AddFieldConfig("role", &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(*mef.Gate).Role.String(), nil
		},
	})
	_ = gateType.AddFieldConfig("operator", &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			g := p.Source.(*mef.Gate)
			if g.Formula == nil {
				return nil, nil
			}
			return g.Formula.Operator.String(), nil
		},
	})
	_ = gateType.AddFieldConfig("arguments", &graphql.Field{
		Type: graphql.NewList(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return formulaArgNames(p.Source.(*mef.Gate).Formula), nil
		},
	})
	_ = gateType.AddFieldConfig("referencedGates", &graphql.Field{
		Type: graphql.NewList(gateType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(*mef.Gate).Successors(), nil
		},
	})
	_ = gateType.AddFieldConfig("basicEventArguments", &graphql.Field{
		Type: graphql.NewList(basicEventType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return directArgsOfKind(p.Source.(*mef.Gate).Formula, func(a mef.FormulaArg) (*mef.BasicEvent, bool) {
				return a.BasicEvent, a.BasicEvent != nil
			}), nil
		},
	})
	_ = gateType.AddFieldConfig("houseEventArguments", &graphql.Field{
		Type: graphql.NewList(houseEventType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return directArgsOfKind(p.Source.(*mef.Gate).Formula, func(a mef.FormulaArg) (*mef.HouseEvent, bool) {
				return a.HouseEvent, a.HouseEvent != nil
			}), nil
		},
	})
	return gateType
}

// directArgsOfKind collects a formula's immediate (non-nested) arguments
// matching pick, without recursing into nested sub-formulas.
func directArgsOfKind[T any](f *mef.Formula, pick func(mef.FormulaArg) (T, bool)) []T {
	if f == nil {
		return nil
	}
	var out []T
	for _, a := range f.Args {
		if v, ok := pick(a); ok {
			out = append(out, v)
		}
	}
	return out
}

func newCcfGroupType(basicEventType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "CcfGroup",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.CcfGroup).QualifiedName(), nil
				},
			},
			"model": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.CcfGroup).ModelKind.String(), nil
				},
			},
			"members": &graphql.Field{
				Type: graphql.NewList(basicEventType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.CcfGroup).Members, nil
				},
			},
			"expansionCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return len(p.Source.(*mef.CcfGroup).Expansions), nil
				},
			},
		},
	})
}

func newFaultTreeType(gateType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "FaultTree",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.FaultTree).QualifiedName(), nil
				},
			},
			"gateCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return len(p.Source.(*mef.FaultTree).AllGates()), nil
				},
			},
			"topEvents": &graphql.Field{
				Type: graphql.NewList(gateType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*mef.FaultTree).TopEvents, nil
				},
			},
		},
	})
}
