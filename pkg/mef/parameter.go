package mef

import (
	"github.com/openpsa-tools/mef-init/pkg/mef/cycle"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// Unit is a parameter's declared physical unit. Units are compared, never
// converted: a mismatch between an expression's declared unit and the
// parameter it references is a construction-time error, not a conversion
// opportunity.
type Unit int

const (
	UnitUnitless Unit = iota
	UnitBool
	UnitHours
	UnitInverseHours
	UnitYears
	UnitInverseYears
	UnitFit
	UnitDemands
)

var unitNames = map[Unit]string{
	UnitUnitless:     "unitless",
	UnitBool:         "bool",
	UnitHours:        "hours",
	UnitInverseHours: "hours-1",
	UnitYears:        "years",
	UnitInverseYears: "years-1",
	UnitFit:          "fit",
	UnitDemands:      "demands",
}

func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return "unitless"
}

// ParseUnit maps a <parameter unit="..."> attribute value.
func ParseUnit(s string) (Unit, bool) {
	for u, name := range unitNames {
		if name == s {
			return u, true
		}
	}
	return UnitUnitless, false
}

// Parameter is a named, reusable expression. It implements Expression
// itself so a <parameter name="x"/> reference and the model's mission-time
// parameter can appear directly wherever an expression is expected,
// without a separate reference-node type.
type Parameter struct {
	RoleElement
	Expression Expression
	Unit       Unit
	Unused     bool
	mark       cycle.Mark
}

// Validate delegates to the bound expression; an unbound parameter (never
// reached during pass two, which would itself be a construction bug) is
// reported as a ValidationError.
func (p *Parameter) Validate() error {
	if p.Expression == nil {
		return &merr.ValidationError{Msg: "parameter '" + p.QualifiedName() + "' was never bound to an expression"}
	}
	return p.Expression.Validate()
}

// Successors returns the parameters directly referenced by this
// parameter's expression, for parameter-cycle detection.
func (p *Parameter) Successors() []*Parameter {
	var out []*Parameter
	var walk func(Expression)
	walk = func(e Expression) {
		switch v := e.(type) {
		case *Parameter:
			out = append(out, v)
		case *NAryExpression:
			for _, a := range v.Args {
				walk(a)
			}
		case *HistogramExpression:
			for _, a := range v.Boundaries {
				walk(a)
			}
			for _, a := range v.Weights {
				walk(a)
			}
		case *SwitchExpression:
			for _, c := range v.Cases {
				walk(c.Test)
				walk(c.Value)
			}
			walk(v.Default)
		}
	}
	if p.Expression != nil {
		walk(p.Expression)
	}
	return out
}

func (p *Parameter) Mark() cycle.Mark     { return p.mark }
func (p *Parameter) SetMark(m cycle.Mark) { p.mark = m }

// CheckUnit compares an expression node's declared unit (empty means
// "unspecified", which never conflicts) against the parameter it
// references.
func CheckUnit(exprUnit string, param *Parameter, line int) error {
	if exprUnit == "" {
		return nil
	}
	want, ok := ParseUnit(exprUnit)
	if !ok {
		return merr.Validation(line, "unrecognized unit '%s'", exprUnit)
	}
	if want != param.Unit {
		return merr.Validation(line, "unit mismatch: expression declares '%s', parameter '%s' is '%s'",
			exprUnit, param.QualifiedName(), param.Unit)
	}
	return nil
}
