package build

import (
	"strconv"

	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// ExprEntry pairs a constructed expression with the node it was built
// from, for the post-construction validation pass that runs once cycle
// detection has proven the parameter graph is acyclic.
type ExprEntry struct {
	Expression mef.Expression
	Node       xmlsrc.Node
}

// Builder turns XML nodes into bound Formula and Expression trees against
// a single Model, recording every operator, distribution, histogram and
// switch expression it builds for later re-validation (int/float literals
// and parameter references are not recorded).
type Builder struct {
	Model       *mef.Model
	Expressions []ExprEntry
}

// NewBuilder returns a Builder bound to model.
func NewBuilder(model *mef.Model) *Builder { return &Builder{Model: model} }

func (b *Builder) record(e mef.Expression, node xmlsrc.Node) {
	b.Expressions = append(b.Expressions, ExprEntry{Expression: e, Node: node})
}

// genericExtractorTags lists every operator and distribution tag whose
// arguments are, generically, further expressions read from every XML
// child in document order. Tags with bespoke argument shapes (histogram's
// boundary/bin pairs, switch's case/default pairs) are handled outside
// this table.
var genericExtractorTags = map[string]bool{
	"exponential": true, "GLM": true, "Weibull": true, "periodic-test": true,
	"uniform-deviate": true, "normal-deviate": true, "lognormal-deviate": true,
	"gamma-deviate": true, "beta-deviate": true,
	"neg": true, "add": true, "sub": true, "mul": true, "div": true, "abs": true,
	"acos": true, "asin": true, "atan": true, "cos": true, "sin": true, "tan": true,
	"cosh": true, "sinh": true, "tanh": true, "exp": true, "log": true, "log10": true,
	"mod": true, "pow": true, "sqrt": true, "ceil": true, "floor": true,
	"min": true, "max": true, "mean": true, "not": true, "and": true, "or": true,
	"eq": true, "df": true, "lt": true, "gt": true, "leq": true, "geq": true, "ite": true,
}

// GetExpression parses one expression node, recursing into its children
// as needed. Every operator, distribution, histogram and switch expression
// is validated immediately for arity and recorded for the whole-model
// validation pass; literals and parameter references are not recorded.
func (b *Builder) GetExpression(node xmlsrc.Node, basePath string) (mef.Expression, error) {
	tag := node.Name()
	switch tag {
	case "int", "float":
		v, err := strconv.ParseFloat(node.Attr("value"), 64)
		if err != nil {
			return nil, merr.Validation(node.Line(), "%s value %q is not a number", tag, node.Attr("value"))
		}
		return &mef.ConstantExpression{Value: v}, nil
	case "bool":
		switch node.Attr("value") {
		case "true":
			return b.Model.One, nil
		case "false":
			return b.Model.Zero, nil
		default:
			return nil, merr.Validation(node.Line(), "bool value must be 'true' or 'false', got %q", node.Attr("value"))
		}
	case "pi":
		return b.Model.Pi, nil
	case "parameter":
		return b.getParameter(node, basePath)
	case "system-mission-time":
		if err := mef.CheckUnit(node.Attr("unit"), b.Model.MissionTime, node.Line()); err != nil {
			return nil, err
		}
		return b.Model.MissionTime, nil
	case "histogram":
		return b.buildHistogram(node, basePath)
	case "switch":
		return b.buildSwitch(node, basePath)
	}
	if genericExtractorTags[tag] {
		return b.buildGeneric(tag, node, basePath)
	}
	return nil, merr.Validation(node.Line(), "unrecognized expression '%s'", tag)
}

func (b *Builder) getParameter(node xmlsrc.Node, basePath string) (mef.Expression, error) {
	name := node.Attr("name")
	p, ok := b.Model.GetParameter(name, basePath)
	if !ok {
		return nil, merr.Validation(node.Line(), "undefined parameter '%s'", name)
	}
	if err := mef.CheckUnit(node.Attr("unit"), p, node.Line()); err != nil {
		return nil, err
	}
	p.Unused = false
	return p, nil
}

func (b *Builder) buildGeneric(tag string, node xmlsrc.Node, basePath string) (mef.Expression, error) {
	var args []mef.Expression
	for _, child := range node.Children() {
		arg, err := b.GetExpression(child, basePath)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	expr := &mef.NAryExpression{Kind: tag, Args: args}
	if err := expr.Validate(); err != nil {
		return nil, merr.Validation(node.Line(), "%s", err.Error())
	}
	b.record(expr, node)
	return expr, nil
}

func (b *Builder) buildHistogram(node xmlsrc.Node, basePath string) (mef.Expression, error) {
	children := node.Children()
	if len(children) < 2 {
		return nil, merr.Validation(node.Line(), "histogram needs a lower boundary and at least one bin")
	}
	lower, err := b.GetExpression(children[0], basePath)
	if err != nil {
		return nil, err
	}
	boundaries := []mef.Expression{lower}
	var weights []mef.Expression
	for _, bin := range children[1:] {
		if bin.Name() != "bin" {
			return nil, merr.Validation(bin.Line(), "expected 'bin', got '%s'", bin.Name())
		}
		bc := bin.Children()
		if len(bc) != 2 {
			return nil, merr.Validation(bin.Line(), "bin needs exactly an upper boundary and a weight")
		}
		upper, err := b.GetExpression(bc[0], basePath)
		if err != nil {
			return nil, err
		}
		weight, err := b.GetExpression(bc[1], basePath)
		if err != nil {
			return nil, err
		}
		boundaries = append(boundaries, upper)
		weights = append(weights, weight)
	}
	expr := &mef.HistogramExpression{Boundaries: boundaries, Weights: weights}
	if err := expr.Validate(); err != nil {
		return nil, merr.Validation(node.Line(), "%s", err.Error())
	}
	b.record(expr, node)
	return expr, nil
}

func (b *Builder) buildSwitch(node xmlsrc.Node, basePath string) (mef.Expression, error) {
	children := node.Children()
	if len(children) < 1 {
		return nil, merr.Validation(node.Line(), "switch needs at least a default value")
	}
	cases, defaultNode := children[:len(children)-1], children[len(children)-1]
	var mefCases []mef.SwitchCase
	for _, c := range cases {
		if c.Name() != "case" {
			return nil, merr.Validation(c.Line(), "expected 'case', got '%s'", c.Name())
		}
		cc := c.Children()
		if len(cc) != 2 {
			return nil, merr.Validation(c.Line(), "case needs exactly a test and a value")
		}
		test, err := b.GetExpression(cc[0], basePath)
		if err != nil {
			return nil, err
		}
		val, err := b.GetExpression(cc[1], basePath)
		if err != nil {
			return nil, err
		}
		mefCases = append(mefCases, mef.SwitchCase{Test: test, Value: val})
	}
	def, err := b.GetExpression(defaultNode, basePath)
	if err != nil {
		return nil, err
	}
	expr := &mef.SwitchExpression{Cases: mefCases, Default: def}
	if err := expr.Validate(); err != nil {
		return nil, merr.Validation(node.Line(), "%s", err.Error())
	}
	b.record(expr, node)
	return expr, nil
}
