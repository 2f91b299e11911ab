package mef

import "fmt"

// Expression is any node in the value-expression graph: a constant, a
// parameter or mission-time reference, or an operator/distribution applied
// to further expressions. Validate checks arity and domain constraints
// (operator nodes also validate their arguments, and a parameter reference
// validates its bound expression); it never evaluates the tree, since
// evaluation depends on inputs (mission time, sampled deviates) this
// package never sees.
type Expression interface {
	Validate() error
}

// ConstantExpression is a literal numeric value: the canonical booleans
// (One, Zero), the canonical Pi, or a plain <int>/<float> literal.
type ConstantExpression struct {
	Value float64
}

// Validate is trivially satisfied; a constant has no arity or domain to
// check.
func (*ConstantExpression) Validate() error { return nil }

// arityRule reports whether n arguments is an acceptable count for one
// operator or distribution kind.
type arityRule func(n int) bool

func exactly(n int) arityRule { return func(m int) bool { return m == n } }
func oneOf(ns ...int) arityRule {
	return func(m int) bool {
		for _, n := range ns {
			if m == n {
				return true
			}
		}
		return false
	}
}
func atLeast(n int) arityRule { return func(m int) bool { return m >= n } }

// arityRules gives the accepted argument count for every generic
// operator and distribution tag, including ite (fixed at 3). histogram,
// switch, and the parameter/mission-time/constant tags are handled outside
// this table: histogram and switch have bespoke argument structure and get
// their own types.
var arityRules = map[string]arityRule{
	// boolean-flavored value expressions distinct from Formula operators
	"and": atLeast(1),
	"or":  atLeast(1),
	"not": exactly(1),

	// arithmetic
	"neg": exactly(1),
	"add": exactly(2),
	"sub": exactly(2),
	"mul": exactly(2),
	"div": exactly(2),
	"mod": exactly(2),
	"pow": exactly(2),
	"abs": exactly(1),

	// n-ary reducers
	"min":  atLeast(1),
	"max":  atLeast(1),
	"mean": atLeast(1),

	// transcendental
	"acos":  exactly(1),
	"asin":  exactly(1),
	"atan":  exactly(1),
	"cos":   exactly(1),
	"sin":   exactly(1),
	"tan":   exactly(1),
	"cosh":  exactly(1),
	"sinh":  exactly(1),
	"tanh":  exactly(1),
	"exp":   exactly(1),
	"log":   exactly(1),
	"log10": exactly(1),
	"sqrt":  exactly(1),
	"ceil":  exactly(1),
	"floor": exactly(1),

	// comparisons
	"eq":  exactly(2),
	"df":  exactly(2),
	"lt":  exactly(2),
	"gt":  exactly(2),
	"leq": exactly(2),
	"geq": exactly(2),

	// conditional
	"ite": exactly(3),

	// random deviates
	"exponential":       exactly(2),
	"GLM":               exactly(4),
	"Weibull":           exactly(3),
	"periodic-test":     oneOf(4, 5, 11),
	"uniform-deviate":   exactly(2),
	"normal-deviate":    exactly(2),
	"lognormal-deviate": oneOf(2, 3),
	"gamma-deviate":     exactly(2),
	"beta-deviate":      exactly(2),
}

// NAryExpression is the shared representation for every generic operator
// and distribution: a tag naming which one, and its argument list. Arity
// is checked once at construction time and again by Validate, matching
// the rest of this package's "re-checkable at any point" invariant style.
type NAryExpression struct {
	Kind string
	Args []Expression
}

// Validate re-checks the argument count against arityRules. Construction
// already enforced this; Validate exists so the same rule fires again
// during the whole-model post-construction validation pass without
// depending on construction-time state.
func (e *NAryExpression) Validate() error {
	rule, ok := arityRules[e.Kind]
	if !ok {
		return fmt.Errorf("unknown expression kind %q", e.Kind)
	}
	if !rule(len(e.Args)) {
		return fmt.Errorf("%s: wrong number of arguments (%d)", e.Kind, len(e.Args))
	}
	for _, arg := range e.Args {
		if err := arg.Validate(); err == nil {
			continue
		} else {
			return err
		}
	}
	return nil
}

// HistogramExpression bins a random variable: len(Weights) upper
// boundaries paired with a lower boundary, each weight applying to the
// interval between consecutive boundaries.
type HistogramExpression struct {
	Boundaries []Expression // len(Boundaries) == len(Weights)+1, ascending
	Weights    []Expression
}

func (e *HistogramExpression) Validate() error {
	if len(e.Boundaries) < 2 {
		return fmt.Errorf("histogram: needs a lower boundary and at least one bin")
	}
	if len(e.Boundaries) != len(e.Weights)+1 {
		return fmt.Errorf("histogram: %d boundaries does not match %d weights", len(e.Boundaries), len(e.Weights))
	}
	return nil
}

// SwitchCase is one guarded branch of a SwitchExpression.
type SwitchCase struct {
	Test  Expression
	Value Expression
}

// SwitchExpression evaluates cases in order, falling through to Default
// when none match.
type SwitchExpression struct {
	Cases   []SwitchCase
	Default Expression
}

func (e *SwitchExpression) Validate() error {
	if e.Default == nil {
		return fmt.Errorf("switch: missing default value")
	}
	return nil
}
