package mef

import (
	"fmt"

	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
)

// CcfModelKind selects how a CCF group's factors are interpreted.
type CcfModelKind int

const (
	CcfBetaFactor CcfModelKind = iota
	CcfMGL
	CcfAlphaFactor
	CcfPhiFactor
)

var ccfModelNames = map[string]CcfModelKind{
	"beta-factor":  CcfBetaFactor,
	"MGL":          CcfMGL,
	"alpha-factor": CcfAlphaFactor,
	"phi-factor":   CcfPhiFactor,
}

func (k CcfModelKind) String() string {
	for name, v := range ccfModelNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// ParseCcfModelKind maps a <define-CCF-group model="..."> attribute.
func ParseCcfModelKind(s string) (CcfModelKind, bool) {
	k, ok := ccfModelNames[s]
	return k, ok
}

// CcfFactor is one <factor> child: a probability expression, and for MGL
// and alpha-factor models the failure-multiplicity level it applies to.
type CcfFactor struct {
	Level    int
	HasLevel bool
	Expression Expression
}

// CcfExpansion is one combination of members the group's model expands
// to, paired with the factor expression governing it. ApplyModel
// populates this; it is a structural expansion only, not a numeric one,
// matching this package's stance of never evaluating expressions.
type CcfExpansion struct {
	Members []*BasicEvent
	Factor  Expression
}

// CcfGroup is a common-cause-failure group: a named set of basic-event
// members, a shared failure distribution, and model-specific factors.
type CcfGroup struct {
	RoleElement
	ModelKind    CcfModelKind
	Members      []*BasicEvent
	memberNames  map[string]bool
	Distribution Expression
	Factors      []CcfFactor
	Expansions   []CcfExpansion
}

// AddMember registers be as a group member. This must run before the
// caller registers be in the model's basic-event arena: a name collision
// within the group is reported as a CCF-specific duplicate before the
// model ever sees the event, matching the member/registration ordering
// worked out for this package (see DESIGN.md).
func (g *CcfGroup) AddMember(be *BasicEvent) error {
	if g.memberNames == nil {
		g.memberNames = make(map[string]bool)
	}
	if g.memberNames[be.Name] {
		return &merr.DuplicateArgumentError{Msg: fmt.Sprintf("duplicate CCF member name '%s' in group '%s'", be.Name, g.QualifiedName())}
	}
	g.memberNames[be.Name] = true
	g.Members = append(g.Members, be)
	be.CcfGroup = g
	return nil
}

// AddDistribution binds the group's shared failure distribution.
func (g *CcfGroup) AddDistribution(e Expression) { g.Distribution = e }

// AddFactor appends a <factor> expression, optionally leveled for MGL and
// alpha-factor models.
func (g *CcfGroup) AddFactor(e Expression, level int, hasLevel bool) {
	g.Factors = append(g.Factors, CcfFactor{Expression: e, Level: level, HasLevel: hasLevel})
}

// Validate checks the group has enough members and the right number of
// factors for its model kind. beta-factor and phi-factor models take a
// single shared factor; MGL and alpha-factor models take one factor per
// failure multiplicity level above 1.
func (g *CcfGroup) Validate() error {
	if len(g.Members) < 2 {
		return fmt.Errorf("CCF group '%s' needs at least 2 members, has %d", g.QualifiedName(), len(g.Members))
	}
	if g.Distribution == nil {
		return fmt.Errorf("CCF group '%s' has no failure distribution", g.QualifiedName())
	}
	switch g.ModelKind {
	case CcfBetaFactor, CcfPhiFactor:
		if len(g.Factors) != 1 {
			return fmt.Errorf("%s CCF group '%s' expects exactly 1 factor, got %d", g.ModelKind, g.QualifiedName(), len(g.Factors))
		}
	case CcfMGL, CcfAlphaFactor:
		expected := len(g.Members) - 1
		if len(g.Factors) != expected {
			return fmt.Errorf("%s CCF group '%s' expects %d factors for %d members, got %d",
				g.ModelKind, g.QualifiedName(), expected, len(g.Members), len(g.Factors))
		}
	}
	return nil
}

// ApplyModel expands the group's members into the combinations its model
// kind implies. The expansion is structural bookkeeping only: it records
// which members and which factor each combination corresponds to, without
// computing any numeric failure probability.
func (g *CcfGroup) ApplyModel() {
	g.Expansions = g.Expansions[:0]
	switch g.ModelKind {
	case CcfBetaFactor, CcfPhiFactor:
		if len(g.Factors) == 1 {
			g.Expansions = append(g.Expansions, CcfExpansion{Members: g.Members, Factor: g.Factors[0].Expression})
		}
	case CcfMGL, CcfAlphaFactor:
		for _, f := range g.Factors {
			level := f.Level
			if !f.HasLevel {
				continue
			}
			if level > len(g.Members) {
				level = len(g.Members)
			}
			g.Expansions = append(g.Expansions, CcfExpansion{Members: g.Members[:level], Factor: f.Expression})
		}
	}
}
