package build

import (
	"strconv"

	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// ProcessCcfMembers registers every <basic-event> under a group's
// <members> element. Each member is added to the group before it is
// registered in the model's basic-event arena, so a name collision within
// the group is reported as a CCF-specific duplicate rather than a generic
// one.
func (b *Builder) ProcessCcfMembers(membersNode xmlsrc.Node, group *mef.CcfGroup) error {
	for _, evNode := range membersNode.ChildrenNamed("basic-event") {
		name := evNode.Attr("name")
		if name == "" {
			return merr.Validation(evNode.Line(), "CCF member is missing a name")
		}
		be := &mef.BasicEvent{RoleElement: mef.RoleElement{
			Element:  mef.Element{Name: name},
			Role:     group.Role,
			BasePath: group.BasePath,
		}}
		if lbl := firstChildText(evNode, "label"); lbl != "" {
			be.SetLabel(lbl)
		}
		if err := group.AddMember(be); err != nil {
			return err
		}
		if err := b.Model.AddBasicEvent(be); err != nil {
			return err
		}
	}
	return nil
}

// DefineCcfFactor parses a <factor> element: a single expression, plus an
// optional level for MGL and alpha-factor models.
func (b *Builder) DefineCcfFactor(node xmlsrc.Node, group *mef.CcfGroup, basePath string) error {
	children := node.Children()
	if len(children) != 1 {
		return merr.Validation(node.Line(), "CCF factor needs exactly one expression")
	}
	expr, err := b.GetExpression(children[0], basePath)
	if err != nil {
		return err
	}
	levelAttr := node.Attr("level")
	if levelAttr == "" {
		group.AddFactor(expr, 0, false)
		return nil
	}
	lvl, err := strconv.Atoi(levelAttr)
	if err != nil {
		return merr.Validation(node.Line(), "CCF factor level %q is not an integer", levelAttr)
	}
	group.AddFactor(expr, lvl, true)
	return nil
}
