// Package build turns parsed XML nodes into the typed model.Model finds
// under pkg/mef, in two passes matching the model's own deferred-binding
// design: shells first (name, role, scope), bodies second (formulas,
// expressions, branch targets) once every name in the input is visible.
package build

import (
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// RoleShell builds the name/role/scope/label/attributes common to every
// named MEF construct, leaving kind-specific fields for the caller.
func RoleShell(node xmlsrc.Node, basePath string, parentRole mef.Role) (mef.RoleElement, error) {
	name := node.Attr("name")
	if name == "" {
		return mef.RoleElement{}, merr.Validation(node.Line(), "%s element is missing a name", node.Name())
	}
	re := mef.RoleElement{
		Element:  mef.Element{Name: name},
		Role:     mef.ParseRole(node.Attr("role"), parentRole),
		BasePath: basePath,
	}
	if err := attachBody(node, &re.Element); err != nil {
		return mef.RoleElement{}, err
	}
	return re, nil
}

// attachBody binds a construct's optional <label> and <attributes>
// children onto its base Element.
func attachBody(node xmlsrc.Node, el *mef.Element) error {
	if labels := node.ChildrenNamed("label"); len(labels) > 0 {
		el.SetLabel(labels[0].Text())
	}
	for _, attrs := range node.ChildrenNamed("attributes") {
		for _, a := range attrs.ChildrenNamed("attribute") {
			attr := mef.Attribute{Name: a.Attr("name"), Value: a.Attr("value"), Type: a.Attr("type")}
			if err := el.AddAttribute(attr); err != nil {
				return err
			}
		}
	}
	return nil
}

// firstChildText returns the text of the first tag-named child, or "" if
// none exists.
func firstChildText(node xmlsrc.Node, tag string) string {
	for _, c := range node.ChildrenNamed(tag) {
		return c.Text()
	}
	return ""
}
