package xmlsrc

import "github.com/openpsa-tools/mef-init/pkg/mef/merr"

// SchemaValidator checks a parsed document against the MEF RELAX NG schema
// before any semantic processing runs. The concrete RELAX NG validator is
// an external collaborator (spec: out of scope); this package only defines
// the seam and ships a structural stand-in that catches the mistakes a
// hand-fed test fixture is likely to make (wrong root element, an
// unrecognized top-level construct).
type SchemaValidator interface {
	Validate(doc *Document) error
}

// StructuralValidator is the in-package stand-in for a RELAX NG validator.
// It only checks the shape a real schema would reject outright: the root
// element name and the set of top-level construct tags.
type StructuralValidator struct{}

var topLevelTags = map[string]bool{
	"define-event-tree": true,
	"define-fault-tree": true,
	"define-CCF-group":  true,
	"model-data":        true,
}

// Validate implements SchemaValidator.
func (StructuralValidator) Validate(doc *Document) error {
	if doc.Root.Name() != "opsa-mef" {
		return merr.Validation(doc.Root.Line(),
			"document failed schema validation: root element must be 'opsa-mef', got '%s'", doc.Root.Name())
	}
	for _, child := range doc.Root.Children() {
		if !topLevelTags[child.Name()] {
			return merr.Validation(child.Line(),
				"document failed schema validation: unrecognized top-level construct '%s'", child.Name())
		}
	}
	return nil
}
