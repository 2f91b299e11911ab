package xmlsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralValidatorAcceptsWellFormedDocument(t *testing.T) {
	path := writeTemp(t, sampleDoc)
	doc, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, StructuralValidator{}.Validate(doc))
}

func TestStructuralValidatorRejectsWrongRoot(t *testing.T) {
	path := writeTemp(t, `<not-opsa-mef/>`)
	doc, err := Open(path)
	require.NoError(t, err)
	err = StructuralValidator{}.Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root element must be 'opsa-mef'")
}

func TestStructuralValidatorRejectsUnknownTopLevelConstruct(t *testing.T) {
	path := writeTemp(t, `<opsa-mef><bogus-construct/></opsa-mef>`)
	doc, err := Open(path)
	require.NoError(t, err)
	err = StructuralValidator{}.Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized top-level construct")
}

func TestStructuralValidatorAcceptsAllFourTopLevelTags(t *testing.T) {
	path := writeTemp(t, `<opsa-mef>
		<define-event-tree name="et1"><initial-state><sequence name="s1"/></initial-state></define-event-tree>
		<define-fault-tree name="ft1"/>
		<define-CCF-group name="cg1" model="beta-factor"><members/></define-CCF-group>
		<model-data/>
	</opsa-mef>`)
	doc, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, StructuralValidator{}.Validate(doc))
}
