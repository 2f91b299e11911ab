package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal Node[*fakeNode] for exercising the detector without
// pulling in any real gate/parameter/branch type.
type fakeNode struct {
	name string
	next []*fakeNode
	mark Mark
}

func (n *fakeNode) Successors() []*fakeNode { return n.next }
func (n *fakeNode) Mark() Mark              { return n.mark }
func (n *fakeNode) SetMark(m Mark)          { n.mark = m }

func TestDetectNoCycle(t *testing.T) {
	a := &fakeNode{name: "a"}
	b := &fakeNode{name: "b"}
	c := &fakeNode{name: "c"}
	a.next = []*fakeNode{b}
	b.next = []*fakeNode{c}

	_, found := DetectAll([]*fakeNode{a, b, c})
	assert.False(t, found)
}

func TestDetectSelfCycle(t *testing.T) {
	a := &fakeNode{name: "a"}
	a.next = []*fakeNode{a}

	got, found := Detect(a)
	require.True(t, found)
	assert.Equal(t, "a -> a", Print(got, func(n *fakeNode) string { return n.name }))
}

func TestDetectIndirectCycle(t *testing.T) {
	a := &fakeNode{name: "a"}
	b := &fakeNode{name: "b"}
	c := &fakeNode{name: "c"}
	a.next = []*fakeNode{b}
	b.next = []*fakeNode{c}
	c.next = []*fakeNode{a}

	got, found := DetectAll([]*fakeNode{a, b, c})
	require.True(t, found)
	assert.Equal(t, "a -> b -> c -> a", Print(got, func(n *fakeNode) string { return n.name }))
}

func TestDetectAllSkipsDoneNodes(t *testing.T) {
	a := &fakeNode{name: "a"}
	b := &fakeNode{name: "b"}
	a.next = []*fakeNode{b}

	_, found := DetectAll([]*fakeNode{a, b})
	require.False(t, found)
	assert.Equal(t, Done, a.Mark())
	assert.Equal(t, Done, b.Mark())
}

func TestDetectSharedSuccessorIsNotACycle(t *testing.T) {
	shared := &fakeNode{name: "shared"}
	a := &fakeNode{name: "a", next: []*fakeNode{shared}}
	b := &fakeNode{name: "b", next: []*fakeNode{shared}}

	_, found := DetectAll([]*fakeNode{a, b})
	assert.False(t, found, "a DAG where two nodes share a successor is not a cycle")
}
