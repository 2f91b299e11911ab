package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualify(t *testing.T) {
	assert.Equal(t, "foo", Qualify("", "foo"))
	assert.Equal(t, "ft.sub.foo", Qualify("ft.sub", "foo"))
}

func TestInsertAndGetQualified(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft", "a", true, 1))
	v, ok := tab.GetQualified("ft.a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tab.GetQualified("a")
	assert.False(t, ok, "GetQualified bypasses scope stripping and the public fallback")
}

func TestInsertDuplicateQualifiedName(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft", "a", true, 1))
	err := tab.Insert("ft", "a", true, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate widget name")
}

func TestInsertDuplicatePublicBareName(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft1", "a", true, 1))
	err := tab.Insert("ft2", "a", true, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate public widget name")
}

func TestInsertPrivateAllowsBareNameReuse(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft1", "a", false, 1))
	require.NoError(t, tab.Insert("ft2", "a", false, 2))
	v, ok := tab.GetQualified("ft1.a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = tab.GetQualified("ft2.a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestGetScopedResolution(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft.comp", "local", false, 42))

	v, ok := tab.Get("local", "ft.comp")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// A scope nested inside the declaring scope still resolves it: the
	// lookup strips segments from the innermost outward and matches as
	// soon as one candidate prefix equals the declaring scope.
	v, ok = tab.Get("local", "ft.comp.deeper")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// A sibling scope that never nests under the declaring scope does not.
	_, ok = tab.Get("local", "ft.other")
	assert.False(t, ok)
}

func TestGetFallsBackToPublicByBareName(t *testing.T) {
	tab := New[int]("widget")
	require.NoError(t, tab.Insert("ft", "shared", true, 7))

	v, ok := tab.Get("shared", "other.scope.entirely")
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestGetUnknownNameFails(t *testing.T) {
	tab := New[int]("widget")
	_, ok := tab.Get("nope", "")
	assert.False(t, ok)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	tab := New[string]("widget")
	require.NoError(t, tab.Insert("", "c", true, "c"))
	require.NoError(t, tab.Insert("", "a", true, "a"))
	require.NoError(t, tab.Insert("", "b", true, "b"))
	assert.Equal(t, []string{"c", "a", "b"}, tab.All())
	assert.Equal(t, 3, tab.Len())
}
