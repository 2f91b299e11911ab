package xmlsrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFilesMissingFile(t *testing.T) {
	err := CheckFiles([]string{"/no/such/file.xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestCheckFilesDetectsDuplicateCanonicalPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	relative := filepath.Join(dir, ".", "model.xml")
	err := CheckFiles([]string{path, relative})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate input files")
}

func TestCheckFilesAcceptsDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.xml")
	b := filepath.Join(dir, "b.xml")
	require.NoError(t, os.WriteFile(a, []byte(sampleDoc), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(sampleDoc), 0o644))
	assert.NoError(t, CheckFiles([]string{a, b}))
}

func TestRegistryLoadTracksDocuments(t *testing.T) {
	path := writeTemp(t, sampleDoc)
	r := NewRegistry()
	doc, err := r.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, []*Document{doc}, r.Documents())
}
