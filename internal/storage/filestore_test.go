package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagePublish(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	staged, err := store.Stage("resumes", "CV.PDF", strings.NewReader("resume body"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(staged.RelPath, "resumes/"))
	assert.True(t, strings.HasSuffix(staged.RelPath, ".pdf"))
	assert.EqualValues(t, len("resume body"), staged.Size)

	// Not visible before publish.
	_, err = store.Open(staged.RelPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, staged.Publish())

	f, err := store.Open(staged.RelPath)
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "resume body", string(body))

	// Staging file is gone after the rename.
	assert.NoError(t, staged.Discard())
}

func TestStageDiscard(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	staged, err := store.Stage("images", "a.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, staged.Discard())

	entries, err := os.ReadDir(filepath.Join(root, stagingDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Error(t, staged.Publish())
}

func TestPath_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, rel := range []string{"", "..", "../etc/passwd", "/etc/passwd", "images/../../x"} {
		_, err := store.Path(rel)
		assert.ErrorIs(t, err, ErrInvalidPath, rel)
	}

	p, err := store.Path("images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "a.png", filepath.Base(p))
}

func TestRemove_MissingIsNoop(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove("resumes/missing.pdf"))
}

func TestHasExtension(t *testing.T) {
	allowed := []string{"png", "jpg"}
	assert.True(t, HasExtension("photo.PNG", allowed))
	assert.True(t, HasExtension("a.b.jpg", allowed))
	assert.False(t, HasExtension("script.sh", allowed))
	assert.False(t, HasExtension("png", allowed))
}
