package cachedir

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestNew_CreatesTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")

	ws, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, ws.Root())

	for _, tree := range []string{"source", "proc"} {
		for _, dir := range []string{"trans", "pdf", "epub", "txt"} {
			info, err := os.Stat(filepath.Join(root, tree, dir))
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	}
}

func TestPreserveSource(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "book.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0o600))
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst, err := ws.PreserveSource(domain.KindPDF, src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(ws.Root(), "source", "pdf", "book.pdf"), dst)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestPreserveSource_SameFile(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	existing := filepath.Join(ws.Root(), "source", "txt", "a.txt")
	require.NoError(t, os.WriteFile(existing, []byte("a"), 0o600))

	dst, err := ws.PreserveSource(domain.KindText, existing)

	require.NoError(t, err)
	assert.Equal(t, existing, dst)
}

func TestPreserveSource_Missing(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = ws.PreserveSource(domain.KindEPUB, filepath.Join(t.TempDir(), "missing.epub"))

	assert.Error(t, err)
}

func TestWriteNotes(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	note, err := ws.WriteSourceNote(domain.KindTranscript, "abc.txt", "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Root(), "source", "trans", "abc.txt"), note)

	proc, err := ws.WriteProcessed(domain.KindTranscript, "abc_trans.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Root(), "proc", "trans", "abc_trans.txt"), proc)

	data, err := os.ReadFile(proc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteProcessed_StripsDirectories(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := ws.WriteProcessed(domain.KindEPUB, "../../escape.md", "x")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Root(), "proc", "epub", "escape.md"), path)
}
