package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDirUsesXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	if dir != filepath.Join(xdg, "encephalon") {
		t.Skip("platform config dir ignores XDG_CONFIG_HOME")
	}

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "encephalon", ConfigFileName), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `data_home = "/srv/kb"

[embedding]
provider = "ollama"
model = "nomic-embed-text"

[chunking]
size = 512
overlap = 64.0

[transcript]
languages = ["en", "de"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/kb", store.GetString("data_home"))
	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 512, store.GetInt("chunking.size"))
	assert.Equal(t, 64, store.GetInt("chunking.overlap"))
	assert.Equal(t, []string{"en", "de"}, store.GetStringSlice("transcript.languages"))
	assert.Equal(t, []string{
		"chunking.overlap",
		"chunking.size",
		"data_home",
		"embedding.model",
		"embedding.provider",
		"transcript.languages",
	}, store.Keys())
}

func TestConfigStore_TypedGettersOnMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("n", "twelve"))
	require.NoError(t, store.Set("s", 12))

	assert.Equal(t, 0, store.GetInt("n"))
	assert.Equal(t, "", store.GetString("s"))
	assert.Nil(t, store.GetStringSlice("s"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "llama3"))
	require.NoError(t, store.Set("retrieval.top_k", 5))
	require.NoError(t, store.Set("transcript.languages", []string{"en"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[retrieval]")

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "llama3", reopened.GetString("llm.model"))
	assert.Equal(t, 5, reopened.GetInt("retrieval.top_k"))
	assert.Equal(t, []string{"en"}, reopened.GetStringSlice("transcript.languages"))
}

func TestConfigStore_SetRejectsEmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("  ", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigStore_LoadPicksUpExternalEdits(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "old"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[llm]\nmodel = \"new\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "new", store.GetString("llm.model"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFlattenAndUnflatten(t *testing.T) {
	nested := map[string]any{
		"a": map[string]any{
			"b": int64(1),
			"c": map[string]any{"d": "x"},
		},
		"top": true,
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{"a.b": int64(1), "a.c.d": "x", "top": true}, flat)
	assert.Equal(t, nested, unflattenMap(flat))
}

func TestUnflatten_TableWinsOverScalar(t *testing.T) {
	got := unflattenMap(map[string]any{"a": "scalar", "a.b": "leaf"})

	assert.Equal(t, map[string]any{"a": map[string]any{"b": "leaf"}}, got)
}
