package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/postprocessors/chunker"
)

// runeTokenizer maps every rune to one token.
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int {
	runes := []rune(text)
	out := make([]int, len(runes))
	for i, r := range runes {
		out[i] = int(r)
	}
	return out
}

func (runeTokenizer) Decode(tokens []int) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteRune(rune(t))
	}
	return b.String()
}

func (runeTokenizer) Name() string { return "runes" }

type stubChunker struct{ name string }

func (s *stubChunker) Name() string { return s.name }
func (s *stubChunker) Process(_ context.Context, _ *domain.Document) ([]domain.Chunk, error) {
	return nil, nil
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("stub", func(cfg map[string]any, _ driven.Tokenizer) (driven.Chunker, error) {
		name, _ := cfg["name"].(string)
		return &stubChunker{name: name}, nil
	})

	assert.True(t, r.Has("stub"))
	c, err := r.Build("stub", map[string]any{"name": "custom"}, runeTokenizer{})
	require.NoError(t, err)
	assert.Equal(t, "custom", c.Name())
}

func TestRegistry_Build_Unknown(t *testing.T) {
	_, err := NewRegistry().Build("unknown", nil, runeTokenizer{})

	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register("b", nil)
	r.Register("a", nil)

	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.Equal(t, []string{DefaultChunker}, r.Names())
}

func TestBuildChunker(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	t.Run("defaults when keys absent", func(t *testing.T) {
		c, err := r.Build(DefaultChunker, nil, runeTokenizer{})
		require.NoError(t, err)
		p := c.(*chunker.Processor)
		assert.Equal(t, 256, p.ChunkSize())
		assert.Equal(t, 32, p.Overlap())
	})

	t.Run("toml integers", func(t *testing.T) {
		c, err := r.Build(DefaultChunker, map[string]any{"chunk_size": int64(10), "overlap": int64(0)}, runeTokenizer{})
		require.NoError(t, err)
		chunks, err := c.Process(context.Background(), &domain.Document{Content: strings.Repeat("a", 25)})
		require.NoError(t, err)
		assert.Len(t, chunks, 3)
	})

	t.Run("invalid overlap fails", func(t *testing.T) {
		_, err := r.Build(DefaultChunker, map[string]any{"chunk_size": 10, "overlap": 10}, runeTokenizer{})
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
	})

	t.Run("wrong type ignored", func(t *testing.T) {
		c, err := r.Build(DefaultChunker, map[string]any{"chunk_size": "big"}, runeTokenizer{})
		require.NoError(t, err)
		assert.Equal(t, 256, c.(*chunker.Processor).ChunkSize())
	})
}
