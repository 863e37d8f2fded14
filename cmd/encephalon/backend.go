package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/custodia-labs/encephalon/internal/adapters/driven/ai"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/config/environ"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/config/file"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/storage/cachedir"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/transcript/youtube"
	"github.com/custodia-labs/encephalon/internal/adapters/driven/vectorstore/chromem"
	"github.com/custodia-labs/encephalon/internal/adapters/driving/cli"
	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/core/services"
	"github.com/custodia-labs/encephalon/internal/logger"
	"github.com/custodia-labs/encephalon/internal/normalisers/epub"
	"github.com/custodia-labs/encephalon/internal/normalisers/pdf"
	"github.com/custodia-labs/encephalon/internal/normalisers/plaintext"
	"github.com/custodia-labs/encephalon/internal/normalisers/transcript"
	"github.com/custodia-labs/encephalon/internal/postprocessors"
)

// Layout of the data home.
const (
	vectorsDir = "vectors"
	cacheDir   = "cache"
)

// Ensure backend implements the interface.
var _ cli.Backend = (*backend)(nil)

// backend wires adapters into services on first use. Commands run one at
// a time, so it is not safe for concurrent use.
type backend struct {
	configStore *file.ConfigStore
	prompts     *file.PromptStore
	settings    *services.SettingsService

	resolved  *domain.AppSettings
	vectors   *chromem.Store
	ledger    *sqlite.Store
	embedding driven.EmbeddingService
	llm       driven.LLMService

	search *services.SearchService
	ingest *services.IngestService
	answer *services.AnswerService
}

// openBackend reads settings from configDir. Stores and providers are
// opened later by the commands that need them.
func openBackend(configDir string) (cli.Backend, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	prompts, err := file.NewPromptStore(filepath.Join(filepath.Dir(store.Path()), "prompts"))
	if err != nil {
		return nil, err
	}

	settings := services.NewSettingsService(store, ai.NewConfigValidator())
	settings.SetOverrides(environ.Overrides(environ.DotEnvFile))

	return &backend{
		configStore: store,
		prompts:     prompts,
		settings:    settings,
	}, nil
}

func (b *backend) Settings() driving.SettingsService {
	return b.settings
}

func (b *backend) ConfigPath() string {
	return b.configStore.Path()
}

func (b *backend) Ingest(ctx context.Context) (driving.IngestService, error) {
	if b.ingest != nil {
		return b.ingest, nil
	}
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}

	tokenizer, err := tiktoken.New(cfg.Chunking.Encoding)
	if err != nil {
		return nil, err
	}
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	chunker, err := registry.Build(postprocessors.DefaultChunker, map[string]any{
		"chunk_size": cfg.Chunking.Size,
		"overlap":    cfg.Chunking.Overlap,
	}, tokenizer)
	if err != nil {
		return nil, err
	}

	embedder, records, err := b.pipeline(ctx, false)
	if err != nil {
		return nil, err
	}
	ledger, err := b.openLedger(cfg)
	if err != nil {
		return nil, err
	}
	workspace, err := cachedir.New(filepath.Join(b.dataHome(cfg), cacheDir))
	if err != nil {
		return nil, err
	}

	fetcher := youtube.New(youtube.Config{Languages: cfg.Transcript.Languages})
	b.ingest = services.NewIngestService(chunker, embedder, records, ledger.IngestionStore(),
		transcript.New(fetcher, workspace),
		pdf.New(pdf.NewConverter(), workspace),
		epub.New(workspace, cfg.EPUB.HeadingMinLength),
		plaintext.New(workspace),
	)
	return b.ingest, nil
}

func (b *backend) Search(ctx context.Context) (driving.SearchService, error) {
	if b.search != nil {
		return b.search, nil
	}
	embedder, records, err := b.pipeline(ctx, false)
	if err != nil {
		return nil, err
	}
	b.search = services.NewSearchService(embedder, records)
	return b.search, nil
}

// Answer pings both providers so an unreachable service is reported
// before the first question.
func (b *backend) Answer(ctx context.Context) (driving.AnswerService, error) {
	if b.answer != nil {
		return b.answer, nil
	}
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}

	embedder, records, err := b.pipeline(ctx, true)
	if err != nil {
		return nil, err
	}
	if b.llm == nil {
		llm, err := ai.CreateAndValidateLLMService(ctx, &cfg.LLM)
		if err != nil {
			return nil, err
		}
		b.llm = llm
	}

	if b.search == nil {
		b.search = services.NewSearchService(embedder, records)
	}
	answer := services.NewAnswerService(b.search, b.llm, cfg.Retrieval.TopK)
	answer.SetPromptStore(b.prompts)
	b.answer = answer
	return b.answer, nil
}

// Close releases every opened store and client.
func (b *backend) Close() error {
	var errs []error
	if b.llm != nil {
		errs = append(errs, b.llm.Close())
	}
	if b.embedding != nil {
		errs = append(errs, b.embedding.Close())
	}
	if b.vectors != nil {
		errs = append(errs, b.vectors.Close())
	}
	if b.ledger != nil {
		errs = append(errs, b.ledger.Close())
	}
	return errors.Join(errs...)
}

func (b *backend) config() (*domain.AppSettings, error) {
	if b.resolved != nil {
		return b.resolved, nil
	}
	cfg, err := b.settings.Get()
	if err != nil {
		return nil, err
	}
	b.resolved = cfg
	logger.Debug("settings: data home %s, embedding %s/%s, llm %s/%s",
		b.dataHome(cfg), cfg.Embedding.Provider, cfg.Embedding.Model, cfg.LLM.Provider, cfg.LLM.Model)
	return cfg, nil
}

// pipeline opens the embedding service and the vector store. With ping
// the embedding provider must answer before the service is kept.
func (b *backend) pipeline(ctx context.Context, ping bool) (*services.Embedder, *services.RecordStore, error) {
	cfg, err := b.config()
	if err != nil {
		return nil, nil, err
	}

	if b.embedding == nil {
		var svc driven.EmbeddingService
		if ping {
			svc, err = ai.CreateAndValidateEmbeddingService(ctx, &cfg.Embedding)
		} else {
			svc, err = ai.CreateEmbeddingService(&cfg.Embedding)
		}
		if err != nil {
			return nil, nil, err
		}
		b.embedding = svc
	}

	if b.vectors == nil {
		vectors, err := chromem.New(chromem.Config{
			Path:       filepath.Join(b.dataHome(cfg), vectorsDir),
			Collection: cfg.Vector.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		b.vectors = vectors
	}

	return services.NewEmbedder(b.embedding), services.NewRecordStore(b.vectors), nil
}

func (b *backend) openLedger(cfg *domain.AppSettings) (*sqlite.Store, error) {
	if b.ledger != nil {
		return b.ledger, nil
	}
	ledger, err := sqlite.NewStore(b.dataHome(cfg))
	if err != nil {
		return nil, err
	}
	b.ledger = ledger
	return ledger, nil
}

func (b *backend) dataHome(cfg *domain.AppSettings) string {
	if cfg.DataHome != "" {
		return cfg.DataHome
	}
	return defaultDataHome()
}

// defaultDataHome returns $XDG_DATA_HOME/encephalon, falling back to
// ~/.local/share/encephalon.
func defaultDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "encephalon")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("no home directory, using ./.encephalon: %v", err)
		return ".encephalon"
	}
	return filepath.Join(home, ".local", "share", "encephalon")
}
