// Package cli provides the cobra command tree for encephalon.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/encephalon/internal/core/ports/driving"
	"github.com/custodia-labs/encephalon/internal/logger"
)

// Backend resolves the driving ports on demand, so a command only opens
// and pings what it uses.
type Backend interface {
	// Settings returns the settings service. It never contacts a provider.
	Settings() driving.SettingsService

	// ConfigPath is the settings file path.
	ConfigPath() string

	// Ingest returns the ingestion pipeline and its ledger.
	Ingest(ctx context.Context) (driving.IngestService, error)

	// Search returns the retrieval service.
	Search(ctx context.Context) (driving.SearchService, error)

	// Answer returns the answer engine after checking the model is reachable.
	Answer(ctx context.Context) (driving.AnswerService, error)

	// Close releases stores and clients.
	Close() error
}

// BackendOpener builds a Backend once global flags are parsed.
type BackendOpener func(configDir string) (Backend, error)

var (
	version   = "dev"
	verbose   bool
	configDir string

	backend     Backend
	openBackend BackendOpener
)

var errNoBackend = errors.New("backend not configured")

var rootCmd = &cobra.Command{
	Use:   "encephalon",
	Short: "Personal knowledge base with retrieval-augmented answers",
	Long: `Encephalon ingests video transcripts, PDFs, EPUBs and text files into a
local vector store and answers questions from what it has read.

Run without a subcommand to start an interactive chat.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runChat,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $XDG_CONFIG_HOME/encephalon)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the command tree. opener is called at most once, by the
// first command that needs a backend.
func Execute(ctx context.Context, opener BackendOpener) error {
	openBackend = opener
	defer func() {
		if backend != nil {
			if err := backend.Close(); err != nil {
				logger.Warn("close: %v", err)
			}
			backend = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// getBackend opens the backend on first use.
func getBackend() (Backend, error) {
	if backend != nil {
		return backend, nil
	}
	if openBackend == nil {
		return nil, errNoBackend
	}
	b, err := openBackend(configDir)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}
	backend = b
	return backend, nil
}
