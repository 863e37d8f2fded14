package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/encephalon/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// DatabaseFile is the ledger's file name inside the data directory.
const DatabaseFile = "ledger.db"

// Store is the SQLite-backed ingestion ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the ledger in dataDir and applies pending
// migrations.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("no data directory: %w", domain.ErrConfiguration)
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// IngestionStore returns the ledger as a driven.IngestionStore.
func (s *Store) IngestionStore() driven.IngestionStore {
	return &ingestionStore{store: s}
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_ingestions.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Ingestion Store ====================

// ingestionStore implements driven.IngestionStore.
type ingestionStore struct {
	store *Store
}

var _ driven.IngestionStore = (*ingestionStore)(nil)

// Save stores or updates a ledger entry.
func (s *ingestionStore) Save(ctx context.Context, in *domain.Ingestion) error {
	var finished sql.NullTime
	if in.FinishedAt != nil {
		finished = sql.NullTime{Time: in.FinishedAt.UTC(), Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingestions (id, kind, input, source, processed_path, chunks_total, chunks_written,
			status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			processed_path = excluded.processed_path,
			chunks_total = excluded.chunks_total,
			chunks_written = excluded.chunks_written,
			status = excluded.status,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, in.ID, in.Kind.String(), in.Input, in.Source, in.ProcessedPath, in.ChunksTotal, in.ChunksWritten,
		in.Status.String(), in.Error, in.StartedAt.UTC(), finished)

	if err != nil {
		return fmt.Errorf("saving ingestion: %w", err)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *ingestionStore) Get(ctx context.Context, id string) (*domain.Ingestion, error) {
	row := s.store.db.QueryRowContext(ctx, selectIngestion+" WHERE id = ?", id)

	in, err := scanIngestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ingestion: %w", err)
	}
	return in, nil
}

// List returns entries, most recent first.
func (s *ingestionStore) List(ctx context.Context, limit int) ([]domain.Ingestion, error) {
	query := selectIngestion + " ORDER BY started_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ingestions: %w", err)
	}
	defer rows.Close()

	out := []domain.Ingestion{}
	for rows.Next() {
		in, err := scanIngestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ingestion: %w", err)
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

const selectIngestion = `
	SELECT id, kind, input, source, processed_path, chunks_total, chunks_written,
		status, error, started_at, finished_at
	FROM ingestions`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanIngestion(row scanner) (*domain.Ingestion, error) {
	var in domain.Ingestion
	var kind, status string
	var started time.Time
	var finished sql.NullTime

	if err := row.Scan(&in.ID, &kind, &in.Input, &in.Source, &in.ProcessedPath, &in.ChunksTotal,
		&in.ChunksWritten, &status, &in.Error, &started, &finished); err != nil {
		return nil, err
	}

	in.Kind = domain.DocumentKind(kind)
	in.Status = domain.IngestionStatus(status)
	in.StartedAt = started
	if finished.Valid {
		t := finished.Time
		in.FinishedAt = &t
	}
	return &in, nil
}
