// Package sqlite provides a SQLite-backed document registry.
//
// The registry is the authoritative catalog of uploaded documents. It
// stores per-document metadata including the vector IDs written to the
// vector index, which the deletion path needs for targeted cleanup.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/registry/sqlite/migrations"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentRegistry = (*Store)(nil)

// Store is a SQLite-backed document registry.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite registry at the specified data directory.
// If dataDir is empty, defaults to ~/.docchat/data/registry.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docchat", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "registry.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// Create stores a new record and assigns its ID.
func (s *Store) Create(ctx context.Context, record *domain.DocumentRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now().UTC()
	}

	vectorIDsJSON, err := json.Marshal(record.VectorIDs)
	if err != nil {
		return fmt.Errorf("marshalling vector ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, owner_id, filename, original_filename, size_bytes, chunk_count, vector_ids, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.OwnerID, record.Filename, record.OriginalFilename,
		record.SizeBytes, record.ChunkCount, string(vectorIDsJSON), record.UploadedAt)

	if err != nil {
		return fmt.Errorf("saving document record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, filename, original_filename, size_bytes, chunk_count, vector_ids, uploaded_at
		FROM documents WHERE id = ?
	`, id)

	return scanRecord(row)
}

// ListByOwner returns all records for an owner, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]domain.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, filename, original_filename, size_bytes, chunk_count, vector_ids, uploaded_at
		FROM documents WHERE owner_id = ?
		ORDER BY uploaded_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying document records: %w", err)
	}
	defer rows.Close()

	var records []domain.DocumentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document records: %w", err)
	}

	return records, nil
}

// Delete removes a record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanRecord scans a single record row.
func scanRecord(row *sql.Row) (*domain.DocumentRecord, error) {
	var record domain.DocumentRecord
	var vectorIDsJSON sql.NullString

	if err := row.Scan(&record.ID, &record.OwnerID, &record.Filename, &record.OriginalFilename,
		&record.SizeBytes, &record.ChunkCount, &vectorIDsJSON, &record.UploadedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document record: %w", err)
	}

	if err := unmarshalVectorIDs(vectorIDsJSON, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// scanRecordRows scans a record from *sql.Rows.
func scanRecordRows(rows *sql.Rows) (*domain.DocumentRecord, error) {
	var record domain.DocumentRecord
	var vectorIDsJSON sql.NullString

	if err := rows.Scan(&record.ID, &record.OwnerID, &record.Filename, &record.OriginalFilename,
		&record.SizeBytes, &record.ChunkCount, &vectorIDsJSON, &record.UploadedAt); err != nil {
		return nil, fmt.Errorf("scanning document record: %w", err)
	}

	if err := unmarshalVectorIDs(vectorIDsJSON, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// unmarshalVectorIDs decodes the vector_ids column. A NULL or "null"
// column yields a nil slice, which marks a legacy record.
func unmarshalVectorIDs(col sql.NullString, record *domain.DocumentRecord) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		record.VectorIDs = nil
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), &record.VectorIDs); err != nil {
		return fmt.Errorf("unmarshalling vector ids: %w", err)
	}
	return nil
}
