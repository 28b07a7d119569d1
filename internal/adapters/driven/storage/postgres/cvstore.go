package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure CVStore implements the interface.
var _ driven.CVStore = (*CVStore)(nil)

const cvColumns = `id, filename, mime_type, size_bytes, content_hash, document_type, text,
	name, email, phone, degraded, analysis, created_at, updated_at`

// CVStore persists CVs in Postgres.
type CVStore struct {
	pool *pgxpool.Pool
}

// NewCVStore creates the store, ensuring the schema exists.
func NewCVStore(ctx context.Context, pool *pgxpool.Pool) (*CVStore, error) {
	s := &CVStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("postgres: ensuring schema: %w", err)
	}
	return s, nil
}

func (s *CVStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS cvs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL DEFAULT '',
	mime_type TEXT NOT NULL,
	size_bytes BIGINT NOT NULL DEFAULT 0,
	content_hash TEXT NOT NULL,
	document_type TEXT NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	degraded BOOLEAN NOT NULL DEFAULT FALSE,
	analysis JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cvs_content_hash ON cvs (content_hash);
CREATE INDEX IF NOT EXISTS idx_cvs_created_at ON cvs (created_at DESC);
`)
	return err
}

// Save stores or updates a CV.
func (s *CVStore) Save(ctx context.Context, cv *domain.CV) error {
	if cv == nil || cv.ID == "" {
		return domain.ErrInvalidInput
	}

	var analysis []byte
	if cv.Analysis != nil {
		data, err := json.Marshal(cv.Analysis)
		if err != nil {
			return fmt.Errorf("marshalling analysis: %w", err)
		}
		analysis = data
	}

	now := time.Now().UTC()
	if cv.CreatedAt.IsZero() {
		cv.CreatedAt = now
	}
	if cv.UpdatedAt.IsZero() {
		cv.UpdatedAt = now
	}

	_, err := s.pool.Exec(ctx, `
INSERT INTO cvs (`+cvColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (id) DO UPDATE SET
	filename = EXCLUDED.filename,
	mime_type = EXCLUDED.mime_type,
	size_bytes = EXCLUDED.size_bytes,
	content_hash = EXCLUDED.content_hash,
	document_type = EXCLUDED.document_type,
	text = EXCLUDED.text,
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	degraded = EXCLUDED.degraded,
	analysis = EXCLUDED.analysis,
	updated_at = EXCLUDED.updated_at
`, cv.ID, cv.Filename, cv.MIMEType, cv.Size, cv.ContentHash, string(cv.DocumentType), cv.Text,
		cv.BasicInfo.Name, cv.BasicInfo.Email, cv.BasicInfo.Phone, cv.Degraded, analysis,
		cv.CreatedAt.UTC(), cv.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving cv: %w", err)
	}
	return nil
}

// Get retrieves a CV by ID.
func (s *CVStore) Get(ctx context.Context, id string) (*domain.CV, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id)
	return scanCV(row)
}

// FindByHash retrieves the most recent CV with the given content hash.
func (s *CVStore) FindByHash(ctx context.Context, contentHash string) (*domain.CV, error) {
	row := s.pool.QueryRow(ctx, `
SELECT `+cvColumns+` FROM cvs
WHERE content_hash = $1
ORDER BY created_at DESC
LIMIT 1
`, contentHash)
	return scanCV(row)
}

// List returns CVs ordered by creation time, newest first.
// A limit of zero or less returns all CVs after offset.
func (s *CVStore) List(ctx context.Context, limit, offset int) ([]domain.CV, error) {
	if offset < 0 {
		offset = 0
	}

	var limitArg any // NULL means no limit
	if limit > 0 {
		limitArg = limit
	}

	rows, err := s.pool.Query(ctx, `
SELECT `+cvColumns+` FROM cvs
ORDER BY created_at DESC, id ASC
LIMIT $1 OFFSET $2
`, limitArg, offset)
	if err != nil {
		return nil, fmt.Errorf("querying cvs: %w", err)
	}
	defer rows.Close()

	cvs := []domain.CV{}
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		cvs = append(cvs, *cv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cvs: %w", err)
	}
	return cvs, nil
}

// Delete removes a CV.
func (s *CVStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting cv: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCV(row pgx.Row) (*domain.CV, error) {
	var cv domain.CV
	var docType string
	var analysis []byte
	var created, updated time.Time

	err := row.Scan(&cv.ID, &cv.Filename, &cv.MIMEType, &cv.Size, &cv.ContentHash, &docType, &cv.Text,
		&cv.BasicInfo.Name, &cv.BasicInfo.Email, &cv.BasicInfo.Phone, &cv.Degraded, &analysis,
		&created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cv: %w", err)
	}

	cv.DocumentType = domain.DocumentType(docType)
	cv.CreatedAt = created.UTC()
	cv.UpdatedAt = updated.UTC()
	if len(analysis) > 0 {
		var a domain.Analysis
		if err := json.Unmarshal(analysis, &a); err != nil {
			return nil, fmt.Errorf("unmarshaling analysis: %w", err)
		}
		cv.Analysis = &a
	}
	return &cv, nil
}
