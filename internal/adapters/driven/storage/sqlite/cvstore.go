package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// cvStore implements driven.CVStore.
type cvStore struct {
	store *Store
}

var _ driven.CVStore = (*cvStore)(nil)

const cvColumns = `id, filename, mime_type, size, content_hash, document_type, text,
	name, email, phone, degraded, analysis, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Save stores or updates a CV.
func (s *cvStore) Save(ctx context.Context, cv *domain.CV) error {
	if cv == nil || cv.ID == "" {
		return domain.ErrInvalidInput
	}

	analysisJSON, err := marshalAnalysis(cv.Analysis)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if cv.CreatedAt.IsZero() {
		cv.CreatedAt = now
	}
	if cv.UpdatedAt.IsZero() {
		cv.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO cvs (`+cvColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			mime_type = excluded.mime_type,
			size = excluded.size,
			content_hash = excluded.content_hash,
			document_type = excluded.document_type,
			text = excluded.text,
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			degraded = excluded.degraded,
			analysis = excluded.analysis,
			updated_at = excluded.updated_at
	`, cv.ID, cv.Filename, cv.MIMEType, cv.Size, cv.ContentHash, string(cv.DocumentType), cv.Text,
		cv.BasicInfo.Name, cv.BasicInfo.Email, cv.BasicInfo.Phone, cv.Degraded, analysisJSON,
		cv.CreatedAt.UTC(), cv.UpdatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving cv: %w", err)
	}
	return nil
}

// Get retrieves a CV by ID.
func (s *cvStore) Get(ctx context.Context, id string) (*domain.CV, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = ?`, id)
	return scanCV(row)
}

// FindByHash retrieves the most recent CV with the given content hash.
func (s *cvStore) FindByHash(ctx context.Context, contentHash string) (*domain.CV, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+cvColumns+` FROM cvs
		WHERE content_hash = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, contentHash)
	return scanCV(row)
}

// List returns CVs ordered by creation time, newest first.
// A limit of zero or less returns all CVs after offset.
func (s *cvStore) List(ctx context.Context, limit, offset int) ([]domain.CV, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+cvColumns+` FROM cvs
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
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
func (s *cvStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM cvs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting cv: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cv: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCV(row rowScanner) (*domain.CV, error) {
	var cv domain.CV
	var docType string
	var analysisJSON sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&cv.ID, &cv.Filename, &cv.MIMEType, &cv.Size, &cv.ContentHash, &docType, &cv.Text,
		&cv.BasicInfo.Name, &cv.BasicInfo.Email, &cv.BasicInfo.Phone, &cv.Degraded, &analysisJSON,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cv: %w", err)
	}

	cv.DocumentType = domain.DocumentType(docType)
	if analysisJSON.Valid && analysisJSON.String != "" {
		var analysis domain.Analysis
		if err := json.Unmarshal([]byte(analysisJSON.String), &analysis); err != nil {
			return nil, fmt.Errorf("unmarshaling analysis: %w", err)
		}
		cv.Analysis = &analysis
	}
	if createdAt.Valid {
		cv.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		cv.UpdatedAt = updatedAt.Time
	}

	return &cv, nil
}

func marshalAnalysis(analysis *domain.Analysis) (sql.NullString, error) {
	if analysis == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling analysis: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
