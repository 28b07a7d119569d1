package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure CVStore implements the interface.
var _ driven.CVStore = (*CVStore)(nil)

// CVStore is an in-memory implementation of driven.CVStore.
type CVStore struct {
	mu  sync.RWMutex
	cvs map[string]domain.CV
}

// NewCVStore creates a new in-memory CV store.
func NewCVStore() *CVStore {
	return &CVStore{
		cvs: make(map[string]domain.CV),
	}
}

// Save stores or updates a CV.
func (s *CVStore) Save(_ context.Context, cv *domain.CV) error {
	if cv == nil || cv.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cvs[cv.ID] = copyCV(*cv)
	return nil
}

// Get retrieves a CV by ID.
func (s *CVStore) Get(_ context.Context, id string) (*domain.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cv, ok := s.cvs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cv = copyCV(cv)
	return &cv, nil
}

// FindByHash retrieves the most recent CV with the given content hash.
func (s *CVStore) FindByHash(_ context.Context, contentHash string) (*domain.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.CV
	for _, cv := range s.cvs {
		if cv.ContentHash != contentHash {
			continue
		}
		if found == nil || cv.CreatedAt.After(found.CreatedAt) {
			c := copyCV(cv)
			found = &c
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

// List returns CVs ordered by creation time, newest first.
// A limit of zero or less returns all CVs after offset.
func (s *CVStore) List(_ context.Context, limit, offset int) ([]domain.CV, error) {
	s.mu.RLock()
	all := make([]domain.CV, 0, len(s.cvs))
	for _, cv := range s.cvs {
		all = append(all, copyCV(cv))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []domain.CV{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Delete removes a CV.
func (s *CVStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cvs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.cvs, id)
	return nil
}

// copyCV detaches the analysis pointer so callers cannot mutate stored state.
func copyCV(cv domain.CV) domain.CV {
	if cv.Analysis != nil {
		a := *cv.Analysis
		cv.Analysis = &a
	}
	return cv
}
