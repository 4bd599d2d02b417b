package store

import (
	"context"
	"sort"
	"sync"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

// MemoryStore implements Store in process memory. State is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	cases      map[int64]*model.Case
	activities map[int64][]*model.Activity       // caseID -> entries, append order
	documents  map[int64][]*model.DocumentRecord // caseID -> entries, append order

	nextCaseID     int64
	nextActivityID int64
	nextDocumentID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cases:      make(map[int64]*model.Case),
		activities: make(map[int64][]*model.Activity),
		documents:  make(map[int64][]*model.DocumentRecord),
	}
}

// CreateCase inserts a new case with its creation activity.
func (s *MemoryStore) CreateCase(ctx context.Context, c *model.Case, a *model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCaseID++
	c.ID = s.nextCaseID
	c.Version = 1
	s.cases[c.ID] = c.Clone()

	a.CaseID = c.ID
	s.appendActivityLocked(a)
	return nil
}

// GetCase returns a copy of the case with the given ID.
func (s *MemoryStore) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cases[id]
	if !ok {
		return nil, apperrors.NotFound("case").WithDetail("id", id)
	}
	return c.Clone(), nil
}

// UpdateCase replaces the stored case and appends the activity, if the
// version still matches.
func (s *MemoryStore) UpdateCase(ctx context.Context, c *model.Case, a *model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.cases[c.ID]
	if !ok {
		return apperrors.NotFound("case").WithDetail("id", c.ID)
	}
	if stored.Version != c.Version {
		return apperrors.Conflict("case was modified concurrently").WithDetail("id", c.ID)
	}

	c.Version++
	s.cases[c.ID] = c.Clone()

	a.CaseID = c.ID
	s.appendActivityLocked(a)
	return nil
}

// ListCases returns all cases, newest created first.
func (s *MemoryStore) ListCases(ctx context.Context) ([]*model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Case, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ReferenceExists reports whether a case already uses the reference.
func (s *MemoryStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cases {
		if c.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

// ListActivities returns a case's activities, newest first.
func (s *MemoryStore) ListActivities(ctx context.Context, caseID int64) ([]*model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.activities[caseID]
	out := make([]*model.Activity, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := *entries[i]
		out = append(out, &entry)
	}
	return out, nil
}

// AppendDocument inserts a generated-document record.
func (s *MemoryStore) AppendDocument(ctx context.Context, d *model.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDocumentID++
	d.ID = s.nextDocumentID
	entry := *d
	s.documents[d.CaseID] = append(s.documents[d.CaseID], &entry)
	return nil
}

// ListDocuments returns a case's document records, newest first.
func (s *MemoryStore) ListDocuments(ctx context.Context, caseID int64) ([]*model.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.documents[caseID]
	out := make([]*model.DocumentRecord, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := *entries[i]
		out = append(out, &entry)
	}
	return out, nil
}

func (s *MemoryStore) appendActivityLocked(a *model.Activity) {
	s.nextActivityID++
	a.ID = s.nextActivityID
	entry := *a
	s.activities[a.CaseID] = append(s.activities[a.CaseID], &entry)
}
