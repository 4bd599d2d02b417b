// Package service provides business logic for debt-recovery case tracking.
package service

import (
	"context"
	"time"

	"github.com/subramaniashiva/debt-collection-portal/internal/deadline"
	"github.com/subramaniashiva/debt-collection-portal/internal/engine"
	"github.com/subramaniashiva/debt-collection-portal/internal/letters"
	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	"github.com/subramaniashiva/debt-collection-portal/internal/stats"
	"github.com/subramaniashiva/debt-collection-portal/internal/store"
)

// CaseService exposes the case-tracking operations behind the HTTP surface.
type CaseService struct {
	store  store.Store
	engine *engine.Engine
	now    func() time.Time
}

// NewCaseService creates a new case service.
func NewCaseService(st store.Store, eng *engine.Engine) *CaseService {
	return &CaseService{
		store:  st,
		engine: eng,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *CaseService) WithClock(now func() time.Time) *CaseService {
	s.now = now
	return s
}

// CreateCase opens a new recovery case.
func (s *CaseService) CreateCase(ctx context.Context, req *model.CreateCaseRequest) (*model.Case, error) {
	return s.engine.Create(ctx, req)
}

// ListCases returns all cases, newest first, each with its projected next
// action and deadline.
func (s *CaseService) ListCases(ctx context.Context) ([]*model.CaseProjection, error) {
	cases, err := s.store.ListCases(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*model.CaseProjection, len(cases))
	for i, c := range cases {
		p := deadline.Project(c, now)
		out[i] = &model.CaseProjection{
			Case:              c,
			NextAction:        p.NextAction,
			DaysUntilDeadline: p.DaysUntilDeadline,
			Urgent:            p.Urgent,
		}
	}
	return out, nil
}

// GetCase returns a case with its activity and document logs, newest first.
func (s *CaseService) GetCase(ctx context.Context, id int64) (*model.CaseDetail, error) {
	c, err := s.store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	activities, err := s.store.ListActivities(ctx, id)
	if err != nil {
		return nil, err
	}

	documents, err := s.store.ListDocuments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.CaseDetail{
		Case:       c,
		Activities: activities,
		Documents:  documents,
	}, nil
}

// ApplyAction applies a stage transition to a case.
func (s *CaseService) ApplyAction(ctx context.Context, id int64, req *model.ActionRequest) (*model.Case, error) {
	return s.engine.Apply(ctx, id, req.Action, req.Data)
}

// GenerateDocument renders a letter for a case and records the generation.
// The case itself is never modified, and generation is not gated on stage.
func (s *CaseService) GenerateDocument(ctx context.Context, id int64, kind model.DocumentKind) (*model.GeneratedDocument, error) {
	c, err := s.store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := letters.Render(c, kind, s.now())
	if err != nil {
		return nil, err
	}

	record := &model.DocumentRecord{
		CaseID:       c.ID,
		DocumentType: kind,
		CreatedAt:    s.now(),
	}
	if err := s.store.AppendDocument(ctx, record); err != nil {
		return nil, err
	}

	return &model.GeneratedDocument{
		DocumentType: kind,
		Content:      content,
	}, nil
}

// GetStats computes dashboard statistics over the whole portfolio.
func (s *CaseService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	cases, err := s.store.ListCases(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Compute(cases), nil
}
