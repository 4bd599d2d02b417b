// Package engine validates and applies stage transitions for recovery cases.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	"github.com/subramaniashiva/debt-collection-portal/internal/store"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

// randomReferenceAttempts bounds random reference generation before falling
// back to a sequential scan of the suffix space.
const randomReferenceAttempts = 20

// Engine owns case creation and stage transitions. All writes to a case go
// through it; a per-case mutex serializes read-modify-write cycles so cost
// accrual and stage advances cannot race.
type Engine struct {
	store store.Store
	now   func() time.Time
	randN func(n int) int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates an engine over the given store.
func New(st store.Store) *Engine {
	return &Engine{
		store: st,
		now:   time.Now,
		randN: rand.Intn,
		locks: make(map[int64]*sync.Mutex),
	}
}

// WithClock overrides the engine's clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Create validates the request, materializes a new case in stage NEW with a
// unique reference, and logs the CASE_CREATED activity.
func (e *Engine) Create(ctx context.Context, req *model.CreateCaseRequest) (*model.Case, error) {
	if strings.TrimSpace(req.DebtorName) == "" {
		return nil, apperrors.Validation("debtor_name", "debtor name is required")
	}
	if strings.TrimSpace(req.PropertyAddress) == "" {
		return nil, apperrors.Validation("property_address", "property address is required")
	}
	if !req.DebtAmount.IsPositive() {
		return nil, apperrors.Validation("debt_amount", "debt amount must be a positive number")
	}

	now := e.now()

	reference, err := e.generateReference(ctx, now)
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		Reference:       reference,
		DebtorName:      strings.TrimSpace(req.DebtorName),
		PropertyAddress: strings.TrimSpace(req.PropertyAddress),
		DebtAmount:      req.DebtAmount,
		TotalCosts:      decimal.Zero,
		Status:          model.StatusActive,
		Stage:           model.StageNew,
		CreatedAt:       now,
	}

	activity := &model.Activity{
		ActivityType: model.ActionCaseCreated,
		Description:  "Case created",
		CreatedAt:    now,
	}

	if err := e.store.CreateCase(ctx, c, activity); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply validates that the action is legal for the case's current stage and,
// if so, advances the stage, stamps the transition time, accrues the fixed
// cost and logs the activity, all as one committed write. On any error the
// case is left unmodified.
func (e *Engine) Apply(ctx context.Context, id int64, action model.Action, payload model.ActionPayload) (*model.Case, error) {
	rule, ok := transitions[action]
	if !ok {
		return nil, apperrors.InvalidAction(string(action))
	}

	lock := e.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	c, err := e.store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rule.legalFrom(c.Stage) {
		return nil, apperrors.InvalidTransition(string(action), string(c.Stage))
	}

	if rule.requiresMortgagee {
		if strings.TrimSpace(payload.MortgageeName) == "" {
			return nil, apperrors.Validation("mortgagee_name", "mortgagee name is required")
		}
		if strings.TrimSpace(payload.MortgageeAddress) == "" {
			return nil, apperrors.Validation("mortgagee_address", "mortgagee address is required")
		}
	}

	now := e.now()

	c.Stage = rule.to
	if rule.stamp != nil {
		rule.stamp(c, now)
	}
	if rule.cost.IsPositive() {
		c.TotalCosts = c.TotalCosts.Add(rule.cost)
	}
	if rule.requiresMortgagee {
		name := strings.TrimSpace(payload.MortgageeName)
		address := strings.TrimSpace(payload.MortgageeAddress)
		c.MortgageeName = &name
		c.MortgageeAddress = &address
	}
	if rule.closes {
		c.Status = model.StatusClosed
	}

	activity := &model.Activity{
		ActivityType: action,
		Description:  rule.describe(payload),
		CreatedAt:    now,
	}

	if err := e.store.UpdateCase(ctx, c, activity); err != nil {
		return nil, err
	}
	return c, nil
}

// generateReference produces a DC<year>-<4 digits> reference not yet present
// in the store. Random suffixes are tried first; once those are exhausted the
// suffix space is scanned so the call terminates even on a crowded year.
func (e *Engine) generateReference(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()

	for i := 0; i < randomReferenceAttempts; i++ {
		ref := fmt.Sprintf("DC%d-%04d", year, e.randN(10000))
		exists, err := e.store.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}

	start := e.randN(10000)
	for offset := 0; offset < 10000; offset++ {
		ref := fmt.Sprintf("DC%d-%04d", year, (start+offset)%10000)
		exists, err := e.store.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}

	return "", apperrors.Conflict(fmt.Sprintf("reference space exhausted for %d", year))
}

func (e *Engine) lockFor(id int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}
