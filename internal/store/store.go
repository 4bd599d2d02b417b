// Package store provides persistence for cases and their child records.
package store

import (
	"context"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
)

// Store is the persistence boundary for cases, activities and document
// records. Implementations assign identities atomically on insert and must be
// safe for concurrent use; serialization of read-modify-write cycles is the
// caller's concern, backed by the version check on UpdateCase.
//
// Case writes carry their activity entry so a transition commits whole: the
// stage, timestamps, costs and log entry land together or not at all.
type Store interface {
	// CreateCase inserts a new case together with its creation activity,
	// assigning both IDs.
	CreateCase(ctx context.Context, c *model.Case, a *model.Activity) error
	// GetCase returns the case with the given ID, or a NOT_FOUND error.
	GetCase(ctx context.Context, id int64) (*model.Case, error)
	// UpdateCase persists a modified case and appends the activity describing
	// the change. It fails with CONFLICT when the stored version no longer
	// matches c.Version, and increments the version on success.
	UpdateCase(ctx context.Context, c *model.Case, a *model.Activity) error
	// ListCases returns all cases, newest created first.
	ListCases(ctx context.Context) ([]*model.Case, error)
	// ReferenceExists reports whether any case already uses the reference.
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// ListActivities returns a case's activities, newest first.
	ListActivities(ctx context.Context, caseID int64) ([]*model.Activity, error)

	// AppendDocument inserts a generated-document record and assigns its ID.
	AppendDocument(ctx context.Context, d *model.DocumentRecord) error
	// ListDocuments returns a case's document records, newest first.
	ListDocuments(ctx context.Context, caseID int64) ([]*model.DocumentRecord, error)
}
