package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

// PostgresStore implements Store on PostgreSQL via sqlx. Case writes and
// their activity entries share a transaction.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateCase inserts a new case with its creation activity.
func (s *PostgresStore) CreateCase(ctx context.Context, c *model.Case, a *model.Activity) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to create case")
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO cases (
			case_reference, debtor_name, property_address, debt_amount,
			total_costs, status, current_stage, created_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING id`,
		c.Reference, c.DebtorName, c.PropertyAddress, c.DebtAmount,
		c.TotalCosts, c.Status, c.Stage, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to create case")
	}

	a.CaseID = c.ID
	if err := insertActivity(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to create case")
	}
	c.Version = 1
	return nil
}

// GetCase retrieves a case by ID.
func (s *PostgresStore) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	var dbc dbCase
	err := s.db.GetContext(ctx, &dbc, `SELECT * FROM cases WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("case").WithDetail("id", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to get case")
	}
	return fromDBCase(&dbc), nil
}

// UpdateCase persists a modified case and its activity entry in one
// transaction, using an optimistic version check.
func (s *PostgresStore) UpdateCase(ctx context.Context, c *model.Case, a *model.Activity) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to update case")
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, `
		UPDATE cases SET
			debtor_name = :debtor_name,
			property_address = :property_address,
			debt_amount = :debt_amount,
			total_costs = :total_costs,
			status = :status,
			current_stage = :current_stage,
			lba1_sent_date = :lba1_sent_date,
			lba2_sent_date = :lba2_sent_date,
			hmlr_requested_date = :hmlr_requested_date,
			mortgagee_letter1_sent_date = :mortgagee_letter1_sent_date,
			ccj_filed_date = :ccj_filed_date,
			mortgagee_name = :mortgagee_name,
			mortgagee_address = :mortgagee_address,
			version = version + 1
		WHERE id = :id AND version = :version`,
		toDBCase(c))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to update case")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to update case")
	}
	if rows == 0 {
		// Distinguish a missing row from a stale version.
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`, c.ID); err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to update case")
		}
		if !exists {
			return apperrors.NotFound("case").WithDetail("id", c.ID)
		}
		return apperrors.Conflict("case was modified concurrently").WithDetail("id", c.ID)
	}

	a.CaseID = c.ID
	if err := insertActivity(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to update case")
	}
	c.Version++
	return nil
}

// ListCases returns all cases, newest created first.
func (s *PostgresStore) ListCases(ctx context.Context) ([]*model.Case, error) {
	var dbCases []dbCase
	err := s.db.SelectContext(ctx, &dbCases,
		`SELECT * FROM cases ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to list cases")
	}

	cases := make([]*model.Case, len(dbCases))
	for i := range dbCases {
		cases[i] = fromDBCase(&dbCases[i])
	}
	return cases, nil
}

// ReferenceExists reports whether a case already uses the reference.
func (s *PostgresStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM cases WHERE case_reference = $1)`, reference)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to check reference")
	}
	return exists, nil
}

// ListActivities returns a case's activities, newest first.
func (s *PostgresStore) ListActivities(ctx context.Context, caseID int64) ([]*model.Activity, error) {
	activities := []*model.Activity{}
	err := s.db.SelectContext(ctx, &activities, `
		SELECT * FROM case_activities
		WHERE case_id = $1
		ORDER BY created_at DESC, id DESC`, caseID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to list activities")
	}
	return activities, nil
}

// AppendDocument inserts a generated-document record.
func (s *PostgresStore) AppendDocument(ctx context.Context, d *model.DocumentRecord) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO case_documents (case_id, document_type, created_at)
		VALUES ($1, $2, $3) RETURNING id`,
		d.CaseID, d.DocumentType, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to append document record")
	}
	return nil
}

// ListDocuments returns a case's document records, newest first.
func (s *PostgresStore) ListDocuments(ctx context.Context, caseID int64) ([]*model.DocumentRecord, error) {
	documents := []*model.DocumentRecord{}
	err := s.db.SelectContext(ctx, &documents, `
		SELECT * FROM case_documents
		WHERE case_id = $1
		ORDER BY created_at DESC, id DESC`, caseID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to list document records")
	}
	return documents, nil
}

func insertActivity(ctx context.Context, tx *sqlx.Tx, a *model.Activity) error {
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO case_activities (case_id, activity_type, description, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		a.CaseID, a.ActivityType, a.Description, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to append activity")
	}
	return nil
}

// dbCase represents the database schema for cases.
type dbCase struct {
	ID                       int64           `db:"id"`
	Reference                string          `db:"case_reference"`
	DebtorName               string          `db:"debtor_name"`
	PropertyAddress          string          `db:"property_address"`
	DebtAmount               decimal.Decimal `db:"debt_amount"`
	TotalCosts               decimal.Decimal `db:"total_costs"`
	Status                   string          `db:"status"`
	Stage                    string          `db:"current_stage"`
	LBA1SentDate             *time.Time      `db:"lba1_sent_date"`
	LBA2SentDate             *time.Time      `db:"lba2_sent_date"`
	HMLRRequestedDate        *time.Time      `db:"hmlr_requested_date"`
	MortgageeLetter1SentDate *time.Time      `db:"mortgagee_letter1_sent_date"`
	CCJFiledDate             *time.Time      `db:"ccj_filed_date"`
	MortgageeName            sql.NullString  `db:"mortgagee_name"`
	MortgageeAddress         sql.NullString  `db:"mortgagee_address"`
	CreatedAt                time.Time       `db:"created_at"`
	Version                  int64           `db:"version"`
}

func toDBCase(c *model.Case) *dbCase {
	dbc := &dbCase{
		ID:                       c.ID,
		Reference:                c.Reference,
		DebtorName:               c.DebtorName,
		PropertyAddress:          c.PropertyAddress,
		DebtAmount:               c.DebtAmount,
		TotalCosts:               c.TotalCosts,
		Status:                   string(c.Status),
		Stage:                    string(c.Stage),
		LBA1SentDate:             c.LBA1SentDate,
		LBA2SentDate:             c.LBA2SentDate,
		HMLRRequestedDate:        c.HMLRRequestedDate,
		MortgageeLetter1SentDate: c.MortgageeLetter1SentDate,
		CCJFiledDate:             c.CCJFiledDate,
		CreatedAt:                c.CreatedAt,
		Version:                  c.Version,
	}

	if c.MortgageeName != nil {
		dbc.MortgageeName = sql.NullString{String: *c.MortgageeName, Valid: true}
	}
	if c.MortgageeAddress != nil {
		dbc.MortgageeAddress = sql.NullString{String: *c.MortgageeAddress, Valid: true}
	}

	return dbc
}

func fromDBCase(dbc *dbCase) *model.Case {
	c := &model.Case{
		ID:                       dbc.ID,
		Reference:                dbc.Reference,
		DebtorName:               dbc.DebtorName,
		PropertyAddress:          dbc.PropertyAddress,
		DebtAmount:               dbc.DebtAmount,
		TotalCosts:               dbc.TotalCosts,
		Status:                   model.Status(dbc.Status),
		Stage:                    model.Stage(dbc.Stage),
		LBA1SentDate:             dbc.LBA1SentDate,
		LBA2SentDate:             dbc.LBA2SentDate,
		HMLRRequestedDate:        dbc.HMLRRequestedDate,
		MortgageeLetter1SentDate: dbc.MortgageeLetter1SentDate,
		CCJFiledDate:             dbc.CCJFiledDate,
		CreatedAt:                dbc.CreatedAt,
		Version:                  dbc.Version,
	}

	if dbc.MortgageeName.Valid {
		c.MortgageeName = &dbc.MortgageeName.String
	}
	if dbc.MortgageeAddress.Valid {
		c.MortgageeAddress = &dbc.MortgageeAddress.String
	}

	return c
}
