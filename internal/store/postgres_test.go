package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewPostgresStore(db), mock
}

func caseColumns() []string {
	return []string{
		"id", "case_reference", "debtor_name", "property_address",
		"debt_amount", "total_costs", "status", "current_stage",
		"lba1_sent_date", "lba2_sent_date", "hmlr_requested_date",
		"mortgagee_letter1_sent_date", "ccj_filed_date",
		"mortgagee_name", "mortgagee_address", "created_at", "version",
	}
}

func TestPostgresGetCase(t *testing.T) {
	s, mock := newMockStore(t)
	createdAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(caseColumns()).AddRow(
		int64(7), "DC2026-0421", "John Smith", "Flat 3, 12 Harbour Road, Bristol",
		"1000", "225", "ACTIVE", "LBA1_SENT",
		createdAt, nil, nil, nil, nil,
		nil, nil, createdAt, int64(2),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM cases WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	c, err := s.GetCase(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "DC2026-0421", c.Reference)
	assert.Equal(t, model.StageLBA1Sent, c.Stage)
	assert.Equal(t, "225", c.TotalCosts.String())
	assert.Nil(t, c.MortgageeName)
	assert.Equal(t, int64(2), c.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetCaseNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM cases WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(caseColumns()))

	_, err := s.GetCase(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateCase(t *testing.T) {
	s, mock := newMockStore(t)
	createdAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cases`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO case_activities`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	c := &model.Case{
		Reference:       "DC2026-0421",
		DebtorName:      "John Smith",
		PropertyAddress: "Flat 3, 12 Harbour Road, Bristol",
		DebtAmount:      decimal.NewFromInt(1000),
		TotalCosts:      decimal.Zero,
		Status:          model.StatusActive,
		Stage:           model.StageNew,
		CreatedAt:       createdAt,
	}
	a := &model.Activity{
		ActivityType: model.ActionCaseCreated,
		Description:  "Case created",
		CreatedAt:    createdAt,
	}

	require.NoError(t, s.CreateCase(context.Background(), c, a))
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, int64(1), c.Version)
	assert.Equal(t, int64(3), a.CaseID)
	assert.Equal(t, int64(11), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateCaseStaleVersion(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE cases SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	c := &model.Case{
		ID:         7,
		Status:     model.StatusActive,
		Stage:      model.StageLBA1Sent,
		DebtAmount: decimal.NewFromInt(1000),
		TotalCosts: decimal.NewFromInt(225),
		Version:    1,
	}
	err := s.UpdateCase(context.Background(), c, &model.Activity{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateCaseMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE cases SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	c := &model.Case{
		ID:         99,
		Status:     model.StatusActive,
		Stage:      model.StageLBA1Sent,
		DebtAmount: decimal.NewFromInt(1000),
		TotalCosts: decimal.NewFromInt(225),
		Version:    1,
	}
	err := s.UpdateCase(context.Background(), c, &model.Activity{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReferenceExists(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM cases WHERE case_reference = $1)`)).
		WithArgs("DC2026-0421").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.ReferenceExists(context.Background(), "DC2026-0421")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
