// Package model provides data models for debt-recovery case tracking.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stage represents the recovery workflow stage a case is in.
type Stage string

const (
	StageNew                Stage = "NEW"
	StageLBA1Sent           Stage = "LBA1_SENT"
	StageLBA2Sent           Stage = "LBA2_SENT"
	StageHMLRRequested      Stage = "HMLR_REQUESTED"
	StageMortgageeContacted Stage = "MORTGAGEE_CONTACTED"
	StageCCJFiled           Stage = "CCJ_FILED"
	StageCompleted          Stage = "COMPLETED"
)

// Status represents case lifecycle status.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Action represents a stage-changing action requested against a case.
type Action string

const (
	ActionSendLBA1        Action = "SEND_LBA1"
	ActionSendLBA2        Action = "SEND_LBA2"
	ActionRequestHMLR     Action = "REQUEST_HMLR"
	ActionUpdateMortgagee Action = "UPDATE_MORTGAGEE"
	ActionFileCCJ         Action = "FILE_CCJ"
	ActionMarkPaid        Action = "MARK_PAID"

	// ActionCaseCreated is not requestable; it tags the creation activity.
	ActionCaseCreated Action = "CASE_CREATED"
)

// Case represents a debt-recovery case against a leasehold property.
type Case struct {
	ID              int64           `json:"id" db:"id"`
	Reference       string          `json:"case_reference" db:"case_reference"` // e.g. DC2026-0421
	DebtorName      string          `json:"debtor_name" db:"debtor_name"`
	PropertyAddress string          `json:"property_address" db:"property_address"`
	DebtAmount      decimal.Decimal `json:"debt_amount" db:"debt_amount"`
	TotalCosts      decimal.Decimal `json:"total_costs" db:"total_costs"`
	Status          Status          `json:"status" db:"status"`
	Stage           Stage           `json:"current_stage" db:"current_stage"`

	// Stage timestamps. Each is set exactly once, when the corresponding
	// transition fires, and never cleared.
	LBA1SentDate             *time.Time `json:"lba1_sent_date" db:"lba1_sent_date"`
	LBA2SentDate             *time.Time `json:"lba2_sent_date" db:"lba2_sent_date"`
	HMLRRequestedDate        *time.Time `json:"hmlr_requested_date" db:"hmlr_requested_date"`
	MortgageeLetter1SentDate *time.Time `json:"mortgagee_letter1_sent_date" db:"mortgagee_letter1_sent_date"`
	CCJFiledDate             *time.Time `json:"ccj_filed_date" db:"ccj_filed_date"`

	// Mortgagee details, set together via the UPDATE_MORTGAGEE action.
	MortgageeName    *string `json:"mortgagee_name" db:"mortgagee_name"`
	MortgageeAddress *string `json:"mortgagee_address" db:"mortgagee_address"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Version guards read-modify-write cycles against lost updates.
	Version int64 `json:"-" db:"version"`
}

// Clone returns a deep copy so callers can mutate without aliasing store state.
func (c *Case) Clone() *Case {
	cp := *c
	cp.LBA1SentDate = cloneTime(c.LBA1SentDate)
	cp.LBA2SentDate = cloneTime(c.LBA2SentDate)
	cp.HMLRRequestedDate = cloneTime(c.HMLRRequestedDate)
	cp.MortgageeLetter1SentDate = cloneTime(c.MortgageeLetter1SentDate)
	cp.CCJFiledDate = cloneTime(c.CCJFiledDate)
	cp.MortgageeName = cloneString(c.MortgageeName)
	cp.MortgageeAddress = cloneString(c.MortgageeAddress)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// CreateCaseRequest represents a request to open a new case.
type CreateCaseRequest struct {
	DebtorName      string          `json:"debtor_name" validate:"required"`
	PropertyAddress string          `json:"property_address" validate:"required"`
	DebtAmount      decimal.Decimal `json:"debt_amount" validate:"required"`
}

// ActionRequest represents a stage-transition request.
type ActionRequest struct {
	Action Action        `json:"action" validate:"required"`
	Data   ActionPayload `json:"data"`
}

// ActionPayload carries action-specific fields. Only UPDATE_MORTGAGEE uses it.
type ActionPayload struct {
	MortgageeName    string `json:"mortgagee_name,omitempty"`
	MortgageeAddress string `json:"mortgagee_address,omitempty"`
}

// CaseProjection is a case list item with the derived next-action fields.
type CaseProjection struct {
	*Case
	NextAction        string `json:"nextAction"`
	DaysUntilDeadline *int   `json:"daysUntilDeadline"`
	Urgent            bool   `json:"urgent"`
}

// CaseDetail is a case with its full activity and document logs.
type CaseDetail struct {
	*Case
	Activities []*Activity       `json:"activities"`
	Documents  []*DocumentRecord `json:"documents"`
}

// DashboardStats holds portfolio-level statistics.
type DashboardStats struct {
	TotalCases     int             `json:"totalCases"`
	ActiveCases    int             `json:"activeCases"`
	CompletedCases int             `json:"completedCases"`
	TotalDebtValue decimal.Decimal `json:"totalDebtValue"`
	StageBreakdown StageBreakdown  `json:"stageBreakdown"`
}

// StageBreakdown counts cases per non-terminal stage.
type StageBreakdown struct {
	New       int `json:"new"`
	LBA1      int `json:"lba1"`
	LBA2      int `json:"lba2"`
	HMLR      int `json:"hmlr"`
	Mortgagee int `json:"mortgagee"`
	CCJ       int `json:"ccj"`
}
