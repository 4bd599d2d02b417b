// Package deadline derives the next action and deadline for a case.
package deadline

import (
	"fmt"
	"time"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
)

// Response windows given to the debtor before the next escalation.
const (
	lba1ResponseDays = 28
	lba2ResponseDays = 14

	// urgentWindowDays flags cases whose deadline is close enough to need
	// attention on the dashboard.
	urgentWindowDays = 7
)

// Projection is the derived next-action view of a case.
type Projection struct {
	NextAction        string
	Deadline          *time.Time
	DaysUntilDeadline *int
	Urgent            bool
}

// Project maps a case's stage and sent dates to its next action and deadline.
// It is a pure function of the case and the supplied clock instant.
func Project(c *model.Case, now time.Time) Projection {
	switch c.Stage {
	case model.StageNew:
		return Projection{NextAction: "Send LBA1"}
	case model.StageLBA1Sent:
		return waitingProjection(c.LBA1SentDate, lba1ResponseDays, "Send LBA2", now)
	case model.StageLBA2Sent:
		return waitingProjection(c.LBA2SentDate, lba2ResponseDays, "Request HMLR Copy", now)
	case model.StageHMLRRequested:
		return Projection{NextAction: "Send Mortgagee Letter 1"}
	case model.StageMortgageeContacted:
		return Projection{NextAction: "Chase Mortgagee / File CCJ"}
	case model.StageCCJFiled:
		return Projection{NextAction: "Send CCJ to Mortgagee"}
	case model.StageCompleted:
		return Projection{NextAction: "Case Closed"}
	default:
		return Projection{}
	}
}

// waitingProjection computes the deadline for a stage whose next escalation
// waits out a response window from the sent date.
func waitingProjection(sent *time.Time, windowDays int, escalation string, now time.Time) Projection {
	if sent == nil {
		// Stage timestamp missing is unreachable through the engine; treat
		// as immediately actionable rather than panic on dirty data.
		return Projection{NextAction: escalation}
	}

	deadline := sent.AddDate(0, 0, windowDays)
	days := daysBetween(now, deadline)

	p := Projection{
		Deadline:          &deadline,
		DaysUntilDeadline: &days,
		Urgent:            deadline.After(now) && days < urgentWindowDays,
	}
	if days <= 0 {
		p.NextAction = escalation
	} else {
		p.NextAction = fmt.Sprintf("Wait %d days", days)
	}
	return p
}

// daysBetween returns whole days from `from` to `to`, truncated toward zero.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
