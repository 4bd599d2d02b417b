// Package stats computes portfolio-level statistics over the case store.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
)

// Compute aggregates dashboard statistics over the given cases. Debt value
// sums only ACTIVE cases; closed cases keep their records but drop out of the
// outstanding total. Recomputed on demand, no incremental state.
func Compute(cases []*model.Case) *model.DashboardStats {
	out := &model.DashboardStats{
		TotalCases:     len(cases),
		TotalDebtValue: decimal.Zero,
	}

	for _, c := range cases {
		switch c.Status {
		case model.StatusActive:
			out.ActiveCases++
			out.TotalDebtValue = out.TotalDebtValue.Add(c.DebtAmount)
		case model.StatusClosed:
			out.CompletedCases++
		}

		switch c.Stage {
		case model.StageNew:
			out.StageBreakdown.New++
		case model.StageLBA1Sent:
			out.StageBreakdown.LBA1++
		case model.StageLBA2Sent:
			out.StageBreakdown.LBA2++
		case model.StageHMLRRequested:
			out.StageBreakdown.HMLR++
		case model.StageMortgageeContacted:
			out.StageBreakdown.Mortgagee++
		case model.StageCCJFiled:
			out.StageBreakdown.CCJ++
		}
	}

	return out
}
