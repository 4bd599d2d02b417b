package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
)

// Fixed cost surcharge applied by each transition, in pounds sterling.
var (
	costLBA1      = decimal.NewFromInt(225)
	costLBA2      = decimal.NewFromInt(150)
	costHMLR      = decimal.NewFromInt(45)
	costMortgagee = decimal.NewFromInt(350)
	costCCJ       = decimal.NewFromInt(500)
)

// transition describes one row of the action table: where the action is legal
// from, where it lands, what it costs, which timestamp it stamps, and the
// activity sentence it logs.
type transition struct {
	from              []model.Stage
	to                model.Stage
	cost              decimal.Decimal
	stamp             func(c *model.Case, at time.Time)
	describe          func(p model.ActionPayload) string
	requiresMortgagee bool
	closes            bool
}

func (t transition) legalFrom(stage model.Stage) bool {
	for _, s := range t.from {
		if s == stage {
			return true
		}
	}
	return false
}

var transitions = map[model.Action]transition{
	model.ActionSendLBA1: {
		from:  []model.Stage{model.StageNew},
		to:    model.StageLBA1Sent,
		cost:  costLBA1,
		stamp: func(c *model.Case, at time.Time) { c.LBA1SentDate = &at },
		describe: func(model.ActionPayload) string {
			return "LBA1 sent to debtor"
		},
	},
	model.ActionSendLBA2: {
		from:  []model.Stage{model.StageLBA1Sent},
		to:    model.StageLBA2Sent,
		cost:  costLBA2,
		stamp: func(c *model.Case, at time.Time) { c.LBA2SentDate = &at },
		describe: func(model.ActionPayload) string {
			return "LBA2 sent to debtor"
		},
	},
	model.ActionRequestHMLR: {
		from:  []model.Stage{model.StageLBA2Sent},
		to:    model.StageHMLRRequested,
		cost:  costHMLR,
		stamp: func(c *model.Case, at time.Time) { c.HMLRRequestedDate = &at },
		describe: func(model.ActionPayload) string {
			return "HMLR office copy requested"
		},
	},
	model.ActionUpdateMortgagee: {
		from:              []model.Stage{model.StageHMLRRequested},
		to:                model.StageMortgageeContacted,
		cost:              costMortgagee,
		stamp:             func(c *model.Case, at time.Time) { c.MortgageeLetter1SentDate = &at },
		requiresMortgagee: true,
		describe: func(p model.ActionPayload) string {
			return fmt.Sprintf("Mortgagee letter sent to %s", p.MortgageeName)
		},
	},
	model.ActionFileCCJ: {
		from:  []model.Stage{model.StageMortgageeContacted},
		to:    model.StageCCJFiled,
		cost:  costCCJ,
		stamp: func(c *model.Case, at time.Time) { c.CCJFiledDate = &at },
		describe: func(model.ActionPayload) string {
			return "CCJ filed at Bulk Claims Centre"
		},
	},
	model.ActionMarkPaid: {
		from:   []model.Stage{model.StageMortgageeContacted, model.StageCCJFiled},
		to:     model.StageCompleted,
		cost:   decimal.Zero,
		closes: true,
		describe: func(model.ActionPayload) string {
			return "Payment received - case closed"
		},
	},
}
