package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type SavingsGoal struct {
	ID            int64
	UserID        int64
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

// Progress is the filled share of the goal in percent, 0 for non-positive targets.
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
}

func (g SavingsGoal) Open() bool {
	return g.CurrentAmount.LessThan(g.TargetAmount)
}

func (g SavingsGoal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
