package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

type MonthlySummary struct {
	Period     Period
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Savings    decimal.Decimal
	Categories map[string]decimal.Decimal
}

type Report struct {
	Balance decimal.Decimal
	Summary MonthlySummary
	Goals   []SavingsGoal
	Advice  string
}
