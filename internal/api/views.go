package api

import (
	"time"

	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
)

type transactionView struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

func newTransactionView(t ledger.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Amount:      t.Amount,
		Category:    t.Category,
		Type:        string(t.Type),
		Description: t.Description,
		Date:        t.Date,
	}
}

type summaryView struct {
	Year       int                        `json:"year"`
	Month      int                        `json:"month"`
	Income     decimal.Decimal            `json:"income"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Savings    decimal.Decimal            `json:"savings"`
	Categories map[string]decimal.Decimal `json:"categories"`
}

func newSummaryView(s ledger.MonthlySummary) summaryView {
	categories := s.Categories
	if categories == nil {
		categories = map[string]decimal.Decimal{}
	}
	return summaryView{
		Year:       s.Period.Year,
		Month:      int(s.Period.Month),
		Income:     s.Income,
		Expenses:   s.Expenses,
		Savings:    s.Savings,
		Categories: categories,
	}
}

type goalView struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      decimal.Decimal `json:"progress"`
	Deadline      string          `json:"deadline,omitempty"`
}

func newGoalView(g ledger.SavingsGoal) goalView {
	v := goalView{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      g.Progress(),
	}
	if g.Deadline != nil {
		v.Deadline = g.Deadline.Format(dateLayout)
	}
	return v
}

func newGoalViews(goals []ledger.SavingsGoal) []goalView {
	res := make([]goalView, 0, len(goals))
	for _, g := range goals {
		res = append(res, newGoalView(g))
	}
	return res
}
