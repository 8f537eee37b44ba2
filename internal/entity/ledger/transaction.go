package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const DefaultCategory = "other"

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

type Transaction struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Category    string
	Type        TransactionType
	Description string
	Date        time.Time
}

// Allocation is a single credit to a goal produced by the savings allocator.
type Allocation struct {
	GoalID int64
	Amount decimal.Decimal
}

type Allocator interface {
	Allocate(goals []SavingsGoal, income decimal.Decimal) []Allocation
}
