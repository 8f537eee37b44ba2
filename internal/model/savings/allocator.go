package savings

import (
	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
)

// sharePrecision bounds the per-goal share; truncation keeps the sum of shares within the pool.
const sharePrecision = 16

type config interface {
	SavingsRate() decimal.Decimal
}

type Allocator struct {
	rate decimal.Decimal
}

func NewAllocator(config config) *Allocator {
	return &Allocator{rate: config.SavingsRate()}
}

func (a *Allocator) Rate() decimal.Decimal {
	return a.rate
}

// Allocate splits rate*income evenly across the open goals. A goal never receives more than it
// still needs, and whatever a capped goal leaves over is not handed to the others.
func (a *Allocator) Allocate(goals []ledger.SavingsGoal, income decimal.Decimal) []ledger.Allocation {
	open := openGoals(goals)
	if len(open) == 0 || !income.IsPositive() || !a.rate.IsPositive() {
		return nil
	}

	pool := income.Mul(a.rate)
	share, _ := pool.QuoRem(decimal.NewFromInt(int64(len(open))), sharePrecision)

	res := make([]ledger.Allocation, 0, len(open))
	for _, g := range open {
		toAdd := decimal.Min(share, g.Remaining())
		if !toAdd.IsPositive() {
			continue
		}
		res = append(res, ledger.Allocation{GoalID: g.ID, Amount: toAdd})
	}
	return res
}

func openGoals(goals []ledger.SavingsGoal) []ledger.SavingsGoal {
	res := make([]ledger.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.Open() {
			res = append(res, g)
		}
	}
	return res
}

// Apply adds the credits to the matching goals in place.
func Apply(goals []ledger.SavingsGoal, allocations []ledger.Allocation) {
	byID := make(map[int64]decimal.Decimal, len(allocations))
	for _, a := range allocations {
		byID[a.GoalID] = byID[a.GoalID].Add(a.Amount)
	}
	for i := range goals {
		if add, ok := byID[goals[i].ID]; ok {
			goals[i].CurrentAmount = goals[i].CurrentAmount.Add(add)
		}
	}
}

func Total(allocations []ledger.Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Amount)
	}
	return total
}
