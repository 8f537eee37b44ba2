package advice

import (
	"strings"

	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
)

const (
	foodCategory          = "food"
	entertainmentCategory = "entertainment"
)

type Code string

const (
	HighExpenseRatio  Code = "high_expense_ratio"
	LowSavingsRate    Code = "low_savings_rate"
	HighFood          Code = "high_food"
	HighEntertainment Code = "high_entertainment"
	DoingWell         Code = "doing_well"
)

var messages = map[Code]string{
	HighExpenseRatio:  "⚠️ Your expenses are high relative to your income. Consider reducing non-essential spending.",
	LowSavingsRate:    "💡 Try to save at least 20% of your monthly income for long-term financial security.",
	HighFood:          "🍽️ Your food expenses are high. Consider meal planning or cooking at home more often.",
	HighEntertainment: "🎮 Entertainment expenses are significant. Look for free or low-cost alternatives.",
	DoingWell:         "👍 You're managing your finances well! Keep up the good work!",
}

var hundred = decimal.NewFromInt(100)

type thresholds interface {
	ExpenseRatio() decimal.Decimal
	MinSavingsRate() decimal.Decimal
	FoodRatio() decimal.Decimal
	EntertainmentRatio() decimal.Decimal
}

type Advisor struct {
	expenseRatio       decimal.Decimal
	minSavingsRate     decimal.Decimal
	foodRatio          decimal.Decimal
	entertainmentRatio decimal.Decimal
}

func NewAdvisor(t thresholds) *Advisor {
	return &Advisor{
		expenseRatio:       t.ExpenseRatio(),
		minSavingsRate:     t.MinSavingsRate(),
		foodRatio:          t.FoodRatio(),
		entertainmentRatio: t.EntertainmentRatio(),
	}
}

// Evaluate runs the rules in their fixed order. The result is never empty.
func (a *Advisor) Evaluate(s ledger.MonthlySummary) []Code {
	res := make([]Code, 0, 4)

	if s.Expenses.GreaterThan(s.Income.Mul(a.expenseRatio)) {
		res = append(res, HighExpenseRatio)
	}

	// a month without any activity has nothing to save from
	active := !s.Income.IsZero() || !s.Expenses.IsZero()
	if active && savingsRate(s).LessThan(a.minSavingsRate) {
		res = append(res, LowSavingsRate)
	}

	if food, ok := s.Categories[foodCategory]; ok && food.GreaterThan(s.Income.Mul(a.foodRatio)) {
		res = append(res, HighFood)
	}

	if ent, ok := s.Categories[entertainmentCategory]; ok && ent.GreaterThan(s.Income.Mul(a.entertainmentRatio)) {
		res = append(res, HighEntertainment)
	}

	if len(res) == 0 {
		res = append(res, DoingWell)
	}
	return res
}

func (a *Advisor) Advise(s ledger.MonthlySummary) string {
	return Text(a.Evaluate(s))
}

func savingsRate(s ledger.MonthlySummary) decimal.Decimal {
	if !s.Income.IsPositive() {
		return decimal.Zero
	}
	return s.Savings.Div(s.Income).Mul(hundred)
}

func Message(c Code) string {
	return messages[c]
}

func Text(codes []Code) string {
	lines := make([]string, 0, len(codes))
	for _, c := range codes {
		lines = append(lines, Message(c))
	}
	return strings.Join(lines, "\n")
}
