package advice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"max.ks1230/ledger-bot/internal/entity/ledger"
)

type defaults struct{}

func (defaults) ExpenseRatio() decimal.Decimal { return decimal.RequireFromString("0.8") }
func (defaults) MinSavingsRate() decimal.Decimal { return decimal.NewFromInt(20) }
func (defaults) FoodRatio() decimal.Decimal { return decimal.RequireFromString("0.3") }
func (defaults) EntertainmentRatio() decimal.Decimal { return decimal.RequireFromString("0.2") }

func summary(income, expenses int64, cats map[string]int64) ledger.MonthlySummary {
	s := ledger.MonthlySummary{
		Income:     decimal.NewFromInt(income),
		Expenses:   decimal.NewFromInt(expenses),
		Savings:    decimal.NewFromInt(income - expenses),
		Categories: map[string]decimal.Decimal{},
	}
	for k, v := range cats {
		s.Categories[k] = decimal.NewFromInt(v)
	}
	return s
}

func Test_OnHighSpending_ShouldFireRulesInOrder(t *testing.T) {
	s := summary(1000000, 900000, map[string]int64{"food": 400000, "transportation": 500000})

	codes := NewAdvisor(defaults{}).Evaluate(s)

	assert.True(t, s.Savings.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, []Code{HighExpenseRatio, LowSavingsRate, HighFood}, codes)
}

func Test_OnHealthyMonth_ShouldSayDoingWell(t *testing.T) {
	s := summary(1000000, 500000, map[string]int64{"food": 200000, "entertainment": 100000})

	text := NewAdvisor(defaults{}).Advise(s)

	assert.Equal(t, Message(DoingWell), text)
}

func Test_OnEmptyMonth_ShouldOnlySayDoingWell(t *testing.T) {
	assert.Equal(t, []Code{DoingWell}, NewAdvisor(defaults{}).Evaluate(summary(0, 0, nil)))
}

func Test_OnExpensesWithoutIncome_ShouldFlagRatioAndSavings(t *testing.T) {
	codes := NewAdvisor(defaults{}).Evaluate(summary(0, 1000, map[string]int64{"food": 1000}))

	assert.Equal(t, []Code{HighExpenseRatio, LowSavingsRate, HighFood}, codes)
}

func Test_OnEntertainment_ShouldFlagOnlyAboveThreshold(t *testing.T) {
	a := NewAdvisor(defaults{})

	atLimit := a.Evaluate(summary(1000, 200, map[string]int64{"entertainment": 200}))
	above := a.Evaluate(summary(1000, 201, map[string]int64{"entertainment": 201}))

	assert.Equal(t, []Code{DoingWell}, atLimit)
	assert.Equal(t, []Code{HighEntertainment}, above)
}

func Test_Text_ShouldJoinWithNewlines(t *testing.T) {
	text := Text([]Code{HighExpenseRatio, HighFood})
	assert.Equal(t, Message(HighExpenseRatio)+"\n"+Message(HighFood), text)
}
