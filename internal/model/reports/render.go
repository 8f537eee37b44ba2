package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/utils"
)

const deadlineLayout = "02.01.2006"

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// GoalLines renders one line per goal: name, saved/target, progress and the optional deadline.
func GoalLines(goals []ledger.SavingsGoal) []string {
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		line := fmt.Sprintf("- %s: %s / %s (%s)",
			g.Name,
			utils.FormatRupiah(g.CurrentAmount),
			utils.FormatRupiah(g.TargetAmount),
			utils.FormatPercent(g.Progress()),
		)
		if g.Deadline != nil {
			line += ", tenggat " + g.Deadline.Format(deadlineLayout)
		}
		lines = append(lines, line)
	}
	return lines
}

type categoryTotal struct {
	name   string
	amount decimal.Decimal
}

// sortedCategories orders the breakdown by amount, largest first, then by name.
func sortedCategories(categories map[string]decimal.Decimal) []categoryTotal {
	res := make([]categoryTotal, 0, len(categories))
	for name, amount := range categories {
		res = append(res, categoryTotal{name: name, amount: amount})
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].amount.Equal(res[j].amount) {
			return res[i].amount.GreaterThan(res[j].amount)
		}
		return res[i].name < res[j].name
	})
	return res
}

func periodTitle(p ledger.Period) string {
	if p.Month < 1 || int(p.Month) > len(monthNames) {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// Render formats a report as chat text.
func Render(r ledger.Report) string {
	var b strings.Builder
	s := r.Summary

	fmt.Fprintf(&b, "📊 Laporan Keuangan %s\n\n", periodTitle(s.Period))
	fmt.Fprintf(&b, "💰 Saldo: %s\n", utils.FormatRupiah(r.Balance))
	fmt.Fprintf(&b, "Pemasukan: %s\n", utils.FormatRupiah(s.Income))
	fmt.Fprintf(&b, "Pengeluaran: %s\n", utils.FormatRupiah(s.Expenses))
	fmt.Fprintf(&b, "Tabungan: %s\n", utils.FormatRupiah(s.Savings))

	if len(s.Categories) > 0 {
		b.WriteString("\nPengeluaran per kategori:\n")
		for _, c := range sortedCategories(s.Categories) {
			share := decimal.Zero
			if s.Expenses.IsPositive() {
				share = c.amount.Div(s.Expenses).Mul(decimal.NewFromInt(100))
			}
			fmt.Fprintf(&b, "- %s: %s (%s)\n", c.name, utils.FormatRupiah(c.amount), utils.FormatPercent(share))
		}
	}

	if len(r.Goals) > 0 {
		b.WriteString("\n🎯 Target Tabungan:\n")
		b.WriteString(strings.Join(GoalLines(r.Goals), "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\n💡 Saran:\n")
	b.WriteString(r.Advice)
	return b.String()
}
