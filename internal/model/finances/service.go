package finances

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/customerr"
	"max.ks1230/ledger-bot/internal/model/savings"
)

type ledgerStorage interface {
	SaveTransaction(ctx context.Context, rec ledger.Transaction, alloc ledger.Allocator) (ledger.Transaction, []ledger.Allocation, error)
	GetUserTransactions(ctx context.Context, userID int64, from, to time.Time) ([]ledger.Transaction, error)
	GetSavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error)
	SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error)
}

type advisor interface {
	Advise(s ledger.MonthlySummary) string
}

type config interface {
	Location() *time.Location
}

type Option func(s *Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// Service is the bookkeeping API used by every front end. Validation failures come back as
// *customerr.ValidationError and persistence failures as *customerr.StorageError.
type Service struct {
	storage   ledgerStorage
	allocator ledger.Allocator
	advisor   advisor
	location  *time.Location
	clock     func() time.Time
}

func NewService(storage ledgerStorage, allocator ledger.Allocator, advisor advisor, config config, opts ...Option) *Service {
	s := &Service{
		storage:   storage,
		allocator: allocator,
		advisor:   advisor,
		location:  config.Location(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.location)
}

func (s *Service) AddTransaction(ctx context.Context, userID int64, amount decimal.Decimal,
	category string, typ ledger.TransactionType, description string) (ledger.Transaction, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addTransaction")
	defer span.Finish()

	if !amount.IsPositive() {
		return ledger.Transaction{}, &customerr.ValidationError{Field: "amount", Err: "must be positive"}
	}
	if !typ.Valid() {
		return ledger.Transaction{}, &customerr.ValidationError{Field: "type", Err: "must be income or expense"}
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = ledger.DefaultCategory
	}

	rec := ledger.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Type:        typ,
		Description: strings.TrimSpace(description),
		Date:        s.now(),
	}

	saved, allocs, err := s.storage.SaveTransaction(ctx, rec, s.allocator)
	if err != nil {
		ext.Error.Set(span, true)
		return ledger.Transaction{}, storageFailure("add transaction", userID, err)
	}

	observeTransaction(saved, allocs)
	if len(allocs) > 0 {
		logger.Info("income allocated to savings goals",
			zap.Int64("userID", userID),
			zap.Int("goals", len(allocs)),
			zap.String("amount", savings.Total(allocs).String()))
	}
	return saved, nil
}

// Balance is all income minus all expenses ever recorded for the user.
func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "balance")
	defer span.Finish()

	txs, err := s.storage.GetUserTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		ext.Error.Set(span, true)
		return decimal.Zero, storageFailure("get balance", userID, err)
	}

	balance := decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case ledger.Income:
			balance = balance.Add(t.Amount)
		case ledger.Expense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

// MonthlySummary sums the period's transactions. A zero year or month is taken from the current date.
func (s *Service) MonthlySummary(ctx context.Context, userID int64, period ledger.Period) (ledger.MonthlySummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "monthlySummary")
	defer span.Finish()

	current := ledger.PeriodOf(s.now())
	if period.Year == 0 {
		period.Year = current.Year
	}
	if period.Month == 0 {
		period.Month = current.Month
	}
	if period.Month < time.January || period.Month > time.December {
		return ledger.MonthlySummary{}, &customerr.ValidationError{Field: "month", Err: "must be between 1 and 12"}
	}
	if period.Year <= 0 {
		return ledger.MonthlySummary{}, &customerr.ValidationError{Field: "year", Err: "must be positive"}
	}

	month := now.New(time.Date(period.Year, period.Month, 1, 0, 0, 0, 0, s.location))
	txs, err := s.storage.GetUserTransactions(ctx, userID, month.BeginningOfMonth(), month.EndOfMonth())
	if err != nil {
		ext.Error.Set(span, true)
		return ledger.MonthlySummary{}, storageFailure("get monthly summary", userID, err)
	}
	return summarize(period, txs), nil
}

func summarize(period ledger.Period, txs []ledger.Transaction) ledger.MonthlySummary {
	res := ledger.MonthlySummary{
		Period:     period,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Categories: make(map[string]decimal.Decimal),
	}
	for _, t := range txs {
		switch t.Type {
		case ledger.Income:
			res.Income = res.Income.Add(t.Amount)
		case ledger.Expense:
			res.Expenses = res.Expenses.Add(t.Amount)
			res.Categories[t.Category] = res.Categories[t.Category].Add(t.Amount)
		}
	}
	for cat, amount := range res.Categories {
		if amount.IsZero() {
			delete(res.Categories, cat)
		}
	}
	res.Savings = res.Income.Sub(res.Expenses)
	return res
}

func (s *Service) SavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "savingsGoals")
	defer span.Finish()

	goals, err := s.storage.GetSavingsGoals(ctx, userID)
	if err != nil {
		ext.Error.Set(span, true)
		return nil, storageFailure("get savings goals", userID, err)
	}
	return goals, nil
}

func (s *Service) AddSavingsGoal(ctx context.Context, userID int64, name string,
	target decimal.Decimal, deadline *time.Time) (ledger.SavingsGoal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addSavingsGoal")
	defer span.Finish()

	name = strings.TrimSpace(name)
	if name == "" {
		return ledger.SavingsGoal{}, &customerr.ValidationError{Field: "name", Err: "must not be empty"}
	}
	if !target.IsPositive() {
		return ledger.SavingsGoal{}, &customerr.ValidationError{Field: "target", Err: "must be positive"}
	}

	goal := ledger.SavingsGoal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
	}
	if deadline != nil {
		d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
		goal.Deadline = &d
	}

	saved, err := s.storage.SaveSavingsGoal(ctx, goal)
	if err != nil {
		ext.Error.Set(span, true)
		return ledger.SavingsGoal{}, storageFailure("add savings goal", userID, err)
	}
	return saved, nil
}

// Advice evaluates the advice rules against the current month.
func (s *Service) Advice(ctx context.Context, userID int64) (string, error) {
	summary, err := s.MonthlySummary(ctx, userID, ledger.Period{})
	if err != nil {
		return "", err
	}
	return s.advisor.Advise(summary), nil
}

func (s *Service) Report(ctx context.Context, userID int64) (ledger.Report, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "report")
	defer span.Finish()

	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return ledger.Report{}, err
	}
	summary, err := s.MonthlySummary(ctx, userID, ledger.Period{})
	if err != nil {
		return ledger.Report{}, err
	}
	goals, err := s.SavingsGoals(ctx, userID)
	if err != nil {
		return ledger.Report{}, err
	}

	return ledger.Report{
		Balance: balance,
		Summary: summary,
		Goals:   goals,
		Advice:  s.advisor.Advise(summary),
	}, nil
}

func storageFailure(op string, userID int64, err error) error {
	logger.Error("ledger storage failure", zap.String("op", op), zap.Int64("userID", userID), zap.Error(err))
	return &customerr.StorageError{Op: op, Err: err}
}
