package storage

import (
	"context"
	"sync"
	"time"

	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/model/savings"
)

type InMemStorage struct {
	mu           sync.Mutex
	transactions map[int64][]ledger.Transaction
	goals        map[int64][]ledger.SavingsGoal
	lastTxID     int64
	lastGoalID   int64
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		transactions: make(map[int64][]ledger.Transaction),
		goals:        make(map[int64][]ledger.SavingsGoal),
	}
}

func (s *InMemStorage) SaveTransaction(_ context.Context, rec ledger.Transaction, alloc ledger.Allocator) (ledger.Transaction, []ledger.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTxID++
	rec.ID = s.lastTxID
	s.transactions[rec.UserID] = append(s.transactions[rec.UserID], rec)

	if rec.Type != ledger.Income || alloc == nil {
		return rec, nil, nil
	}

	goals := s.goals[rec.UserID]
	allocs := alloc.Allocate(cloneGoals(goals), rec.Amount)
	savings.Apply(goals, allocs)
	return rec, allocs, nil
}

func (s *InMemStorage) GetUserTransactions(_ context.Context, userID int64, from, to time.Time) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]ledger.Transaction, 0)
	for _, t := range s.transactions[userID] {
		if !from.IsZero() && t.Date.Before(from) {
			continue
		}
		if !to.IsZero() && t.Date.After(to) {
			continue
		}
		res = append(res, t)
	}
	return res, nil
}

func (s *InMemStorage) GetSavingsGoals(_ context.Context, userID int64) ([]ledger.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneGoals(s.goals[userID]), nil
}

func (s *InMemStorage) SaveSavingsGoal(_ context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastGoalID++
	goal.ID = s.lastGoalID
	s.goals[goal.UserID] = append(s.goals[goal.UserID], goal)
	return goal, nil
}

func (s *InMemStorage) Close() error {
	return nil
}

func cloneGoals(goals []ledger.SavingsGoal) []ledger.SavingsGoal {
	res := make([]ledger.SavingsGoal, len(goals))
	copy(res, goals)
	return res
}
