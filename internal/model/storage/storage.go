package storage

import (
	"context"
	"fmt"
	"time"

	"max.ks1230/ledger-bot/internal/entity/ledger"
)

type Storage interface {
	SaveTransaction(ctx context.Context, rec ledger.Transaction, alloc ledger.Allocator) (ledger.Transaction, []ledger.Allocation, error)
	GetUserTransactions(ctx context.Context, userID int64, from, to time.Time) ([]ledger.Transaction, error)
	GetSavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error)
	SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error)
	Close() error
}

type storageConfig interface {
	DriverName() string
	Path() string
}

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
	driverMemory   = "memory"
)

// New opens the storage selected by the configured driver.
func New(config storageConfig, pg pgConfig) (Storage, error) {
	switch config.DriverName() {
	case driverPostgres:
		return NewPostgresStorage(pg)
	case driverSQLite:
		return NewSQLiteStorage(config.Path())
	case driverMemory:
		return NewInMemStorage(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %s", config.DriverName())
}
