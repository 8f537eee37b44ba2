package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/savings"

	// postgres driver
	_ "github.com/lib/pq"
	// sqlite driver
	_ "modernc.org/sqlite"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"

	// sqlite writes time.Time as "2006-01-02 15:04:05.999999999-07:00", which sorts lexically in UTC
	sqliteOptions = "?_time_format=sqlite"
)

var (
	transactionColumns = []string{"id", "user_id", "amount", "category", "transaction_type", "description", "date"}
	goalColumns        = []string{"id", "user_id", "name", "target_amount", "current_amount", "deadline"}
)

type pgConfig interface {
	DSN() string
}

// SQLStorage keeps the ledger in postgres or sqlite; both share the same queries.
type SQLStorage struct {
	db      *sql.DB
	psql    sq.StatementBuilderType
	dialect string
}

func NewPostgresStorage(config pgConfig) (*SQLStorage, error) {
	dsn := config.DSN()
	db, err := sql.Open(dialectPostgres, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = RunMigrations(dialectPostgres, dsn); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStorage{
		db:      db,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dialect: dialectPostgres,
	}, nil
}

func NewSQLiteStorage(path string) (*SQLStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	dsn := path + sqliteOptions
	db, err := sql.Open(dialectSQLite, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open sqlite database")
	}
	// a single writer avoids SQLITE_BUSY inside transactions
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "cannot open sqlite database")
	}
	if err = RunMigrations(dialectSQLite, dsn); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStorage{
		db:      db,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		dialect: dialectSQLite,
	}, nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// SaveTransaction inserts the transaction and, for income, credits the user's goals with what
// the allocator hands out. Both happen in one database transaction.
func (s *SQLStorage) SaveTransaction(ctx context.Context, rec ledger.Transaction, alloc ledger.Allocator) (ledger.Transaction, []ledger.Allocation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Transaction{}, nil, errors.Wrap(err, "save transaction")
	}
	defer rollback(tx)

	query := s.psql.Insert("transactions").
		Columns(transactionColumns[1:]...).
		Values(rec.UserID, rec.Amount, rec.Category, string(rec.Type), nullString(rec.Description), rec.Date.UTC()).
		Suffix("RETURNING id")

	err = query.RunWith(tx).QueryRowContext(ctx).Scan(&rec.ID)
	if err != nil {
		return ledger.Transaction{}, nil, errors.Wrap(err, "save transaction")
	}

	var allocs []ledger.Allocation
	if rec.Type == ledger.Income && alloc != nil {
		allocs, err = s.allocate(ctx, tx, rec, alloc)
		if err != nil {
			return ledger.Transaction{}, nil, errors.Wrap(err, "save transaction")
		}
	}

	if err = tx.Commit(); err != nil {
		return ledger.Transaction{}, nil, errors.Wrap(err, "save transaction")
	}
	return rec, allocs, nil
}

func (s *SQLStorage) allocate(ctx context.Context, tx *sql.Tx, rec ledger.Transaction, alloc ledger.Allocator) ([]ledger.Allocation, error) {
	query := s.goalsQuery(rec.UserID)
	if s.dialect == dialectPostgres {
		query = query.Suffix("FOR UPDATE")
	}
	goals, err := scanGoals(ctx, query.RunWith(tx))
	if err != nil {
		return nil, errors.Wrap(err, "allocate savings")
	}

	allocs := alloc.Allocate(goals, rec.Amount)
	if len(allocs) == 0 {
		return nil, nil
	}
	credited := make(map[int64]bool, len(allocs))
	for _, a := range allocs {
		credited[a.GoalID] = true
	}

	savings.Apply(goals, allocs)
	for _, g := range goals {
		if !credited[g.ID] {
			continue
		}
		update := s.psql.Update("savings_goals").
			Set("current_amount", g.CurrentAmount).
			Where(sq.Eq{"id": g.ID})
		if _, err = update.RunWith(tx).ExecContext(ctx); err != nil {
			return nil, errors.Wrap(err, "allocate savings")
		}
	}
	return allocs, nil
}

// GetUserTransactions returns the user's transactions dated within [from, to]. A zero bound is open.
func (s *SQLStorage) GetUserTransactions(ctx context.Context, userID int64, from, to time.Time) ([]ledger.Transaction, error) {
	query := s.psql.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")
	if !from.IsZero() {
		query = query.Where(sq.GtOrEq{"date": from.UTC()})
	}
	if !to.IsZero() {
		query = query.Where(sq.LtOrEq{"date": to.UTC()})
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get transactions")
	}
	defer closeRows(rows)

	res := make([]ledger.Transaction, 0)
	for rows.Next() {
		var (
			t     ledger.Transaction
			typ   string
			descr sql.NullString
		)
		err = rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &typ, &descr, &t.Date)
		if err != nil {
			return nil, errors.Wrap(err, "get transactions")
		}
		t.Type = ledger.TransactionType(typ)
		t.Description = descr.String
		res = append(res, t)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get transactions")
	}
	return res, nil
}

func (s *SQLStorage) GetSavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error) {
	goals, err := scanGoals(ctx, s.goalsQuery(userID).RunWith(s.db))
	return goals, errors.Wrap(err, "get savings goals")
}

func (s *SQLStorage) SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error) {
	var deadline sql.NullTime
	if goal.Deadline != nil {
		deadline = sql.NullTime{Time: *goal.Deadline, Valid: true}
	}

	query := s.psql.Insert("savings_goals").
		Columns(goalColumns[1:]...).
		Values(goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, deadline).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&goal.ID)
	if err != nil {
		return ledger.SavingsGoal{}, errors.Wrap(err, "save savings goal")
	}
	return goal, nil
}

func (s *SQLStorage) goalsQuery(userID int64) sq.SelectBuilder {
	return s.psql.Select(goalColumns...).
		From("savings_goals").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")
}

func scanGoals(ctx context.Context, query sq.SelectBuilder) ([]ledger.SavingsGoal, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	res := make([]ledger.SavingsGoal, 0)
	for rows.Next() {
		var (
			g        ledger.SavingsGoal
			deadline sql.NullTime
		)
		err = rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline)
		if err != nil {
			return nil, err
		}
		if deadline.Valid {
			d := deadline.Time
			g.Deadline = &d
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error("error when transaction rollback", zap.Error(err))
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Error("error closing rows", zap.Error(err))
	}
}
