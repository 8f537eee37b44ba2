package messages

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/commands"
	"max.ks1230/ledger-bot/internal/model/customerr"
)

type commandParser interface {
	Parse(text string) (commands.Command, error)
}

type ledgerService interface {
	AddTransaction(ctx context.Context, userID int64, amount decimal.Decimal, category string,
		typ ledger.TransactionType, description string) (ledger.Transaction, error)
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	SavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error)
	AddSavingsGoal(ctx context.Context, userID int64, name string, target decimal.Decimal,
		deadline *time.Time) (ledger.SavingsGoal, error)
	Advice(ctx context.Context, userID int64) (string, error)
}

type reportGenerator interface {
	GenerateReport(ctx context.Context, userID int64) (string, error)
}

type reportRequester interface {
	RequestReport(ctx context.Context, userID int64) error
}

type handler func(ctx context.Context, cmd commands.Command, userID int64) (string, error)

type handlerMap map[commands.Name]handler

type HandlerService struct {
	handlersMap handlerMap
	parser      commandParser
	ledger      ledgerService
	generator   reportGenerator
	requester   reportRequester
}

// NewHandler builds the chat command handlers. requester may be nil, in which case reports
// are generated inline instead of being queued.
func NewHandler(parser commandParser, ledger ledgerService, generator reportGenerator, requester reportRequester) *HandlerService {
	res := &HandlerService{
		parser:    parser,
		ledger:    ledger,
		generator: generator,
		requester: requester,
	}
	res.handlersMap = newMap(res)
	return res
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[commands.Expense] = s.handleTransaction
	m[commands.Income] = s.handleTransaction
	m[commands.Balance] = s.handleBalance
	m[commands.Report] = s.handleReport
	m[commands.Help] = s.handleHelp
	m[commands.Goal] = s.handleGoal
	m[commands.Advice] = s.handleAdvice
	return m
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, err := s.parser.Parse(text)
	if err != nil {
		logger.Debug("cannot parse command", zap.Int64("userID", userID), zap.Error(err))
		return invalidFormatMessage, nil
	}

	handler, ok := s.handlersMap[cmd.Name]
	if !ok {
		return invalidFormatMessage, nil
	}
	return handler(ctx, cmd, userID)
}

func (s *HandlerService) handleHelp(_ context.Context, _ commands.Command, _ int64) (string, error) {
	return helpMessage, nil
}

func (s *HandlerService) handleTransaction(ctx context.Context, cmd commands.Command, userID int64) (string, error) {
	typ := ledger.Expense
	if cmd.Name == commands.Income {
		typ = ledger.Income
	}

	rec, err := s.ledger.AddTransaction(ctx, userID, cmd.Amount, cmd.Category, typ, cmd.Description)
	if err != nil {
		return failure(err, "handle transaction")
	}
	return transactionMessage(rec), nil
}

func (s *HandlerService) handleBalance(ctx context.Context, _ commands.Command, userID int64) (string, error) {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return failure(err, "handle balance")
	}
	return balanceMessage(balance), nil
}

func (s *HandlerService) handleGoal(ctx context.Context, cmd commands.Command, userID int64) (string, error) {
	if !cmd.HasAmount() {
		goals, err := s.ledger.SavingsGoals(ctx, userID)
		if err != nil {
			return failure(err, "handle goal list")
		}
		return goalsMessage(goals), nil
	}

	goal, err := s.ledger.AddSavingsGoal(ctx, userID, cmd.Description, cmd.Amount, cmd.Deadline)
	if err != nil {
		return failure(err, "handle goal")
	}
	return goalCreatedMessage(goal), nil
}

func (s *HandlerService) handleAdvice(ctx context.Context, _ commands.Command, userID int64) (string, error) {
	text, err := s.ledger.Advice(ctx, userID)
	if err != nil {
		return failure(err, "handle advice")
	}
	return "💡 Saran Keuangan:\n" + text, nil
}

func (s *HandlerService) handleReport(ctx context.Context, _ commands.Command, userID int64) (string, error) {
	if s.requester != nil {
		err := s.requester.RequestReport(ctx, userID)
		if err == nil {
			return reportQueuedMessage, nil
		}
		logger.Error("cannot queue report, generating inline", zap.Int64("userID", userID), zap.Error(err))
	}

	report, err := s.generator.GenerateReport(ctx, userID)
	if err != nil {
		return failure(err, "handle report")
	}
	return report, nil
}

// failure turns a ledger error into a reply. Bad input is answered without an error;
// anything else is reported upward so it gets logged and counted.
func failure(err error, op string) (string, error) {
	var verr *customerr.ValidationError
	if errors.As(err, &verr) {
		return invalidFormatMessage, nil
	}
	return failureMessage, errors.Wrap(err, op)
}
