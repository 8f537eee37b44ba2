package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gojuno/minimock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/model/advice"
	"max.ks1230/ledger-bot/internal/model/commands"
	"max.ks1230/ledger-bot/internal/model/finances"
	"max.ks1230/ledger-bot/internal/model/messages/mock"
	"max.ks1230/ledger-bot/internal/model/reports"
	"max.ks1230/ledger-bot/internal/model/savings"
	"max.ks1230/ledger-bot/internal/model/storage"
)

type testConfig struct{}

func (testConfig) Location() *time.Location { return time.UTC }
func (testConfig) SavingsRate() decimal.Decimal { return decimal.RequireFromString("0.2") }
func (testConfig) ExpenseRatio() decimal.Decimal { return decimal.RequireFromString("0.8") }
func (testConfig) MinSavingsRate() decimal.Decimal { return decimal.NewFromInt(20) }
func (testConfig) FoodRatio() decimal.Decimal { return decimal.RequireFromString("0.3") }
func (testConfig) EntertainmentRatio() decimal.Decimal { return decimal.RequireFromString("0.2") }

type requesterMock struct {
	testifymock.Mock
}

func (m *requesterMock) RequestReport(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type guardMock struct {
	testifymock.Mock
}

func (m *guardMock) FirstSeen(updateID int) (bool, error) {
	args := m.Called(updateID)
	return args.Bool(0), args.Error(1)
}

func newHandler(t *testing.T, requester reportRequester) (*HandlerService, *finances.Service) {
	vocab, err := commands.DefaultVocabulary()
	require.NoError(t, err)

	cfg := testConfig{}
	svc := finances.NewService(storage.NewInMemStorage(), savings.NewAllocator(cfg), advice.NewAdvisor(cfg), cfg)
	return NewHandler(commands.NewParser(vocab, time.UTC), svc, reports.NewGenerator(svc), requester), svc
}

func Test_OnStartCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	ctx := context.Background()
	handler, _ := newHandler(t, nil)
	mc := minimock.NewController(t)
	defer mc.Finish()
	sender := mock.NewMessageSenderMock(mc)
	sender.SendMessageMock.Expect(helpMessage, int64(123)).Return(nil)

	model := NewService(sender, handler, nil)
	err := model.HandleIncomingMessage(ctx, Message{Text: "/start", UserID: 123})

	assert.NoError(t, err)
}

func Test_OnUnknownCommand_ShouldAnswerWithInvalidFormatMessage(t *testing.T) {
	ctx := context.Background()
	handler, _ := newHandler(t, nil)
	mc := minimock.NewController(t)
	defer mc.Finish()
	sender := mock.NewMessageSenderMock(mc)
	sender.SendMessageMock.Expect(invalidFormatMessage, int64(123)).Return(nil)

	model := NewService(sender, handler, nil)
	err := model.HandleIncomingMessage(ctx, Message{Text: "some text", UserID: 123})

	assert.NoError(t, err)
}

func Test_OnExpense_ShouldRecordAndConfirm(t *testing.T) {
	ctx := context.Background()
	handler, svc := newHandler(t, nil)

	resp, err := handler.HandleMessage(ctx, "bayar 50.000 makan siang", 1)
	require.NoError(t, err)
	assert.Equal(t, "✅ Pengeluaran tercatat:\nJumlah: Rp 50.000\nKategori: food\nKeterangan: siang", resp)

	balance, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "-50000", balance.String())
}

func Test_OnIncome_ShouldAllocateToGoals(t *testing.T) {
	ctx := context.Background()
	handler, svc := newHandler(t, nil)

	resp, err := handler.HandleMessage(ctx, "target 5000000 liburan bali 31.12.2025", 1)
	require.NoError(t, err)
	assert.Equal(t, "🎯 Target tabungan dibuat:\nNama: liburan bali\nTarget: Rp 5.000.000\nTenggat: 31.12.2025", resp)

	resp, err = handler.HandleMessage(ctx, "gajian 1000000 gaji", 1)
	require.NoError(t, err)
	assert.Equal(t, "✅ Pemasukan tercatat:\nJumlah: Rp 1.000.000\nKategori: salary", resp)

	goals, err := svc.SavingsGoals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "200000", goals[0].CurrentAmount.String())

	resp, err = handler.HandleMessage(ctx, "target", 1)
	require.NoError(t, err)
	assert.Equal(t, "🎯 Target Tabungan:\n- liburan bali: Rp 200.000 / Rp 5.000.000 (4%), tenggat 31.12.2025", resp)
}

func Test_OnBalanceWithoutData_ShouldAnswerZero(t *testing.T) {
	handler, _ := newHandler(t, nil)

	resp, err := handler.HandleMessage(context.Background(), "saldo", 7)
	require.NoError(t, err)
	assert.Equal(t, "💰 Saldo Anda: Rp 0", resp)
}

func Test_OnGoalListWithoutGoals_ShouldExplainHowToCreate(t *testing.T) {
	handler, _ := newHandler(t, nil)

	resp, err := handler.HandleMessage(context.Background(), "target", 7)
	require.NoError(t, err)
	assert.Equal(t, noGoalsMessage, resp)
}

func Test_OnAdviceWithoutData_ShouldBePositive(t *testing.T) {
	handler, _ := newHandler(t, nil)

	resp, err := handler.HandleMessage(context.Background(), "saran", 7)
	require.NoError(t, err)
	assert.Equal(t, "💡 Saran Keuangan:\n"+advice.Message(advice.DoingWell), resp)
}

func Test_OnReportWithoutRequester_ShouldRenderInline(t *testing.T) {
	handler, _ := newHandler(t, nil)

	resp, err := handler.HandleMessage(context.Background(), "laporan", 7)
	require.NoError(t, err)
	assert.Contains(t, resp, "Laporan Keuangan")
	assert.Contains(t, resp, advice.Message(advice.DoingWell))
}

func Test_OnReportWithRequester_ShouldQueue(t *testing.T) {
	ctx := context.Background()
	requester := &requesterMock{}
	requester.On("RequestReport", ctx, int64(7)).Return(nil)
	handler, _ := newHandler(t, requester)

	resp, err := handler.HandleMessage(ctx, "rekap", 7)
	require.NoError(t, err)
	assert.Equal(t, reportQueuedMessage, resp)
	requester.AssertExpectations(t)
}

func Test_OnQueueFailure_ShouldFallBackToInlineReport(t *testing.T) {
	ctx := context.Background()
	requester := &requesterMock{}
	requester.On("RequestReport", ctx, int64(7)).Return(errors.New("kafka down"))
	handler, _ := newHandler(t, requester)

	resp, err := handler.HandleMessage(ctx, "laporan", 7)
	require.NoError(t, err)
	assert.Contains(t, resp, "Laporan Keuangan")
}

type failingLedger struct {
	ledgerService
}

func (failingLedger) Balance(context.Context, int64) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("db down")
}

func (failingLedger) AddTransaction(context.Context, int64, decimal.Decimal, string, ledger.TransactionType, string) (ledger.Transaction, error) {
	return ledger.Transaction{}, errors.New("db down")
}

func Test_OnStorageFailure_ShouldSendFailureMessageAndReturnError(t *testing.T) {
	ctx := context.Background()
	vocab, err := commands.DefaultVocabulary()
	require.NoError(t, err)
	handler := NewHandler(commands.NewParser(vocab, time.UTC), failingLedger{}, nil, nil)

	mc := minimock.NewController(t)
	defer mc.Finish()
	sender := mock.NewMessageSenderMock(mc)
	sender.SendMessageMock.Expect(failureMessage, int64(3)).Return(nil)

	model := NewService(sender, handler, nil)
	err = model.HandleIncomingMessage(ctx, Message{Text: "saldo", UserID: 3})

	assert.Error(t, err)
}

func Test_OnDuplicateUpdate_ShouldSkipHandling(t *testing.T) {
	ctx := context.Background()
	handler, _ := newHandler(t, nil)
	mc := minimock.NewController(t)
	defer mc.Finish()
	sender := mock.NewMessageSenderMock(mc)
	guard := &guardMock{}
	guard.On("FirstSeen", 42).Return(false, nil).Once()

	model := NewService(sender, handler, guard)
	err := model.HandleIncomingMessage(ctx, Message{UpdateID: 42, Text: "saldo", UserID: 1})

	assert.NoError(t, err)
	assert.Zero(t, sender.SendMessageAfterCounter())
	guard.AssertExpectations(t)
}

func Test_OnGuardFailure_ShouldStillHandle(t *testing.T) {
	ctx := context.Background()
	handler, _ := newHandler(t, nil)
	mc := minimock.NewController(t)
	defer mc.Finish()
	sender := mock.NewMessageSenderMock(mc)
	sender.SendMessageMock.Expect("💰 Saldo Anda: Rp 0", int64(1)).Return(nil)
	guard := &guardMock{}
	guard.On("FirstSeen", 43).Return(false, errors.New("memcache down"))

	model := NewService(sender, handler, guard)
	err := model.HandleIncomingMessage(ctx, Message{UpdateID: 43, Text: "saldo", UserID: 1})

	assert.NoError(t, err)
}
