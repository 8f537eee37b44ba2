package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) GenerateReport(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendReport(ctx context.Context, userID int64, text string) error {
	return m.Called(ctx, userID, text).Error(0)
}

func Test_OnRequestReport_ShouldProduceDecodableMessage(t *testing.T) {
	syncProducer := mocks.NewSyncProducer(t, nil)
	syncProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		userID, err := decodeRequest(val)
		if err != nil {
			return err
		}
		if userID != 42 {
			return errors.New("unexpected user id")
		}
		return nil
	})

	producer := newProducer(syncProducer, "reports")
	require.NoError(t, producer.RequestReport(context.Background(), 42))
	producer.Close()
}

func Test_OnProducerFailure_ShouldReturnError(t *testing.T) {
	syncProducer := mocks.NewSyncProducer(t, nil)
	syncProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := newProducer(syncProducer, "reports")
	assert.Error(t, producer.RequestReport(context.Background(), 42))
	producer.Close()
}

func Test_OnReportRequest_ShouldGenerateAndSend(t *testing.T) {
	ctx := context.Background()
	payload, err := encodeRequest(7)
	require.NoError(t, err)

	generator := &generatorMock{}
	generator.On("GenerateReport", ctx, int64(7)).Return("report", nil)
	sender := &senderMock{}
	sender.On("SendReport", ctx, int64(7), "report").Return(nil)

	c := &Consumer{generator: generator, sender: sender}
	c.handleMessage(ctx, &sarama.ConsumerMessage{Value: payload})

	generator.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func Test_OnGeneratorFailure_ShouldNotSend(t *testing.T) {
	ctx := context.Background()
	payload, err := encodeRequest(7)
	require.NoError(t, err)

	generator := &generatorMock{}
	generator.On("GenerateReport", ctx, int64(7)).Return("", errors.New("db down"))
	sender := &senderMock{}

	c := &Consumer{generator: generator, sender: sender}
	c.handleMessage(ctx, &sarama.ConsumerMessage{Value: payload})

	sender.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything, mock.Anything)
}

func Test_OnMalformedMessage_ShouldSkip(t *testing.T) {
	generator := &generatorMock{}
	c := &Consumer{generator: generator, sender: &senderMock{}}
	c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("not a proto")})

	generator.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything)
}
