package reports

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendMessage(text string, userID int64) error {
	return m.Called(text, userID).Error(0)
}

func startAcceptor(t *testing.T, sender messageSender) *Sender {
	lis := bufconn.Listen(1 << 20)
	server := newServer(lis, sender)
	go func() {
		_ = server.Serve()
	}()
	t.Cleanup(server.Shutdown)

	client, err := NewSender("bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func Test_OnSendReport_ShouldForwardToChat(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", "report text", int64(9007199254740993)).Return(nil)

	client := startAcceptor(t, sender)
	err := client.SendReport(context.Background(), 9007199254740993, "report text")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnChatFailure_ShouldReturnUnavailable(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", "report text", int64(5)).Return(errors.New("telegram down"))

	client := startAcceptor(t, sender)
	err := client.SendReport(context.Background(), 5, "report text")
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func Test_OnEmptyReport_ShouldRejectWithoutSending(t *testing.T) {
	sender := &senderMock{}

	client := startAcceptor(t, sender)
	err := client.SendReport(context.Background(), 5, "")
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}
