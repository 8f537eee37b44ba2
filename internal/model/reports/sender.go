package reports

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"max.ks1230/ledger-bot/internal/logger"
)

type Sender struct {
	conn *grpc.ClientConn
}

func NewSender(addr string, opts ...grpc.DialOption) (*Sender, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.Dial(addr, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot initiate new connection")
	}
	return &Sender{conn: conn}, nil
}

func (s *Sender) Close() {
	err := s.conn.Close()
	if err != nil {
		logger.Error("failed to close grpc connection", zap.Error(err))
	}
}

func (s *Sender) SendReport(ctx context.Context, userID int64, text string) error {
	logger.Info("SendReport - start", zap.Int64("userID", userID))
	defer logger.Info("SendReport - end")

	in, err := encodeReport(userID, text)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	return s.conn.Invoke(ctx, acceptReportMethod, in, new(emptypb.Empty))
}
