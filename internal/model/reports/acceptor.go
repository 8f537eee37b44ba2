package reports

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"max.ks1230/ledger-bot/internal/logger"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

// AcceptorServer receives rendered reports from the reporter and forwards them to the chat.
type AcceptorServer struct {
	sender messageSender
	server *grpc.Server
	lis    net.Listener
}

func NewServer(addr string, sender messageSender) (*AcceptorServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create server")
	}
	return newServer(lis, sender), nil
}

func newServer(lis net.Listener, sender messageSender) *AcceptorServer {
	rpcServer := grpc.NewServer()
	service := &AcceptorServer{
		sender: sender,
		server: rpcServer,
		lis:    lis,
	}
	rpcServer.RegisterService(&acceptorServiceDesc, service)
	return service
}

func (s *AcceptorServer) Serve() error {
	logger.Info("gRPC server listening", zap.Any("addr", s.lis.Addr()))
	err := s.server.Serve(s.lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "serve gRPC")
	}
	return nil
}

func (s *AcceptorServer) Shutdown() {
	s.server.GracefulStop()
	logger.Info("grpc server stopped")
}

func (s *AcceptorServer) AcceptReport(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	userID, text, err := decodeReport(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if text == "" {
		return nil, status.Error(codes.InvalidArgument, "empty report")
	}

	if err = s.sender.SendMessage(text, userID); err != nil {
		logger.Error("failed to deliver report", zap.Int64("userID", userID), zap.Error(err))
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return &emptypb.Empty{}, nil
}
