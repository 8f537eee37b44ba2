package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/logger"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, text string, userID int64) (string, error)
}

// updateGuard reports whether a chat update is seen for the first time.
type updateGuard interface {
	FirstSeen(updateID int) (bool, error)
}

type Service struct {
	tgClient messageSender
	handler  MessageHandler
	guard    updateGuard
}

// NewService wires the chat front end; guard may be nil to process every update.
func NewService(tgClient messageSender, handler MessageHandler, guard updateGuard) *Service {
	return &Service{
		tgClient: tgClient,
		handler:  handler,
		guard:    guard,
	}
}

type Message struct {
	UpdateID int
	Text     string
	UserID   int64
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	if s.isDuplicate(msg) {
		logger.Info("duplicate update skipped", zap.Int("updateID", msg.UpdateID))
		return nil
	}

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) isDuplicate(msg Message) bool {
	if s.guard == nil || msg.UpdateID == 0 {
		return false
	}
	first, err := s.guard.FirstSeen(msg.UpdateID)
	if err != nil {
		logger.Warn("update guard unavailable", zap.Error(err))
		return false
	}
	return !first
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	resp, err := s.handler.HandleMessage(ctx, msg.Text, msg.UserID)
	if err != nil {
		_ = s.tgClient.SendMessage(resp, msg.UserID)
		return err
	}
	return s.tgClient.SendMessage(resp, msg.UserID)
}
