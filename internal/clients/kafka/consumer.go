package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/logger"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type reportGenerator interface {
	GenerateReport(ctx context.Context, userID int64) (string, error)
}

type reportSender interface {
	SendReport(ctx context.Context, userID int64, text string) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	generator     reportGenerator
	sender        reportSender
}

func NewConsumer(cfg consumerConfig, generator reportGenerator, sender reportSender) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.ReportsTopic(),
		generator:     generator,
		sender:        sender,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Close() {
	if err := c.consumerGroup.Close(); err != nil {
		logger.Error("failed to close consumer group", zap.Error(err))
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (c *Consumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	userID, err := decodeRequest(message.Value)
	if err != nil {
		logger.Error("cannot decode kafka message", zap.ByteString("key", message.Key), zap.Error(err))
		return
	}
	logger.Info("received report request", zap.ByteString("key", message.Key), zap.Int64("userID", userID))
	c.processRequest(ctx, userID)
}

func (c *Consumer) processRequest(ctx context.Context, userID int64) {
	report, err := c.generator.GenerateReport(ctx, userID)
	if err != nil {
		logger.Error("failed to generate report", zap.Int64("userID", userID), zap.Error(err))
		return
	}
	if err = c.sender.SendReport(ctx, userID, report); err != nil {
		logger.Error("failed to send report", zap.Int64("userID", userID), zap.Error(err))
	}
}
