package kafka

import (
	"context"
	"strconv"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/logger"
)

type producerConfig interface {
	Brokers() []string
	ReportsTopic() string
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new sync producer")
	}
	return newProducer(producer, cfg.ReportsTopic()), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
	}
}

// RequestReport queues a report for the reporter. Messages are keyed by user so one user's
// requests stay ordered within a partition.
func (p *Producer) RequestReport(_ context.Context, userID int64) error {
	payload, err := encodeRequest(userID)
	if err != nil {
		return errors.Wrap(err, "encode report request")
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(userID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errors.Wrap(err, "send report request")
	}
	logger.Info("report requested", zap.Int64("userID", userID))
	return nil
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}
