package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/clients/kafka"
	"max.ks1230/ledger-bot/internal/config"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/advice"
	"max.ks1230/ledger-bot/internal/model/finances"
	"max.ks1230/ledger-bot/internal/model/reports"
	"max.ks1230/ledger-bot/internal/model/savings"
	"max.ks1230/ledger-bot/internal/model/storage"
	"max.ks1230/ledger-bot/internal/tracing"
)

const serviceName = "ledger-reporter"

func main() {
	defer logger.Sync()
	logger.Info("Reporter init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(serviceName)
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	db, err := storage.New(conf.Storage(), conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	defer db.Close()

	ledgerService := finances.NewService(
		db,
		savings.NewAllocator(conf.App()),
		advice.NewAdvisor(conf.App().AdviceThresholds()),
		conf.App(),
	)

	sender, err := reports.NewSender(conf.Server().Acceptor())
	if err != nil {
		logger.Fatal("failed to init report sender:", zap.Error(err))
	}
	defer sender.Close()

	consumer, err := kafka.NewConsumer(conf.Kafka(), reports.NewGenerator(ledgerService), sender)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Error("failed to consume report requests", zap.Error(err))
	}
}
