package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"max.ks1230/ledger-bot/internal/api"
	"max.ks1230/ledger-bot/internal/clients/cache"
	"max.ks1230/ledger-bot/internal/clients/kafka"
	"max.ks1230/ledger-bot/internal/clients/tg"
	"max.ks1230/ledger-bot/internal/config"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/advice"
	"max.ks1230/ledger-bot/internal/model/commands"
	"max.ks1230/ledger-bot/internal/model/finances"
	"max.ks1230/ledger-bot/internal/model/messages"
	"max.ks1230/ledger-bot/internal/model/reports"
	"max.ks1230/ledger-bot/internal/model/savings"
	"max.ks1230/ledger-bot/internal/model/storage"
	"max.ks1230/ledger-bot/internal/tracing"
)

const serviceName = "ledger-bot"

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

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

	vocab, err := commands.DefaultVocabulary()
	if err != nil {
		logger.Fatal("failed to load vocabulary:", zap.Error(err))
	}
	parser := commands.NewParser(vocab, conf.App().Location())

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}

	var requester *kafka.Producer
	if conf.Kafka().Enabled() {
		requester, err = kafka.NewProducer(conf.Kafka())
		if err != nil {
			logger.Fatal("failed to init kafka producer:", zap.Error(err))
		}
		defer requester.Close()
	}

	var guard *cache.UpdateGuard
	if conf.Memcached().Enabled() {
		guard, err = cache.NewUpdateGuard(conf.Memcached())
		if err != nil {
			logger.Fatal("failed to init memcached:", zap.Error(err))
		}
	}

	handler := messages.NewHandler(parser, ledgerService, reports.NewGenerator(ledgerService), reportRequester(requester))
	msgService := messages.NewService(client, handler, updateGuard(guard))

	acceptor, err := reports.NewServer(conf.Server().Acceptor(), client)
	if err != nil {
		logger.Fatal("failed to init report acceptor:", zap.Error(err))
	}
	httpServer := api.NewServer(conf.Server().HTTP(), api.NewHandler(ledgerService))

	logger.Info("Bot init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ListenUpdates(ctx, msgService)
	})
	g.Go(func() error {
		return httpServer.Serve(ctx)
	})
	g.Go(acceptor.Serve)
	g.Go(func() error {
		<-ctx.Done()
		acceptor.Shutdown()
		return nil
	})

	if err = g.Wait(); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
	}
}

// reportRequester keeps a nil producer from becoming a non-nil interface.
func reportRequester(p *kafka.Producer) interface {
	RequestReport(ctx context.Context, userID int64) error
} {
	if p == nil {
		return nil
	}
	return p
}

func updateGuard(g *cache.UpdateGuard) interface {
	FirstSeen(updateID int) (bool, error)
} {
	if g == nil {
		return nil
	}
	return g
}
