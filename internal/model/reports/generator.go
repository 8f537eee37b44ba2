package reports

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/logger"
)

type reportSource interface {
	Report(ctx context.Context, userID int64) (ledger.Report, error)
}

type Generator struct {
	source reportSource
}

func NewGenerator(source reportSource) *Generator {
	return &Generator{source: source}
}

func (g *Generator) GenerateReport(ctx context.Context, userID int64) (string, error) {
	logger.Info("GenerateReport - start", zap.Int64("userID", userID))
	defer logger.Info("GenerateReport - end")

	report, err := g.source.Report(ctx, userID)
	if err != nil {
		return "", errors.Wrap(err, "generate report")
	}
	return Render(report), nil
}
