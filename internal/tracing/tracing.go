package tracing

import (
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"max.ks1230/ledger-bot/internal/logger"
)

// Init installs a global jaeger tracer. JAEGER_* environment variables override the defaults;
// everything is sampled unless JAEGER_SAMPLER_TYPE says otherwise.
func Init(serviceName string) (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "jaeger config from env")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	if cfg.Sampler == nil {
		cfg.Sampler = &jaegercfg.SamplerConfig{}
	}
	if cfg.Sampler.Type == "" {
		cfg.Sampler.Type = jaeger.SamplerTypeConst
		cfg.Sampler.Param = 1
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(zapAdapter{}))
	if err != nil {
		return nil, errors.Wrap(err, "new tracer")
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}

type zapAdapter struct{}

func (zapAdapter) Error(msg string) {
	logger.Error(msg)
}

func (zapAdapter) Infof(msg string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(msg, args...))
}
