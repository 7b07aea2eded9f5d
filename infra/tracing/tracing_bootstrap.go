package tracing

import (
	"beacon/common"
	"io"

	"github.com/opentracing/opentracing-go"
	jaegerconfig "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
)

// Bootstrap builds the global tracer from the JAEGER_* environment, falling
// back to a no-op sampler when none is configured. The returned closer flushes
// pending spans on shutdown.
func Bootstrap() (io.Closer, error) {
	cfg, err := jaegerconfig.FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.ServiceName = common.GetServiceName()

	tracer, closer, err := cfg.NewTracer(
		jaegerconfig.Logger(jaegerlog.StdLogger),
		jaegerconfig.Metrics(metrics.NullFactory),
	)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
