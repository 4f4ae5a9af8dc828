// Package tracing wires the process-wide opentracing tracer.
package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type config interface {
	Name() string
}

// Init installs a jaeger tracer as the opentracing global. The caller
// closes the returned closer on shutdown.
func Init(config config) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: config.Name(),
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "cannot init tracing")
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
