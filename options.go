package plughost

import (
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/plughost/plughost/events"
)

// instrumentationName is the name reported to OpenTelemetry tracers and meters.
const instrumentationName = "github.com/plughost/plughost"

// Option configures a Host or Manager.
type Option func(*config)

// config holds configuration shared by the Host and the Manager.
type config struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	sink   events.Sink
}

func newConfig() *config {
	return &config{
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
	}
}

// WithLogger sets a custom logger.
// If not provided, a JSON logger writing to stdout is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer for the enable/disable operations.
// If not provided, a no-op tracer is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for lifecycle transition counters.
// If not provided, a no-op meter is used.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithEventSink sets the sink that receives plugin lifecycle events.
// If not provided, no events are emitted.
func WithEventSink(sink events.Sink) Option {
	return func(c *config) {
		c.sink = sink
	}
}
