package plughost

import (
	"testing"
)

func TestWithLogger_NilIsIgnored(t *testing.T) {
	cfg := newConfig()
	defaultLogger := cfg.logger

	WithLogger(nil)(cfg)
	if cfg.logger != defaultLogger {
		t.Error("nil logger should not replace the default")
	}

	custom := testLogger()
	WithLogger(custom)(cfg)
	if cfg.logger != custom {
		t.Error("custom logger was not applied")
	}
}

func TestWithEventSink(t *testing.T) {
	cfg := newConfig()
	if cfg.sink != nil {
		t.Error("sink should default to nil")
	}

	sink := &captureSink{}
	WithEventSink(sink)(cfg)
	if cfg.sink != sink {
		t.Error("sink was not applied")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := newConfig()
	if cfg.logger == nil {
		t.Error("expected a default logger")
	}
	if cfg.tracer != nil {
		t.Error("tracer should default to nil (no-op is installed by NewManager)")
	}
	if cfg.meter != nil {
		t.Error("meter should default to nil (no-op is installed by NewManager)")
	}
}
