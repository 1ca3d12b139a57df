package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Type identifies a lifecycle transition.
type Type string

// Lifecycle event types.
const (
	// TypeLoaded is emitted after a plugin's load hook completes.
	TypeLoaded Type = "loaded"

	// TypeEnabled is emitted after a plugin is marked enabled.
	TypeEnabled Type = "enabled"

	// TypeDisabled is emitted after a plugin is marked disabled.
	TypeDisabled Type = "disabled"

	// TypeEnableFailed is emitted when an enable operation fails.
	TypeEnableFailed Type = "enable_failed"

	// TypeDisableFailed is emitted when a disable operation fails.
	TypeDisableFailed Type = "disable_failed"
)

// Event records a single plugin lifecycle transition.
type Event struct {
	// ID uniquely identifies this event.
	ID string `json:"id"`

	// Type is the kind of transition that occurred.
	Type Type `json:"type"`

	// Plugin is the name of the plugin the transition applies to.
	Plugin string `json:"plugin"`

	// Dependency names the offending dependency for failed transitions
	// caused by dependency resolution, if any.
	Dependency string `json:"dependency,omitempty"`

	// Error carries the failure message for failed transitions.
	Error string `json:"error,omitempty"`

	// Time is when the transition occurred.
	Time time.Time `json:"time"`
}

// New creates an event with a fresh ID and the current time.
func New(eventType Type, pluginName string) Event {
	return Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		Plugin: pluginName,
		Time:   time.Now().UTC(),
	}
}

// Sink receives lifecycle events. Implementations must be safe for
// concurrent use. Emit failures are reported to the caller but must not
// affect the transition that produced the event.
type Sink interface {
	// Emit delivers a single event.
	Emit(ctx context.Context, e Event) error

	// Close releases any resources held by the sink.
	Close() error
}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs every event.
// If logger is nil, slog.Default() is used.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit logs the event.
func (s *LogSink) Emit(ctx context.Context, e Event) error {
	attrs := []any{
		slog.String("event_id", e.ID),
		slog.String("type", string(e.Type)),
		slog.String("plugin", e.Plugin),
	}
	if e.Dependency != "" {
		attrs = append(attrs, slog.String("dependency", e.Dependency))
	}
	if e.Error != "" {
		attrs = append(attrs, slog.String("error", e.Error))
	}
	s.logger.InfoContext(ctx, "plugin lifecycle event", attrs...)
	return nil
}

// Close implements Sink. It is a no-op for LogSink.
func (s *LogSink) Close() error {
	return nil
}

// MultiSink fans events out to several sinks in order.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that delivers each event to every given sink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Emit delivers the event to every sink, returning the first error after
// attempting all of them.
func (s *MultiSink) Emit(ctx context.Context, e Event) error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Emit(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every sink, returning the first error after attempting all.
func (s *MultiSink) Close() error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
