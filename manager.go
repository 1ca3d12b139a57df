package plughost

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/plughost/plughost/events"
	"github.com/plughost/plughost/plugin"
)

// Manager implements the enable/disable state machine on top of a Registry.
// It is the only sanctioned entry point for changing enabled state: it walks
// a plugin's declared dependencies in order, enables or rejects them, detects
// cycles, and invokes lifecycle hooks before committing state changes.
//
// Enable and disable operations are serialized by a single mutex so that
// concurrent callers cannot interleave overlapping dependency walks.
type Manager struct {
	registry    *Registry
	logger      *slog.Logger
	tracer      trace.Tracer
	sink        events.Sink
	transitions metric.Int64Counter

	// mu serializes all enable/disable operations.
	mu sync.Mutex
}

// NewManager creates a manager over the given registry.
func NewManager(registry *Registry, opts ...Option) *Manager {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := cfg.tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}

	meter := cfg.meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}

	transitions, err := meter.Int64Counter("plughost.lifecycle.transitions",
		metric.WithDescription("Number of plugin lifecycle transitions, by type and outcome"),
	)
	if err != nil {
		cfg.logger.Warn("failed to create transition counter", "error", err)
		transitions, _ = metricnoop.NewMeterProvider().Meter(instrumentationName).
			Int64Counter("plughost.lifecycle.transitions")
	}

	return &Manager{
		registry:    registry,
		logger:      cfg.logger,
		tracer:      tracer,
		sink:        cfg.sink,
		transitions: transitions,
	}
}

// Registry returns the registry this manager operates on.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// EnablePlugin enables the named plugin, resolving its declared dependencies
// in order. Enabling an already-enabled plugin succeeds immediately without
// re-invoking hooks.
//
// When autoDeps is true, disabled dependencies are enabled recursively; when
// false, a disabled dependency fails the call with a DependencyError naming
// it. A missing dependency fails with a DependencyError wrapping
// ErrPluginNotFound; a dependency chain that revisits a plugin already being
// resolved fails with a DependencyError wrapping ErrDependencyCycle.
//
// Enabling is not transactional across the dependency chain: dependencies
// enabled earlier in a call that later fails remain enabled. Callers that
// need all-or-nothing semantics must track and roll back themselves.
func (m *Manager) EnablePlugin(ctx context.Context, name string, autoDeps bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, span := m.tracer.Start(ctx, "Manager.EnablePlugin",
		trace.WithAttributes(
			attribute.String("plugin.name", name),
			attribute.Bool("plugin.auto_deps", autoDeps),
		),
	)
	defer span.End()

	err := m.enable(ctx, name, autoDeps, make(map[string]struct{}), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		m.count(ctx, "enable", "failure")
		m.emit(ctx, m.failureEvent(events.TypeEnableFailed, name, err))
		return err
	}

	m.count(ctx, "enable", "success")
	return nil
}

// enable performs one step of the recursive resolution. inProgress holds the
// names currently being resolved in this top-level call so that a re-entered
// name is a direct set-membership check rather than a recursion-limit
// accident. chain is the resolution path taken so far, for error reporting.
func (m *Manager) enable(ctx context.Context, name string, autoDeps bool, inProgress map[string]struct{}, chain []string) error {
	p, err := m.registry.Get(name)
	if err != nil {
		return err
	}

	enabled, err := m.registry.Enabled(name)
	if err != nil {
		return err
	}
	if enabled {
		return nil
	}

	inProgress[name] = struct{}{}
	chain = append(chain, name)

	for _, dep := range p.Depends() {
		if _, busy := inProgress[dep]; busy {
			return &DependencyError{
				Plugin:     name,
				Dependency: dep,
				Chain:      append(append([]string(nil), chain...), dep),
				Err:        ErrDependencyCycle,
			}
		}

		depEnabled, err := m.registry.Enabled(dep)
		if err != nil {
			return &DependencyError{
				Plugin:     name,
				Dependency: dep,
				Chain:      append(append([]string(nil), chain...), dep),
				Err:        err,
			}
		}
		if depEnabled {
			continue
		}

		if !autoDeps {
			return &DependencyError{
				Plugin:     name,
				Dependency: dep,
				Chain:      append(append([]string(nil), chain...), dep),
				Err:        ErrDependencyDisabled,
			}
		}

		if err := m.enable(ctx, dep, true, inProgress, chain); err != nil {
			return err
		}
	}

	if err := p.OnEnable(ctx); err != nil {
		return NewLifecycleError("Manager.EnablePlugin", err).
			WithContext(map[string]any{"plugin": name, "hook": "on_enable"})
	}

	if err := m.registry.SetEnabled(name, true); err != nil {
		return err
	}
	delete(inProgress, name)

	m.logger.Info("plugin enabled", slog.String("name", name))
	m.emit(ctx, events.New(events.TypeEnabled, name))
	return nil
}

// DisablePlugin disables the named plugin. Disabling an already-disabled
// plugin succeeds immediately without re-invoking hooks. Plugins that depend
// on the named plugin are not cascaded: they stay enabled.
func (m *Manager) DisablePlugin(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, span := m.tracer.Start(ctx, "Manager.DisablePlugin",
		trace.WithAttributes(attribute.String("plugin.name", name)),
	)
	defer span.End()

	err := m.disable(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		m.count(ctx, "disable", "failure")
		m.emit(ctx, m.failureEvent(events.TypeDisableFailed, name, err))
		return err
	}

	m.count(ctx, "disable", "success")
	return nil
}

func (m *Manager) disable(ctx context.Context, name string) error {
	p, err := m.registry.Get(name)
	if err != nil {
		return err
	}

	enabled, err := m.registry.Enabled(name)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	if err := p.OnDisable(ctx); err != nil {
		return NewLifecycleError("Manager.DisablePlugin", err).
			WithContext(map[string]any{"plugin": name, "hook": "on_disable"})
	}

	if err := m.registry.SetEnabled(name, false); err != nil {
		return err
	}

	m.logger.Info("plugin disabled", slog.String("name", name))
	m.emit(ctx, events.New(events.TypeDisabled, name))
	return nil
}

// CheckDeps walks the named plugin's transitive dependency closure and
// partitions it into met (registered) and unmet (unregistered) dependency
// names, each in first-encountered resolution order. Registration is the
// only criterion; enabled state is not consulted.
func (m *Manager) CheckDeps(name string) (met, unmet []string, err error) {
	p, err := m.registry.Get(name)
	if err != nil {
		return nil, nil, err
	}

	visited := map[string]struct{}{name: {}}
	var walk func(p plugin.Plugin)
	walk = func(p plugin.Plugin) {
		for _, dep := range p.Depends() {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}

			depPlugin, err := m.registry.Get(dep)
			if err != nil {
				unmet = append(unmet, dep)
				continue
			}
			met = append(met, dep)
			walk(depPlugin)
		}
	}
	walk(p)

	return met, unmet, nil
}

// failureEvent builds a failure event, extracting the offending dependency
// from a DependencyError when there is one.
func (m *Manager) failureEvent(eventType events.Type, name string, err error) events.Event {
	e := events.New(eventType, name)
	e.Error = err.Error()

	var depErr *DependencyError
	if errors.As(err, &depErr) {
		e.Dependency = depErr.Dependency
	}
	return e
}

func (m *Manager) emit(ctx context.Context, e events.Event) {
	if m.sink == nil {
		return
	}
	if err := m.sink.Emit(ctx, e); err != nil {
		m.logger.Warn("failed to emit lifecycle event",
			slog.String("type", string(e.Type)),
			slog.String("plugin", e.Plugin),
			slog.String("error", err.Error()),
		)
	}
}

func (m *Manager) count(ctx context.Context, transition, outcome string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transition", transition),
		attribute.String("outcome", outcome),
	))
}
