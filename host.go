package plughost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/plughost/plughost/events"
	"github.com/plughost/plughost/plugin"
)

// Host is the composition root for a plugin system. It owns the Registry and
// the Manager and exposes the full outbound surface: registration, lookup,
// enumeration, semantic enable/disable, and lifecycle of the system as a
// whole.
//
// A Host is process-lifetime state with a single init/teardown cycle:
// construct it with New, register plugins during discovery, call Start once,
// and call Shutdown when tearing down.
type Host interface {
	// Register adds a plugin to the host, disabled.
	// Returns ErrDuplicatePlugin if the name is already taken.
	Register(p plugin.Plugin) error

	// Get retrieves a plugin by name.
	// Returns ErrPluginNotFound if the plugin is not registered.
	Get(name string) (plugin.Plugin, error)

	// Info retrieves a plugin's descriptor and enabled state by name.
	Info(name string) (plugin.Info, error)

	// List returns descriptors and enabled state for all registered plugins,
	// in registration order.
	List() []plugin.Info

	// Enabled reports whether the named plugin is currently enabled.
	Enabled(name string) (bool, error)

	// EnabledPlugins returns descriptors for all enabled plugins.
	EnabledPlugins() []plugin.Info

	// DisabledPlugins returns descriptors for all disabled plugins.
	DisabledPlugins() []plugin.Info

	// EnablePlugin enables the named plugin, resolving dependencies.
	// See Manager.EnablePlugin for the full contract.
	EnablePlugin(ctx context.Context, name string, autoDeps bool) error

	// DisablePlugin disables the named plugin without cascading to dependents.
	// See Manager.DisablePlugin for the full contract.
	DisablePlugin(ctx context.Context, name string) error

	// CheckDeps partitions the named plugin's transitive dependencies into
	// met (registered) and unmet (unregistered) names.
	CheckDeps(name string) (met, unmet []string, err error)

	// Start runs the load pass: every registered plugin's OnLoad hook is
	// invoked once, in registration order, and plugins that requested
	// enable-on-load are then enabled with automatic dependency resolution.
	Start(ctx context.Context) error

	// Shutdown disables all enabled plugins in reverse registration order
	// and releases host resources.
	Shutdown(ctx context.Context) error

	// Health returns the health status of every enabled plugin, keyed by name.
	Health(ctx context.Context) map[string]plugin.Status
}

// New creates a Host with the provided options.
//
// Example:
//
//	host := plughost.New(
//	    plughost.WithLogger(logger),
//	    plughost.WithEventSink(events.NewLogSink(logger)),
//	)
//	defer host.Shutdown(context.Background())
func New(opts ...Option) Host {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	registry := NewRegistry(cfg.logger)
	return &defaultHost{
		logger:   cfg.logger,
		sink:     cfg.sink,
		registry: registry,
		manager:  NewManager(registry, opts...),
	}
}

// defaultHost is the concrete implementation of Host.
type defaultHost struct {
	logger   *slog.Logger
	sink     events.Sink
	registry *Registry
	manager  *Manager

	mu      sync.Mutex
	started bool
}

func (h *defaultHost) Register(p plugin.Plugin) error {
	return h.registry.Register(p)
}

func (h *defaultHost) Get(name string) (plugin.Plugin, error) {
	return h.registry.Get(name)
}

func (h *defaultHost) Info(name string) (plugin.Info, error) {
	return h.registry.Info(name)
}

func (h *defaultHost) List() []plugin.Info {
	return h.registry.List()
}

func (h *defaultHost) Enabled(name string) (bool, error) {
	return h.registry.Enabled(name)
}

func (h *defaultHost) EnabledPlugins() []plugin.Info {
	return h.registry.EnabledPlugins()
}

func (h *defaultHost) DisabledPlugins() []plugin.Info {
	return h.registry.DisabledPlugins()
}

func (h *defaultHost) EnablePlugin(ctx context.Context, name string, autoDeps bool) error {
	return h.manager.EnablePlugin(ctx, name, autoDeps)
}

func (h *defaultHost) DisablePlugin(ctx context.Context, name string) error {
	return h.manager.DisablePlugin(ctx, name)
}

func (h *defaultHost) CheckDeps(name string) (met, unmet []string, err error) {
	return h.manager.CheckDeps(name)
}

// Start runs the load pass. Loading never enables a plugin implicitly: a
// plugin comes up enabled only by asking for it via enable-on-load, and that
// enabling goes through the manager like any other.
func (h *defaultHost) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return fmt.Errorf("host already started")
	}

	h.logger.Info("starting plugin host", slog.Int("plugins", h.registry.Len()))

	names := h.registry.Names()
	for _, name := range names {
		p, err := h.registry.Get(name)
		if err != nil {
			return err
		}

		if err := p.OnLoad(ctx); err != nil {
			return NewLifecycleError("Host.Start", err).
				WithContext(map[string]any{"plugin": name, "hook": "on_load"})
		}
		h.emit(ctx, events.New(events.TypeLoaded, name))
	}

	for _, name := range names {
		p, err := h.registry.Get(name)
		if err != nil {
			return err
		}

		eol, ok := p.(plugin.EnableOnLoader)
		if !ok || !eol.EnableOnLoad() {
			continue
		}
		if err := h.manager.EnablePlugin(ctx, name, true); err != nil {
			return err
		}
	}

	h.started = true
	return nil
}

// Shutdown disables every enabled plugin in reverse registration order. All
// plugins are attempted even if one fails; the first error is returned.
func (h *defaultHost) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Info("shutting down plugin host")

	var firstErr error
	names := h.registry.Names()
	for i := len(names) - 1; i >= 0; i-- {
		enabled, err := h.registry.Enabled(names[i])
		if err != nil || !enabled {
			continue
		}
		if err := h.manager.DisablePlugin(ctx, names[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	h.started = false
	return firstErr
}

func (h *defaultHost) Health(ctx context.Context) map[string]plugin.Status {
	statuses := make(map[string]plugin.Status)
	for _, info := range h.registry.EnabledPlugins() {
		p, err := h.registry.Get(info.Name)
		if err != nil {
			continue
		}
		statuses[info.Name] = p.Health(ctx)
	}
	return statuses
}

func (h *defaultHost) emit(ctx context.Context, e events.Event) {
	if h.sink == nil {
		return
	}
	if err := h.sink.Emit(ctx, e); err != nil {
		h.logger.Warn("failed to emit lifecycle event",
			slog.String("type", string(e.Type)),
			slog.String("plugin", e.Plugin),
			slog.String("error", err.Error()),
		)
	}
}
