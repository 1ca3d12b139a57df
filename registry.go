package plughost

import (
	"log/slog"
	"sync"

	"github.com/plughost/plughost/plugin"
)

// Registry is the authoritative in-memory store of all known plugins and
// their enabled state. It is a passive store: it owns existence and the raw
// enabled flag per plugin, but no dependency logic. Enabled-state changes
// with dependency checking go through the Manager; SetEnabled is the raw
// mutation the Manager uses.
//
// The registry is safe for concurrent use.
type Registry struct {
	logger  *slog.Logger
	mu      sync.RWMutex
	plugins map[string]*registryEntry
	order   []string
}

// registryEntry pairs a plugin with its enabled flag. The flag lives here
// rather than on the plugin so the registry stays the single source of truth.
type registryEntry struct {
	plugin  plugin.Plugin
	enabled bool
}

// NewRegistry creates an empty registry.
// If logger is nil, slog.Default() is used.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		plugins: make(map[string]*registryEntry),
	}
}

// Register adds a plugin to the registry, disabled.
// Returns ErrDuplicatePlugin if a plugin with the same name already exists;
// the first-registered instance is retained.
func (r *Registry) Register(p plugin.Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return NewDuplicateError("Registry.Register", ErrDuplicatePlugin).
			WithContext(map[string]any{"plugin": name})
	}

	r.plugins[name] = &registryEntry{plugin: p}
	r.order = append(r.order, name)
	r.logger.Info("plugin registered",
		slog.String("name", name),
		slog.String("version", p.Version()),
	)
	return nil
}

// Get retrieves a plugin by name.
// Returns ErrPluginNotFound if the plugin is not registered.
func (r *Registry) Get(name string) (plugin.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.plugins[name]
	if !ok {
		return nil, NewNotFoundError("Registry.Get", ErrPluginNotFound).
			WithContext(map[string]any{"plugin": name})
	}
	return entry.plugin, nil
}

// Info retrieves a plugin's descriptor and enabled state by name.
func (r *Registry) Info(name string) (plugin.Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.plugins[name]
	if !ok {
		return plugin.Info{}, NewNotFoundError("Registry.Info", ErrPluginNotFound).
			WithContext(map[string]any{"plugin": name})
	}
	return plugin.Info{
		Descriptor: plugin.ToDescriptor(entry.plugin),
		Enabled:    entry.enabled,
	}, nil
}

// Enabled reports whether the named plugin is currently enabled.
// Returns ErrPluginNotFound if the plugin is not registered.
func (r *Registry) Enabled(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.plugins[name]
	if !ok {
		return false, NewNotFoundError("Registry.Enabled", ErrPluginNotFound).
			WithContext(map[string]any{"plugin": name})
	}
	return entry.enabled, nil
}

// SetEnabled sets the raw enabled flag for a plugin, with no dependency
// checking and no hook invocation. It exists for the Manager; external
// callers performing a semantic enable or disable must go through the
// Manager instead.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.plugins[name]
	if !ok {
		return NewNotFoundError("Registry.SetEnabled", ErrPluginNotFound).
			WithContext(map[string]any{"plugin": name})
	}
	entry.enabled = enabled
	return nil
}

// List returns descriptors and enabled state for all registered plugins,
// in registration order.
func (r *Registry) List() []plugin.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]plugin.Info, 0, len(r.order))
	for _, name := range r.order {
		entry := r.plugins[name]
		infos = append(infos, plugin.Info{
			Descriptor: plugin.ToDescriptor(entry.plugin),
			Enabled:    entry.enabled,
		})
	}
	return infos
}

// EnabledPlugins returns descriptors for all enabled plugins, in
// registration order.
func (r *Registry) EnabledPlugins() []plugin.Info {
	return r.filter(true)
}

// DisabledPlugins returns descriptors for all disabled plugins, in
// registration order.
func (r *Registry) DisabledPlugins() []plugin.Info {
	return r.filter(false)
}

func (r *Registry) filter(enabled bool) []plugin.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var infos []plugin.Info
	for _, name := range r.order {
		entry := r.plugins[name]
		if entry.enabled != enabled {
			continue
		}
		infos = append(infos, plugin.Info{
			Descriptor: plugin.ToDescriptor(entry.plugin),
			Enabled:    entry.enabled,
		})
	}
	return infos
}

// Names returns the names of all registered plugins in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}
