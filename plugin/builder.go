package plugin

import (
	"context"
	"fmt"
)

// HookFunc is a lifecycle callback invoked by the host.
// Hooks run synchronously; the host does not proceed until they return.
type HookFunc func(ctx context.Context) error

// HealthFunc reports the plugin's health on demand.
type HealthFunc func(ctx context.Context) Status

// Config holds the configuration for building a plugin.
// Use NewConfig to create a new configuration, then use the setter methods
// to configure the plugin before calling New to build it.
type Config struct {
	name         string
	version      string
	description  string
	depends      []string
	onLoad       HookFunc
	onEnable     HookFunc
	onDisable    HookFunc
	healthFunc   HealthFunc
	enableOnLoad bool
}

// NewConfig creates a new plugin configuration with default values.
// All hooks default to no-ops and the health function reports healthy.
func NewConfig() *Config {
	noop := func(ctx context.Context) error { return nil }
	return &Config{
		onLoad:    noop,
		onEnable:  noop,
		onDisable: noop,
		healthFunc: func(ctx context.Context) Status {
			return Healthy("plugin operational")
		},
	}
}

// SetName sets the plugin name.
func (c *Config) SetName(name string) {
	c.name = name
}

// SetVersion sets the plugin version.
func (c *Config) SetVersion(version string) {
	c.version = version
}

// SetDescription sets the plugin description.
func (c *Config) SetDescription(desc string) {
	c.description = desc
}

// SetDepends sets the plugin's dependency names. The order is preserved and
// is the order the host resolves them in.
func (c *Config) SetDepends(depends []string) {
	c.depends = append([]string(nil), depends...)
}

// SetOnLoad sets the hook invoked when the plugin is loaded.
func (c *Config) SetOnLoad(fn HookFunc) {
	c.onLoad = fn
}

// SetOnEnable sets the hook invoked before the plugin is marked enabled.
func (c *Config) SetOnEnable(fn HookFunc) {
	c.onEnable = fn
}

// SetOnDisable sets the hook invoked before the plugin is marked disabled.
func (c *Config) SetOnDisable(fn HookFunc) {
	c.onDisable = fn
}

// SetHealthFunc sets the health reporting function.
func (c *Config) SetHealthFunc(fn HealthFunc) {
	c.healthFunc = fn
}

// SetEnableOnLoad marks the plugin for automatic enabling at the end of the
// host's load pass.
func (c *Config) SetEnableOnLoad(v bool) {
	c.enableOnLoad = v
}

// New creates a new Plugin from the configuration.
// Returns an error if the configuration is invalid.
func New(cfg *Config) (Plugin, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if cfg.name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}

	if cfg.version == "" {
		return nil, fmt.Errorf("plugin version is required")
	}

	seen := make(map[string]struct{}, len(cfg.depends))
	for _, dep := range cfg.depends {
		if dep == "" {
			return nil, fmt.Errorf("dependency name cannot be empty")
		}
		if dep == cfg.name {
			return nil, fmt.Errorf("plugin %s cannot depend on itself", cfg.name)
		}
		if _, exists := seen[dep]; exists {
			return nil, fmt.Errorf("duplicate dependency: %s", dep)
		}
		seen[dep] = struct{}{}
	}

	return &hostPlugin{
		name:         cfg.name,
		version:      cfg.version,
		description:  cfg.description,
		depends:      append([]string(nil), cfg.depends...),
		onLoad:       cfg.onLoad,
		onEnable:     cfg.onEnable,
		onDisable:    cfg.onDisable,
		healthFunc:   cfg.healthFunc,
		enableOnLoad: cfg.enableOnLoad,
	}, nil
}

// hostPlugin is the private implementation of the Plugin interface.
type hostPlugin struct {
	name         string
	version      string
	description  string
	depends      []string
	onLoad       HookFunc
	onEnable     HookFunc
	onDisable    HookFunc
	healthFunc   HealthFunc
	enableOnLoad bool
}

// Name returns the plugin's unique identifier.
func (p *hostPlugin) Name() string {
	return p.name
}

// Version returns the plugin's semantic version.
func (p *hostPlugin) Version() string {
	return p.version
}

// Description returns the plugin's description.
func (p *hostPlugin) Description() string {
	return p.description
}

// Depends returns the plugin's declared dependency names.
func (p *hostPlugin) Depends() []string {
	return p.depends
}

// OnLoad invokes the configured load hook.
func (p *hostPlugin) OnLoad(ctx context.Context) error {
	return p.onLoad(ctx)
}

// OnEnable invokes the configured enable hook.
func (p *hostPlugin) OnEnable(ctx context.Context) error {
	return p.onEnable(ctx)
}

// OnDisable invokes the configured disable hook.
func (p *hostPlugin) OnDisable(ctx context.Context) error {
	return p.onDisable(ctx)
}

// Health returns the plugin's current health status.
func (p *hostPlugin) Health(ctx context.Context) Status {
	return p.healthFunc(ctx)
}

// EnableOnLoad reports whether the plugin asked to be enabled after loading.
func (p *hostPlugin) EnableOnLoad() bool {
	return p.enableOnLoad
}
