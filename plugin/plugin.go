package plugin

import "context"

// Plugin is the interface implemented by every unit managed by the host.
// A plugin is a named, independently enableable piece of functionality with a
// static list of dependencies declared at construction time. The host invokes
// the lifecycle hooks at well-defined points; hooks run synchronously and the
// host does not proceed until they return.
type Plugin interface {
	// Name returns the unique identifier for the plugin.
	Name() string

	// Version returns the semantic version of the plugin.
	Version() string

	// Description returns a human-readable description of the plugin's purpose.
	Description() string

	// Depends returns the names of the plugins this plugin requires, in the
	// order they were declared. The returned slice must not be mutated by
	// callers and must be stable for the lifetime of the plugin.
	Depends() []string

	// OnLoad is called once when the host loads the plugin, before any
	// enable or disable operation. Loading does not imply enabling.
	OnLoad(ctx context.Context) error

	// OnEnable is called immediately before the plugin is marked enabled.
	// An error aborts the enable and leaves the plugin disabled.
	OnEnable(ctx context.Context) error

	// OnDisable is called immediately before the plugin is marked disabled.
	// An error aborts the disable and leaves the plugin enabled.
	OnDisable(ctx context.Context) error

	// Health returns the current health status of the plugin.
	// This can be used for monitoring and diagnostics.
	Health(ctx context.Context) Status
}

// EnableOnLoader is optionally implemented by plugins that want the host to
// enable them automatically at the end of the load pass. Discovery surfaces
// set this from manifest metadata; the host checks for it in Start.
type EnableOnLoader interface {
	// EnableOnLoad reports whether the plugin should be enabled once all
	// plugins have been loaded.
	EnableOnLoad() bool
}
