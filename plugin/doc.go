// Package plugin defines the contract between the host and the units it manages.
//
// A Plugin is a named, versioned component with a static list of dependencies
// declared at construction time. The host resolves those dependencies when the
// plugin is enabled and invokes the lifecycle hooks at well-defined points.
//
// # Creating a Plugin
//
// Plugins are created using the builder pattern with the Config type:
//
//	cfg := plugin.NewConfig()
//	cfg.SetName("metrics")
//	cfg.SetVersion("1.0.0")
//	cfg.SetDescription("Collects runtime metrics")
//	cfg.SetDepends([]string{"storage"})
//	cfg.SetOnEnable(func(ctx context.Context) error {
//	    // acquire resources
//	    return nil
//	})
//	cfg.SetOnDisable(func(ctx context.Context) error {
//	    // release resources
//	    return nil
//	})
//
//	p, err := plugin.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Lifecycle
//
// Plugins have a well-defined lifecycle:
//
//  1. Registration - the plugin is added to the registry, disabled.
//  2. Load - OnLoad runs once during the host's load pass.
//  3. Enable - OnEnable runs, then the plugin is marked enabled.
//  4. Disable - OnDisable runs, then the plugin is marked disabled.
//
// Hooks are synchronous callbacks into plugin code; the host runs to
// completion of each hook before proceeding. A plugin is never enabled
// before all of its declared dependencies are enabled.
//
// # Initial State
//
// Loading never enables a plugin implicitly. A plugin that should come up
// enabled opts in with SetEnableOnLoad(true); the host enables it (with
// automatic dependency resolution) at the end of the load pass.
package plugin
