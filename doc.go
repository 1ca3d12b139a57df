// Package plughost provides an in-process plugin registry and lifecycle manager.
//
// The package locates nothing itself: a discovery surface (typically driven by
// the manifest package) hands it already-constructed plugins, and plughost
// tracks an enabled/disabled state per plugin and resolves static,
// name-based dependencies when a plugin is enabled.
//
// # Core Concepts
//
// The package is organized around three components:
//
//   - Registry: the authoritative in-memory store of all known plugins and
//     their enabled state. A passive store with lookup, enumeration, and raw
//     state mutation, and no dependency logic.
//   - Manager: the resolver. The only sanctioned entry point for changing
//     enabled state; it walks declared dependencies in order, enables or
//     rejects them, detects cycles with an explicit in-progress set, and
//     invokes lifecycle hooks before committing state changes.
//   - Host: the composition root tying the two together, with a single
//     Start/Shutdown lifecycle.
//
// # Getting Started
//
//	host := plughost.New(plughost.WithLogger(logger))
//
//	p, _ := plugin.New(cfg)
//	if err := host.Register(p); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := host.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Shutdown(ctx)
//
//	if err := host.EnablePlugin(ctx, "metrics", true); err != nil {
//	    log.Fatal(err)
//	}
//
// # Dependency Semantics
//
// Dependencies are static and declared ahead of time by each plugin. When a
// plugin is enabled with autoDeps true, disabled dependencies are enabled
// recursively in declared order; with autoDeps false, a disabled dependency
// is a hard failure. A missing dependency or a dependency cycle always fails
// the call. Enabling is not transactional: dependencies enabled earlier in a
// call that later fails remain enabled, and disabling never cascades to
// dependents. Callers needing stricter semantics must build them on top.
//
// # Error Handling
//
// Errors follow the structured HostError pattern with sentinel causes
// (ErrPluginNotFound, ErrDuplicatePlugin, ErrDependencyDisabled,
// ErrDependencyCycle) so callers can branch with errors.Is. Dependency
// resolution failures are DependencyError values carrying the offending
// dependency name and the resolution chain that led to it.
package plughost
