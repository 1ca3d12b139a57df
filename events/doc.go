// Package events carries plugin lifecycle notifications out of the host.
//
// Every load, enable, and disable transition (including failures) produces an
// Event that the host delivers to a configured Sink. Sinks are observers:
// delivery failures are logged by the host and never affect the transition
// that produced the event, and no sink implementation makes the in-process
// registry anything other than the single source of truth for plugin state.
//
// Three sinks are provided:
//
//   - LogSink writes events to a structured logger.
//   - MultiSink fans events out to several sinks.
//   - RedisSink publishes events as JSON to a Redis pub/sub channel for
//     external observers, with a Subscribe helper for consuming them.
package events
