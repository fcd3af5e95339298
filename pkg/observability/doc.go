/*
Package observability adapts the machine lifecycle hooks to monitoring backends.

Metrics exports transitions, state entries, unmatched events, forwarded commands
and dispatch durations to Prometheus. LoggingHooks records the same events with
slog. Combine runs several hook sets side by side.
*/
package observability
