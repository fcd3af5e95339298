// Package sink provides command sinks: a kind-routed Dispatcher with middleware
// and a Recorder keeping what it receives.
package sink
