/*
Package domain contains the core domain models of the Gambit state machine engine.

It defines the values that flow through the machine: events coming in, commands going out,
the extended state carried alongside the control state, and the action results that bind
them together. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Event: A named input with an optional payload (e.g. a clicked square).
  - ExtendedState: The open data payload that lives next to the control state.
  - Patch: A shallow partial update of the extended state.
  - ActionResult: The ordered updates and output commands produced by a transition.
  - Command: A side-effect description handed to the host, never executed by the engine.
  - Snapshot: The persisted form of a machine (control state + extended state).
*/
package domain
