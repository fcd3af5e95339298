/*
Package ports defines the driven ports (interfaces) of the gambit engine.

These interfaces decouple the machine runtime and the chess chart from the outside
world: where events come from, where output commands go, which rules engine
judges moves and where snapshots are kept.

# Key Interfaces

  - Emitter: Queues events for a machine (e.g., a board click).
  - CommandSink: Receives output commands once a transition has settled.
  - RulesEngine / MoveOracle: The chess collaborator consulted by guards.
  - SnapshotStore: Persists machine snapshots by session ID.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
