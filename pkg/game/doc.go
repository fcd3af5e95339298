// Package game is the two-player chess chart: control states, extended state,
// guards, actions and the host-side command handlers.
//
// The chart never touches the board itself. Moving a piece produces a
// move_piece command that the handler from NewCommandSink applies to the
// shared rules engine once the machine has settled.
package game
