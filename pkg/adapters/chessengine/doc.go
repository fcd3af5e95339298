// Package chessengine adapts github.com/notnil/chess to the rules engine and move
// oracle ports consulted by the chess chart.
package chessengine
