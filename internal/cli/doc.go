// Package cli implements the gambit commands on top of the runner, the stores
// and the presentation packages. cmd/gambit only parses flags.
package cli
