package gambit

import _ "embed"

// Version is the release of the gambit module.
//
//go:embed VERSION
var Version string
