package flowguard

import _ "embed"

// Version is the released version of flowguard.
//
//go:embed VERSION
var Version string
