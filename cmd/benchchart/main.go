// cmd/benchchart/main.go
package main

import (
	cmd "github.com/mwiater/benchchart/internal/cli"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the benchchart CLI by delegating to the cobra root command
// defined in the benchchart package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
