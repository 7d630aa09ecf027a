package main

import (
	"github.com/hauora/nhi/cmd"
)

// Version is set at build time using -ldflags
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
