// Command wikitalk is a terminal client for chatting with Wikipedia
// articles: load an article into a session and ask questions answered
// strictly from its text.
package main

import (
	"fmt"
	"os"

	"github.com/IrfanSethi/WikiTalk/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
