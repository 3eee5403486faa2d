// Package main is the entry point for the opusctl CLI.
//
// Usage:
//
//	opusctl [flags] <command> [subcommand] [args]
//
// Commands:
//
//	version    - Show build and libopus version information
//	requests   - List the known control requests
//	ctl        - Issue one set or get request through the control shim
//	state      - Show every readable control of a fresh encoder and decoder
//	profile    - Manage encoder profiles (list, show, set, delete, use)
//	serve      - Run the WebSocket control bridge
//	call       - Send requests to a running bridge
package main

import (
	"os"

	"github.com/haivivi/opusctl/cmd/opusctl/commands"
	"github.com/haivivi/opusctl/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
