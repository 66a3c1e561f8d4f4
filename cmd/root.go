// Package cmd implements the gada command-line interface: the render,
// check, toc, and fmt subcommands over the internal/asciidoc engine,
// wired together with github.com/alecthomas/kong.
package cmd

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI is the root command structure Kong parses argv into.
type CLI struct {
	Verbose bool `help:"Enable verbose output" name:"verbose" short:"v"` //nolint:lll,revive // Kong struct tag

	Render     RenderCmd                 `cmd:"" help:"Parse and evaluate a document through a backend"`   //nolint:lll,revive // Kong struct tag with alignment
	Check      CheckCmd                  `cmd:"" help:"Parse documents and report diagnostics"`            //nolint:lll,revive // Kong struct tag with alignment
	TOC        TOCCmd                    `cmd:"" help:"Print a document's table of contents"`               //nolint:lll,revive // Kong struct tag with alignment
	Fmt        FmtCmd                    `cmd:"" help:"Dump a document's parsed structure"`                 //nolint:lll,revive // Kong struct tag with alignment
	Version    VersionCmd                `cmd:"" help:"Show version info"`                                  //nolint:lll,revive // Kong struct tag with alignment
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completions"`                         //nolint:lll,revive // Kong struct tag with alignment
}
